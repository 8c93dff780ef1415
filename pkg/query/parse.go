package query

import (
	"strconv"
	"strings"

	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/view"
)

// Parse builds a query from expressions. Each dimension may be named once.
// Malformed expressions fail with ErrCodeInvalidQuery.
func Parse(exprs []string) (view.Query, error) {
	q := make(view.Query, len(exprs))
	for _, expr := range exprs {
		name, c, err := ParseExpr(expr)
		if err != nil {
			return nil, err
		}
		if _, dup := q[name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidQuery, "dimension %q constrained twice", name)
		}
		q[name] = c
	}
	return q, nil
}

// ParseExpr parses a single "name=value" expression.
func ParseExpr(expr string) (string, view.Constraint, error) {
	name, raw, ok := strings.Cut(expr, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, errors.New(errors.ErrCodeInvalidQuery, "expression %q: want name=value", expr)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil, errors.New(errors.ErrCodeInvalidQuery, "expression %q: missing value", expr)
	}

	if s, quoted := unquote(raw); quoted {
		return name, view.Eq(s), nil
	}

	if strings.Contains(raw, ",") {
		var vs []any
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				return "", nil, errors.New(errors.ErrCodeInvalidQuery, "expression %q: empty set member", expr)
			}
			vs = append(vs, Value(part))
		}
		return name, view.In(vs...), nil
	}

	if lo, hi, isRange := strings.Cut(raw, ":"); isRange {
		if strings.Contains(hi, ":") {
			return "", nil, errors.New(errors.ErrCodeInvalidQuery, "expression %q: range has more than two bounds", expr)
		}
		lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
		if lo == "" && hi == "" {
			return "", nil, errors.New(errors.ErrCodeInvalidQuery, "expression %q: range needs at least one bound", expr)
		}
		return name, view.Between(bound(lo), bound(hi)), nil
	}

	return name, view.Eq(Value(raw)), nil
}

// Value interprets a literal: int, float, true/false, quoted or bare string.
func Value(s string) any {
	if u, quoted := unquote(s); quoted {
		return u
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && strings.ContainsAny(s, "0123456789") {
		return f
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

func bound(s string) any {
	if s == "" {
		return nil
	}
	return Value(s)
}

func unquote(s string) (string, bool) {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], true
	}
	return "", false
}
