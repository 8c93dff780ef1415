package cache

import (
	"slices"
	"strings"
)

// Keyer generates cache keys for view operations.
type Keyer interface {
	// QueryKey identifies the selection of exprs from the document with
	// content hash docHash. The order of exprs does not matter.
	QueryKey(docHash string, exprs []string) string

	// RenderKey identifies a rendered diagram of a (possibly selected)
	// document in the given output format.
	RenderKey(docHash string, exprs []string, opts RenderKeyOpts) string
}

// RenderKeyOpts are the rendering options that change the output bytes.
type RenderKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// DefaultKeyer produces keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// QueryKey implements Keyer.
func (DefaultKeyer) QueryKey(docHash string, exprs []string) string {
	return hashKey("query", docHash, canonical(exprs))
}

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(docHash string, exprs []string, opts RenderKeyOpts) string {
	opts.Format = strings.ToLower(opts.Format)
	return hashKey("render", docHash, canonical(exprs), opts)
}

// canonical sorts and trims query expressions so equivalent command lines
// share a key.
func canonical(exprs []string) []string {
	out := make([]string, 0, len(exprs))
	for _, e := range exprs {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	slices.Sort(out)
	return out
}
