package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// Document formats understood by the io package.
var documentFormats = []string{"json", "toml"}

// ValidateFormat checks that format names a supported document encoding.
// The comparison is case-insensitive; a leading dot is tolerated so that
// filepath.Ext output can be passed directly.
func ValidateFormat(format string) error {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	if f == "" {
		return New(ErrCodeInvalidFormat, "document format cannot be empty")
	}
	if !slices.Contains(documentFormats, f) {
		return New(ErrCodeInvalidFormat, "unsupported document format %q (want one of %s)",
			format, strings.Join(documentFormats, ", "))
	}
	return nil
}

// ValidatePath validates a user-supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// FormatFromPath derives the document format from a file extension.
// Returns ErrCodeInvalidFormat for unknown or missing extensions.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if err := ValidateFormat(ext); err != nil {
		return "", Wrap(ErrCodeInvalidFormat, err, "cannot infer format of %s", path)
	}
	return ext, nil
}
