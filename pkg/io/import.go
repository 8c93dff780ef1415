package io

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/view"
)

// Supported document formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// ReadJSON decodes a JSON document from r into a tree.
//
// Malformed JSON fails with ErrCodeInvalidFormat. Documents that violate a
// container invariant fail with the invariant's code (ErrCodeKeyArity,
// ErrCodeDomain, ErrCodeSignature, ...) wrapped with the entry's document
// path. ReadJSON does not close r.
func ReadJSON(r io.Reader) (view.Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc node
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return build(doc, "$")
}

// ReadTOML decodes a TOML document from r into a tree. Errors are as for
// ReadJSON.
func ReadTOML(r io.Reader) (view.Node, error) {
	var doc node
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	return build(doc, "$")
}

// Read decodes a document of the given format ("json" or "toml").
func Read(r io.Reader, format string) (view.Node, error) {
	if err := errors.ValidateFormat(format); err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case FormatTOML:
		return ReadTOML(r)
	default:
		return ReadJSON(r)
	}
}

// ImportJSON reads the JSON document at path.
func ImportJSON(path string) (view.Node, error) {
	return importFile(path, FormatJSON)
}

// ImportTOML reads the TOML document at path.
func ImportTOML(path string) (view.Node, error) {
	return importFile(path, FormatTOML)
}

// Import reads the document at path, choosing the format by extension.
func Import(path string) (view.Node, error) {
	format, err := errors.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return importFile(path, format)
}

func importFile(path, format string) (view.Node, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	n, err := Read(f, format)
	if err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInvalidFormat
		}
		return nil, errors.Wrap(code, err, "%s", path)
	}
	return n, nil
}
