package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/view"
)

// WriteJSON encodes the tree rooted at n as indented JSON. The output can be
// read back with ReadJSON.
func WriteJSON(n view.Node, w io.Writer) error {
	doc, err := flatten(n)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteTOML encodes the tree rooted at n as TOML. TOML has no null, so nil
// payloads are omitted.
func WriteTOML(n view.Node, w io.Writer) error {
	doc, err := flatten(n)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

// Write encodes n in the given format.
func Write(n view.Node, w io.Writer, format string) error {
	if err := errors.ValidateFormat(format); err != nil {
		return err
	}
	if strings.ToLower(strings.TrimPrefix(format, ".")) == FormatTOML {
		return WriteTOML(n, w)
	}
	return WriteJSON(n, w)
}

// Marshal returns the encoding of n in the given format.
func Marshal(n view.Node, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(n, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a document held in memory.
func Unmarshal(data []byte, format string) (view.Node, error) {
	return Read(bytes.NewReader(data), format)
}

// ExportJSON writes n to a JSON file at path.
func ExportJSON(n view.Node, path string) error {
	return exportFile(n, path, FormatJSON)
}

// Export writes n to path, choosing the format by extension.
func Export(n view.Node, path string) error {
	format, err := errors.FormatFromPath(path)
	if err != nil {
		return err
	}
	return exportFile(n, path, format)
}

func exportFile(n view.Node, path, format string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(n, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
