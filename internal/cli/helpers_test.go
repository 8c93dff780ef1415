package cli

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleDoc = `{
  "kind": "composite",
  "tag": "aggregate",
  "branches": [
    {
      "kind": "map", "group": "Stack", "label": "a",
      "dims": [{"name": "time", "type": "int", "values": [1, 2, 3]}],
      "entries": [
        {"key": [1], "node": {"kind": "element", "group": "Curve", "label": "sine", "data": [1, 2]}},
        {"key": [2], "node": {"kind": "element", "group": "Curve", "label": "sine", "data": [3, 4]}}
      ]
    },
    {
      "kind": "element", "group": "Text", "label": "note", "data": "hello",
      "dims": [{"name": "x", "type": "float", "min": 0, "max": 10, "unit": "m"}]
    }
  ]
}`

// isolate points the XDG directories at temp dirs so tests never touch
// the user's config or cache.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
