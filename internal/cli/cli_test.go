package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/viewstack/pkg/errors"
	vio "github.com/matzehuels/viewstack/pkg/io"
	"github.com/matzehuels/viewstack/pkg/view"
)

func execute(t *testing.T, args ...string) (*CLI, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return c, root.ExecuteContext(context.Background())
}

func TestSelectCommandWritesDocument(t *testing.T) {
	isolate(t)
	in := writeSample(t)
	out := filepath.Join(t.TempDir(), "selected.toml")

	if _, err := execute(t, "select", in, "-q", "time=1", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("select: %v", err)
	}

	n, err := vio.Import(out)
	if err != nil {
		t.Fatalf("Import(%s): %v", out, err)
	}
	var entries []int
	_ = view.Walk(n, func(_ []view.Step, n view.Node) error {
		if m, ok := n.(*view.Map); ok {
			entries = append(entries, m.Len())
		}
		return nil
	})
	if len(entries) != 1 || entries[0] != 1 {
		t.Errorf("map entries after select = %v, want [1]", entries)
	}
}

func TestSelectCommandCaches(t *testing.T) {
	isolate(t)
	in := writeSample(t)
	out := filepath.Join(t.TempDir(), "selected.json")

	if _, err := execute(t, "select", in, "-q", "time=2", "-o", out); err != nil {
		t.Fatalf("select: %v", err)
	}

	dir, _ := cacheDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("cache dir: %v", err)
	}
	if len(entries) == 0 {
		t.Error("select should populate the file cache")
	}

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ = os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d entries after cache clear", len(entries))
	}
}

func TestRenderCommandDOT(t *testing.T) {
	isolate(t)
	in := writeSample(t)
	out := filepath.Join(t.TempDir(), "view.dot")

	if _, err := execute(t, "render", in, "-o", out, "--detailed"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "digraph") || !strings.Contains(string(data), "Stack.a") {
		t.Errorf("unexpected DOT output:\n%s", data)
	}
}

func TestRenderCommandUnsupportedFormat(t *testing.T) {
	isolate(t)
	_, err := execute(t, "render", writeSample(t), "-o", filepath.Join(t.TempDir(), "view.gif"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}
}

func TestCommandErrors(t *testing.T) {
	isolate(t)
	in := writeSample(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"show", filepath.Join(t.TempDir(), "nope.json")}, errors.ErrCodeFileNotFound},
		{"unknown extension", []string{"dims", "tree.yaml"}, errors.ErrCodeInvalidFormat},
		{"bad query", []string{"show", in, "-q", "=1"}, errors.ErrCodeInvalidQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestConfigAppliesToCommands(t *testing.T) {
	isolate(t)
	dir, _ := configDir()
	cacheRoot := filepath.Join(t.TempDir(), "cache")
	writeConfig(t, dir, `
cache_dir = "`+filepath.ToSlash(cacheRoot)+`"
cache_ttl = "1h"
verbose   = true
no_cache  = true
`)

	c, err := execute(t, "dims", writeSample(t))
	if err != nil {
		t.Fatalf("dims: %v", err)
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("verbose config should enable debug logging, level %v", c.Logger.GetLevel())
	}
	if !c.cfg.NoCache || c.cfg.CacheDir != filepath.ToSlash(cacheRoot) {
		t.Errorf("cfg = %+v", c.cfg)
	}

	c, err = execute(t, "--no-cache=false", "select", writeSample(t), "-o", filepath.Join(t.TempDir(), "o.json"))
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if c.cfg.NoCache {
		t.Error("--no-cache=false should override the config file")
	}
	if _, err := os.Stat(cacheRoot); err != nil {
		t.Errorf("cache_dir from config should be used: %v", err)
	}
}

func TestExplicitConfigFlag(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), `bogus = 1`)

	if _, err := execute(t, "--config", path, "cache", "path"); err == nil {
		t.Error("invalid --config file should fail")
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out strings.Builder
			root := New(io.Discard, LogInfo).RootCommand()
			root.SetArgs([]string{"completion", shell})
			root.SetOut(&out)
			root.SetErr(io.Discard)
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("completion %s script does not mention %s", shell, appName)
			}
		})
	}

	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh: expected error")
	}
}

func TestDocumentArgs(t *testing.T) {
	exts, directive := documentArgs(nil, nil, "")
	if !slices.Equal(exts, []string{"json", "toml"}) || directive != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("documentArgs() = %v, %v; want document extensions", exts, directive)
	}
	if _, directive := documentArgs(nil, []string{"plots.json"}, ""); directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("documentArgs() after FILE directive = %v, want NoFileComp", directive)
	}
}
