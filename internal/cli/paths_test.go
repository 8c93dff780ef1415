package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestConfigDir(t *testing.T) {
	tests := []struct {
		name string
		xdg  string
		want func(home string) string
	}{
		{
			name: "default",
			want: func(home string) string { return filepath.Join(home, ".config", appName) },
		},
		{
			name: "xdg",
			xdg:  "/tmp/custom-config",
			want: func(string) string { return filepath.Join("/tmp/custom-config", appName) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdg)
			home, _ := os.UserHomeDir()

			dir, err := configDir()
			if err != nil {
				t.Fatalf("configDir() error: %v", err)
			}
			if want := tt.want(home); dir != want {
				t.Errorf("configDir() = %q, want %q", dir, want)
			}
		})
	}
}

func TestOutputFormat(t *testing.T) {
	tests := map[string]string{
		"view.svg":     "svg",
		"out/Tree.PNG": "png",
		"dot":          "dot",
		"PDF":          "pdf",
	}
	for in, want := range tests {
		if got := outputFormat(in); got != want {
			t.Errorf("outputFormat(%q) = %q, want %q", in, got, want)
		}
	}
}
