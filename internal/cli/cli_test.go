package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"figure.json", "figure.tikz"},
		{"dir/plot.yaml", "dir/plot.tikz"},
		{"noext", "noext.tikz"},
		{"-", ""},
	}
	for _, tt := range tests {
		if got := outputPath(tt.in); got != tt.want {
			t.Errorf("outputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
standalone = true
document_class = "standalone"
axis_options = ["scale only axis", "enlargelimits=false"]
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if !cfg.Standalone || cfg.DocumentClass != "standalone" {
			t.Errorf("cfg = %+v", cfg)
		}
		if len(cfg.AxisOptions) != 2 {
			t.Errorf("axis options = %v", cfg.AxisOptions)
		}
	})

	t.Run("explicit missing file errors", func(t *testing.T) {
		if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("missing explicit config accepted")
		}
	})

	t.Run("missing default file is empty config", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := loadConfig("")
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if cfg.Standalone || cfg.DocumentClass != "" || len(cfg.AxisOptions) != 0 {
			t.Errorf("cfg = %+v, want zero", cfg)
		}
	})
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("dir = %q", dir)
	}
}

func TestRootCommandWiring(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	for _, name := range []string{"convert", "cache", "completion"} {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
