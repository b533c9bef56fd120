package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatalf("loadConfig(explicit missing) should error")
	}

	// A missing default file is not an error.
	t.Chdir(t.TempDir())
	cfg, err = loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Unfold.Limit != 100 {
		t.Errorf("Unfold.Limit = %d, want 100", cfg.Unfold.Limit)
	}
	if cfg.Render.Format != "svg" {
		t.Errorf("Render.Format = %q, want %q", cfg.Render.Format, "svg")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seqgraph.toml")
	const data = `
[unfold]
limit = 7

[edit]
max_node_size = 32
break_at_ends = true

[render]
format = "dot"
detailed = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Unfold.Limit != 7 {
		t.Errorf("Unfold.Limit = %d, want 7", cfg.Unfold.Limit)
	}
	if cfg.Edit.MaxNodeSize != 32 {
		t.Errorf("Edit.MaxNodeSize = %d, want 32", cfg.Edit.MaxNodeSize)
	}
	if !cfg.Edit.BreakAtEnds {
		t.Errorf("Edit.BreakAtEnds = false, want true")
	}
	if cfg.Render.Format != "dot" {
		t.Errorf("Render.Format = %q, want %q", cfg.Render.Format, "dot")
	}
	if !cfg.Render.Detailed {
		t.Errorf("Render.Detailed = false, want true")
	}
	// Unset keys keep their defaults.
	if cfg.Render.Scale != 2.0 {
		t.Errorf("Render.Scale = %v, want 2.0", cfg.Render.Scale)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{"dot", "svg", "pdf", "png"} {
		if err := validateFormat(format); err != nil {
			t.Errorf("validateFormat(%q) = %v, want nil", format, err)
		}
	}
	if err := validateFormat("gif"); err == nil {
		t.Errorf("validateFormat(%q) = nil, want error", "gif")
	}
}
