package gen

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("TMPLGEN_PATH", dir)
	t.Setenv("TMPLGEN_MAX_DEPTH", "4")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MaxDepth != 4 {
		t.Errorf("expected max depth 4, got %d", cfg.MaxDepth)
	}

	if got := cfg.SearchPath(); !slices.Contains(got, dir) {
		t.Errorf("expected %q in search path %v", dir, got)
	}

	g := New("", WithConfig(cfg))
	if g.maxDepth != 4 || !slices.Contains(g.loader.Search(), dir) {
		t.Errorf("config not applied: depth %d, search %v", g.maxDepth, g.loader.Search())
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"TMPLGEN_PATH", "TMPLGEN_MAX_DEPTH"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MaxDepth != 0 || cfg.Path != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("TMPLGEN_MAX_DEPTH", "deep")

	if _, err := LoadConfig(); !errors.Is(err, ErrConfig) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestWithMaxDepth_ClampsNegative(t *testing.T) {
	if g := New("", WithMaxDepth(-1)); g.maxDepth != 0 {
		t.Errorf("expected depth 0, got %d", g.maxDepth)
	}

	if g := New("", WithSearchPath(filepath.Join("testdata", "partials"))); len(g.loader.Search()) != 1 {
		t.Errorf("expected one search directory, got %v", g.loader.Search())
	}
}
