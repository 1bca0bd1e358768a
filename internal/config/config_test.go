package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/zhubert/erwindb/internal/errors"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database != DefaultDatabase {
		t.Errorf("Database = %q, want %q", cfg.Database, DefaultDatabase)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("Theme = %q, want %q", cfg.Theme, DefaultTheme)
	}
	if cfg.DualPaneMinWidth != DefaultDualPaneMinWidth {
		t.Errorf("DualPaneMinWidth = %d", cfg.DualPaneMinWidth)
	}
	if cfg.Search.SemanticLimit != DefaultSemanticLimit || cfg.Search.FuzzyThreshold != 0 {
		t.Errorf("Search = %+v", cfg.Search)
	}
	if cfg.Embedding.Model != DefaultEmbeddingModel || cfg.Embedding.Dimensions != 0 {
		t.Errorf("Embedding = %+v", cfg.Embedding)
	}
	if cfg.Path() != path {
		t.Errorf("Path = %q, want %q", cfg.Path(), path)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
database: /data/so.db
theme: nord
dual_pane_min_width: 140
search:
  fuzzy_threshold: 0.25
embedding:
  api_key: secret
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database != "/data/so.db" || cfg.Theme != "nord" || cfg.DualPaneMinWidth != 140 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Search.FuzzyThreshold != 0.25 {
		t.Errorf("FuzzyThreshold = %v", cfg.Search.FuzzyThreshold)
	}
	if cfg.Search.SemanticLimit != DefaultSemanticLimit {
		t.Errorf("unset semantic_limit should default, got %d", cfg.Search.SemanticLimit)
	}
	if cfg.Embedding.APIKey != "secret" || cfg.Embedding.Model != DefaultEmbeddingModel {
		t.Errorf("Embedding = %+v", cfg.Embedding)
	}
	if cfg.Embedding.Dimensions != 0 {
		t.Errorf("unset dimensions should keep the model's native size, got %d", cfg.Embedding.Dimensions)
	}
}

func TestLoad_EmbeddingDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("embedding:\n  dimensions: 768\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Embedding.Dimensions != 768 {
		t.Errorf("Dimensions = %d, want 768", cfg.Embedding.Dimensions)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind errors.Kind
	}{
		{"malformed yaml", "theme: [unclosed", errors.KindConfig},
		{"threshold above one", "search:\n  fuzzy_threshold: 1.5\n", errors.KindInvalid},
		{"negative threshold", "search:\n  fuzzy_threshold: -0.1\n", errors.KindInvalid},
		{"negative width", "dual_pane_min_width: -1\n", errors.KindInvalid},
		{"negative limit", "search:\n  semantic_limit: -3\n", errors.KindInvalid},
		{"negative dimensions", "embedding:\n  dimensions: -3\n", errors.KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, tt.kind) {
				t.Errorf("err = %v, want kind %v", err, tt.kind)
			}
		})
	}
}

func TestLoad_Unreadable(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	if !errors.Is(err, errors.KindConfig) {
		t.Errorf("loading a directory: err = %v, want KindConfig", err)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default(path)
	cfg.SetTheme("tokyo-night")
	cfg.Search.FuzzyThreshold = 0.5

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config mode = %v, want 0600", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.GetTheme() != "tokyo-night" || loaded.Search.FuzzyThreshold != 0.5 {
		t.Errorf("loaded = %+v", loaded)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "filepath") {
		t.Errorf("unexported fields leaked into the file:\n%s", data)
	}
}

func TestSetDatabase(t *testing.T) {
	cfg := Default(filepath.Join(t.TempDir(), "config.yaml"))
	cfg.SetDatabase("/tmp/other.db")
	if got := cfg.GetDatabase(); got != "/tmp/other.db" {
		t.Errorf("GetDatabase = %q", got)
	}
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	cfg := Default(filepath.Join(t.TempDir(), "config.yaml"))
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cfg.SetTheme("nord")
		}()
		go func() {
			defer wg.Done()
			_ = cfg.GetTheme()
		}()
	}
	wg.Wait()
	if cfg.GetTheme() != "nord" {
		t.Errorf("theme = %q", cfg.GetTheme())
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(".erwindb", "config.yaml")) {
		t.Errorf("DefaultPath = %q", path)
	}
}
