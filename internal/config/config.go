// Package config loads and saves ~/.erwindb/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/zhubert/erwindb/internal/errors"
)

const (
	DefaultDatabase         = "sqlite.db"
	DefaultTheme            = "dark-purple"
	DefaultDualPaneMinWidth = 160
	DefaultSemanticLimit    = 20
	DefaultEmbeddingModel   = "gemini-embedding-001"

	configFileName = "config.yaml"
	configDirName  = ".erwindb"
)

// SearchConfig tunes the two search modes.
type SearchConfig struct {
	// FuzzyThreshold drops title matches scoring below this fraction of the
	// best match. Zero keeps every match.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
	// SemanticLimit caps semantic search results.
	SemanticLimit int `yaml:"semantic_limit"`
}

// EmbeddingConfig selects the query embedding provider.
type EmbeddingConfig struct {
	Model      string `yaml:"model,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
	// Dimensions truncates the query embedding. Zero keeps the model's native
	// size, so an archive embedded by a different model fails the dimension
	// check instead of matching against an unrelated vector space.
	Dimensions int    `yaml:"dimensions,omitempty"`
}

// Config holds the application configuration
type Config struct {
	Database         string          `yaml:"database,omitempty"`
	Theme            string          `yaml:"theme,omitempty"`
	DualPaneMinWidth int             `yaml:"dual_pane_min_width,omitempty"`
	Search           SearchConfig    `yaml:"search"`
	Embedding        EmbeddingConfig `yaml:"embedding"`

	mu       sync.RWMutex
	filePath string
}

// DefaultPath returns ~/.erwindb/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Default returns a config with every default applied, saved to path.
func Default(path string) *Config {
	cfg := &Config{filePath: path}
	cfg.ensureDefaults()
	return cfg
}

// Load reads the config at path. A missing file yields the defaults; an
// empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, errors.ConfigLoadFailed("~/"+configDirName, err)
		}
		path = p
	}

	cfg := &Config{filePath: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.ensureDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, fmt.Errorf("failed to parse config: %w", err))
	}

	// Defaults fill the zero values left by the file, so this must happen
	// before Validate.
	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ensureDefaults fills unset fields. It is not thread-safe and only runs
// before the Config is shared.
func (c *Config) ensureDefaults() {
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.DualPaneMinWidth == 0 {
		c.DualPaneMinWidth = DefaultDualPaneMinWidth
	}
	if c.Search.SemanticLimit == 0 {
		c.Search.SemanticLimit = DefaultSemanticLimit
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = DefaultEmbeddingModel
	}
}

// Validate checks that the config values are usable.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.DualPaneMinWidth < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("dual_pane_min_width must not be negative, got %d", c.DualPaneMinWidth))
	}
	if c.Search.FuzzyThreshold < 0 || c.Search.FuzzyThreshold > 1 {
		return errors.ConfigInvalid(fmt.Sprintf("search.fuzzy_threshold must be between 0 and 1, got %g", c.Search.FuzzyThreshold))
	}
	if c.Search.SemanticLimit < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("search.semantic_limit must not be negative, got %d", c.Search.SemanticLimit))
	}
	if c.Embedding.Dimensions < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("embedding.dimensions must not be negative, got %d", c.Embedding.Dimensions))
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	// The file may hold an API key.
	if err := os.WriteFile(c.filePath, data, 0600); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config is saved to.
func (c *Config) Path() string {
	return c.filePath
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetDatabase returns the archive path.
func (c *Config) GetDatabase() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Database
}

// SetDatabase overrides the archive path, e.g. from a flag.
func (c *Config) SetDatabase(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Database = path
}
