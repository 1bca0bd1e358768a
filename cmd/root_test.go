package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/erwindb/internal/config"
	"github.com/zhubert/erwindb/internal/embed"
)

func TestDebugFlagDefaultFalse(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("--debug flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--debug default = %q, want %q", flag.DefValue, "false")
	}
}

func TestQuietFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	if flag == nil {
		t.Fatal("--quiet flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--quiet default = %q, want %q", flag.DefValue, "false")
	}
	if flag.Shorthand != "q" {
		t.Errorf("--quiet shorthand = %q, want %q", flag.Shorthand, "q")
	}
}

func TestPathFlagsExist(t *testing.T) {
	for _, name := range []string{"db", "config"} {
		flag := rootCmd.PersistentFlags().Lookup(name)
		if flag == nil {
			t.Errorf("--%s flag not found", name)
			continue
		}
		if flag.DefValue != "" {
			t.Errorf("--%s default = %q, want empty", name, flag.DefValue)
		}
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"search", "show", "clean"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestInitConfig_DebugEnabled(t *testing.T) {
	// Save and restore package state
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = false

	// Should not panic
	initConfig()
}

func TestInitConfig_QuietOverridesDebug(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = true

	// Should not panic - quiet should take precedence
	initConfig()
}

func TestVersionTemplate(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer SetVersionInfo(origVersion, origCommit, origDate)

	tests := []struct {
		name         string
		commit       string
		wantContains []string
		wantMissing  string
	}{
		{"release build", "abc123", []string{"erwindb 1.2.3", "commit: abc123", "built:  2026-01-02"}, ""},
		{"no commit", "none", []string{"erwindb 1.2.3"}, "commit:"},
		{"empty commit", "", []string{"erwindb 1.2.3"}, "commit:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersionInfo("1.2.3", tt.commit, "2026-01-02")
			got := versionTemplate()
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("versionTemplate() = %q, missing %q", got, want)
				}
			}
			if tt.wantMissing != "" && strings.Contains(got, tt.wantMissing) {
				t.Errorf("versionTemplate() = %q, should not contain %q", got, tt.wantMissing)
			}
		})
	}
}

func TestLoadConfig_DBOverride(t *testing.T) {
	origConfig, origDB := configPath, dbPath
	defer func() { configPath, dbPath = origConfig, origDB }()

	configPath = filepath.Join(t.TempDir(), "config.yaml")

	dbPath = ""
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.GetDatabase() != config.DefaultDatabase {
		t.Errorf("database = %q, want %q", cfg.GetDatabase(), config.DefaultDatabase)
	}

	dbPath = "/data/erwin.db"
	cfg, err = loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.GetDatabase() != "/data/erwin.db" {
		t.Errorf("database = %q, want /data/erwin.db", cfg.GetDatabase())
	}
}

func TestNewEmbedder_NoKey(t *testing.T) {
	t.Setenv(embed.APIKeyEnv, "")

	cfg := config.Default(filepath.Join(t.TempDir(), "config.yaml"))
	emb := newEmbedder(t.Context(), cfg)
	if embed.Available(emb) {
		t.Error("embedder should be unavailable without an API key")
	}
}
