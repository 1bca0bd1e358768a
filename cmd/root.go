package cmd

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/erwindb/internal/app"
	"github.com/zhubert/erwindb/internal/clipboard"
	"github.com/zhubert/erwindb/internal/config"
	"github.com/zhubert/erwindb/internal/embed"
	"github.com/zhubert/erwindb/internal/logger"
	"github.com/zhubert/erwindb/internal/search"
	"github.com/zhubert/erwindb/internal/store"
)

var (
	debugMode             bool
	quietMode             bool
	dbPath                string
	configPath            string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "erwindb",
	Short: "Browse an offline archive of Erwin Brandstetter's StackOverflow answers",
	Long: `erwindb is a terminal browser for a local SQLite archive of StackOverflow
questions answered by Erwin Brandstetter.

Questions can be sorted, filtered by title as you type, or searched by meaning
when a Gemini API key is configured.`,
	Args:          cobra.NoArgs,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to "+logger.DefaultLogPath)
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Archive to open (default from config, else "+config.DefaultDatabase+")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.erwindb/config.yaml)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("erwindb %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("erwindb %s\n", version)
}

// loadConfig reads the config file and applies the --db override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if dbPath != "" {
		cfg.SetDatabase(dbPath)
	}
	return cfg, nil
}

// newEmbedder builds the query embedder. Failures leave semantic search
// disabled rather than stopping the program.
func newEmbedder(ctx context.Context, cfg *config.Config) search.Embedder {
	emb, err := embed.New(ctx, embed.Options{
		APIKey:     cfg.Embedding.APIKey,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
	})
	if err != nil {
		logger.WithComponent("cmd").Warn("embedder unavailable", "error", err)
		return embed.Unavailable{Reason: err.Error()}
	}
	return emb
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	ctx := context.Background()
	db, err := store.Open(ctx, cfg.GetDatabase())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := clipboard.Init(); err != nil {
		logger.WithComponent("cmd").Debug("native clipboard unavailable", "error", err)
	}

	m := app.New(cfg, db, newEmbedder(ctx, cfg), version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
