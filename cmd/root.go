package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/aggregator"
	"github.com/pable/go-ipl-stats/internal/config"
	"github.com/pable/go-ipl-stats/internal/dataset"
	"github.com/pable/go-ipl-stats/internal/storage"
)

var (
	configPath     string
	matchesPath    string
	deliveriesPath string
	dbPath         string
	logLevel       string
	strikeRateMode string
	averageMode    string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "iplstats",
	Short: "IPL team, batting and bowling statistics",
	Long: `Load the IPL match and ball-by-ball tables and answer team, batting and
bowling record queries from the terminal or over a login-gated HTTP API.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".iplstats", "users.db")
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to YAML config file")
	pf.StringVar(&matchesPath, "matches", "", "match-level CSV (overrides config)")
	pf.StringVar(&deliveriesPath, "deliveries", "", "ball-by-ball CSV (overrides config)")
	pf.StringVar(&dbPath, "db", defaultDB, "path to SQLite user database")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	pf.StringVar(&strikeRateMode, "strike-rate", "", "batting strike rate: per-ball or per-innings")
	pf.StringVar(&averageMode, "average", "", "batting average: per-dismissal or per-innings")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(h2hCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(batterCmd)
	rootCmd.AddCommand(bowlerCmd)
	rootCmd.AddCommand(userCmd)
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	override := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	override("matches", &c.MatchesCSV, matchesPath)
	override("deliveries", &c.DeliveriesCSV, deliveriesPath)
	override("log-level", &c.LogLevel, logLevel)
	override("strike-rate", &c.StrikeRateMode, strikeRateMode)
	override("average", &c.AverageMode, averageMode)
	if c.UsersDBPath == "" || flags.Changed("db") {
		c.UsersDBPath = dbPath
	}
	if err := c.Validate(); err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.JSONLogs() {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	for _, w := range c.Warnings {
		logger.Debug("config", "warning", w)
	}
	cfg = c
	return nil
}

// loadEngine reads the dataset named by the configuration and wraps it in
// an aggregation engine.
func loadEngine(ctx context.Context) (*aggregator.Engine, error) {
	if err := cfg.ValidateDataset(); err != nil {
		return nil, err
	}
	store, err := dataset.Load(ctx, dataset.Sources{
		MatchesPath:    cfg.MatchesCSV,
		DeliveriesPath: cfg.DeliveriesCSV,
	}, logger)
	if err != nil {
		return nil, err
	}
	return aggregator.New(store, aggregator.Options{
		StrikeRate:  aggregator.StrikeRateMode(cfg.StrikeRateMode),
		Average:     aggregator.AverageMode(cfg.AverageMode),
		Parallelism: cfg.Parallelism,
	})
}

// openDB opens the user database, creating its directory if needed.
func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.UsersDBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(cfg.UsersDBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
