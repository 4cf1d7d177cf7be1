package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/auth"
	"github.com/pable/go-ipl-stats/internal/server"
)

var secureCookies bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the statistics API behind a login",
	Long: `Load the dataset, open the user database and serve the login pages and
the /api endpoints until interrupted. Listen address, session key and rate
limits come from the config file or environment.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&secureCookies, "secure-cookies", false, "mark the session cookie Secure (serve behind TLS)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	engine, err := loadEngine(ctx)
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	authSvc, err := auth.NewService(db, cfg.SecretKey, cfg.SessionTTL)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	srv := server.New(engine, authSvc, logger, server.Config{
		ListenAddr:         cfg.ListenAddr,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SecureCookies:      secureCookies,
	})
	return srv.Run(ctx)
}
