package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/fastlabor/internal/config"
	"github.com/jonathan/fastlabor/internal/myjobs"
	"github.com/jonathan/fastlabor/internal/observability"
	"github.com/jonathan/fastlabor/internal/server"
	"github.com/jonathan/fastlabor/internal/server/ratelimit"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start an HTTP server that serves the My Jobs page and its JSON and markdown API.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "Path to JSON or YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfig, func(c *config.Config) {
		if servePort != 0 {
			c.Port = servePort
		}
	})
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		return err
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	sessionConfig, err := config.NewSessionConfig()
	if err != nil {
		return fmt.Errorf("failed to create session config: %w", err)
	}

	src, err := newSource(commandContext(cmd), cfg)
	if err != nil {
		return err
	}

	svc := myjobs.NewService(src, myjobs.Options{
		PostSheet: cfg.PostSheet,
		FindSheet: cfg.FindSheet,
		Logger:    logger,
	})

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		LoginURL:    cfg.LoginURL,
		HomeURL:     cfg.HomeURL,
		MatchingURL: cfg.MatchingURL,
		RateLimit: ratelimit.Config{
			Enabled:         cfg.RequestsPerMinute() > 0,
			PerMinute:       cfg.RequestsPerMinute(),
			Burst:           cfg.RateLimitBurst,
			CleanupInterval: 5 * time.Minute,
		},
		JWT:     jwtConfig,
		Session: sessionConfig,
	}, svc, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
