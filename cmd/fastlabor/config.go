package main

import (
	"context"
	"fmt"

	"github.com/jonathan/fastlabor/internal/config"
	"github.com/jonathan/fastlabor/internal/sheets"
)

// loadConfig layers defaults, the optional config file and the environment,
// then applies overrides from flags before validating.
func loadConfig(path string, override func(*config.Config)) (config.Config, error) {
	cfg := config.Defaults()

	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	cfg, err := config.FromEnv(cfg)
	if err != nil {
		return cfg, fmt.Errorf("config error: %w", err)
	}

	if override != nil {
		override(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newSource opens the spreadsheet when an ID is configured and falls back
// to CSV exports otherwise.
func newSource(ctx context.Context, cfg config.Config) (sheets.Source, error) {
	if cfg.SpreadsheetID != "" {
		creds := sheets.Credentials{JSON: []byte(cfg.CredentialsJSON), File: cfg.CredentialsFile}
		src, err := sheets.NewGoogleSource(ctx, cfg.SpreadsheetID, creds.ClientOptions()...)
		if err != nil {
			return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
		}
		return src, nil
	}
	return sheets.NewCSVSource(cfg.CSVDir), nil
}
