package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fastlabor/internal/config"
	"github.com/jonathan/fastlabor/internal/sheets"
)

// clearEnv blanks every variable loadConfig reads so a developer .env does
// not leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FASTLABOR_SPREADSHEET_ID", "FASTLABOR_POST_SHEET", "FASTLABOR_FIND_SHEET",
		"GOOGLE_APPLICATION_CREDENTIALS", "FASTLABOR_GCP_CREDENTIALS", "FASTLABOR_CSV_DIR",
		"FASTLABOR_LOGIN_URL", "FASTLABOR_HOME_URL", "FASTLABOR_MATCHING_URL",
		"LOG_LEVEL", "LOG_PRETTY", "FASTLABOR_PORT", "RATE_LIMIT_PER_MINUTE", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Layers(t *testing.T) {
	clearEnv(t)
	csvDir := t.TempDir()

	path := filepath.Join(t.TempDir(), "fastlabor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("csv_dir: "+csvDir+"\nport: 9000\nmatching_url: /match\n"), 0o644))

	t.Setenv("FASTLABOR_PORT", "9100")

	cfg, err := loadConfig(path, func(c *config.Config) { c.LoginURL = "/signin" })
	require.NoError(t, err)

	assert.Equal(t, csvDir, cfg.CSVDir)
	assert.Equal(t, 9100, cfg.Port, "environment overrides the file")
	assert.Equal(t, "/match", cfg.MatchingURL)
	assert.Equal(t, "/signin", cfg.LoginURL, "flags override everything")
	assert.Equal(t, "post_job", cfg.PostSheet)
}

func TestLoadConfig_RequiresSource(t *testing.T) {
	clearEnv(t)

	_, err := loadConfig("", nil)
	assert.Error(t, err)
}

func TestLoadConfig_BadFile(t *testing.T) {
	clearEnv(t)

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestNewSource_CSV(t *testing.T) {
	cfg := config.Defaults()
	cfg.CSVDir = writeFixtures(t)

	src, err := newSource(context.Background(), cfg)
	require.NoError(t, err)

	_, ok := src.(*sheets.CSVSource)
	assert.True(t, ok)

	table, err := src.Values(context.Background(), "post_job")
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}
