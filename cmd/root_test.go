package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swappa-scraper/config"
	"swappa-scraper/scraper/swappa"
	"swappa-scraper/utils"
)

func baseConfig() *config.Config {
	return &config.Config{
		TargetURL:    "https://swappa.com/listings/apple-iphone-13-pro",
		FetchMode:    config.FetchModeAPI,
		FetchTimeout: time.Second,
		OutputBase:   "swappa_report",
		Formats:      []string{"csv"},
		DBDriver:     config.DriverSQLite,
		LogLevel:     "error",
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	cfg := baseConfig()
	cmd := newRootCmd(cfg)
	require.NoError(t, cmd.ParseFlags([]string{
		"--api-key", "k", "--formats", "json,docx", "--save-db", "--db-driver", "postgres",
		"--columns", "price=0", "--output", "out/report",
	}))

	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, []string{"json", "docx"}, cfg.Formats)
	assert.True(t, cfg.SaveDB)
	assert.Equal(t, config.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "price=0", cfg.ColumnMap)
	assert.Equal(t, "out/report", cfg.OutputBase)
}

func TestRunRequiresAPIKey(t *testing.T) {
	cmd := newRootCmd(baseConfig())
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}

func TestRunRejectsBadColumnMap(t *testing.T) {
	cmd := newRootCmd(baseConfig())
	cmd.SetArgs([]string{"--api-key", "k", "--columns", "price=one"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--columns")
}

func TestNewFetcherByMode(t *testing.T) {
	cfg := baseConfig()
	cfg.APIKey = "k"
	cfg.APIEndpoint = "http://localhost:9999/api"
	cfg.RenderJS = false

	api, ok := newFetcher(cfg).(*swappa.APIFetcher)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:9999/api", api.Endpoint)
	assert.False(t, api.RenderJS)

	cfg.FetchMode = config.FetchModeBrowser
	_, ok = newFetcher(cfg).(*swappa.BrowserFetcher)
	assert.True(t, ok)
}

func TestOpenStoreSQLite(t *testing.T) {
	cfg := baseConfig()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "listings.db")

	store, err := openStore(context.Background(), cfg, utils.NewNopLogger())
	require.NoError(t, err)
	defer store.Close()
}
