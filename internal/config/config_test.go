package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 4, cfg.Scraper.Concurrency)
	require.Equal(t, 15, cfg.HTTP.TimeoutSeconds)
	require.Equal(t, "./results", cfg.Results.BaseDir)
	require.False(t, cfg.Headless.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DOCSCRAPER_SERVER_PORT", "9090")
	t.Setenv("DOCSCRAPER_SCRAPER_CONCURRENCY", "8")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 8, cfg.Scraper.Concurrency)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("server:\n  port: 7070\nresults:\n  base_dir: /tmp/out\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "/tmp/out", cfg.Results.BaseDir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{
		Server:  ServerConfig{Port: 8080},
		Scraper: ScraperConfig{Concurrency: 4},
		HTTP:    HTTPConfig{TimeoutSeconds: 15},
		Results: ResultsConfig{BaseDir: "./results"},
	}
	require.NoError(t, valid.Validate())

	badPort := valid
	badPort.Server.Port = 0
	require.Error(t, badPort.Validate())

	badConc := valid
	badConc.Scraper.Concurrency = 0
	require.Error(t, badConc.Validate())

	badDir := valid
	badDir.Results.BaseDir = "  "
	require.Error(t, badDir.Validate())

	badHeadless := valid
	badHeadless.Headless = HeadlessConfig{Enabled: true, MaxParallel: 0}
	require.Error(t, badHeadless.Validate())
}
