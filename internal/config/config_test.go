package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.jolpi.ca/ergast/f1", cfg.Ergast.BaseURL)
	assert.Equal(t, 30, cfg.Ergast.TimeoutSecs)
	assert.Equal(t, 3, cfg.Ergast.MaxAttempts)
	assert.InDelta(t, 4.0, cfg.Ergast.RatePerSec, 0.001)
	assert.Equal(t, 20, cfg.Scrape.TimeoutSecs)
	assert.Contains(t, cfg.Scrape.UserAgent, "f1wiki")
	assert.Empty(t, cfg.Refdata.Path)
	assert.Equal(t, "https://www.formula1.com/en/results/{season}/races", cfg.Citation.QualifyingURL)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
ergast:
  base_url: http://localhost:8000/ergast/f1
  max_attempts: 5
refdata:
  path: tables.yaml
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/ergast/f1", cfg.Ergast.BaseURL)
	assert.Equal(t, 5, cfg.Ergast.MaxAttempts)
	assert.Equal(t, "tables.yaml", cfg.Refdata.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.Equal(t, 30, cfg.Ergast.TimeoutSecs)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("F1WIKI_LOG_LEVEL", "error")
	t.Setenv("F1WIKI_ERGAST_BASE_URL", "https://ergast.example/f1")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "https://ergast.example/f1", cfg.Ergast.BaseURL)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("F1WIKI_SCRAPE_TIMEOUT_SECS=45\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("F1WIKI_SCRAPE_TIMEOUT_SECS") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.Scrape.TimeoutSecs)
}

func TestLoadDotEnvDoesNotOverrideEnv(t *testing.T) {
	dir := chdirTemp(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("F1WIKI_ERGAST_MAX_ATTEMPTS=9\n"), 0644))
	t.Setenv("F1WIKI_ERGAST_MAX_ATTEMPTS", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Ergast.MaxAttempts)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Ergast.BaseURL = "https://api.jolpi.ca/ergast/f1"
	cfg.Ergast.TimeoutSecs = 30
	cfg.Ergast.MaxAttempts = 3
	cfg.Ergast.RatePerSec = 4
	cfg.Scrape.TimeoutSecs = 20
	cfg.Log.Format = "console"
	return cfg
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validDefaults().Validate())
}

func TestValidate_BaseURL(t *testing.T) {
	for _, u := range []string{"", "ftp://ergast.com", "api.jolpi.ca/ergast/f1", "https://"} {
		cfg := validDefaults()
		cfg.Ergast.BaseURL = u
		err := cfg.Validate()
		require.Error(t, err, u)
		assert.Contains(t, err.Error(), "ergast.base_url")
	}
}

func TestValidate_Bounds(t *testing.T) {
	cfg := validDefaults()
	cfg.Ergast.TimeoutSecs = 0
	cfg.Ergast.MaxAttempts = 11
	cfg.Ergast.RatePerSec = 0
	cfg.Scrape.TimeoutSecs = -1
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ergast.timeout_secs must be > 0")
	assert.Contains(t, err.Error(), "ergast.max_attempts must be between 1 and 10")
	assert.Contains(t, err.Error(), "ergast.rate_per_sec must be > 0")
	assert.Contains(t, err.Error(), "scrape.timeout_secs must be > 0")
	assert.Contains(t, err.Error(), "log.format must be console or json")
}
