package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "DATA_DIR", "LOG_LEVEL", "DEV_MODE", "FETCH_TIMEOUT_SECONDS", "CACHE_TTL_MINUTES"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8082", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "5")
	t.Setenv("CACHE_TTL_MINUTES", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
}

func TestLoadRejectsBadDurations(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT_SECONDS", "zero")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("FETCH_TIMEOUT_SECONDS", "")
	t.Setenv("CACHE_TTL_MINUTES", "-5")
	_, err = Load()
	assert.Error(t, err)
}

func TestEngineProfilesDefaults(t *testing.T) {
	cfg := &Config{}

	profiles, err := cfg.EngineProfiles()
	require.NoError(t, err)
	assert.Len(t, profiles, 4)
}

func TestEngineProfilesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engines.yaml")
	yaml := `
- name: TestEngine
  focus: test persona
  weights:
    schema: 1.5
    questions: 1.0
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg := &Config{EnginesFile: path}
	profiles, err := cfg.EngineProfiles()
	require.NoError(t, err)

	require.Len(t, profiles, 1)
	assert.Equal(t, "TestEngine", profiles[0].Name)
	assert.Equal(t, 1.5, profiles[0].Weights["schema"])
	assert.Equal(t, "test persona", profiles[0].Focus)
}

func TestEngineProfilesInvalidFile(t *testing.T) {
	cfg := &Config{EnginesFile: filepath.Join(t.TempDir(), "missing.yaml")}
	_, err := cfg.EngineProfiles()
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: NoWeights\n"), 0644))
	cfg = &Config{EnginesFile: path}
	_, err = cfg.EngineProfiles()
	assert.Error(t, err)
}
