package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TRADEBOOK_ENV", "")
	t.Setenv("TRADEBOOK_DB", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, "data/journal.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.IsTest())
}

func TestLoadTestEnvSwitchesDBPath(t *testing.T) {
	t.Setenv("TRADEBOOK_ENV", EnvTest)
	t.Setenv("TRADEBOOK_DB", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.IsTest())
	assert.Equal(t, "data/journal_test.db", cfg.DBPath)
}

func TestLoadEnvOverridesDBPath(t *testing.T) {
	t.Setenv("TRADEBOOK_ENV", EnvTest)
	t.Setenv("TRADEBOOK_DB", "/tmp/elsewhere.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere.db", cfg.DBPath)
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv("TRADEBOOK_ENV", "")
	t.Setenv("TRADEBOOK_DB", "")
	t.Setenv("TRADEBOOK_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: test
db_path: data/custom.db
log:
  level: debug
  file: logs/journal.log
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EnvTest, cfg.Env)
	assert.Equal(t, "data/custom.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "logs/journal.log", cfg.Log.File)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
