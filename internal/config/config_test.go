package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"database_url": "postgres://localhost/ats",
		"actor": "recruiter@example.com",
		"log_json": true
	}`), 0644))

	t.Setenv("DATABASE_URL", "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/ats", cfg.DatabaseURL)
	assert.Equal(t, "recruiter@example.com", cfg.Actor)
	assert.True(t, cfg.LogJSON)
	assert.False(t, cfg.Debug)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"database_url": "postgres://file/db"}`), 0644))

	t.Setenv("DATABASE_URL", "postgres://env/db")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
}

func TestLoad_EmptyPathUsesEnvOnly(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("ATS_DEBUG", "true")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.True(t, cfg.Debug)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg.DatabaseURL = "postgres://localhost/ats"
	assert.NoError(t, cfg.Validate())
}
