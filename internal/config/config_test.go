package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: "9090"
  mode: debug
database:
  driver: postgres
  host: db.local
  port: 5432
  dbname: reda
jwt:
  secret: short
  expire_hours: 2
redis:
  enabled: true
  summary_ttl: 60
games:
  scoring:
    calculos:
      progress: distinct_completed
      completion: per_question
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfig(t, testYAML)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Minute, cfg.SummaryTTL())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.FilePath)

	require.Contains(t, cfg.Games.Scoring, "calculos")
	assert.Equal(t, "distinct_completed", cfg.Games.Scoring["calculos"].Progress)
	assert.Equal(t, "per_question", cfg.Games.Scoring["calculos"].Completion)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, testYAML)
	t.Setenv("DATABASE_HOST", "override.local")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "override.local", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestLoadConfigRejectsShortSecretInRelease(t *testing.T) {
	dir := writeConfig(t, testYAML)
	t.Setenv("SERVER_MODE", "release")

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestSummaryTTLDefault(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 5*time.Minute, cfg.SummaryTTL())
}
