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
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 2*time.Minute, cfg.Dataset.LoadTimeout)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlBody := `
server:
  port: 7000
dataset:
  dir: /srv/datasets
cache:
  backend: redis
  ttl: 5m
indexer:
  backends: [postgres, elasticsearch]
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "7100")
	t.Setenv("ELASTICSEARCH_URL", "http://es-a:9200, http://es-b:9200")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7100, cfg.Server.Port, "env wins over yaml")
	assert.Equal(t, "/srv/datasets", cfg.Dataset.Dir)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, []string{"postgres", "elasticsearch"}, cfg.Indexer.Backends)
	assert.Equal(t, []string{"http://es-a:9200", "http://es-b:9200"}, cfg.Elasticsearch.Addresses)
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("JOBS_TEST_INT", "not-a-number")
	t.Setenv("JOBS_TEST_DURATION", "soon")

	assert.Equal(t, 3, getEnvInt("JOBS_TEST_INT", 3))
	assert.Equal(t, time.Second, getEnvDuration("JOBS_TEST_DURATION", time.Second))
	assert.Equal(t, []string{"a"}, getEnvList("JOBS_TEST_UNSET", []string{"a"}))
}
