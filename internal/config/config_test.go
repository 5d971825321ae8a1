package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[development]
port = 9001
postgres_host = "localhost"
postgres_db_name = "gymcore"
redis_host = "localhost"
routine_timeout = "5s"

[production]
environment = "production"
port = 9000
metrics_port = 9000
postgres_host = "db"
postgres_db_name = "gymcore"
redis_host = "redis"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, testConfig)

	cfg, err := Load("dev", path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 2112, cfg.MetricsPort)
	assert.Equal(t, "5432", cfg.PostgresPort)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, 5*time.Second, cfg.RoutineTimeout.Duration)
	assert.Equal(t, 6*time.Hour, cfg.RoutineCacheTTL.Duration)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL.Duration)
	assert.Equal(t, 10, cfg.RoutineRequestsPerMin)
}

func TestLoad_Errors(t *testing.T) {
	path := writeConfig(t, testConfig)

	_, err := Load("staging", path)
	assert.ErrorContains(t, err, "unknown env")

	// not present in the file
	_, err = Load("dockerdev", path)
	assert.ErrorContains(t, err, "not configured")

	_, err = Load("production", path)
	assert.ErrorContains(t, err, "metrics port")

	_, err = Load("dev", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	badDuration := writeConfig(t, "[development]\nroutine_timeout = \"soon\"\n")
	_, err = Load("dev", badDuration)
	assert.Error(t, err)
}

func TestLoad_SampleConfig(t *testing.T) {
	for _, env := range []string{"development", "dockerdev", "production"} {
		cfg, err := Load(env, "../../config.toml")
		require.NoError(t, err, env)
		assert.NotEmpty(t, cfg.ExercisesCSVPath, env)
	}
}
