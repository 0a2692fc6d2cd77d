package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 100000, cfg.Suggest.MaxPaths)
	assert.Equal(t, 0.5, cfg.Suggest.DedupRadiusKm)
	assert.Equal(t, 10*time.Minute, cfg.Cache.SuggestCacheTTL)
	assert.Equal(t, "import-workers", cfg.Worker.ConsumerGroup)
}

func TestLoadFile_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "API_PORT=9000\nDB_DRIVER=sqlite\nDB_PATH=/tmp/z.db\nCORS_ORIGINS=http://a, http://b\nSUGGEST_MAX_PATHS=500\nSTATS_CACHE_TTL=5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.Server.CORSOrigins)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/z.db", cfg.GetDatabaseDSN())
	assert.Equal(t, 500, cfg.Suggest.MaxPaths)
	assert.Equal(t, 5*time.Second, cfg.Cache.StatsCacheTTL)
}

func TestLoadFile_EnvironmentOverrides(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", cfg.GetRedisAddr())
}

func TestGetDatabaseDSN_Postgres(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Driver: DriverPostgres, Host: "db", Port: 5432, User: "u", Password: "p", DBName: "zastavky", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=zastavky sslmode=disable", cfg.GetDatabaseDSN())
}
