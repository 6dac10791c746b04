package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"GESTOR_APP_NAME":                os.Getenv("GESTOR_APP_NAME"),
		"GESTOR_APP_ENV":                 os.Getenv("GESTOR_APP_ENV"),
		"GESTOR_APP_PORT":                os.Getenv("GESTOR_APP_PORT"),
		"GESTOR_DATABASE_HOST":           os.Getenv("GESTOR_DATABASE_HOST"),
		"GESTOR_DATABASE_PORT":           os.Getenv("GESTOR_DATABASE_PORT"),
		"GESTOR_DATABASE_USER":           os.Getenv("GESTOR_DATABASE_USER"),
		"GESTOR_DATABASE_PASSWORD":       os.Getenv("GESTOR_DATABASE_PASSWORD"),
		"GESTOR_DATABASE_DBNAME":         os.Getenv("GESTOR_DATABASE_DBNAME"),
		"GESTOR_DATABASE_SSLMODE":        os.Getenv("GESTOR_DATABASE_SSLMODE"),
		"GESTOR_DATABASE_MAX_OPEN_CONNS": os.Getenv("GESTOR_DATABASE_MAX_OPEN_CONNS"),
		"GESTOR_DATABASE_MAX_IDLE_CONNS": os.Getenv("GESTOR_DATABASE_MAX_IDLE_CONNS"),
		"GESTOR_CACHE_BACKEND":           os.Getenv("GESTOR_CACHE_BACKEND"),
		"GESTOR_CACHE_NAME_TTL":          os.Getenv("GESTOR_CACHE_NAME_TTL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "gestor-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "gestor", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "memory", cfg.Cache.Backend)
		assert.Equal(t, 5*time.Minute, cfg.Cache.NameTTL)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("loads values from environment variables with GESTOR prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("GESTOR_APP_NAME", "test-app")
		os.Setenv("GESTOR_APP_PORT", "9000")
		os.Setenv("GESTOR_DATABASE_HOST", "testdb.local")
		os.Setenv("GESTOR_DATABASE_PORT", "5433")
		os.Setenv("GESTOR_DATABASE_USER", "testuser")
		os.Setenv("GESTOR_DATABASE_PASSWORD", "testpass")
		os.Setenv("GESTOR_DATABASE_DBNAME", "testdb")
		os.Setenv("GESTOR_CACHE_BACKEND", "redis")
		os.Setenv("GESTOR_CACHE_NAME_TTL", "30s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "redis", cfg.Cache.Backend)
		assert.Equal(t, 30*time.Second, cfg.Cache.NameTTL)
	})

	t.Run("rejects unknown cache backend", func(t *testing.T) {
		clearEnv()
		os.Setenv("GESTOR_CACHE_BACKEND", "memcached")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires database password", func(t *testing.T) {
		clearEnv()
		os.Setenv("GESTOR_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5432,
		User:     "gestor",
		Password: "p@ss:word/with#chars",
		DBName:   "gestor",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.example.com:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss:word/with#chars")
}

func TestRedisConfigAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
