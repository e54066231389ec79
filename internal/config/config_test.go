package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "dot_ranker", cfg.Database.DBName)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "./data.json", cfg.Profiles.DataPath)
	assert.Equal(t, 5*time.Minute, cfg.Profiles.RefreshInterval)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PROFILE_REFRESH_INTERVAL", "30s")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("REDIS_DB", "2")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Profiles.RefreshInterval)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("PROFILE_REFRESH_INTERVAL", "whenever")

	cfg := Load()
	assert.Equal(t, 5*time.Minute, cfg.Profiles.RefreshInterval)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "ranker",
		Password: "secret",
		DBName:   "dot_ranker",
	}}

	assert.Equal(t,
		"host=db.internal port=5433 user=ranker password=secret dbname=dot_ranker sslmode=disable",
		cfg.GetDatabaseDSN())
}
