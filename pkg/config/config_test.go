package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rapidxcel-logistics/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // sin .env
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:3000", cfg.Dashboard.Addr())
	assert.Equal(t, "http://localhost:8080", cfg.Backend.URL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Session.HintTTL)
	assert.Equal(t, 10, cfg.Reports.LowStockThreshold)
	assert.Empty(t, cfg.Redis.URL, "sin Redis se usan adaptadores en memoria")
}

func TestLoad_EnvGana(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BACKEND_URL", "http://api.internal:9000/")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "2")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("DASHBOARD_PORT", "4000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:9000", cfg.Backend.URL)
	assert.Equal(t, 2*time.Second, cfg.Backend.Timeout)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, 4000, cfg.Dashboard.Port)
}

func TestLoad_Invalida(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "0")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "rx", Password: "p@ss word", DBName: "rapidxcel", SSLMode: "disable"}
	assert.Equal(t, "postgres://rx:p%40ss%20word@db:5432/rapidxcel?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", c.ConnectionString())
}
