package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "finance", cfg.DB.Database)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.CORS.Credentials)
	assert.Equal(t, 86400, cfg.CORS.MaxAge)
	assert.False(t, cfg.RateLimit.Enabled)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DB_DATABASE", "ledger_test")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("CORS_METHODS", "GET,POST")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "ledger_test", cfg.DB.Database)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET", "POST"}, cfg.CORS.Methods)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg.DB.Host = "localhost"
	cfg.DB.Database = "finance"
	cfg.App.Port = "8080"
	assert.NoError(t, cfg.Validate())

	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerSecond = 0
	assert.Error(t, cfg.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		Username: "svc",
		Password: "secret",
		Database: "finance",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal user=svc password=secret dbname=finance port=5433 sslmode=require",
		db.DSN(),
	)
}
