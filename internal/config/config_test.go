package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/phonebooks/internal/config"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Empty(t, cfg.Server.AllowedOrigins)
	assert.Equal(t, config.DriverMongoDB, cfg.Store.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "bms", cfg.MongoDB.DBName)
	assert.True(t, cfg.Reporting.Enabled)
	assert.Equal(t, "55 23 * * *", cfg.Reporting.CronSchedule)
	assert.Equal(t, "Summary!A:I", cfg.Sheets.SummaryRange)
	assert.False(t, cfg.Sheets.Enabled())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "5001")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://shop.example.com")
	t.Setenv("TIMEZONE", "Africa/Accra")
	t.Setenv("REPORT_ENABLED", "false")

	cfg, err := config.Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Server.Port)
	assert.Equal(t, config.DriverMemory, cfg.Store.Driver)
	assert.Equal(t, []string{"http://localhost:3000", "https://shop.example.com"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Reporting.Enabled)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Africa/Accra", loc.String())
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MONGODB_DB_NAME=phoneshop\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("MONGODB_DB_NAME") })

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "phoneshop", cfg.MongoDB.DBName)
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		var cfg config.Config
		cfg.Server.Port = "5000"
		cfg.Store.Driver = config.DriverMemory
		cfg.Reporting.Enabled = true
		cfg.Reporting.CronSchedule = "55 23 * * *"
		cfg.Reporting.Timezone = "UTC"
		cfg.Log.Level = "info"
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{name: "MissingPort", mutate: func(c *config.Config) { c.Server.Port = "" }},
		{name: "UnknownDriver", mutate: func(c *config.Config) { c.Store.Driver = "postgres" }},
		{name: "MongoWithoutURI", mutate: func(c *config.Config) { c.Store.Driver = config.DriverMongoDB; c.MongoDB.DBName = "bms" }},
		{name: "BadTimezone", mutate: func(c *config.Config) { c.Reporting.Timezone = "Mars/Olympus" }},
		{name: "BadCron", mutate: func(c *config.Config) { c.Reporting.CronSchedule = "every night" }},
		{name: "HalfSheetsConfig", mutate: func(c *config.Config) { c.Sheets.SpreadsheetID = "abc" }},
		{name: "OriginWithoutScheme", mutate: func(c *config.Config) { c.Server.AllowedOrigins = []string{"localhost:3000"} }},
		{name: "BadLogLevel", mutate: func(c *config.Config) { c.Log.Level = "verbose" }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	disabled := valid()
	disabled.Reporting.Enabled = false
	disabled.Reporting.CronSchedule = "every night"
	assert.NoError(t, disabled.Validate())
}
