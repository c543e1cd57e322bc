package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "example.db", cfg.Database.DSN)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Empty(t, cfg.Logger.Format)
	assert.False(t, cfg.Seed)
	assert.NoError(t, cfg.Validate())
}

func TestBindFlags(t *testing.T) {
	cfg := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)

	err := fs.Parse([]string{"--db", "postgres://localhost/shop", "--log-level", "debug", "--log-format", "json", "--seed"})
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/shop", cfg.Database.DSN)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Seed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty dsn", func(c *Config) { c.Database.DSN = " " }, "connection string"},
		{"bad level", func(c *Config) { c.Logger.Level = "loud" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Logger.Format = "xml" }, "invalid log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
