// Package config holds the command-line configuration of the bookstore tool.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Config holds the application configuration.
type Config struct {
	Database DatabaseConfig
	Logger   LoggerConfig
	// Seed inserts the sample data set before the command runs.
	Seed bool
}

// DatabaseConfig holds the store connection settings.
type DatabaseConfig struct {
	// DSN is a SQLite path (optionally sqlite:///path) or a PostgreSQL URL.
	DSN string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string
	Format string // pretty, json, or empty to detect
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Database: DatabaseConfig{DSN: "example.db"},
		Logger:   LoggerConfig{Level: "warn"},
	}
}

// BindFlags registers the configuration flags on fs, using the current
// values of c as defaults.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Database.DSN, "db", c.Database.DSN, "database connection string (SQLite file or postgres:// URL)")
	fs.StringVar(&c.Logger.Level, "log-level", c.Logger.Level, "log level (debug, info, warn, error)")
	fs.StringVar(&c.Logger.Format, "log-format", c.Logger.Format, "log format (pretty, json); detected from the terminal when empty")
	fs.BoolVar(&c.Seed, "seed", c.Seed, "insert the sample books and customers before running the command")
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database connection string cannot be empty")
	}
	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logger.Level)
	}
	switch c.Logger.Format {
	case "", "pretty", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Logger.Format)
	}
	return nil
}
