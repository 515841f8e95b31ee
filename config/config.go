package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ifysglbiydgfifs/java-lab-8-1/database"
)

type Config struct {
	Driver          string        `toml:"driver"`            // EVENTLOG_DRIVER (default "sqlite3")
	DSN             string        `toml:"dsn"`               // EVENTLOG_DSN (default "events.db")
	MaxOpenConns    int           `toml:"max_open_conns"`    // 0 = driver default
	MaxIdleConns    int           `toml:"max_idle_conns"`    // 0 = driver default
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"` // e.g. "5m"; 0 = no limit

	LogLevel  string `toml:"log_level"`  // EVENTLOG_LOG_LEVEL (default "info")
	LogFormat string `toml:"log_format"` // EVENTLOG_LOG_FORMAT (default "text")

	// Re-check the schema before every write. EVENTLOG_DEFENSIVE_BOOTSTRAP
	DefensiveBootstrap bool `toml:"defensive_bootstrap"`
}

func Default() *Config {
	return &Config{
		Driver:             database.DriverSQLite,
		DSN:                "events.db",
		LogLevel:           "info",
		LogFormat:          "text",
		DefensiveBootstrap: true,
	}
}

// Override adjusts a loaded configuration before it is validated, e.g. from
// command-line flags.
type Override func(*Config)

// Load builds the configuration from defaults, then the TOML file at path
// (skipped when path is empty), then environment overrides, then overrides.
func Load(path string, overrides ...Override) (*Config, error) {
	c := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	c.Driver = envOrDefault("EVENTLOG_DRIVER", c.Driver)
	c.DSN = envOrDefault("EVENTLOG_DSN", c.DSN)
	c.LogLevel = envOrDefault("EVENTLOG_LOG_LEVEL", c.LogLevel)
	c.LogFormat = envOrDefault("EVENTLOG_LOG_FORMAT", c.LogFormat)

	if v := os.Getenv("EVENTLOG_DEFENSIVE_BOOTSTRAP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("EVENTLOG_DEFENSIVE_BOOTSTRAP: %w", err)
		}
		c.DefensiveBootstrap = b
	}

	for _, override := range overrides {
		override(c)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if !database.SupportedDriver(c.Driver) {
		return fmt.Errorf("driver must be %q or %q, got %q", database.DriverSQLite, database.DriverPostgres, c.Driver)
	}
	if c.DSN == "" {
		return fmt.Errorf("dsn is required")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return level, nil
}

// Pool returns the connection pool limits for database.Connect.
func (c *Config) Pool() database.Pool {
	return database.Pool{
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
