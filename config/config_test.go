package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envVars = []string{
	"EVENTLOG_DRIVER", "EVENTLOG_DSN", "EVENTLOG_LOG_LEVEL",
	"EVENTLOG_LOG_FORMAT", "EVENTLOG_DEFENSIVE_BOOTSTRAP",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eventlog.toml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearAllEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Driver != "sqlite3" {
		t.Errorf("Driver = %q, want %q", cfg.Driver, "sqlite3")
	}
	if cfg.DSN != "events.db" {
		t.Errorf("DSN = %q, want %q", cfg.DSN, "events.db")
	}
	if !cfg.DefensiveBootstrap {
		t.Error("DefensiveBootstrap should default to true")
	}
	if level, _ := cfg.Level(); level != slog.LevelInfo {
		t.Errorf("Level = %v, want %v", level, slog.LevelInfo)
	}
}

func TestLoadFile(t *testing.T) {
	clearAllEnv(t)
	path := writeConfig(t, `
driver = "postgres"
dsn = "postgres://localhost/events?sslmode=disable"
max_open_conns = 4
max_idle_conns = 2
conn_max_lifetime = "5m"
log_level = "debug"
log_format = "json"
defensive_bootstrap = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Driver != "postgres" {
		t.Errorf("Driver = %q, want %q", cfg.Driver, "postgres")
	}
	if cfg.DSN != "postgres://localhost/events?sslmode=disable" {
		t.Errorf("DSN = %q", cfg.DSN)
	}
	pool := cfg.Pool()
	if pool.MaxOpenConns != 4 || pool.MaxIdleConns != 2 || pool.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("Pool = %+v", pool)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
	if level, _ := cfg.Level(); level != slog.LevelDebug {
		t.Errorf("Level = %v, want %v", level, slog.LevelDebug)
	}
	if cfg.DefensiveBootstrap {
		t.Error("DefensiveBootstrap should be false")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearAllEnv(t)
	path := writeConfig(t, `
dsn = "from-file.db"
log_level = "warn"
`)
	t.Setenv("EVENTLOG_DSN", "from-env.db")
	t.Setenv("EVENTLOG_DEFENSIVE_BOOTSTRAP", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DSN != "from-env.db" {
		t.Errorf("DSN = %q, want %q", cfg.DSN, "from-env.db")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	if cfg.DefensiveBootstrap {
		t.Error("DefensiveBootstrap should be overridden to false")
	}
}

func TestLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "UnknownDriver", env: map[string]string{"EVENTLOG_DRIVER": "mysql"}},
		{name: "UnknownLogLevel", env: map[string]string{"EVENTLOG_LOG_LEVEL": "loud"}},
		{name: "UnknownLogFormat", env: map[string]string{"EVENTLOG_LOG_FORMAT": "xml"}},
		{name: "BadBool", env: map[string]string{"EVENTLOG_DEFENSIVE_BOOTSTRAP": "sometimes"}},
		{name: "EmptyDSN", file: `dsn = ""`},
		{name: "MalformedFile", file: `driver = `},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			path := ""
			if tc.file != "" {
				path = writeConfig(t, tc.file)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearAllEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadOverridesApplyBeforeValidation(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("EVENTLOG_DRIVER", "mysql")
	t.Setenv("EVENTLOG_DSN", "from-env.db")

	cfg, err := Load("", func(c *Config) {
		c.Driver = "sqlite3"
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Driver != "sqlite3" {
		t.Errorf("Driver = %q, want %q", cfg.Driver, "sqlite3")
	}
	if cfg.DSN != "from-env.db" {
		t.Errorf("DSN = %q, want %q", cfg.DSN, "from-env.db")
	}

	if _, err := Load("", func(c *Config) { c.DSN = "" }); err == nil {
		t.Fatal("expected overrides to be validated")
	}
}
