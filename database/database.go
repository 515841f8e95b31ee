package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Pool holds the connection pool limits. Zero values leave the database/sql
// defaults in place.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// SupportedDriver reports whether driverName is one of the drivers registered
// by this package.
func SupportedDriver(driverName string) bool {
	return driverName == DriverSQLite || driverName == DriverPostgres
}

// Connect opens a connection pool and verifies it with a ping.
func Connect(driverName string, dataSourceName string, pool Pool) (*sqlx.DB, error) {
	if !SupportedDriver(driverName) {
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}

	db, err := sqlx.Connect(driverName, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	return db, nil
}
