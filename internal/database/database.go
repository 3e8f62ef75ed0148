// Package database provides database connection management and utilities.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverBadger   = "badger"
)

// Config holds database configuration settings.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// Pinger reports whether the backing store is reachable. *sql.DB and *KVStore satisfy it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Connect opens an instrumented SQL connection pool and verifies it with a ping.
func Connect(cfg Config) (*sql.DB, error) {
	var system attribute.KeyValue
	switch cfg.Driver {
	case DriverPostgres:
		system = semconv.DBSystemPostgreSQL
	case DriverMySQL:
		system = semconv.DBSystemMySQL
	default:
		return nil, fmt.Errorf("unsupported sql driver: %s", cfg.Driver)
	}

	driverName, err := otelsql.Register(cfg.Driver,
		otelsql.WithAttributes(system),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register instrumented driver: %w", err)
	}

	db, err := sql.Open(driverName, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
