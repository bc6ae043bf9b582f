/*
Package db bootstraps the Postgres connection pool shared by the credential and
message stores, and applies the embedded goose migrations before the pool is handed out.
*/
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"duochat/internal/pkg/logx"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// NewPool initializes a new PostgreSQL connection pool and executes database migrations.
// The pool is created once per process and injected into every store.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database DSN: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	status, err := Migrate(ctx, sqlDB)
	if err != nil {
		pool.Close()
		return nil, err
	}
	logx.Info("Database schema ready", "version", status.Version, "applied", len(status.Applied))

	return pool, nil
}

// SchemaStatus describes the migration state of the database.
type SchemaStatus struct {
	// Version is the highest applied migration version.
	Version int64
	// Applied lists versions applied by the call that produced the status.
	Applied []int64
	// Pending counts embedded migrations not yet applied.
	Pending int
}

func migrationFS() (fs.FS, error) {
	return fs.Sub(embedMigrations, "migrations")
}

func newProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := migrationFS()
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Migrate applies all pending embedded migrations and reports the resulting schema version.
func Migrate(ctx context.Context, db *sql.DB) (*SchemaStatus, error) {
	provider, err := newProvider(db)
	if err != nil {
		return nil, err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	status := &SchemaStatus{Applied: make([]int64, 0, len(results))}
	for _, r := range results {
		status.Applied = append(status.Applied, r.Source.Version)
		logx.Info("Migration applied", "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration.String())
	}

	status.Version, err = provider.GetDBVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}
	return status, nil
}

// Status reports the schema version and pending migration count without applying anything.
func Status(ctx context.Context, pool *pgxpool.Pool) (*SchemaStatus, error) {
	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	provider, err := newProvider(sqlDB)
	if err != nil {
		return nil, err
	}

	sources, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}

	status := &SchemaStatus{}
	for _, src := range sources {
		if src.State == goose.StatePending {
			status.Pending++
		}
	}

	status.Version, err = provider.GetDBVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}
	return status, nil
}
