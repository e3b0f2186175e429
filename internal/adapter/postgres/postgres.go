// Package postgres implements the database port on PostgreSQL and owns the
// embedded schema migrations.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" database/sql driver for goose
	"github.com/pressly/goose/v3"

	"github.com/Strob0t/Workboard/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

// NewPool opens the connection pool described by cfg and verifies it with a
// ping. Zero-valued limits keep the pgxpool defaults.
func NewPool(ctx context.Context, cfg config.Postgres) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.HealthCheck > 0 {
		poolCfg.HealthCheckPeriod = cfg.HealthCheck
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping %s: %w", poolCfg.ConnConfig.Host, err)
	}

	slog.Info("postgres connected",
		"host", poolCfg.ConnConfig.Host,
		"database", poolCfg.ConnConfig.Database,
		"max_conns", poolCfg.MaxConns,
	)
	return pool, nil
}

// migrator opens a goose provider over the embedded migrations. The caller
// must Close it, which also closes the underlying *sql.DB.
func migrator(dsn string) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrations fs: %w", err)
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db for migrations: %w", err)
	}
	p, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration provider: %w", err)
	}
	return p, nil
}

// RunMigrations applies every pending migration.
func RunMigrations(ctx context.Context, dsn string) error {
	p, err := migrator(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	for _, r := range results {
		slog.Info("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

// RollbackMigrations reverts the newest steps migrations.
func RollbackMigrations(ctx context.Context, dsn string, steps int) error {
	p, err := migrator(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	for range steps {
		r, err := p.Down(ctx)
		if err != nil {
			return fmt.Errorf("rollback: %w", err)
		}
		slog.Info("migration rolled back", "version", r.Source.Version)
	}
	return nil
}

// MigrationVersion reports the schema version recorded in the database.
func MigrationVersion(ctx context.Context, dsn string) (int64, error) {
	p, err := migrator(dsn)
	if err != nil {
		return 0, err
	}
	defer func() { _ = p.Close() }()

	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return v, nil
}
