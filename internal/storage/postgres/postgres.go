// Package postgres opens the single database connection the admin tools work over.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"repo-stats-admin/internal/lib"
	"repo-stats-admin/internal/lib/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

const driverName = "postgres"

// ErrConnect marks a failure to reach or authenticate against the server.
var ErrConnect = errors.New("could not connect to database")

// Connect opens a *sqlx.DB pinned to one connection and verifies it with a ping.
// The tools run strictly sequentially, so every statement goes over the same session.
func Connect(ctx context.Context, cfg config.Postgres) (*sqlx.DB, error) {
	return ConnectDSN(ctx, cfg.DSN())
}

func ConnectDSN(ctx context.Context, dsn string) (*sqlx.DB, error) {
	const op = "postgres.Connect"

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, lib.Err(op, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, lib.Err(op, fmt.Errorf("%w: %w", ErrConnect, err))
	}

	return db, nil
}
