package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// newConnectPostgres opens a PostgreSQL connection pool via the pgx stdlib
// driver and verifies it with a ping.
func newConnectPostgres(ctx context.Context, dsn string) (*Database, error) {
	db, err := sql.Open(DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening postgres connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("error pinging postgres: %w", err)
	}

	return &Database{
		DB:         db,
		driver:     DriverPostgres,
		classifier: postgresErrors{},
	}, nil
}
