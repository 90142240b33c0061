package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/eunsoo8606/texaspapa/config"
)

// Connect opens the shared connection pool and verifies it with a ping.
func Connect(cfg config.Postgres) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return db, nil
}
