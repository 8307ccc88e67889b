package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connect opens a Postgres pool through the pgx stdlib driver and pings it.
// An empty dsn falls back to the DATABASE_URL environment variable.
func Connect(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		return nil, fmt.Errorf("database url not configured: set database.url or DATABASE_URL")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Schema creates the catalog table read by the Postgres product source.
const Schema = `
CREATE TABLE IF NOT EXISTS products (
	id           SERIAL PRIMARY KEY,
	title        TEXT,
	price        NUMERIC,
	rating_rate  NUMERIC,
	rating_count INTEGER
)`

// EnsureSchema creates the products table when it is missing, so an empty
// database reads as an empty catalog.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
