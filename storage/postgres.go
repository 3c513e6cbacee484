package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore persists session state as one jsonb row per key in a
// storefront_state table.
type PostgresStore struct {
	db *sql.DB
}

// Ensure PostgresStore implements Store
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore opens the database connection from environment variables
// and makes sure the state table exists. DATABASE_URL takes precedence; the
// connection string is otherwise built from DB_HOST, DB_PORT, DB_USER,
// DB_PASSWORD, DB_NAME and DB_SSLMODE.
func NewPostgresStore() (*PostgresStore, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		user := os.Getenv("DB_USER")
		password := os.Getenv("DB_PASSWORD")
		dbname := os.Getenv("DB_NAME")
		sslmode := os.Getenv("DB_SSLMODE")

		if host == "" || user == "" || dbname == "" {
			return nil, fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
		}

		if port == "" {
			port = "5432"
		}
		if sslmode == "" {
			sslmode = "disable"
		}

		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	createTable := `
		CREATE TABLE IF NOT EXISTS storefront_state (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return nil, fmt.Errorf("failed to create storefront_state table: %w", err)
	}

	log.Printf("✓ Database connection established successfully")
	return &PostgresStore{db: db}, nil
}

// Get reads the jsonb value under key.
func (s *PostgresStore) Get(ctx context.Context, key string, v interface{}) error {
	var data []byte
	query := `SELECT value FROM storefront_state WHERE key = $1`
	err := s.db.QueryRowContext(ctx, query, key).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// Put upserts the value under key.
func (s *PostgresStore) Put(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	query := `
		INSERT INTO storefront_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query, key, data); err != nil {
		return fmt.Errorf("failed to upsert %s: %w", key, err)
	}
	return nil
}

// Delete removes the row under key.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM storefront_state WHERE key = $1`
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
