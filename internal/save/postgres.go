package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps one row per slot in a saves table.
type PostgresStore struct {
	db   *sql.DB
	slot string
}

// NewPostgresStore connects to dsn and creates the saves table if needed.
func NewPostgresStore(ctx context.Context, dsn, slot string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db, slot: slot}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		slot TEXT PRIMARY KEY,
		blob JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Load reads the slot's row.
func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT blob FROM saves WHERE slot = $1`, s.slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load save %s: %w", s.slot, err)
	}
	return data, nil
}

// Save upserts the slot's row.
func (s *PostgresStore) Save(ctx context.Context, data []byte) error {
	query := `
	INSERT INTO saves (slot, blob)
	VALUES ($1, $2)
	ON CONFLICT (slot)
	DO UPDATE SET blob = $2, updated_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query, s.slot, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.slot, err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
