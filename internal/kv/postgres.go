package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresBlob struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to dsn and ensures the kv table exists.
func NewPostgres(ctx context.Context, dsn string) (Blob, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	const q = `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		data BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	if _, err := pool.Exec(ctx, q); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &postgresBlob{pool: pool}, nil
}

func (p *postgresBlob) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, `SELECT data FROM kv WHERE key = $1`, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query kv: %w", err)
	}
	return data, nil
}

func (p *postgresBlob) Put(ctx context.Context, key string, data []byte) error {
	const q = `INSERT INTO kv (key, data, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`
	if _, err := p.pool.Exec(ctx, q, key, data); err != nil {
		return fmt.Errorf("upsert kv: %w", err)
	}
	return nil
}

func (p *postgresBlob) Close() error {
	p.pool.Close()
	return nil
}
