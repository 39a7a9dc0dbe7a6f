package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PgxAdapter stores documents in PostgreSQL through a pgx pool.
type PgxAdapter struct {
	pool *pgxpool.Pool
}

// OpenPgx applies the goose migrations and connects the pool.
func OpenPgx(ctx context.Context, dsn string) (*PgxAdapter, error) {
	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PgxAdapter{pool: pool}, nil
}

func runMigrations(dsn string) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func (p *PgxAdapter) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	var value string
	err := p.pool.QueryRow(ctx, `SELECT value FROM storage_records WHERE record_key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (p *PgxAdapter) Save(ctx context.Context, key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := p.pool.Exec(ctx, `
		INSERT INTO storage_records (record_key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (record_key) DO UPDATE SET
		  value = $2, updated_at = now()
	`, key, string(data))
	return err
}

func (p *PgxAdapter) Close() error {
	p.pool.Close()
	return nil
}
