package postgres

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/pizzaform/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgxpool the repositories use, kept narrow so tests can fake it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close()
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

type pgxDB struct {
	pool *pgxpool.Pool
}

// DSN builds the connection string from the config.
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database)
}

func Connect(ctx context.Context, cfg config.DatabaseConfig) (DB, error) {
	pool, err := pgxpool.New(ctx, DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &pgxDB{pool: pool}, nil
}

func (db *pgxDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return db.pool.Query(ctx, sql, args...)
}

func (db *pgxDB) Close() {
	db.pool.Close()
}
