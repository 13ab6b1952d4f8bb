package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/slapp/studio-booking-backend/migrations"
)

// Migrator applies the embedded goose migrations against the pool's database.
type Migrator struct {
	db *sql.DB
}

// NewMigrator wraps the pool in a database/sql handle for goose.
func NewMigrator(pool *pgxpool.Pool) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	goose.SetBaseFS(migrations.FS)

	return &Migrator{db: stdlib.OpenDBFromPool(pool)}, nil
}

// Run applies all pending migrations.
func (m *Migrator) Run(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close closes the sql.DB handle but not the underlying pool.
func (m *Migrator) Close() error {
	return m.db.Close()
}
