package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the content tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id         TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			revision   BIGINT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS %[2]s (
			id         UUID PRIMARY KEY,
			revision   BIGINT NOT NULL,
			body       JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS %[3]s_revision_idx ON %[2]s (revision DESC);
	`, tables.Documents, tables.Revisions, tables.Revisions)

	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure content schema: %w", err)
	}
	return nil
}

// DropSchema removes the content tables.
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	ddl := fmt.Sprintf(`
		DROP TABLE IF EXISTS %s CASCADE;
		DROP TABLE IF EXISTS %s CASCADE;
	`, tables.Revisions, tables.Documents)

	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("drop content schema: %w", err)
	}
	return nil
}
