package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models/content"
	"portfolio/internal/domain/repositories"

	_ "modernc.org/sqlite"
)

const currentDocumentID = "current"

const schema = `
CREATE TABLE IF NOT EXISTS content_documents (
	id         TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	revision   INTEGER NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS content_revisions (
	revision   INTEGER PRIMARY KEY,
	body       TEXT NOT NULL,
	created_at DATETIME NOT NULL
);`

// ContentRepository keeps the document in a local SQLite database.
type ContentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(ctx context.Context, path string, logger *slog.Logger) (*ContentRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY between our own writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure sqlite schema: %w", err)
	}

	return &ContentRepository{db: db, logger: logger}, nil
}

// Load retrieves the current document
func (r *ContentRepository) Load(ctx context.Context) (*repositories.StoredContent, error) {
	var (
		body      string
		revision  int64
		updatedAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT body, revision, updated_at FROM content_documents WHERE id = ?`,
		currentDocumentID,
	).Scan(&body, &revision, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get content document: %w", err)
	}

	var doc content.Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("parse content document: %w", err)
	}

	return &repositories.StoredContent{
		Document:  &doc,
		Version:   strconv.FormatInt(revision, 10),
		UpdatedAt: updatedAt,
	}, nil
}

// Save replaces the document, bumping the revision
func (r *ContentRepository) Save(ctx context.Context, doc *content.Document, expectedVersion string) (*repositories.StoredContent, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current int64
	err = tx.QueryRowContext(ctx,
		`SELECT revision FROM content_documents WHERE id = ?`, currentDocumentID,
	).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get content revision: %w", err)
	}

	if expectedVersion != "" {
		currentVersion := ""
		if current > 0 {
			currentVersion = strconv.FormatInt(current, 10)
		}
		if currentVersion != expectedVersion {
			return nil, &domain.PreconditionError{Expected: expectedVersion, Current: currentVersion}
		}
	}

	next := current + 1
	now := time.Now().UTC()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO content_documents (id, body, revision, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			body = excluded.body,
			revision = excluded.revision,
			updated_at = excluded.updated_at`,
		currentDocumentID, string(body), next, now,
	); err != nil {
		return nil, fmt.Errorf("upsert content document: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO content_revisions (revision, body, created_at) VALUES (?, ?, ?)`,
		next, string(body), now,
	); err != nil {
		return nil, fmt.Errorf("insert content revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	r.logger.Debug("content document saved", "revision", next)

	return &repositories.StoredContent{
		Document:  doc,
		Version:   strconv.FormatInt(next, 10),
		UpdatedAt: now,
	}, nil
}

// Close closes the database
func (r *ContentRepository) Close() error {
	return r.db.Close()
}
