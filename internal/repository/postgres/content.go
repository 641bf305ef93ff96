package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"portfolio/internal/domain"
	"portfolio/internal/domain/models/content"
	"portfolio/internal/domain/repositories"
)

// currentDocumentID is the primary key of the single content row.
const currentDocumentID = "current"

// PostgresContentRepository keeps the document in a single JSONB row and
// appends every accepted write to a revisions table in the same transaction.
type PostgresContentRepository struct {
	pool      *pgxpool.Pool
	tables    *TableNames
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewContentRepository creates a new PostgresContentRepository
func NewContentRepository(config *RepositoryConfig, txManager repositories.TransactionManager) *PostgresContentRepository {
	return &PostgresContentRepository{
		pool:      config.Pool,
		tables:    config.Tables,
		txManager: txManager,
		logger:    config.Logger,
	}
}

// Load retrieves the current document
func (r *PostgresContentRepository) Load(ctx context.Context) (*repositories.StoredContent, error) {
	query := fmt.Sprintf(`
		SELECT body, revision, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Documents)

	var (
		body      []byte
		revision  int64
		updatedAt time.Time
	)
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, currentDocumentID).Scan(&body, &revision, &updatedAt)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, domain.ErrNotFound
		}
		if IsPgUndefinedTableError(err) {
			return nil, fmt.Errorf("content table %s missing, run seed -schema-only: %w", r.tables.Documents, err)
		}
		return nil, fmt.Errorf("get content document: %w", err)
	}

	var doc content.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse content document: %w", err)
	}

	return &repositories.StoredContent{
		Document:  &doc,
		Version:   strconv.FormatInt(revision, 10),
		UpdatedAt: updatedAt,
	}, nil
}

// Save replaces the document and records a revision
func (r *PostgresContentRepository) Save(ctx context.Context, doc *content.Document, expectedVersion string) (*repositories.StoredContent, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}

	stored := &repositories.StoredContent{Document: doc}

	err = r.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, r.pool)

		current, err := r.lockRevision(txCtx)
		if err != nil {
			return err
		}

		if expectedVersion != "" {
			currentVersion := ""
			if current > 0 {
				currentVersion = strconv.FormatInt(current, 10)
			}
			if currentVersion != expectedVersion {
				return &domain.PreconditionError{Expected: expectedVersion, Current: currentVersion}
			}
		}

		next := current + 1
		upsert := fmt.Sprintf(`
			INSERT INTO %s (id, body, revision, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (id) DO UPDATE SET
				body = EXCLUDED.body,
				revision = EXCLUDED.revision,
				updated_at = EXCLUDED.updated_at
			RETURNING updated_at
		`, r.tables.Documents)

		if err := executor.QueryRow(txCtx, upsert, currentDocumentID, body, next).Scan(&stored.UpdatedAt); err != nil {
			return fmt.Errorf("upsert content document: %w", err)
		}

		history := fmt.Sprintf(`
			INSERT INTO %s (id, revision, body, created_at)
			VALUES ($1, $2, $3, $4)
		`, r.tables.Revisions)

		if _, err := executor.Exec(txCtx, history, uuid.New(), next, body, stored.UpdatedAt); err != nil {
			return fmt.Errorf("insert content revision: %w", err)
		}

		stored.Version = strconv.FormatInt(next, 10)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("content document saved", "revision", stored.Version)
	return stored, nil
}

// lockRevision returns the current revision, locking the row for the rest of
// the transaction. Returns 0 when no document exists yet.
func (r *PostgresContentRepository) lockRevision(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`
		SELECT revision FROM %s WHERE id = $1 FOR UPDATE
	`, r.tables.Documents)

	var revision int64
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, currentDocumentID).Scan(&revision)
	if err != nil {
		if IsPgNoRowsError(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("lock content document: %w", err)
	}
	return revision, nil
}

// Close releases the connection pool
func (r *PostgresContentRepository) Close() error {
	r.pool.Close()
	return nil
}
