package repositories

import (
	"context"
	"time"

	"portfolio/internal/domain/models/content"
)

// StoredContent is a persisted document together with its store version.
type StoredContent struct {
	Document  *content.Document
	Version   string
	UpdatedAt time.Time
}

// ContentRepository persists the single content document.
type ContentRepository interface {
	// Load returns the current document.
	// Returns domain.ErrNotFound if nothing has been saved yet.
	Load(ctx context.Context) (*StoredContent, error)

	// Save replaces the whole document. When expectedVersion is non-empty and
	// does not match the current version, nothing is written and a
	// *domain.PreconditionError is returned.
	Save(ctx context.Context, doc *content.Document, expectedVersion string) (*StoredContent, error)

	// Close releases connections held by the store.
	Close() error
}
