package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models/content"
	"portfolio/internal/domain/repositories"
)

// Result reports what a seed run did.
type Result struct {
	Written bool
	Version string
}

// ContentSeeder writes the built-in document into a content store
type ContentSeeder struct {
	repo   repositories.ContentRepository
	logger *slog.Logger
}

// NewContentSeeder creates a new content seeder
func NewContentSeeder(repo repositories.ContentRepository, logger *slog.Logger) *ContentSeeder {
	return &ContentSeeder{
		repo:   repo,
		logger: logger,
	}
}

// Seed stores content.Default(). An existing document is left untouched
// unless force is set.
func (s *ContentSeeder) Seed(ctx context.Context, force bool) (*Result, error) {
	existing, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		if !force {
			s.logger.Info("content already present, skipping", "version", existing.Version)
			return &Result{Written: false, Version: existing.Version}, nil
		}
		s.logger.Warn("overwriting existing content", "version", existing.Version)
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Info("store is empty, seeding default content")
	default:
		// An unreadable document can only be replaced deliberately
		if !force {
			return nil, fmt.Errorf("load existing content: %w", err)
		}
		s.logger.Warn("existing content unreadable, overwriting", "error", err)
	}

	stored, err := s.repo.Save(ctx, content.Default(), "")
	if err != nil {
		return nil, fmt.Errorf("save default content: %w", err)
	}

	s.logger.Info("default content seeded", "version", stored.Version)
	return &Result{Written: true, Version: stored.Version}, nil
}
