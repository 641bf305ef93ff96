package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/content"
	"portfolio/internal/domain/repositories"
	"portfolio/internal/domain/services"
	"portfolio/internal/events"
)

// Service implements services.ContentService on top of a ContentRepository
type Service struct {
	repo      repositories.ContentRepository
	publisher events.Publisher
	validator *documentValidator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new content service
func NewService(
	repo repositories.ContentRepository,
	publisher events.Publisher,
	logger *slog.Logger,
) *Service {
	s := &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
	s.validator = newDocumentValidator(func() time.Time { return s.now() })
	return s
}

var _ services.ContentService = (*Service)(nil)

// GetContent returns the stored document or the built-in default
func (s *Service) GetContent(ctx context.Context) *services.ContentView {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("no stored content, serving default")
		} else {
			s.logger.Warn("content load failed, serving default", "error", err)
		}
		return &services.ContentView{
			Document: models.Default(),
			Fallback: true,
		}
	}

	return &services.ContentView{
		Document: stored.Document,
		Version:  stored.Version,
	}
}

// SaveContent validates raw and replaces the stored document
func (s *Service) SaveContent(ctx context.Context, raw []byte, expectedVersion string) (*repositories.StoredContent, error) {
	if len(raw) > config.MaxContentBytes {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("content exceeds %d bytes", config.MaxContentBytes),
		}
	}

	if err := ValidateSchema(raw); err != nil {
		return nil, err
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &domain.ValidationError{
			Message: "content could not be decoded",
			Fields:  map[string]string{"(root)": err.Error()},
		}
	}

	if err := s.validator.Validate(&doc); err != nil {
		return nil, err
	}

	expectedVersion = strings.TrimSpace(expectedVersion)
	stored, err := s.repo.Save(ctx, &doc, expectedVersion)
	if err != nil {
		if errors.Is(err, domain.ErrPreconditionFailed) {
			s.logger.Info("content save rejected, stale version", "expected_version", expectedVersion)
			return nil, err
		}
		s.logger.Error("content save failed", "error", err)
		return nil, &domain.StorageError{Op: "save content", Err: err}
	}

	s.logger.Info("content saved",
		"version", stored.Version,
		"conditional", expectedVersion != "",
		"skills", len(doc.Skills),
		"experience", len(doc.Experience),
		"projects", len(doc.Projects),
	)

	s.publishUpdated(ctx, stored)
	return stored, nil
}

// publishUpdated announces a saved document. The save has already taken
// effect, so a broker failure is only logged.
func (s *Service) publishUpdated(ctx context.Context, stored *repositories.StoredContent) {
	if s.publisher == nil {
		return
	}
	event := events.NewContentUpdated(stored.Version, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish content event",
			"event_id", event.ID,
			"version", stored.Version,
			"error", err,
		)
	}
}

// Skills returns the skills section filtered by category
func (s *Service) Skills(ctx context.Context, category models.SkillCategory) (*services.SkillsView, error) {
	if category != "" && !category.Valid() {
		return nil, &domain.ValidationError{
			Message: "unknown skill category",
			Fields:  map[string]string{"category": "must be one of " + joinCategories(models.SkillCategories)},
		}
	}

	doc := s.GetContent(ctx).Document
	return &services.SkillsView{
		Categories: doc.SkillCategories(),
		Category:   category,
		Skills:     models.FilterSkills(doc.Skills, category),
	}, nil
}

// Summary computes experience and project figures for locale
func (s *Service) Summary(ctx context.Context, locale models.Locale) *services.SummaryView {
	doc := s.GetContent(ctx).Document
	now := s.now()

	spans := make([]services.ExperienceSpan, 0, len(doc.Experience))
	for _, e := range doc.Experience {
		months, err := e.Months(now)
		if err != nil {
			s.logger.Debug("skipping experience with malformed dates", "company", e.Company, "error", err)
			continue
		}
		spans = append(spans, services.ExperienceSpan{
			Company:   e.Company,
			Role:      e.Role.Get(locale),
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
			IsCurrent: e.IsCurrent,
			Months:    months,
			Duration:  models.FormatDuration(months, locale),
		})
	}

	total := doc.TotalExperienceMonths(now)
	return &services.SummaryView{
		Locale:         locale,
		TotalMonths:    total,
		TotalYears:     total / 12,
		TotalDuration:  models.FormatDuration(total, locale),
		Experience:     spans,
		TotalProjects:  len(doc.Projects),
		ActiveProjects: doc.ActiveProjects(),
		Categories:     doc.SkillCategories(),
		GeneratedAt:    now.UTC(),
	}
}

func joinCategories(categories []models.SkillCategory) string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
