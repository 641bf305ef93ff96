package services

import (
	"context"
	"time"

	"portfolio/internal/domain/models/content"
	"portfolio/internal/domain/repositories"
)

// ContentView is the document served to readers.
type ContentView struct {
	Document *content.Document
	// Version is empty when the built-in default is served.
	Version  string
	Fallback bool
}

// SkillsView is the skills section filtered by category.
type SkillsView struct {
	Categories []content.SkillCategory `json:"categories"`
	Category   content.SkillCategory   `json:"category,omitempty"`
	Skills     []content.Skill         `json:"skills"`
}

// ExperienceSpan is one job with its computed length.
type ExperienceSpan struct {
	Company   string  `json:"company"`
	Role      string  `json:"role"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate"`
	IsCurrent bool    `json:"isCurrent"`
	Months    int     `json:"months"`
	Duration  string  `json:"duration"`
}

// SummaryView holds figures derived from the document for one locale.
type SummaryView struct {
	Locale         content.Locale          `json:"locale"`
	TotalMonths    int                     `json:"totalMonths"`
	TotalYears     int                     `json:"totalYears"`
	TotalDuration  string                  `json:"totalDuration"`
	Experience     []ExperienceSpan        `json:"experience"`
	TotalProjects  int                     `json:"totalProjects"`
	ActiveProjects int                     `json:"activeProjects"`
	Categories     []content.SkillCategory `json:"skillCategories"`
	GeneratedAt    time.Time               `json:"generatedAt"`
}

// ContentService defines read/replace operations on the CV content
type ContentService interface {
	// GetContent returns the stored document, or the built-in default if the
	// store is empty or unreadable. It does not fail.
	GetContent(ctx context.Context) *ContentView

	// SaveContent validates a raw JSON document and replaces the stored one.
	// expectedVersion may be empty for an unconditional write.
	SaveContent(ctx context.Context, raw []byte, expectedVersion string) (*repositories.StoredContent, error)

	// Skills returns the skills in category (all skills when empty).
	Skills(ctx context.Context, category content.SkillCategory) (*SkillsView, error)

	// Summary returns experience and project totals for locale.
	Summary(ctx context.Context, locale content.Locale) *SummaryView
}
