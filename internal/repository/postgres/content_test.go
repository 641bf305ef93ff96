package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"testing"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models/content"
)

// newTestRepository connects to DATABASE_URL and creates tables under a
// unique prefix that are dropped when the test ends.
func newTestRepository(t *testing.T) (*PostgresContentRepository, *TableNames) {
	t.Helper()
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := CreateConnectionPool(ctx, databaseURL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	tables := NewTableNames(fmt.Sprintf("test_%d_", time.Now().UnixNano()))
	if err := EnsureSchema(ctx, pool, tables); err != nil {
		pool.Close()
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	t.Cleanup(func() {
		if err := DropSchema(context.Background(), pool, tables); err != nil {
			t.Logf("DropSchema() error = %v", err)
		}
		pool.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repoConfig := &RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	return NewContentRepository(repoConfig, NewTransactionManager(pool, logger)), tables
}

func TestContentRepository_LoadEmpty(t *testing.T) {
	repo, _ := newTestRepository(t)

	if _, err := repo.Load(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestContentRepository_SaveLoadAndRevisions(t *testing.T) {
	repo, tables := newTestRepository(t)
	ctx := context.Background()

	doc := content.Default()
	first, err := repo.Save(ctx, doc, "")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if first.Version != "1" {
		t.Errorf("first version = %q, want 1", first.Version)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Version != first.Version {
		t.Errorf("loaded version = %q, want %q", loaded.Version, first.Version)
	}
	if !reflect.DeepEqual(loaded.Document, doc) {
		t.Error("loaded document differs from saved document")
	}

	changed := content.Default()
	changed.Personal.Email = "someone@example.com"
	second, err := repo.Save(ctx, changed, first.Version)
	if err != nil {
		t.Fatalf("conditional Save() error = %v", err)
	}
	if second.Version != "2" {
		t.Errorf("second version = %q, want 2", second.Version)
	}

	var revisions int
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, tables.Revisions)
	if err := repo.pool.QueryRow(ctx, query).Scan(&revisions); err != nil {
		t.Fatal(err)
	}
	if revisions != 2 {
		t.Errorf("revision rows = %d, want 2", revisions)
	}
}

func TestContentRepository_StaleVersion(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		seed     bool
		expected string
		current  string
	}{
		{name: "empty store", seed: false, expected: "3", current: ""},
		{name: "outdated version", seed: true, expected: "7", current: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.seed {
				if _, err := repo.Save(ctx, content.Default(), ""); err != nil {
					t.Fatal(err)
				}
			}

			_, err := repo.Save(ctx, content.Default(), tt.expected)
			var precondition *domain.PreconditionError
			if !errors.As(err, &precondition) {
				t.Fatalf("Save() error = %v, want PreconditionError", err)
			}
			if precondition.Current != tt.current {
				t.Errorf("Current = %q, want %q", precondition.Current, tt.current)
			}

			loaded, err := repo.Load(ctx)
			if tt.seed {
				if err != nil || loaded.Version != tt.current {
					t.Errorf("store changed after rejected write: %+v, %v", loaded, err)
				}
			} else if !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("rejected write created a document: %v", err)
			}
		})
	}
}
