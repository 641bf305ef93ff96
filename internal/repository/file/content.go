package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models/content"
	"portfolio/internal/domain/repositories"
)

// ContentRepository stores the document as one indented JSON file.
//
// Writes go to a temp file in the same directory and are renamed over the
// target, so readers see either the old or the new document, never a
// partial one. Writers within the process are serialized.
type ContentRepository struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
	rename func(oldpath, newpath string) error
}

// NewContentRepository creates a file store at path. The parent directory is
// created on first save.
func NewContentRepository(path string, logger *slog.Logger) *ContentRepository {
	return &ContentRepository{
		path:   path,
		logger: logger,
		rename: os.Rename,
	}
}

// Load reads and parses the document file.
func (r *ContentRepository) Load(ctx context.Context) (*repositories.StoredContent, error) {
	data, info, err := r.read()
	if err != nil {
		return nil, err
	}

	var doc content.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse content file %s: %w", r.path, err)
	}

	return &repositories.StoredContent{
		Document:  &doc,
		Version:   versionOf(data),
		UpdatedAt: info.ModTime().UTC(),
	}, nil
}

// Save replaces the document file in full.
func (r *ContentRepository) Save(ctx context.Context, doc *content.Document, expectedVersion string) (*repositories.StoredContent, error) {
	data, err := content.MarshalReadable(doc)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if expectedVersion != "" {
		current := ""
		existing, _, err := r.read()
		switch {
		case err == nil:
			current = versionOf(existing)
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
		if current != expectedVersion {
			return nil, &domain.PreconditionError{Expected: expectedVersion, Current: current}
		}
	}

	if err := r.writeAtomic(data); err != nil {
		return nil, err
	}

	r.logger.Debug("content file written", "path", r.path, "bytes", len(data))

	return &repositories.StoredContent{
		Document:  doc,
		Version:   versionOf(data),
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// Close is a no-op; the store holds no open handles between calls.
func (r *ContentRepository) Close() error {
	return nil
}

func (r *ContentRepository) read() ([]byte, fs.FileInfo, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("open content file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("stat content file: %w", err)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, fmt.Errorf("read content file: %w", err)
	}
	return data, info, nil
}

func (r *ContentRepository) writeAtomic(data []byte) (err error) {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create content directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Remove the temp file on any failure path
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = r.rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace content file: %w", err)
	}
	return nil
}

// versionOf derives a stable version tag from file contents.
func versionOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
