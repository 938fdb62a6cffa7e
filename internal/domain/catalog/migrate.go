package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/portfolio/internal/repository"
)

// ImportResult reports the outcome of a document import.
type ImportResult struct {
	Inserted int
	Skipped  int
}

// Migrator moves a project catalog between the flat document and the
// relational store, matching on slug.
type Migrator struct {
	store  ProjectStore
	logger *slog.Logger
}

// NewMigrator creates a migrator over store.
func NewMigrator(store ProjectStore, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Migrator{store: store, logger: logger}
}

// JSONToDB imports a project document. Projects whose slug already exists,
// or is empty, are skipped rather than failing the import.
func (m *Migrator) JSONToDB(ctx context.Context, r io.Reader) (ImportResult, error) {
	projects, err := DecodeDocument(r)
	if err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	now := time.Now().UTC()
	for i := range projects {
		p := &projects[i]
		if strings.TrimSpace(p.Slug) == "" {
			m.logger.Warn("skipped project without slug", "title", p.Title)
			result.Skipped++
			continue
		}
		p.CreatedAt = now
		if err := m.store.Create(ctx, p); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				m.logger.Info("skipped duplicate project", "slug", p.Slug)
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("importing project %q: %w", p.Slug, err)
		}
		result.Inserted++
	}
	return result, nil
}

// DBToJSON exports every visible project and returns how many were written.
func (m *Migrator) DBToJSON(ctx context.Context, w io.Writer) (int, error) {
	projects, err := m.store.Projects(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading projects: %w", err)
	}
	if err := EncodeDocument(w, projects); err != nil {
		return 0, err
	}
	return len(projects), nil
}
