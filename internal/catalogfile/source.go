// Package catalogfile serves projects from a JSON project document on disk.
package catalogfile

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rpggio/portfolio/internal/domain/catalog"
)

// Source reads the project document on every call, so edits to the file
// show up without a restart.
type Source struct {
	path string
}

// New creates a Source for the document at path.
func New(path string) *Source {
	return &Source{path: path}
}

// Path returns the document location.
func (s *Source) Path() string {
	return s.path
}

// Projects decodes the document. A missing file is an empty catalog.
func (s *Source) Projects(ctx context.Context) ([]catalog.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []catalog.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open project document: %w", err)
	}
	defer f.Close()

	projects, err := catalog.DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return projects, nil
}
