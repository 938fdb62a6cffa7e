// Package resume stores the single downloadable resume PDF.
package resume

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes bounds an uploaded resume.
const DefaultMaxBytes int64 = 10 << 20

var (
	// ErrInvalidInput is returned for a non-PDF or oversized upload.
	ErrInvalidInput = errors.New("invalid resume")
	// ErrNotFound is returned when no resume has been stored.
	ErrNotFound = errors.New("resume not found")
)

// Store keeps the resume at a fixed path.
type Store struct {
	path     string
	maxBytes int64
	logger   *slog.Logger
}

// New creates a Store writing to path. maxBytes <= 0 uses DefaultMaxBytes.
func New(path string, maxBytes int64, logger *slog.Logger) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{path: path, maxBytes: maxBytes, logger: logger}
}

// Path returns the stored resume location.
func (s *Store) Path() string {
	return s.path
}

// Save replaces the stored resume with r. The upload must be named *.pdf and
// its content must be a PDF.
func (s *Store) Save(ctx context.Context, filename string, r io.Reader) error {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return fmt.Errorf("%w: %q is not a .pdf file", ErrInvalidInput, filename)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create resume directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".resume-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	n, err := io.Copy(tmp, io.LimitReader(r, s.maxBytes+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write resume: %w", err)
	}
	if n > s.maxBytes {
		return fmt.Errorf("%w: larger than %d bytes", ErrInvalidInput, s.maxBytes)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	mtype, err := mimetype.DetectFile(tmpName)
	if err != nil {
		return fmt.Errorf("failed to detect resume type: %w", err)
	}
	if !mtype.Is("application/pdf") {
		return fmt.Errorf("%w: content is %s", ErrInvalidInput, mtype.String())
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace resume: %w", err)
	}

	s.logger.Info("resume stored", "path", s.path, "bytes", n)
	return nil
}

// Open returns the stored resume. Callers close the file.
func (s *Store) Open() (*os.File, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open resume: %w", err)
	}
	return f, nil
}
