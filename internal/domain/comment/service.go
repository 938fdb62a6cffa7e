package comment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Field limits for submitted comments.
const (
	MaxNameLength = 80
	MaxTextLength = 2000
)

// Service handles the append-only comment log.
type Service struct {
	repo   Repository
	now    func() time.Time
	logger *slog.Logger
}

// NewService creates a new comment service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, now: time.Now, logger: logger}
}

// WithClock replaces the submission clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Append validates and stores a comment, returning its id.
func (s *Service) Append(ctx context.Context, name, text string) (int64, error) {
	name = strings.TrimSpace(name)
	text = strings.TrimSpace(text)
	if name == "" || text == "" {
		return 0, ErrInvalidInput
	}
	if len([]rune(name)) > MaxNameLength || len([]rune(text)) > MaxTextLength {
		return 0, ErrInvalidInput
	}

	c := &Comment{
		Name:        name,
		Text:        text,
		SubmittedAt: s.now().Truncate(time.Minute),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return 0, fmt.Errorf("creating comment: %w", err)
	}
	s.logger.Debug("comment saved", "id", c.ID)
	return c.ID, nil
}

// List returns every comment, newest first.
func (s *Service) List(ctx context.Context) ([]Comment, error) {
	comments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// Count returns the number of stored comments.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting comments: %w", err)
	}
	return n, nil
}

// Delete removes a comment. Deleting a missing id is a no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}
