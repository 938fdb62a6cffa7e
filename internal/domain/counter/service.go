package counter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Service exposes the aggregate and its maintenance operations.
type Service struct {
	repo     Repository
	policies Policies
	logger   *slog.Logger
}

// NewService creates a stats service.
func NewService(repo Repository, policies Policies, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, policies: policies, logger: logger}
}

// Aggregate returns the current counters.
func (s *Service) Aggregate(ctx context.Context) (Aggregate, error) {
	agg, err := s.repo.Aggregate(ctx)
	if err != nil {
		return Aggregate{}, fmt.Errorf("%w: reading aggregate: %w", ErrStorageUnavailable, err)
	}
	return agg, nil
}

// Reset zeroes both counters and forgets every client record.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.Reset(ctx); err != nil {
		return fmt.Errorf("%w: resetting stats: %w", ErrStorageUnavailable, err)
	}
	s.logger.Info("stats reset")
	return nil
}

// PruneExpired drops client records whose cooldown has fully elapsed at now.
// Such records can no longer block anything.
func (s *Service) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	var total int64
	for kind, cooldown := range s.policies {
		n, err := s.repo.PruneBefore(ctx, kind, now.Add(-cooldown))
		if err != nil {
			return total, fmt.Errorf("%w: pruning %s records: %w", ErrStorageUnavailable, kind, err)
		}
		total += n
	}
	if total > 0 {
		s.logger.Info("pruned client records", "count", total)
	}
	return total, nil
}
