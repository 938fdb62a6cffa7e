package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpggio/portfolio/internal/repository"
)

// Service is the read path over projects and achievements, plus the
// administrative achievement operations.
type Service struct {
	projects     ProjectSource
	achievements AchievementRepository
	validate     *validator.Validate
	logger       *slog.Logger
}

// NewService creates a new catalog service.
func NewService(projects ProjectSource, achievements AchievementRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		projects:     projects,
		achievements: achievements,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		logger:       logger,
	}
}

// ParseStatus converts a query value into a status filter. An empty value
// means no filter.
func ParseStatus(raw string) (ProjectStatus, error) {
	switch status := ProjectStatus(strings.ToLower(strings.TrimSpace(raw))); status {
	case "", StatusCompleted, StatusOngoing:
		return status, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, raw)
	}
}

// ListProjects returns visible projects sorted by rank, optionally narrowed
// to one status.
func (s *Service) ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	status, err := ParseStatus(string(filter.Status))
	if err != nil {
		return nil, err
	}

	all, err := s.projects.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}

	projects := make([]Project, 0, len(all))
	for _, p := range all {
		if status != "" && p.Status != status {
			continue
		}
		projects = append(projects, p)
	}
	SortByRank(projects)
	return projects, nil
}

// ListAchievements returns visible achievements, newest first.
func (s *Service) ListAchievements(ctx context.Context) ([]Achievement, error) {
	list, err := s.achievements.ListVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing achievements: %w", err)
	}
	return list, nil
}

// ListAllAchievements returns every achievement, hidden ones included.
func (s *Service) ListAllAchievements(ctx context.Context) ([]Achievement, error) {
	list, err := s.achievements.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing achievements: %w", err)
	}
	return list, nil
}

// AddAchievement validates and stores a new, visible achievement.
func (s *Service) AddAchievement(ctx context.Context, req AddAchievementRequest) (*Achievement, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Icon = strings.TrimSpace(req.Icon)
	req.CoverImage = strings.TrimSpace(req.CoverImage)
	req.Date = strings.TrimSpace(req.Date)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	a := &Achievement{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		CoverImage:  req.CoverImage,
		Date:        req.Date,
		Visible:     true,
	}
	if err := s.achievements.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating achievement: %w", err)
	}
	return a, nil
}

// ToggleVisible flips the visibility of an achievement.
func (s *Service) ToggleVisible(ctx context.Context, id int64) error {
	if err := s.achievements.ToggleVisible(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("toggling achievement: %w", err)
	}
	return nil
}
