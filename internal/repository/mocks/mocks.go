package mocks

import (
	"context"
	"time"

	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/catalog"
	"github.com/rpggio/portfolio/internal/domain/comment"
	"github.com/rpggio/portfolio/internal/domain/counter"
	"github.com/stretchr/testify/mock"
)

// CounterRepository is a mock for counter.Repository.
type CounterRepository struct {
	mock.Mock
}

func (m *CounterRepository) Consume(ctx context.Context, kind counter.ActionKind, clientKey string, now time.Time, cooldown time.Duration) (bool, error) {
	args := m.Called(ctx, kind, clientKey, now, cooldown)
	return args.Bool(0), args.Error(1)
}

func (m *CounterRepository) Aggregate(ctx context.Context) (counter.Aggregate, error) {
	args := m.Called(ctx)
	return args.Get(0).(counter.Aggregate), args.Error(1)
}

func (m *CounterRepository) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *CounterRepository) PruneBefore(ctx context.Context, kind counter.ActionKind, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, kind, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// CommentRepository is a mock for comment.Repository.
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CommentRepository) List(ctx context.Context) ([]comment.Comment, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]comment.Comment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CommentRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// ProjectStore is a mock for catalog.ProjectStore.
type ProjectStore struct {
	mock.Mock
}

func (m *ProjectStore) Projects(ctx context.Context) ([]catalog.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]catalog.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectStore) Create(ctx context.Context, proj *catalog.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

// AchievementRepository is a mock for catalog.AchievementRepository.
type AchievementRepository struct {
	mock.Mock
}

func (m *AchievementRepository) ListVisible(ctx context.Context) ([]catalog.Achievement, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]catalog.Achievement); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AchievementRepository) ListAll(ctx context.Context) ([]catalog.Achievement, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]catalog.Achievement); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AchievementRepository) Create(ctx context.Context, a *catalog.Achievement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AchievementRepository) ToggleVisible(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
