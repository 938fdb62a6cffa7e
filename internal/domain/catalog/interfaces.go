package catalog

import "context"

// ProjectSource yields the visible projects in source order.
type ProjectSource interface {
	Projects(ctx context.Context) ([]Project, error)
}

// ProjectStore is a writable project source.
type ProjectStore interface {
	ProjectSource
	Create(ctx context.Context, proj *Project) error
}

// AchievementRepository provides persistence for achievements.
type AchievementRepository interface {
	ListVisible(ctx context.Context) ([]Achievement, error)
	ListAll(ctx context.Context) ([]Achievement, error)
	Create(ctx context.Context, a *Achievement) error
	ToggleVisible(ctx context.Context, id int64) error
}
