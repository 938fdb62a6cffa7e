package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/portfolio/internal/domain/catalog"
	"github.com/rpggio/portfolio/internal/repository"
	"github.com/rpggio/portfolio/migrations"
	"github.com/stretchr/testify/require"
)

func insertAchievement(t *testing.T, repo *AchievementRepository, title, date string, visible bool) *catalog.Achievement {
	t.Helper()
	a := &catalog.Achievement{
		Title:       title,
		Description: title + " description",
		Icon:        "🏆",
		Date:        date,
		Visible:     visible,
	}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func TestAchievementRepository_CreateList(t *testing.T) {
	db := NewTestDB(t, migrations.Content)
	repo := NewAchievementRepository(db)
	ctx := context.Background()

	older := insertAchievement(t, repo, "Older", "2023-01-05", true)
	newer := insertAchievement(t, repo, "Newer", "2024-06-01", true)
	insertAchievement(t, repo, "Hidden", "2024-12-01", false)
	require.NotZero(t, older.ID)

	visible, err := repo.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	require.Equal(t, newer.ID, visible[0].ID)
	require.Equal(t, older.ID, visible[1].ID)
	require.Equal(t, "🏆", visible[0].Icon)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Hidden", all[0].Title)
	require.False(t, all[0].Visible)
}

func TestAchievementRepository_ToggleVisible(t *testing.T) {
	db := NewTestDB(t, migrations.Content)
	repo := NewAchievementRepository(db)
	ctx := context.Background()

	a := insertAchievement(t, repo, "Award", "2024-01-01", true)

	require.NoError(t, repo.ToggleVisible(ctx, a.ID))
	visible, err := repo.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 0)

	require.NoError(t, repo.ToggleVisible(ctx, a.ID))
	visible, err = repo.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 1)
}

func TestAchievementRepository_ToggleMissing(t *testing.T) {
	db := NewTestDB(t, migrations.Content)
	repo := NewAchievementRepository(db)

	err := repo.ToggleVisible(context.Background(), 999)
	require.Equal(t, repository.ErrNotFound, err)
}
