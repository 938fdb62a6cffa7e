package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/portfolio/internal/domain/comment"
	"github.com/rpggio/portfolio/migrations"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateList(t *testing.T) {
	db := NewTestDB(t, migrations.Stats)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	first := &comment.Comment{
		Name:        "Ann",
		Text:        "hi",
		SubmittedAt: time.Date(2024, 1, 2, 3, 4, 0, 0, time.Local),
	}
	second := &comment.Comment{
		Name:        "Bo",
		Text:        "nice work",
		SubmittedAt: time.Date(2024, 1, 2, 3, 5, 0, 0, time.Local),
	}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NotZero(t, first.ID)
	require.Greater(t, second.ID, first.ID)

	comments, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "Bo", comments[0].Name)
	require.Equal(t, "Ann", comments[1].Name)
	require.Equal(t, "2024-01-02 03:04", comments[1].Timestamp())
	require.True(t, first.SubmittedAt.Equal(comments[1].SubmittedAt))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestCommentRepository_Delete(t *testing.T) {
	db := NewTestDB(t, migrations.Stats)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	c := &comment.Comment{Name: "Ann", Text: "hi", SubmittedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.Delete(ctx, c.ID))
	require.NoError(t, repo.Delete(ctx, c.ID), "deleting a missing comment is not an error")

	comments, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 0)
}
