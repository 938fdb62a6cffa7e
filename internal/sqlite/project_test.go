package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rpggio/portfolio/internal/domain/catalog"
	"github.com/rpggio/portfolio/internal/repository"
	"github.com/rpggio/portfolio/migrations"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestProjectRepository_Create(t *testing.T) {
	db := NewTestDB(t, migrations.Content)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := &catalog.Project{
		Slug:      "p1",
		Title:     "Test Project",
		ShortDesc: "A test project",
		Details:   "Longer text",
		Tech:      []string{"go", "sqlite"},
		Media:     json.RawMessage(`{"image":"p1.png","videoId":9007199254740993}`),
		Status:    catalog.StatusOngoing,
		GithubURL: strPtr("https://github.com/x/p1"),
		Rank:      floatPtr(2.5),
		Visible:   true,
		CreatedAt: time.Now(),
	}

	err := repo.Create(ctx, proj)
	require.NoError(t, err)
	require.NotZero(t, proj.ID)

	projects, err := repo.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	got := projects[0]
	require.Equal(t, proj.ID, got.ID)
	require.Equal(t, "p1", got.Slug)
	require.Equal(t, "Test Project", got.Title)
	require.Equal(t, "A test project", got.ShortDesc)
	require.Equal(t, "Longer text", got.Details)
	require.Equal(t, []string{"go", "sqlite"}, got.Tech)
	require.JSONEq(t, `{"image":"p1.png","videoId":9007199254740993}`, string(got.Media))
	require.Contains(t, string(got.Media), "9007199254740993")
	require.Equal(t, catalog.StatusOngoing, got.Status)
	require.NotNil(t, got.GithubURL)
	require.Equal(t, "https://github.com/x/p1", *got.GithubURL)
	require.Nil(t, got.DemoURL)
	require.NotNil(t, got.Rank)
	require.Equal(t, 2.5, *got.Rank)
	require.True(t, got.Visible)
}

func TestProjectRepository_CreateDefaults(t *testing.T) {
	db := NewTestDB(t, migrations.Content)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := &catalog.Project{Slug: "bare", Title: "Bare", Visible: true}
	require.NoError(t, repo.Create(ctx, proj))
	require.Equal(t, catalog.StatusCompleted, proj.Status)
	require.False(t, proj.CreatedAt.IsZero())

	projects, err := repo.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Nil(t, projects[0].Tech)
	require.Equal(t, `{}`, string(projects[0].Media))
	require.Nil(t, projects[0].Rank)
}

func TestProjectRepository_DuplicateSlug(t *testing.T) {
	db := NewTestDB(t, migrations.Content)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &catalog.Project{Slug: "p1", Title: "One", Visible: true}))

	err := repo.Create(ctx, &catalog.Project{Slug: "p1", Title: "Two", Visible: true})
	require.Equal(t, repository.ErrConflict, err)

	projects, err := repo.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "One", projects[0].Title)
}

func TestProjectRepository_ProjectsOrderAndVisibility(t *testing.T) {
	db := NewTestDB(t, migrations.Content)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	for _, p := range []*catalog.Project{
		{Slug: "a", Title: "A", Visible: true},
		{Slug: "hidden", Title: "Hidden", Visible: false},
		{Slug: "b", Title: "B", Visible: true},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	projects, err := repo.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "a", projects[0].Slug)
	require.Equal(t, "b", projects[1].Slug)
}

func TestProjectRepository_Empty(t *testing.T) {
	db := NewTestDB(t, migrations.Content)
	repo := NewProjectRepository(db)

	projects, err := repo.Projects(context.Background())
	require.NoError(t, err)
	require.NotNil(t, projects)
	require.Len(t, projects, 0)
}
