package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rpggio/portfolio/internal/domain/catalog"
	"github.com/rpggio/portfolio/internal/repository"
)

// ProjectRepository implements catalog.ProjectStore for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a project; a duplicate slug yields repository.ErrConflict
func (r *ProjectRepository) Create(ctx context.Context, proj *catalog.Project) error {
	// nil tech is stored as null so exports keep an explicit null
	techJSON, err := json.Marshal(proj.Tech)
	if err != nil {
		return fmt.Errorf("failed to encode tech: %w", err)
	}
	mediaJSON := []byte(proj.Media)
	if len(mediaJSON) == 0 {
		mediaJSON = []byte("{}")
	} else if !json.Valid(mediaJSON) {
		return fmt.Errorf("failed to encode media: invalid JSON for %q", proj.Slug)
	}

	status := proj.Status
	if status == "" {
		status = catalog.StatusCompleted
	}
	createdAt := proj.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO projects (
			slug, title, short_desc, details, tech, media, status,
			github, demo, sort_rank, visible, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.Slug,
		proj.Title,
		proj.ShortDesc,
		proj.Details,
		string(techJSON),
		string(mediaJSON),
		status,
		proj.GithubURL,
		proj.DemoURL,
		proj.Rank,
		proj.Visible,
		createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		proj.ID = id
	}
	proj.Status = status
	proj.CreatedAt = createdAt

	return nil
}

// Projects returns visible projects in insertion order
func (r *ProjectRepository) Projects(ctx context.Context) ([]catalog.Project, error) {
	query := `
		SELECT
			id, slug, title, short_desc, details, tech, media, status,
			github, demo, sort_rank, visible, created_at
		FROM projects
		WHERE visible = 1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []catalog.Project{}
	for rows.Next() {
		var proj catalog.Project
		var techJSON, mediaJSON string
		var github, demo sql.NullString
		var rank sql.NullFloat64
		err := rows.Scan(
			&proj.ID,
			&proj.Slug,
			&proj.Title,
			&proj.ShortDesc,
			&proj.Details,
			&techJSON,
			&mediaJSON,
			&proj.Status,
			&github,
			&demo,
			&rank,
			&proj.Visible,
			&proj.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}

		if err := json.Unmarshal([]byte(techJSON), &proj.Tech); err != nil {
			return nil, fmt.Errorf("failed to decode tech for %q: %w", proj.Slug, err)
		}
		if !json.Valid([]byte(mediaJSON)) {
			return nil, fmt.Errorf("failed to decode media for %q: invalid JSON", proj.Slug)
		}
		proj.Media = json.RawMessage(mediaJSON)
		if github.Valid {
			proj.GithubURL = &github.String
		}
		if demo.Valid {
			proj.DemoURL = &demo.String
		}
		if rank.Valid {
			proj.Rank = &rank.Float64
		}
		projects = append(projects, proj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}
