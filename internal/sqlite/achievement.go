package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/portfolio/internal/domain/catalog"
	"github.com/rpggio/portfolio/internal/repository"
)

// AchievementRepository implements catalog.AchievementRepository for SQLite
type AchievementRepository struct {
	db *DB
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// ListVisible returns visible achievements, newest first
func (r *AchievementRepository) ListVisible(ctx context.Context) ([]catalog.Achievement, error) {
	return r.list(ctx, "WHERE visible = 1")
}

// ListAll returns every achievement, newest first
func (r *AchievementRepository) ListAll(ctx context.Context) ([]catalog.Achievement, error) {
	return r.list(ctx, "")
}

func (r *AchievementRepository) list(ctx context.Context, where string) ([]catalog.Achievement, error) {
	query := `
		SELECT id, title, description, icon, cover_image, date, visible
		FROM achievements
		` + where + `
		ORDER BY date DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	achievements := []catalog.Achievement{}
	for rows.Next() {
		var a catalog.Achievement
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Description,
			&a.Icon,
			&a.CoverImage,
			&a.Date,
			&a.Visible,
		); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievement rows: %w", err)
	}

	return achievements, nil
}

// Create inserts an achievement and sets its ID
func (r *AchievementRepository) Create(ctx context.Context, a *catalog.Achievement) error {
	query := `
		INSERT INTO achievements (title, description, icon, cover_image, date, visible)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		a.Title,
		a.Description,
		a.Icon,
		a.CoverImage,
		a.Date,
		a.Visible,
	)
	if err != nil {
		return fmt.Errorf("failed to create achievement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get achievement id: %w", err)
	}
	a.ID = id

	return nil
}

// ToggleVisible flips an achievement's visibility
func (r *AchievementRepository) ToggleVisible(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE achievements SET visible = NOT visible WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to toggle achievement: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
