package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/portfolio/internal/domain/comment"
)

// CommentRepository implements comment.Repository for SQLite
type CommentRepository struct {
	db *DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create appends a comment and sets its ID
func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	query := `
		INSERT INTO comments (name, comment, timestamp)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, c.Name, c.Text, c.SubmittedAt.Format(comment.TimestampLayout))
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get comment id: %w", err)
	}
	c.ID = id

	return nil
}

// List returns all comments, newest first
func (r *CommentRepository) List(ctx context.Context) ([]comment.Comment, error) {
	query := `
		SELECT id, name, comment, timestamp
		FROM comments
		ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []comment.Comment{}
	for rows.Next() {
		var c comment.Comment
		var stamp string
		if err := rows.Scan(&c.ID, &c.Name, &c.Text, &stamp); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.SubmittedAt, err = time.ParseInLocation(comment.TimestampLayout, stamp, time.Local)
		if err != nil {
			return nil, fmt.Errorf("failed to parse comment timestamp %q: %w", stamp, err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// Delete removes a comment; a missing id is not an error
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// Count returns the number of stored comments
func (r *CommentRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return n, nil
}
