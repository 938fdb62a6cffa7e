package comment

import "context"

// Repository provides persistence for comments.
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	List(ctx context.Context) ([]Comment, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
