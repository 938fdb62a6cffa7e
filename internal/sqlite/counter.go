package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/portfolio/internal/domain/counter"
	"github.com/rpggio/portfolio/internal/repository"
)

// CounterRepository implements counter.Repository for SQLite
type CounterRepository struct {
	db *DB
}

// NewCounterRepository creates a new CounterRepository
func NewCounterRepository(db *DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// kindColumns maps an action kind to its client table and aggregate column.
func kindColumns(kind counter.ActionKind) (table, column string, err error) {
	switch kind {
	case counter.KindView:
		return "view_clients", "views", nil
	case counter.KindLike:
		return "like_clients", "likes", nil
	default:
		return "", "", fmt.Errorf("%w: %q", counter.ErrUnknownKind, kind)
	}
}

// Consume atomically checks the client's cooldown and records the action.
//
// The check and the upsert are one statement: the conflict branch only
// updates when the stored action is older than the cooldown, so a concurrent
// duplicate sees zero affected rows.
func (r *CounterRepository) Consume(ctx context.Context, kind counter.ActionKind, clientKey string, now time.Time, cooldown time.Duration) (bool, error) {
	table, column, err := kindColumns(kind)
	if err != nil {
		return false, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsertQuery := fmt.Sprintf(`
		INSERT INTO %[1]s (client_key, last_action_at)
		VALUES (?, ?)
		ON CONFLICT(client_key) DO UPDATE
		SET last_action_at = excluded.last_action_at
		WHERE excluded.last_action_at - %[1]s.last_action_at > ?
	`, table)

	result, err := tx.ExecContext(ctx, upsertQuery, clientKey, now.Unix(), int64(cooldown/time.Second))
	if err != nil {
		return false, fmt.Errorf("failed to upsert %s client: %w", kind, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, nil
	}

	updateQuery := fmt.Sprintf(`UPDATE stats SET %[1]s = %[1]s + 1 WHERE id = 1`, column)
	result, err = tx.ExecContext(ctx, updateQuery)
	if err != nil {
		return false, fmt.Errorf("failed to increment %s: %w", column, err)
	}
	rowsAffected, err = result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, fmt.Errorf("failed to increment %s: %w", column, repository.ErrNotFound)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}

// Aggregate reads the singleton counters row
func (r *CounterRepository) Aggregate(ctx context.Context) (counter.Aggregate, error) {
	var agg counter.Aggregate
	var views, likes int64
	err := r.db.QueryRowContext(ctx, `SELECT views, likes FROM stats WHERE id = 1`).Scan(&views, &likes)
	if err == sql.ErrNoRows {
		return agg, repository.ErrNotFound
	}
	if err != nil {
		return agg, fmt.Errorf("failed to get aggregate: %w", err)
	}

	agg.Views = uint64(views)
	agg.Likes = uint64(likes)
	return agg, nil
}

// Reset zeroes the counters and clears every client record in one transaction
func (r *CounterRepository) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`INSERT OR IGNORE INTO stats (id, views, likes) VALUES (1, 0, 0)`,
		`UPDATE stats SET views = 0, likes = 0 WHERE id = 1`,
		`DELETE FROM view_clients`,
		`DELETE FROM like_clients`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to reset stats: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// PruneBefore deletes client records of kind last seen before cutoff
func (r *CounterRepository) PruneBefore(ctx context.Context, kind counter.ActionKind, cutoff time.Time) (int64, error) {
	table, _, err := kindColumns(kind)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE last_action_at < ?`, table)
	result, err := r.db.ExecContext(ctx, query, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune %s clients: %w", kind, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
