// Package errorlog implements the generation error log repository using PostgreSQL.
package errorlog

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/flashgen-backend/internal/adapter/postgres"
	"github.com/heartmarshall/flashgen-backend/internal/domain"
)

// Repo stores failed generation attempts.
type Repo struct {
	db postgres.Querier
}

// New creates a new error log repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Insert appends one error log entry.
func (r *Repo) Insert(ctx context.Context, e domain.GenerationErrorLog) error {
	query, args, err := postgres.Builder().
		Insert("generation_error_logs").
		Columns("user_id", "model", "source_text_length", "source_text_hash", "error_code", "error_message").
		Values(e.UserID, e.Model, e.SourceTextLength, e.SourceTextHash, e.ErrorCode, e.ErrorMessage).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert error log: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "generation_error_log", e.ErrorCode)
	}
	return nil
}

// DeleteOlderThan removes entries created before cutoff and returns the number removed.
func (r *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := postgres.Builder().
		Delete("generation_error_logs").
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete error logs: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete error logs before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return tag.RowsAffected(), nil
}

// CountOlderThan returns how many entries DeleteOlderThan would remove.
func (r *Repo) CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := postgres.Builder().
		Select("count(*)").
		From("generation_error_logs").
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count error logs: %w", err)
	}

	var n int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count error logs before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return n, nil
}
