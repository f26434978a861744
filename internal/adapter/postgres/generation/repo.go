// Package generation implements the Generation repository using PostgreSQL.
package generation

import (
	"context"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/flashgen-backend/internal/adapter/postgres"
	"github.com/heartmarshall/flashgen-backend/internal/domain"
)

// Repo provides generation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new generation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a generation record and returns it with ID and CreatedAt set.
func (r *Repo) Create(ctx context.Context, g domain.Generation) (domain.Generation, error) {
	query, args, err := postgres.Builder().
		Insert("generations").
		Columns("user_id", "model", "source_text_length", "source_text_hash", "generated_count", "generation_duration").
		Values(g.UserID, g.Model, g.SourceTextLength, g.SourceTextHash, g.GeneratedCount, g.GenerationDuration).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return domain.Generation{}, err
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	if err := q.QueryRow(ctx, query, args...).Scan(&g.ID, &g.CreatedAt); err != nil {
		return domain.Generation{}, postgres.MapError(err, "generation", "new")
	}

	return g, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getOwnerSQL = `SELECT user_id FROM generations WHERE id = $1`

// GetOwner returns the user that owns the generation.
// Returns domain.ErrNotFound when the generation does not exist.
func (r *Repo) GetOwner(ctx context.Context, id int64) (uuid.UUID, error) {
	var owner uuid.UUID

	q := postgres.QuerierFromCtx(ctx, r.db)
	if err := q.QueryRow(ctx, getOwnerSQL, id).Scan(&owner); err != nil {
		return uuid.Nil, postgres.MapError(err, "generation", id)
	}

	return owner, nil
}
