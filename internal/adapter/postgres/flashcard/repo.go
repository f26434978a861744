// Package flashcard implements the Flashcard repository using PostgreSQL.
// Every query is scoped to the owning user.
package flashcard

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/flashgen-backend/internal/adapter/postgres"
	"github.com/heartmarshall/flashgen-backend/internal/domain"
)

var columns = []string{
	"id", "user_id", "generation_id", "question", "answer", "source", "created_at", "updated_at",
}

type row struct {
	ID           int64     `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	GenerationID *int64    `db:"generation_id"`
	Question     string    `db:"question"`
	Answer       string    `db:"answer"`
	Source       string    `db:"source"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Flashcard {
	return domain.Flashcard{
		ID:           r.ID,
		UserID:       r.UserID,
		GenerationID: r.GenerationID,
		Question:     r.Question,
		Answer:       r.Answer,
		Source:       domain.Source(r.Source),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toDomain(rows []row) []domain.Flashcard {
	out := make([]domain.Flashcard, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// Repo provides flashcard persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new flashcard repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateBatch inserts all cards with a single multi-row INSERT and returns
// them in input order with IDs and timestamps set.
func (r *Repo) CreateBatch(ctx context.Context, cards []domain.Flashcard) ([]domain.Flashcard, error) {
	if len(cards) == 0 {
		return []domain.Flashcard{}, nil
	}

	b := postgres.Builder().
		Insert("flashcards").
		Columns("user_id", "generation_id", "question", "answer", "source")
	for _, c := range cards {
		b = b.Values(c.UserID, c.GenerationID, c.Question, c.Answer, string(c.Source))
	}

	query, args, err := b.Suffix("RETURNING " + joinColumns()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert flashcards: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "flashcards", fmt.Sprintf("batch of %d", len(cards)))
	}

	return toDomain(rows), nil
}

// Update sets question and/or answer on a card owned by userID.
// A nil field is left unchanged. Returns domain.ErrNotFound when the card
// does not exist or belongs to another user.
func (r *Repo) Update(ctx context.Context, userID uuid.UUID, id int64, question, answer *string) (domain.Flashcard, error) {
	b := postgres.Builder().
		Update("flashcards").
		Where(sq.Eq{"id": id, "user_id": userID})
	if question != nil {
		b = b.Set("question", *question)
	}
	if answer != nil {
		b = b.Set("answer", *answer)
	}

	query, args, err := b.Suffix("RETURNING " + joinColumns()).ToSql()
	if err != nil {
		return domain.Flashcard{}, fmt.Errorf("build update flashcard: %w", err)
	}

	return r.getOne(ctx, id, query, args...)
}

// Delete removes a card owned by userID. Deleting a missing card is not an error.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	_, err := r.DeleteBatch(ctx, userID, []int64{id})
	return err
}

// DeleteBatch removes the given cards owned by userID and returns how many
// rows were actually deleted. IDs of missing or foreign cards are skipped.
func (r *Repo) DeleteBatch(ctx context.Context, userID uuid.UUID, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := postgres.Builder().
		Delete("flashcards").
		Where(sq.Eq{"user_id": userID, "id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete flashcards: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "flashcards", ids)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a card owned by userID.
func (r *Repo) GetByID(ctx context.Context, userID uuid.UUID, id int64) (domain.Flashcard, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("flashcards").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return domain.Flashcard{}, fmt.Errorf("build get flashcard: %w", err)
	}

	return r.getOne(ctx, id, query, args...)
}

// List returns one page of the user's cards and the total number of cards
// matching the filter (ignoring limit/offset).
func (r *Repo) List(ctx context.Context, userID uuid.UUID, f domain.FlashcardFilter) ([]domain.Flashcard, int, error) {
	where := sq.And{sq.Eq{"user_id": userID}}
	if f.Source != nil {
		where = append(where, sq.Eq{"source": string(*f.Source)})
	}
	if f.GenerationID != nil {
		where = append(where, sq.Eq{"generation_id": *f.GenerationID})
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	countSQL, countArgs, err := postgres.Builder().
		Select("count(*)").
		From("flashcards").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count flashcards: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "flashcards", "count")
	}

	listSQL, listArgs, err := postgres.Builder().
		Select(columns...).
		From("flashcards").
		Where(where).
		OrderBy(orderBy(f.Sort, f.Order)...).
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list flashcards: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, listSQL, listArgs...); err != nil {
		return nil, 0, postgres.MapError(err, "flashcards", "list")
	}

	return toDomain(rows), total, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) getOne(ctx context.Context, id int64, query string, args ...any) (domain.Flashcard, error) {
	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return domain.Flashcard{}, fmt.Errorf("flashcard %d: %w", id, domain.ErrNotFound)
		}
		return domain.Flashcard{}, postgres.MapError(err, "flashcard", id)
	}
	return out.toDomain(), nil
}

// orderBy only ever emits whitelisted column names; id breaks ties so pages
// are stable.
func orderBy(sort domain.FlashcardSort, order domain.SortOrder) []string {
	if !sort.IsValid() {
		sort = domain.FlashcardSortCreatedAt
	}
	dir := "DESC"
	if order == domain.SortOrderAsc {
		dir = "ASC"
	}
	return []string{string(sort) + " " + dir, "id " + dir}
}

func joinColumns() string {
	return strings.Join(columns, ", ")
}
