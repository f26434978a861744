package testhelper

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
)

// SourceText returns a deterministic text of n runes.
func SourceText(n int) string {
	return strings.Repeat("a", n)
}

// SeedGeneration inserts a generation record owned by userID.
func SeedGeneration(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Generation {
	t.Helper()

	text := SourceText(1500)
	sum := md5.Sum([]byte(text))
	g := domain.Generation{
		UserID:             userID,
		Model:              "test/model",
		SourceTextLength:   len(text),
		SourceTextHash:     hex.EncodeToString(sum[:]),
		GeneratedCount:     3,
		GenerationDuration: 1,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO generations (user_id, model, source_text_length, source_text_hash, generated_count, generation_duration)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		g.UserID, g.Model, g.SourceTextLength, g.SourceTextHash, g.GeneratedCount, g.GenerationDuration,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedGeneration: %v", err)
	}

	return g
}

// SeedFlashcard inserts a flashcard. A nil generationID seeds a manual card,
// otherwise an ai-full card linked to the generation.
func SeedFlashcard(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, generationID *int64, question string) domain.Flashcard {
	t.Helper()

	source := domain.SourceManual
	if generationID != nil {
		source = domain.SourceAIFull
	}

	fc := domain.Flashcard{
		UserID:       userID,
		GenerationID: generationID,
		Question:     question,
		Answer:       "answer to " + question,
		Source:       source,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO flashcards (user_id, generation_id, question, answer, source)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		fc.UserID, fc.GenerationID, fc.Question, fc.Answer, string(fc.Source),
	).Scan(&fc.ID, &fc.CreatedAt, &fc.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedFlashcard: %v", err)
	}

	return fc
}
