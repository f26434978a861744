package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/flashgen-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/flashgen-backend/internal/adapter/provider/stub"
	"github.com/heartmarshall/flashgen-backend/internal/apiclient"
	"github.com/heartmarshall/flashgen-backend/internal/auth"
	"github.com/heartmarshall/flashgen-backend/internal/config"
	"github.com/heartmarshall/flashgen-backend/internal/domain"
	"github.com/heartmarshall/flashgen-backend/internal/review"
)

const e2eSecret = "e2e-secret-that-is-at-least-32-characters"

func e2eConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      e2eSecret,
			JWTIssuer:      "flashgen",
			AccessTokenTTL: time.Hour,
		},
		AI: config.AIConfig{
			Provider:    "stub",
			Model:       stub.Model,
			Temperature: 0.7,
			MaxTokens:   4000,
		},
		Generation: config.GenerationConfig{MinSourceLen: 1000, MaxSourceLen: 10000},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type,X-Request-Id,X-AI-Api-Key",
			MaxAge:         600,
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics", Namespace: "flashgen_e2e"},
	}
}

type e2eServer struct {
	url    string
	issuer *auth.JWTManager
}

func startServer(t *testing.T) *e2eServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	cfg := e2eConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := build(cfg, pool, stub.New(), logger)
	t.Cleanup(h.close)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return &e2eServer{
		url:    srv.URL,
		issuer: auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
	}
}

func (s *e2eServer) client(t *testing.T, userID *uuid.UUID) *apiclient.Client {
	t.Helper()

	opts := apiclient.Options{BaseURL: s.url, Timeout: 10 * time.Second}
	if userID != nil {
		token, err := s.issuer.GenerateAccessToken(*userID)
		require.NoError(t, err)
		opts.Token = token
	}
	return apiclient.New(opts, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestE2E_GenerateReviewSaveListDelete(t *testing.T) {
	srv := startServer(t)
	userID := uuid.New()
	c := srv.client(t, &userID)
	ctx := context.Background()

	gen, err := c.Generate(ctx, testhelper.SourceText(1500))
	require.NoError(t, err)
	require.NotNil(t, gen.GenerationID)
	require.NotEmpty(t, gen.Proposals)
	assert.True(t, strings.HasPrefix(gen.Proposals[0].Question, "Sample question 1"))

	stored, err := c.List(ctx, apiclient.ListParams{GenerationID: *gen.GenerationID})
	require.NoError(t, err)
	assert.Equal(t, len(gen.Proposals), stored.Pagination.Total)

	err = c.Save(ctx, gen.GenerationID, []review.SaveCard{
		{Question: "Edited question?", Answer: gen.Proposals[0].Answer, Source: domain.SourceAIEdited},
		{Question: gen.Proposals[1].Question, Answer: gen.Proposals[1].Answer, Source: domain.SourceAIFull},
	})
	require.NoError(t, err)

	edited, err := c.List(ctx, apiclient.ListParams{Source: "ai-edited"})
	require.NoError(t, err)
	require.Len(t, edited.Data, 1)
	assert.Equal(t, "Edited question?", edited.Data[0].Question)
	require.NotNil(t, edited.Data[0].GenerationID)
	assert.Equal(t, *gen.GenerationID, *edited.Data[0].GenerationID)

	all, err := c.List(ctx, apiclient.ListParams{Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, len(gen.Proposals)+2, all.Pagination.Total)

	require.NoError(t, c.Delete(ctx, edited.Data[0].ID))

	after, err := c.List(ctx, apiclient.ListParams{Source: "ai-edited"})
	require.NoError(t, err)
	assert.Equal(t, 0, after.Pagination.Total)

	assert.NoError(t, c.Delete(ctx, edited.Data[0].ID), "delete is idempotent")
}

func TestE2E_AnonymousGenerationIsNotStored(t *testing.T) {
	srv := startServer(t)
	c := srv.client(t, nil)

	gen, err := c.Generate(context.Background(), testhelper.SourceText(1500))
	require.NoError(t, err)
	assert.Nil(t, gen.GenerationID)
	assert.NotEmpty(t, gen.Proposals)

	_, err = c.List(context.Background(), apiclient.ListParams{})
	assert.True(t, apiclient.IsUnauthorized(err))
}

func TestE2E_OtherUsersCardsAreInvisible(t *testing.T) {
	srv := startServer(t)
	owner, stranger := uuid.New(), uuid.New()
	ctx := context.Background()

	gen, err := srv.client(t, &owner).Generate(ctx, testhelper.SourceText(1500))
	require.NoError(t, err)

	page, err := srv.client(t, &stranger).List(ctx, apiclient.ListParams{GenerationID: *gen.GenerationID})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Pagination.Total)
}

func TestE2E_ShortSourceIsRejected(t *testing.T) {
	srv := startServer(t)
	userID := uuid.New()

	_, err := srv.client(t, &userID).Generate(context.Background(), "too short")

	var es *review.ErrorState
	require.ErrorAs(t, err, &es)
	assert.Contains(t, es.Message, "Invalid data")
	assert.True(t, es.CanRetry)
	assert.False(t, es.ShouldRedirect)
}

func TestE2E_HealthAndMetrics(t *testing.T) {
	srv := startServer(t)

	for _, path := range []string{"/live", "/ready", "/health", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(srv.url + path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}
