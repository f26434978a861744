package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/flashgen-backend/pkg/ctxutil"
)

//go:generate moq -out identity_resolver_mock_test.go -pkg middleware . identityResolver

func TestAuth(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantUser    bool
		wantLookups int
		wantMessage string
	}{
		{name: "no header is anonymous", wantStatus: http.StatusOK},
		{name: "valid bearer", header: "Bearer good", wantStatus: http.StatusOK, wantUser: true, wantLookups: 1},
		{name: "scheme is case-insensitive", header: "bearer good", wantStatus: http.StatusOK, wantUser: true, wantLookups: 1},
		{name: "invalid token", header: "Bearer bad", wantStatus: http.StatusUnauthorized, wantLookups: 1, wantMessage: "Invalid or expired access token"},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized, wantMessage: "Malformed authorization header"},
		{name: "empty bearer", header: "Bearer   ", wantStatus: http.StatusUnauthorized, wantMessage: "Malformed authorization header"},
		{name: "no scheme", header: "good", wantStatus: http.StatusUnauthorized, wantMessage: "Malformed authorization header"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver := &identityResolverMock{
				ValidateTokenFunc: func(_ context.Context, token string) (uuid.UUID, error) {
					if token == "good" {
						return userID, nil
					}
					return uuid.Nil, errors.New("invalid token")
				},
			}

			var gotUser uuid.UUID
			var gotOK bool
			h := Auth(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, gotOK = ctxutil.UserIDFromCtx(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/flashcards", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Len(t, resolver.ValidateTokenCalls(), tt.wantLookups)
			assert.Equal(t, tt.wantUser, gotOK)
			if tt.wantUser {
				assert.Equal(t, userID, gotUser)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
				assert.Contains(t, rec.Body.String(), `"error":"Unauthorized"`)
				assert.Contains(t, rec.Body.String(), tt.wantMessage)
			}
		})
	}
}

func TestAuth_RecordsCallerOnWriter(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	resolver := &identityResolverMock{
		ValidateTokenFunc: func(context.Context, string) (uuid.UUID, error) { return userID, nil },
	}

	sw := wrapWriter(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer t")

	Auth(resolver)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(sw, req)

	require.Equal(t, userID, sw.userID)
}
