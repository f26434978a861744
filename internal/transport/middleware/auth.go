package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashgen-backend/pkg/ctxutil"
)

type identityResolver interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Auth resolves an optional caller identity from a bearer token.
// Requests without an Authorization header pass through anonymously.
// A header that is not "Bearer <token>", or a token that fails
// validation, is rejected with 401.
func Auth(resolver identityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				unauthorized(w, "Malformed authorization header")
				return
			}
			userID, err := resolver.ValidateToken(r.Context(), token)
			if err != nil {
				unauthorized(w, "Invalid or expired access token")
				return
			}

			if sw, ok := w.(*statusWriter); ok {
				sw.userID = userID
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="flashgen"`)
	writeError(w, http.StatusUnauthorized, "Unauthorized", message)
}
