package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/apetrenko/storefront/internal/server/auth"
)

type contextKey string

const subjectKey contextKey = "subject"

// SubjectFromContext returns the verified token subject stored by
// RequireAuth.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok
}

// RequireAuth verifies the Bearer token on the request and injects its
// subject into the context. Requests with a missing, malformed, expired or
// invalidly signed token are rejected before reaching the handler.
func RequireAuth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			subject, err := auth.GetSubjectFromToken(token, secretKey)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
