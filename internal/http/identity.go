package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	applog "smartbudget/internal/log"
	"smartbudget/internal/storage"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

// withIdentity resolves the authenticated email header to a user ID.
// Authentication itself happens upstream; an absent or unknown email is a
// 401 and the handler never runs.
func (s *Server) withIdentity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.Header.Get(s.emailHeader))
		if email == "" {
			writeError(w, http.StatusUnauthorized, "missing identity header")
			return
		}

		userID, err := s.identity.ResolveUserID(r.Context(), email)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				writeError(w, http.StatusUnauthorized, "unknown user")
				return
			}
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "Identity resolution failed",
				applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "identity resolution failed")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// userIDFrom returns the resolved user ID. Zero only when the identity
// middleware did not run, which is a routing bug.
func userIDFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDContextKey).(int64)
	return id
}
