package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"cafe-pos/internal/domain"
)

type contextKey string

const userContextKey contextKey = "authenticatedUser"

// requireAuth extracts the bearer token from the Authorization header,
// verifies it, and injects the resolved user into the request context before
// handing off. Verification and business logic never mix: handlers behind
// this wrapper can assume currentUser(r) is non-nil.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw string
		if header := r.Header.Get("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 {
				raw = parts[1]
			}
		}
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "Token is missing")
			return
		}

		user, err := h.Auth.Verify(raw)
		if err != nil {
			if errors.Is(err, domain.ErrExpiredToken) {
				writeError(w, http.StatusUnauthorized, "Token has expired")
				return
			}
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

func currentUser(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}
