package handlers

import (
	"context"
	"net/http"
	"strings"

	"eventmanager/internal/models"
	"eventmanager/internal/server/auth"
)

type ctxKey int

const accountCtxKey ctxKey = iota

// accountFrom returns the authenticated account installed by requireAuth, or
// nil when the request skipped authentication.
func accountFrom(ctx context.Context) *models.Account {
	acc, _ := ctx.Value(accountCtxKey).(*models.Account)
	return acc
}

// requireAuth verifies the Bearer token, resolves the account behind it, and
// installs the account in the request context.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			h.fail(ctx, w, http.StatusUnauthorized, "authentication required")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, h.secretKey)
		if err != nil {
			h.fail(ctx, w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		accounts, err := h.store.Accounts(ctx)
		if err != nil {
			h.serverError(ctx, w, err)
			return
		}
		for i := range accounts {
			if accounts[i].ID == userID {
				next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, accountCtxKey, &accounts[i])))
				return
			}
		}
		h.fail(ctx, w, http.StatusUnauthorized, "account not found")
	})
}

// requireAdmin rejects non-admin accounts. Must run after requireAuth.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acc := accountFrom(r.Context())
		if acc == nil || !acc.IsAdmin() {
			h.fail(r.Context(), w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
