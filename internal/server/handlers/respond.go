package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"eventmanager/internal/api"
)

// writeJSON serializes v with the given status. Encoding failures are logged;
// at that point headers are already out, so nothing else can be done.
func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error(ctx, "failed to encode response", "error", err)
	}
}

// ok writes a bare success envelope.
func (h *Handler) ok(ctx context.Context, w http.ResponseWriter, message string) {
	h.writeJSON(ctx, w, http.StatusOK, api.BaseResponse{Success: true, Message: message})
}

// fail writes a failure envelope with the given status.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, status int, message string) {
	h.writeJSON(ctx, w, status, api.BaseResponse{Success: false, Message: message})
}

// serverError logs the underlying error and writes a generic 500 envelope so
// internals never leak to the client.
func (h *Handler) serverError(ctx context.Context, w http.ResponseWriter, err error) {
	h.log.Error(ctx, "request failed", "error", err)
	h.fail(ctx, w, http.StatusInternalServerError, "internal server error")
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}
