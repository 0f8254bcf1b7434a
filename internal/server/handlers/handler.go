// Package handlers implements the HTTP endpoints of the fallback server. The
// surface mirrors the remote event-manager REST API: every response carries
// the success/message envelope and the routes keep the trailing-slash style
// of the remote backend.
package handlers

import (
	"time"

	"eventmanager/internal/localstore"
	"eventmanager/internal/logging"
)

// Handler bundles the dependencies shared by all endpoints.
type Handler struct {
	store         *localstore.Store
	log           logging.Logger
	secretKey     []byte
	tokenValidity time.Duration
}

// NewHandler returns a Handler serving requests from the given store.
func NewHandler(store *localstore.Store, log logging.Logger, secretKey []byte, tokenValidity time.Duration) *Handler {
	return &Handler{
		store:         store,
		log:           log,
		secretKey:     secretKey,
		tokenValidity: tokenValidity,
	}
}
