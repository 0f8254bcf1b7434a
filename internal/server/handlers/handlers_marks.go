package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"eventmanager/internal/api"
)

func (h *Handler) registerForEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	acc := accountFrom(ctx)
	eventID := chi.URLParam(r, "id")

	// The detail fields are optional and merely echoed back; the store keeps
	// only the (account, event) mark.
	var req api.EventRegistrationRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			h.fail(ctx, w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	event, err := h.findEvent(ctx, eventID)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	if event == nil {
		h.fail(ctx, w, http.StatusNotFound, "event not found")
		return
	}

	registered, err := h.store.IsRegisteredForEvent(ctx, acc.ID, eventID)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	if registered {
		h.fail(ctx, w, http.StatusBadRequest, "already registered for this event")
		return
	}

	if err := h.store.RegisterForEvent(ctx, acc.ID, eventID); err != nil {
		h.serverError(ctx, w, err)
		return
	}

	h.log.Info(ctx, "event registration", "user_id", acc.ID, "event_id", eventID)
	h.writeJSON(ctx, w, http.StatusCreated, api.RegistrationResponse{
		BaseResponse: api.BaseResponse{Success: true, Message: "registered for event"},
		Registration: &api.RegistrationData{
			ID:        uuid.NewString(),
			EventID:   eventID,
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			StudentID: req.StudentID,
		},
	})
}

func (h *Handler) cancelRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	acc := accountFrom(ctx)
	eventID := chi.URLParam(r, "id")

	removed, err := h.store.CancelRegistration(ctx, acc.ID, eventID)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	if !removed {
		h.fail(ctx, w, http.StatusNotFound, "registration not found")
		return
	}
	h.ok(ctx, w, "registration cancelled")
}

func (h *Handler) myRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	acc := accountFrom(ctx)

	ids, err := h.store.RegisteredEvents(ctx, acc.ID)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}

	out := make([]api.RegistrationData, 0, len(ids))
	for _, id := range ids {
		out = append(out, api.RegistrationData{EventID: id})
	}

	h.writeJSON(ctx, w, http.StatusOK, api.MyRegistrationsResponse{
		BaseResponse:  api.BaseResponse{Success: true},
		Count:         len(out),
		Registrations: out,
	})
}

func (h *Handler) setReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	acc := accountFrom(ctx)
	eventID := chi.URLParam(r, "id")

	event, err := h.findEvent(ctx, eventID)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	if event == nil {
		h.fail(ctx, w, http.StatusNotFound, "event not found")
		return
	}

	exists, err := h.store.HasReminder(ctx, acc.ID, eventID)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	if exists {
		h.fail(ctx, w, http.StatusBadRequest, "reminder already set for this event")
		return
	}

	if err := h.store.SetReminder(ctx, acc.ID, eventID); err != nil {
		h.serverError(ctx, w, err)
		return
	}

	h.writeJSON(ctx, w, http.StatusCreated, api.ReminderResponse{
		BaseResponse: api.BaseResponse{Success: true, Message: "reminder set"},
		Reminder:     &api.ReminderData{EventID: eventID},
	})
}

func (h *Handler) cancelReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	acc := accountFrom(ctx)
	eventID := chi.URLParam(r, "id")

	removed, err := h.store.CancelReminder(ctx, acc.ID, eventID)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	if !removed {
		h.fail(ctx, w, http.StatusNotFound, "reminder not found")
		return
	}
	h.ok(ctx, w, "reminder cancelled")
}

func (h *Handler) myReminders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	acc := accountFrom(ctx)

	ids, err := h.store.Reminders(ctx, acc.ID)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}

	out := make([]api.ReminderData, 0, len(ids))
	for _, id := range ids {
		out = append(out, api.ReminderData{EventID: id})
	}

	h.writeJSON(ctx, w, http.StatusOK, api.MyRemindersResponse{
		BaseResponse: api.BaseResponse{Success: true},
		Count:        len(out),
		Reminders:    out,
	})
}
