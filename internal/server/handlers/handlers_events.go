package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"eventmanager/internal/api"
	"eventmanager/internal/models"
	"eventmanager/internal/validate"
)

func eventData(e *models.Event) *api.EventData {
	return &api.EventData{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Category:    e.Category,
	}
}

// findEvent scans the catalogue for the given id. A nil event with a nil
// error means not found.
func (h *Handler) findEvent(ctx context.Context, id string) (*models.Event, error) {
	events, err := h.store.Events(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			return &events[i], nil
		}
	}
	return nil, nil
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	events, err := h.store.Events(ctx)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}

	out := make([]api.EventData, 0, len(events))
	for i := range events {
		out = append(out, *eventData(&events[i]))
	}

	h.writeJSON(ctx, w, http.StatusOK, api.EventListResponse{
		BaseResponse: api.BaseResponse{Success: true},
		Count:        len(out),
		Events:       out,
	})
}

func (h *Handler) eventDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	event, err := h.findEvent(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	if event == nil {
		h.fail(ctx, w, http.StatusNotFound, "event not found")
		return
	}

	h.writeJSON(ctx, w, http.StatusOK, api.EventDetailResponse{
		BaseResponse: api.BaseResponse{Success: true},
		Event:        eventData(event),
	})
}

func (h *Handler) validateEventRequest(req *api.CreateEventRequest) error {
	if err := validate.Category(req.Category); err != nil {
		return err
	}
	if err := validate.EventDate(req.Date); err != nil {
		return err
	}
	return validate.EventTime(req.Time)
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" {
		h.fail(ctx, w, http.StatusBadRequest, "title is required")
		return
	}
	if err := h.validateEventRequest(&req); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	events, err := h.store.Events(ctx)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}

	event := models.Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Category:    req.Category,
	}
	if err := h.store.SaveEvents(ctx, append(events, event)); err != nil {
		h.serverError(ctx, w, err)
		return
	}

	h.log.Info(ctx, "event created", "event_id", event.ID)
	h.writeJSON(ctx, w, http.StatusCreated, api.EventDetailResponse{
		BaseResponse: api.BaseResponse{Success: true, Message: "event created"},
		Event:        eventData(&event),
	})
}

func (h *Handler) updateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req api.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	events, err := h.store.Events(ctx)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}

	for i := range events {
		if events[i].ID != id {
			continue
		}
		// Partial update: empty fields keep their current values.
		if req.Title != "" {
			events[i].Title = req.Title
		}
		if req.Description != "" {
			events[i].Description = req.Description
		}
		if req.Date != "" {
			if err := validate.EventDate(req.Date); err != nil {
				h.fail(ctx, w, http.StatusBadRequest, err.Error())
				return
			}
			events[i].Date = req.Date
		}
		if req.Time != "" {
			if err := validate.EventTime(req.Time); err != nil {
				h.fail(ctx, w, http.StatusBadRequest, err.Error())
				return
			}
			events[i].Time = req.Time
		}
		if req.Location != "" {
			events[i].Location = req.Location
		}
		if req.Category != "" {
			if err := validate.Category(req.Category); err != nil {
				h.fail(ctx, w, http.StatusBadRequest, err.Error())
				return
			}
			events[i].Category = req.Category
		}

		if err := h.store.SaveEvents(ctx, events); err != nil {
			h.serverError(ctx, w, err)
			return
		}

		h.writeJSON(ctx, w, http.StatusOK, api.EventDetailResponse{
			BaseResponse: api.BaseResponse{Success: true, Message: "event updated"},
			Event:        eventData(&events[i]),
		})
		return
	}

	h.fail(ctx, w, http.StatusNotFound, "event not found")
}

func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	removed, err := h.store.DeleteEvent(ctx, id)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	if !removed {
		h.fail(ctx, w, http.StatusNotFound, "event not found")
		return
	}

	h.log.Info(ctx, "event deleted", "event_id", id)
	h.ok(ctx, w, "event deleted")
}
