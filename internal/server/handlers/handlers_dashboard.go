package handlers

import (
	"net/http"
	"sort"

	"eventmanager/internal/api"
)

const topEventsLimit = 5

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	acc := accountFrom(ctx)

	events, err := h.store.Events(ctx)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	registrations, err := h.store.RegisteredEvents(ctx, acc.ID)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	reminders, err := h.store.Reminders(ctx, acc.ID)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}

	stats := api.DashboardStats{
		TotalEvents:     len(events),
		MyRegistrations: len(registrations),
		MyReminders:     len(reminders),
	}
	if acc.IsAdmin() {
		accounts, err := h.store.Accounts(ctx)
		if err != nil {
			h.serverError(ctx, w, err)
			return
		}
		stats.EventsCreated = len(events)
		stats.TotalUsers = len(accounts)
	}

	h.writeJSON(ctx, w, http.StatusOK, api.DashboardResponse{
		BaseResponse: api.BaseResponse{Success: true},
		Stats:        stats,
		User:         userData(acc),
	})
}

func (h *Handler) adminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accounts, err := h.store.Accounts(ctx)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}
	events, err := h.store.Events(ctx)
	if err != nil {
		h.serverError(ctx, w, err)
		return
	}

	stats := api.AdminStats{
		TotalUsers:  len(accounts),
		TotalEvents: len(events),
	}
	for i := range accounts {
		if accounts[i].IsAdmin() {
			stats.TotalAdmins++
		} else {
			stats.TotalStudents++
		}
	}

	// Registration marks are stored per account, so the per-event totals are
	// assembled by walking every account's mark set.
	counts := make(map[string]int)
	for i := range accounts {
		ids, err := h.store.RegisteredEvents(ctx, accounts[i].ID)
		if err != nil {
			h.serverError(ctx, w, err)
			return
		}
		stats.TotalRegistrations += len(ids)
		for _, id := range ids {
			counts[id]++
		}
	}

	top := make([]api.TopEvent, 0, len(events))
	for i := range events {
		if n := counts[events[i].ID]; n > 0 {
			top = append(top, api.TopEvent{
				EventID:           events[i].ID,
				EventTitle:        events[i].Title,
				RegistrationCount: n,
			})
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].RegistrationCount > top[j].RegistrationCount
	})
	if len(top) > topEventsLimit {
		top = top[:topEventsLimit]
	}

	h.writeJSON(ctx, w, http.StatusOK, api.AdminDashboardResponse{
		BaseResponse: api.BaseResponse{Success: true},
		Stats:        stats,
		TopEvents:    top,
	})
}
