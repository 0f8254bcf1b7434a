package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes assembles the API router. The paths keep the trailing-slash
// convention of the remote backend so the same client works against both.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		// public
		r.Post("/auth/register/", h.register)
		r.Post("/auth/login/", h.login)
		r.Post("/auth/forgot-password/", h.forgotPassword)
		r.Post("/auth/verify-otp/", h.verifyOTP)
		r.Post("/auth/reset-password/", h.resetPassword)
		r.Get("/events/", h.listEvents)
		r.Get("/events/{id}/", h.eventDetail)

		// authenticated
		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)

			r.Get("/auth/profile/", h.profile)
			r.Post("/auth/change-password/", h.changePassword)

			r.Post("/events/{id}/register/", h.registerForEvent)
			r.Delete("/events/{id}/cancel-registration/", h.cancelRegistration)
			r.Get("/registrations/", h.myRegistrations)

			r.Post("/events/{id}/set-reminder/", h.setReminder)
			r.Delete("/events/{id}/cancel-reminder/", h.cancelReminder)
			r.Get("/reminders/", h.myReminders)

			r.Get("/dashboard/", h.dashboard)

			// admin only
			r.Group(func(r chi.Router) {
				r.Use(h.requireAdmin)

				r.Post("/events/create/", h.createEvent)
				r.Put("/events/{id}/update/", h.updateEvent)
				r.Delete("/events/{id}/delete/", h.deleteEvent)
				r.Get("/admin/dashboard/", h.adminDashboard)
			})
		})
	})

	return r
}
