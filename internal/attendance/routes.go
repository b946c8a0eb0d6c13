package attendance

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-crm/meridian-crm/internal/rbac"
)

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny(rbac.ActionAttendanceSelf))
		r.Get("/", h.List)
		r.Post("/check-in", h.CheckIn)
		r.Post("/check-out", h.CheckOut)
	})
}
