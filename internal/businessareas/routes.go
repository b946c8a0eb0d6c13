package businessareas

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-crm/meridian-crm/internal/rbac"
)

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny(rbac.ActionAreasView))
		r.Get("/", h.List)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny(rbac.ActionAreasManage))
		r.Post("/", h.Create)
	})
}
