package customers

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-crm/meridian-crm/internal/rbac"
)

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny(rbac.ActionCustomersView))
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny(rbac.ActionCustomersManage))
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
	})
}
