package inventory

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-crm/meridian-crm/internal/rbac"
)

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny(rbac.ActionInventoryView))
		r.Get("/", h.List)
		r.Get("/insights", h.Insights)
		r.Get("/{id}", h.Get)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny(rbac.ActionInventoryManage))
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
	})
}
