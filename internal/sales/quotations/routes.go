package quotations

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-crm/meridian-crm/internal/rbac"
)

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny(rbac.ActionQuotationsView))
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny(rbac.ActionQuotationsManage))
		r.Post("/", h.Create)
		r.Post("/{id}/send", h.Send)
		r.Post("/{id}/revise", h.Revise)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny(rbac.ActionQuotationsReview))
		r.Post("/{id}/approve", h.Approve)
		r.Post("/{id}/reject", h.Reject)
	})
}
