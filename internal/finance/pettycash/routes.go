package pettycash

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-crm/meridian-crm/internal/rbac"
)

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny(rbac.ActionPettyCashSubmit))
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/", h.Submit)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny(rbac.ActionPettyCashReview))
		r.Post("/{id}/approve", h.Approve)
		r.Post("/{id}/reject", h.Reject)
		r.Post("/{id}/disburse", h.Disburse)
	})
}
