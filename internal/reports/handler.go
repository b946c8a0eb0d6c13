package reports

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-crm/meridian-crm/internal/platform/httpx"
	"github.com/meridian-crm/meridian-crm/internal/rbac"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// reportWindow parses from/to query params, defaulting to the trailing 30
// days ending now.
func reportWindow(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: from must be YYYY-MM-DD", shared.ErrValidation)
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: to must be YYYY-MM-DD", shared.ErrValidation)
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}

func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportWindow(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	report, err := h.service.Sales(r.Context(), from, to, r.URL.Query().Get("group_by"))
	if err != nil {
		h.logger.Error("sales report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) ProfitLoss(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportWindow(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	report, err := h.service.ProfitLoss(r.Context(), from, to)
	if err != nil {
		h.logger.Error("profit loss report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) ProjectStatus(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.ProjectStatus(r.Context())
	if err != nil {
		h.logger.Error("project status report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny(rbac.ActionReportsView))
		r.Get("/sales", h.Sales)
		r.Get("/profit-loss", h.ProfitLoss)
		r.Get("/project-status", h.ProjectStatus)
	})
}
