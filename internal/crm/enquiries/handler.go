package enquiries

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-crm/meridian-crm/internal/platform/httpx"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListEnquiriesRequest{Limit: 50}
	q := r.URL.Query()
	if v := q.Get("customer_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.CustomerID = &id
		}
	}
	if v := q.Get("division"); v != "" {
		req.Division = &v
	}
	if v := q.Get("status"); v != "" {
		status := Stage(v)
		req.Status = &status
	}
	if v := q.Get("priority"); v != "" {
		priority := Priority(v)
		req.Priority = &priority
	}
	if v := q.Get("assigned_to"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.AssignedTo = &id
		}
	}
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			req.Limit = parsed
		}
	}
	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			req.Offset = parsed
		}
	}

	enquiries, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list enquiries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"enquiries": enquiries,
		"total":     total,
	})
}

func (h *Handler) Kanban(w http.ResponseWriter, r *http.Request) {
	columns, err := h.service.Kanban(r.Context())
	if err != nil {
		h.logger.Error("kanban", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"columns": columns})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	enquiry, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, enquiry)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEnquiryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed body", shared.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}

	sess := shared.SessionFromContext(r.Context())
	enquiry, err := h.service.Create(r.Context(), req, sess.UserID)
	if err != nil {
		h.logger.Error("create enquiry", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, enquiry)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req UpdateEnquiryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed body", shared.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}

	enquiry, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, enquiry)
}

func (h *Handler) Move(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req MoveEnquiryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed body", shared.ErrValidation))
		return
	}

	enquiry, err := h.service.Move(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, enquiry)
}

func urlID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id", shared.ErrValidation)
	}
	return id, nil
}
