package attendance

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

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

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req CheckInRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed body", shared.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}

	sess := shared.SessionFromContext(r.Context())
	rec, err := h.service.CheckIn(r.Context(), req, sess.UserID)
	if err != nil {
		h.logger.Error("check in", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	rec, err := h.service.CheckOut(r.Context(), sess.UserID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListRecordsRequest{Limit: 100}
	q := r.URL.Query()
	if v := q.Get("user_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.UserID = &id
		}
	}
	if v := q.Get("from_date"); v != "" {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			req.FromDate = &parsed
		}
	}
	if v := q.Get("to_date"); v != "" {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			req.ToDate = &parsed
		}
	}
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			req.Limit = parsed
		}
	}

	records, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list attendance", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if records == nil {
		records = []Record{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"records": records})
}
