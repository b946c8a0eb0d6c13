package businessareas

import (
	"fmt"
	"log/slog"
	"net/http"

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
	areas, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list business areas", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if areas == nil {
		areas = []Area{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"business_areas": areas})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAreaRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed body", shared.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}

	area, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create business area", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, area)
}
