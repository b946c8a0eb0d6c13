package uploads

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

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

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed multipart body", shared.ErrValidation))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: file field is required", shared.ErrValidation))
		return
	}
	defer file.Close()

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "general"
	}

	var entityType *string
	var entityID *int64
	if v := r.FormValue("linked_entity_type"); v != "" {
		entityType = &v
	}
	if v := r.FormValue("linked_entity_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			entityID = &id
		}
	}

	sess := shared.SessionFromContext(r.Context())
	upload, err := h.service.Store(r.Context(), file, header.Filename, folder,
		header.Header.Get("Content-Type"), header.Size, entityType, entityID, sess.UserID)
	if err != nil {
		h.logger.Error("store upload", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, upload)
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid id", shared.ErrValidation))
		return
	}
	upload, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	w.Header().Set("Content-Type", upload.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", upload.FileName))
	http.ServeFile(w, r, h.service.Path(upload))
}

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny(rbac.ActionUploadsCreate))
		r.Post("/", h.Upload)
		r.Get("/{id}", h.Download)
	})
}
