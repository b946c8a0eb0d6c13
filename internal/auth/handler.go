package auth

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-crm/meridian-crm/internal/platform/httpx"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router. The login
// route is the only unauthenticated endpoint of the API.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Get("/me", h.handleMe)
	r.Post("/logout", h.handleLogout)
}

type loginRequest struct {
	Phone string `json:"phone" validate:"required,min=7,max=20"`
	PIN   string `json:"pin" validate:"required,min=4,max=12,numeric"`
}

type loginResponse struct {
	Token  string   `json:"token"`
	UserID int64    `json:"user_id"`
	Name   string   `json:"name"`
	Roles  []string `json:"roles"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed body", shared.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}

	sess, err := h.service.Login(r.Context(), req.Phone, req.PIN)
	if err != nil {
		h.logger.Warn("login failed", slog.String("phone", req.Phone))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, loginResponse{
		Token:  sess.Token,
		UserID: sess.UserID,
		Name:   sess.Name,
		Roles:  sess.Roles,
	})
}

type meResponse struct {
	UserID int64    `json:"user_id"`
	Phone  string   `json:"phone"`
	Name   string   `json:"name"`
	Roles  []string `json:"roles"`
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	user, err := h.service.Me(r.Context(), sess)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, meResponse{
		UserID: user.ID,
		Phone:  user.Phone,
		Name:   user.Name,
		Roles:  user.Roles,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	if err := h.service.Logout(r.Context(), sess.Token); err != nil {
		h.logger.Error("logout", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
