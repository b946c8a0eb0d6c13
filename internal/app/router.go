package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridian-crm/meridian-crm/internal/attendance"
	"github.com/meridian-crm/meridian-crm/internal/auth"
	"github.com/meridian-crm/meridian-crm/internal/businessareas"
	"github.com/meridian-crm/meridian-crm/internal/crm/customers"
	"github.com/meridian-crm/meridian-crm/internal/crm/enquiries"
	"github.com/meridian-crm/meridian-crm/internal/dashboard"
	"github.com/meridian-crm/meridian-crm/internal/finance/pettycash"
	"github.com/meridian-crm/meridian-crm/internal/inventory"
	"github.com/meridian-crm/meridian-crm/internal/observability"
	"github.com/meridian-crm/meridian-crm/internal/rbac"
	"github.com/meridian-crm/meridian-crm/internal/reports"
	"github.com/meridian-crm/meridian-crm/internal/sales/orders"
	"github.com/meridian-crm/meridian-crm/internal/sales/quotations"
	"github.com/meridian-crm/meridian-crm/internal/shared"
	"github.com/meridian-crm/meridian-crm/internal/uploads"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager

	AuthHandler          *auth.Handler
	BusinessAreasHandler *businessareas.Handler
	CustomersHandler     *customers.Handler
	EnquiriesHandler     *enquiries.Handler
	QuotationsHandler    *quotations.Handler
	OrdersHandler        *orders.Handler
	PettyCashHandler     *pettycash.Handler
	InventoryHandler     *inventory.Handler
	AttendanceHandler    *attendance.Handler
	DashboardHandler     *dashboard.Handler
	ReportsHandler       *reports.Handler
	UploadsHandler       *uploads.Handler

	RBACMiddleware rbac.Middleware
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router serving the JSON API.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	guard := params.RBACMiddleware

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Route("/business-areas", func(r chi.Router) {
			params.BusinessAreasHandler.MountRoutes(r, guard)
		})
		r.Route("/customers", func(r chi.Router) {
			params.CustomersHandler.MountRoutes(r, guard)
		})
		r.Route("/enquiries", func(r chi.Router) {
			params.EnquiriesHandler.MountRoutes(r, guard)
		})
		r.Route("/quotations", func(r chi.Router) {
			params.QuotationsHandler.MountRoutes(r, guard)
		})
		r.Route("/orders", func(r chi.Router) {
			params.OrdersHandler.MountRoutes(r, guard)
		})
		r.Route("/petty-cash", func(r chi.Router) {
			params.PettyCashHandler.MountRoutes(r, guard)
		})
		r.Route("/inventory", func(r chi.Router) {
			params.InventoryHandler.MountRoutes(r, guard)
		})
		r.Route("/attendance", func(r chi.Router) {
			params.AttendanceHandler.MountRoutes(r, guard)
		})
		r.Route("/dashboard", func(r chi.Router) {
			params.DashboardHandler.MountRoutes(r, guard)
		})
		r.Route("/reports", func(r chi.Router) {
			params.ReportsHandler.MountRoutes(r, guard)
		})
		r.Route("/uploads", func(r chi.Router) {
			params.UploadsHandler.MountRoutes(r, guard)
		})
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
