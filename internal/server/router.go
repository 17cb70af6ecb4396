package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/unclebandit/customers-dashboard/internal/controller"
	"github.com/unclebandit/customers-dashboard/internal/logging"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Deps struct {
	Logger             zerolog.Logger
	DB                 Pinger
	CustomersPage      http.Handler
	CustomerController *controller.CustomerController
}

// NewRouter wires every route of the dashboard service.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(d.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard/customers", http.StatusFound)
	})
	r.Method(http.MethodGet, "/dashboard/customers", d.CustomersPage)

	// Customer routes
	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", d.CustomerController.ListCustomers)
		r.Get("/{id}", d.CustomerController.GetCustomer)
		r.Post("/import", d.CustomerController.ImportCustomers)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := d.DB.PingContext(ctx); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
