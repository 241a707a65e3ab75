/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dashboard frontend

ROUTES:
  POST   /login                      Credential sign-in
  GET    /dashboard/invoices         Cached invoice listing
  POST   /dashboard/invoices         Create invoice
  POST   /dashboard/invoices/{id}    Update invoice
  DELETE /dashboard/invoices/{id}    Delete invoice
  GET    /api/customers              Customer list for the form select

SESSION GUARD:
  /dashboard routes require a valid session cookie when the handler is
  constructed with an auth service. Without one (tests, local dev) the
  routes are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	if h.Auth != nil {
		r.Post("/login", h.Login)
	}

	r.Route("/dashboard", func(r chi.Router) {
		if h.Auth != nil {
			r.Use(h.requireSession)
		}
		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", h.ListInvoices)
			r.Post("/", h.CreateInvoice)
			r.Post("/{id}", h.UpdateInvoice)
			r.Delete("/{id}", h.DeleteInvoice)
		})
	})

	r.Get("/api/customers", h.ListCustomers)

	return r
}
