/*
handlers.go - HTTP handlers for the invoicing dashboard

PURPOSE:
  The framework boundary of the mutation pipeline. Handlers parse the
  incoming form, delegate to the domain services, and interpret the
  returned Outcome: a redirect becomes a 303, field errors become a
  422 body, a create persistence failure becomes a 500 body with its
  user-facing message.

REQUEST FLOW:
  1. Parse HTTP form
  2. Call mutation handler / authenticate
  3. Interpret Outcome (redirect vs errors)
  4. Serialize response

ERROR HANDLING:
  - 401: Authentication/session failures
  - 422: Validation field errors
  - 500: Persistence and infrastructure failures

SEE ALSO:
  - invoice/mutations.go: The pipeline the handlers front
  - dto.go: Response types
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/finboard/invoicing/auth"
	"github.com/finboard/invoicing/invoice"
	"github.com/finboard/invoicing/logger"
	"github.com/finboard/invoicing/store/sqlite"
	"github.com/finboard/invoicing/viewcache"
)

// SessionCookie carries the signed session token.
const SessionCookie = "session"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers. Auth may be nil,
// which leaves the dashboard routes unguarded and /login unregistered.
type Handler struct {
	Store     *sqlite.Store
	Mutations *invoice.Mutations
	Auth      *auth.Service
	Views     *viewcache.Cache
	Log       *logger.Logger
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(store *sqlite.Store, views *viewcache.Cache, mutations *invoice.Mutations, authSvc *auth.Service, log *logger.Logger) *Handler {
	return &Handler{
		Store:     store,
		Mutations: mutations,
		Auth:      authSvc,
		Views:     views,
		Log:       log,
	}
}

// =============================================================================
// AUTHENTICATION
// =============================================================================

// Login authenticates a credential form submission.
// POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form submission", err)
		return
	}

	session, message, err := h.Auth.Authenticate(r.Context(), r.PostForm)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Authentication failed", err)
		return
	}
	if message != "" {
		writeJSON(w, http.StatusUnauthorized, LoginResponse{Message: message})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, invoice.InvoicesPath, http.StatusSeeOther)
}

// requireSession guards dashboard routes behind a valid session cookie.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		if _, err := h.Auth.Verify(r.Context(), cookie.Value); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid session", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// INVOICE ENDPOINTS
// =============================================================================

// ListInvoices returns the invoice listing, served from the view cache
// when a mutation has not revalidated it since the last fill.
// GET /dashboard/invoices
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	key := viewcache.Key(invoice.InvoicesPath)
	if cached, ok := h.Views.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	rows, err := h.Store.ListInvoices(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list invoices", err)
		return
	}

	dtos := lo.Map(rows, func(row sqlite.InvoiceRow, _ int) InvoiceDTO {
		return toInvoiceDTO(row)
	})
	if dtos == nil {
		dtos = []InvoiceDTO{}
	}

	h.Views.Put(key, dtos)
	writeJSON(w, http.StatusOK, dtos)
}

// CreateInvoice runs the create mutation on a form submission.
// POST /dashboard/invoices
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form submission", err)
		return
	}

	outcome := h.Mutations.CreateInvoice(r.Context(), r.PostForm)
	writeOutcome(w, r, outcome)
}

// UpdateInvoice runs the update mutation. The id comes from the URL,
// never from the form body.
// POST /dashboard/invoices/{id}
func (h *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form submission", err)
		return
	}

	outcome := h.Mutations.UpdateInvoice(r.Context(), id, r.PostForm)
	writeOutcome(w, r, outcome)
}

// DeleteInvoice runs the delete mutation. Store errors surface here as
// a 500; there is no redirect on success.
// DELETE /dashboard/invoices/{id}
func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Mutations.DeleteInvoice(r.Context(), id); err != nil {
		h.Log.Errorw("deleting invoice failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete invoice", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CUSTOMER ENDPOINTS
// =============================================================================

// ListCustomers returns all customers for the invoice form select.
// GET /api/customers
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Store.ListCustomers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list customers", err)
		return
	}

	dtos := lo.Map(customers, func(c sqlite.Customer, _ int) CustomerDTO {
		return toCustomerDTO(c)
	})
	if dtos == nil {
		dtos = []CustomerDTO{}
	}

	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

// writeOutcome interprets a mutation Outcome at the framework
// boundary: redirects become a 303, validation errors a 422, and a
// persistence-failure message a 500.
func writeOutcome(w http.ResponseWriter, r *http.Request, outcome invoice.Outcome) {
	if outcome.Redirect != "" {
		http.Redirect(w, r, outcome.Redirect, http.StatusSeeOther)
		return
	}

	status := http.StatusUnprocessableEntity
	if len(outcome.Errors) == 0 {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, outcome)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
