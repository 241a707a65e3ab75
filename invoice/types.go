/*
Package invoice implements the validated-mutation pipeline for invoice
records: parse -> validate -> coerce -> persist -> invalidate -> redirect.

PURPOSE:
  Holds the domain model, the validation schema, field coercion, and
  the three mutation handlers (create, update, delete). Persistence and
  cache invalidation are injected collaborators; the HTTP layer
  interprets the returned Outcome.

PIPELINE:
  1. A form submission (url.Values) enters a mutation handler
  2. The schema checks shape/constraints; failures come back as
     structured field errors, never as panics or Go errors
  3. Coercion turns the validated values into storage types
     (decimal dollars -> integer cents, wall clock -> YYYY-MM-DD)
  4. The store persists a single statement
  5. The listing cache is revalidated and the Outcome carries a
     redirect path for the caller to act on

SEE ALSO:
  - schema.go: Field-rule table and validation
  - coerce.go: Amount and date coercion
  - mutations.go: Create/Update/Delete handlers
  - errors.go: Sentinel errors and user-facing messages
*/
package invoice

import (
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// FormData is one form submission: a transient key-value mapping from
// field name to string, as delivered by the UI layer.
type FormData = url.Values

// =============================================================================
// DOMAIN TYPES
// =============================================================================

// Status is the payment state of an invoice.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPaid || s == StatusPending
}

// Invoice is a persisted invoice row. Amount is stored in integer
// cents to avoid floating-point rounding in storage.
type Invoice struct {
	ID         string
	CustomerID string
	Amount     int64 // cents
	Status     Status
	Date       string // YYYY-MM-DD
	CreatedAt  time.Time
}

// FormValues is the coerced output of a successful validation.
// Amount is still in dollars here; AmountInCents converts it for
// persistence.
type FormValues struct {
	ID         string
	CustomerID string
	Amount     decimal.Decimal
	Status     Status
	Date       string
}

// =============================================================================
// FORM FIELDS AND ROUTES
// =============================================================================

// Form field names as sent by the UI layer. Fixed string literals;
// the form is a superset of Invoice's fields, amount still a decimal
// string.
const (
	FieldID         = "id"
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
	FieldDate       = "date"
)

// InvoicesPath is the listing route that mutations revalidate and
// redirect to.
const InvoicesPath = "/dashboard/invoices"

// =============================================================================
// OUTCOME
// =============================================================================

// FieldErrors maps a form field name to its validation messages, in
// the order the rules were evaluated.
type FieldErrors map[string][]string

// Outcome is the result of a create or update mutation. Exactly one
// shape is populated:
//   - Redirect set: the mutation succeeded and the caller should
//     navigate there
//   - Errors + Message set: validation failed, nothing was persisted
//   - Message only: persistence failed (create)
//
// Redirect as a return value replaces redirect-as-exception: the
// framework boundary interprets it instead of unwinding the stack.
type Outcome struct {
	Errors   FieldErrors `json:"errors,omitempty"`
	Message  string      `json:"message,omitempty"`
	Redirect string      `json:"-"`
}
