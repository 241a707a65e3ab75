/*
mutations.go - Mutation handlers for invoice records

PURPOSE:
  Orchestrates the pipeline for each mutation: validate the form,
  coerce the values, issue one persistence statement, then revalidate
  the cached listing and hand back a redirect for the caller to follow.

FAILURE SEMANTICS:
  Validation failure:   Outcome with field errors + summary message,
                        no persistence attempted (create, update)
  Persistence failure:  create - Outcome with a generic message, no
                          revalidate, no redirect
                        update - logged and execution continues to the
                          revalidate + redirect (known inconsistency
                          with create, preserved deliberately; see
                          DESIGN.md)
                        delete - returned to the caller unhandled

DEPENDENCIES:
  The store and the view cache are injected interfaces so handlers
  stay testable and no package-level connection handle exists. Each
  handler takes a context; no handler imposes its own deadline.

SEE ALSO:
  - schema.go: CreateSchema / UpdateSchema
  - coerce.go: AmountInCents, Today
*/
package invoice

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/finboard/invoicing/logger"
)

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// InvoiceStore is the persistence collaborator. Implementations issue
// parameterized single statements; there are no multi-statement
// transactions in this pipeline.
type InvoiceStore interface {
	InsertInvoice(ctx context.Context, inv Invoice) error
	UpdateInvoice(ctx context.Context, inv Invoice) error
	DeleteInvoice(ctx context.Context, id string) error
}

// Revalidator invalidates cached rendering for a route after a
// successful mutation.
type Revalidator interface {
	Revalidate(path string)
}

// =============================================================================
// MUTATIONS SERVICE
// =============================================================================

// Mutations holds the collaborators for the invoice mutation handlers.
type Mutations struct {
	store InvoiceStore
	views Revalidator
	log   *logger.Logger
}

// NewMutations creates the mutation service.
func NewMutations(store InvoiceStore, views Revalidator, log *logger.Logger) *Mutations {
	return &Mutations{store: store, views: views, log: log}
}

// CreateInvoice validates the submission, inserts a new invoice row
// with a generated id and today's date, and on success revalidates
// the listing and redirects to it.
func (m *Mutations) CreateInvoice(ctx context.Context, form FormData) Outcome {
	values, fieldErrs := CreateSchema.Validate(form)
	if fieldErrs != nil {
		return Outcome{Errors: fieldErrs, Message: MsgCreateValidation}
	}

	inv := Invoice{
		ID:         ulid.Make().String(),
		CustomerID: values.CustomerID,
		Amount:     AmountInCents(values.Amount),
		Status:     values.Status,
		Date:       Today(),
	}

	if err := m.store.InsertInvoice(ctx, inv); err != nil {
		return Outcome{Message: MsgCreateDBError}
	}

	m.views.Revalidate(InvoicesPath)
	return Outcome{Redirect: InvoicesPath}
}

// UpdateInvoice validates the submission and updates the row matching
// id, setting customer reference, amount and status. The id comes from
// the caller, never from the form.
//
// A persistence failure here is logged and NOT surfaced: the handler
// still revalidates and redirects as if it succeeded. This mirrors the
// system being replaced; do not "fix" it without a compatibility
// decision (DESIGN.md).
func (m *Mutations) UpdateInvoice(ctx context.Context, id string, form FormData) Outcome {
	values, fieldErrs := UpdateSchema.Validate(form)
	if fieldErrs != nil {
		return Outcome{Errors: fieldErrs, Message: MsgUpdateValidation}
	}

	inv := Invoice{
		ID:         id,
		CustomerID: values.CustomerID,
		Amount:     AmountInCents(values.Amount),
		Status:     values.Status,
	}

	if err := m.store.UpdateInvoice(ctx, inv); err != nil {
		m.log.Errorw("updating invoice failed", "id", id, "error", err)
	}

	m.views.Revalidate(InvoicesPath)
	return Outcome{Redirect: InvoicesPath}
}

// DeleteInvoice removes the row matching id and revalidates the
// listing. There is no redirect: deletion is an in-place action
// triggered from a list row. Persistence errors propagate to the
// caller's error boundary; an unknown id is not an error.
func (m *Mutations) DeleteInvoice(ctx context.Context, id string) error {
	if err := m.store.DeleteInvoice(ctx, id); err != nil {
		return err
	}

	m.views.Revalidate(InvoicesPath)
	return nil
}
