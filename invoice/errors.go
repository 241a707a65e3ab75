/*
errors.go - User-facing message strings

PURPOSE:
  All user-visible message strings in one place. The mutation handlers
  return these verbatim; the HTTP layer passes them through untouched,
  so changing a string here changes what the user sees.

SEE ALSO:
  - mutations.go: Where the messages are attached to Outcomes
  - schema.go: Per-field validation messages
*/
package invoice

// =============================================================================
// USER-FACING MESSAGES
// =============================================================================

// Summary messages attached to mutation Outcomes.
const (
	MsgCreateValidation = "Please fix the errors in the form. Failed to create invoice."
	MsgUpdateValidation = "Please fix the errors in the form. Failed to update invoice."
	MsgCreateDBError    = "Database error: Failed to create invoice."
)

// Per-field validation messages.
const (
	MsgSelectCustomer = "Please select a customer"
	MsgAmountPositive = "Amount must be greater than $0"
	MsgSelectStatus   = "Please select an invoice status"
	MsgMissingID      = "Missing invoice id"
	MsgMissingDate    = "Missing invoice date"
)
