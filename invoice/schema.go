/*
schema.go - Declarative validation schema for invoice forms

PURPOSE:
  Describes every invoice form field as one row in a rule table, then
  lets each handler select the subset it needs. Create and update both
  omit id (caller-supplied or generated) and date (computed), mirroring
  how the UI only submits customerId, amount and status.

CONTRACT:
  Validation is pure and side-effect-free. It never panics and never
  returns a Go error: every failure is reported through FieldErrors.
  A result is either coerced values or field errors, never both.

RULE EVALUATION:
  Presence and enum membership run through go-playground/validator
  tag expressions. The amount field additionally needs a numeric
  comparison on a decimal string, which tag expressions cannot do, so
  it is parsed with shopspring/decimal and checked against zero; a
  non-numeric amount and a non-positive amount produce the same
  message, matching the coerce-then-compare behavior of the UI's
  schema.

SEE ALSO:
  - types.go: FormValues, FieldErrors, field name constants
  - errors.go: Message strings
  - coerce.go: Post-validation coercion
*/
package invoice

import (
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// fieldRule is one row of the schema: a field name, a validator tag
// expression, and the message reported when the rule fails.
type fieldRule struct {
	field   string
	tag     string
	message string
}

// formRules is the full rule table for an invoice form. Handlers
// derive their schema by omitting fields, never by re-declaring rules.
var formRules = []fieldRule{
	{field: FieldID, tag: "required", message: MsgMissingID},
	{field: FieldCustomerID, tag: "required", message: MsgSelectCustomer},
	{field: FieldAmount, tag: "required", message: MsgAmountPositive},
	{field: FieldStatus, tag: "required,oneof=paid pending", message: MsgSelectStatus},
	{field: FieldDate, tag: "required", message: MsgMissingDate},
}

// Schema is a selected subset of the rule table.
type Schema struct {
	rules []fieldRule
}

// FormSchema covers every invoice field.
var FormSchema = Schema{rules: formRules}

// Derived schemas for the mutation handlers. Both drop id and date:
// create generates them, update takes id from the caller.
var (
	CreateSchema = FormSchema.Omit(FieldID, FieldDate)
	UpdateSchema = FormSchema.Omit(FieldID, FieldDate)
)

// Omit returns a schema without the named fields.
func (s Schema) Omit(fields ...string) Schema {
	omitted := make(map[string]bool, len(fields))
	for _, f := range fields {
		omitted[f] = true
	}

	kept := make([]fieldRule, 0, len(s.rules))
	for _, r := range s.rules {
		if !omitted[r.field] {
			kept = append(kept, r)
		}
	}
	return Schema{rules: kept}
}

// Validate checks a form submission against the schema. It returns
// either the coerced values or the accumulated field errors, never
// both and never a panic.
func (s Schema) Validate(form url.Values) (*FormValues, FieldErrors) {
	values := &FormValues{}
	errs := FieldErrors{}

	for _, rule := range s.rules {
		raw := form.Get(rule.field)

		if err := validate.Var(raw, rule.tag); err != nil {
			errs[rule.field] = append(errs[rule.field], rule.message)
			continue
		}

		switch rule.field {
		case FieldID:
			values.ID = raw
		case FieldCustomerID:
			values.CustomerID = raw
		case FieldAmount:
			amount, err := decimal.NewFromString(raw)
			if err != nil || !amount.GreaterThan(decimal.Zero) {
				errs[rule.field] = append(errs[rule.field], rule.message)
				continue
			}
			values.Amount = amount
		case FieldStatus:
			values.Status = Status(raw)
		case FieldDate:
			values.Date = raw
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}
