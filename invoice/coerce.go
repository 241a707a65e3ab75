/*
coerce.go - Field coercion between form values and storage types

PURPOSE:
  Converts validated form input into persistence-ready types:
  - decimal dollar amounts become integer cents
  - the issue date is derived from the process wall clock, not the form

Both conversions are deterministic for a given input and instant.
*/
package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is the ISO calendar date form used in storage and APIs.
const dateLayout = "2006-01-02"

// AmountInCents converts a dollar amount to integer cents. Validation
// guarantees amount > 0; rounding only matters for inputs with more
// than two decimal places.
func AmountInCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Today returns the current calendar date as YYYY-MM-DD, taken from
// the process wall clock at the moment of the call.
func Today() string {
	return time.Now().Format(dateLayout)
}
