/*
seed.go - Demo dataset loader

PURPOSE:
  Populates an empty database with a handful of customers, invoices
  and one dashboard account so the app is usable right after start.
  Idempotent: rows are keyed, re-seeding replaces rather than
  duplicates.
*/
package sqlite

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/finboard/invoicing/auth"
	"github.com/finboard/invoicing/invoice"
)

// DemoUserEmail and DemoUserPassword are the seeded dashboard login.
const (
	DemoUserEmail    = "user@example.com"
	DemoUserPassword = "123456"
)

var demoCustomers = []Customer{
	{ID: "cust-acme", Name: "Acme Corp", Email: "billing@acme.test"},
	{ID: "cust-globex", Name: "Globex", Email: "accounts@globex.test"},
	{ID: "cust-initech", Name: "Initech", Email: "finance@initech.test"},
	{ID: "cust-umbrella", Name: "Umbrella Ltd", Email: "ap@umbrella.test"},
}

var demoInvoices = []invoice.Invoice{
	{ID: "inv-1001", CustomerID: "cust-acme", Amount: 15795, Status: invoice.StatusPending, Date: "2026-08-12"},
	{ID: "inv-1002", CustomerID: "cust-globex", Amount: 2000, Status: invoice.StatusPaid, Date: "2026-08-14"},
	{ID: "inv-1003", CustomerID: "cust-initech", Amount: 30040, Status: invoice.StatusPaid, Date: "2026-08-20"},
	{ID: "inv-1004", CustomerID: "cust-umbrella", Amount: 44800, Status: invoice.StatusPending, Date: "2026-08-25"},
	{ID: "inv-1005", CustomerID: "cust-acme", Amount: 34577, Status: invoice.StatusPending, Date: "2026-08-28"},
}

// Seed loads the demo dataset.
func (s *Store) Seed(ctx context.Context) error {
	for _, c := range demoCustomers {
		if err := s.SaveCustomer(ctx, c); err != nil {
			return err
		}
	}

	for _, inv := range demoInvoices {
		existing, err := s.GetInvoice(ctx, inv.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.InsertInvoice(ctx, inv); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	return s.SaveUser(ctx, auth.User{
		ID:       "user-demo",
		Name:     "Demo User",
		Email:    DemoUserEmail,
		Password: string(hash),
	})
}
