/*
Package sqlite provides the SQLite-backed persistence layer.

PURPOSE:
  Implements invoice.InvoiceStore and auth.UserStore using SQLite.
  In production the same patterns apply to PostgreSQL - only minor
  SQL dialect differences.

KEY TABLES:
  users:     Dashboard accounts (bcrypt password hashes)
  customers: Invoice counterparties
  invoices:  Invoice rows; amount is integer cents, date is YYYY-MM-DD

STATEMENTS:
  Every query is parameterized through database/sql placeholders.
  No string concatenation of user input, ever.

FOREIGN KEYS:
  Opened with _foreign_keys=on, so invoices.customer_id must reference
  an existing customer. That referential check belongs to the store;
  the validation schema does not duplicate it.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. With PostgreSQL, database-level
  concurrency control handles this instead.

WAL MODE:
  Opened with WAL for better read concurrency and crash recovery.

USAGE:
  store, err := sqlite.New("./data/invoicing.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a versioned
  migration tool instead.

SEE ALSO:
  - invoice/mutations.go: The consumer of InvoiceStore
  - seed.go: Demo dataset loader
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/finboard/invoicing/auth"
	"github.com/finboard/invoicing/invoice"
)

// Store implements the persistence interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		image_url TEXT
	);

	CREATE TABLE IF NOT EXISTS invoices (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id),
		amount INTEGER NOT NULL,
		status TEXT NOT NULL,
		date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_invoices_customer
		ON invoices(customer_id);
	CREATE INDEX IF NOT EXISTS idx_invoices_date
		ON invoices(date DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// INVOICES
// =============================================================================

// InsertInvoice inserts a new invoice row.
func (s *Store) InsertInvoice(ctx context.Context, inv invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := inv.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invoices (id, customer_id, amount, status, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.CustomerID, inv.Amount, string(inv.Status), inv.Date,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	return nil
}

// UpdateInvoice sets customer reference, amount and status on the row
// matching the invoice id. Updating a missing row affects zero rows
// and is not an error.
func (s *Store) UpdateInvoice(ctx context.Context, inv invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		UPDATE invoices
		SET customer_id = ?, amount = ?, status = ?
		WHERE id = ?`,
		inv.CustomerID, inv.Amount, string(inv.Status), inv.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return nil
}

// DeleteInvoice removes the row matching id. Deleting a missing row
// affects zero rows and is not an error.
func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

// GetInvoice returns the invoice with the given id, or nil if absent.
func (s *Store) GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, customer_id, amount, status, date, created_at
		FROM invoices WHERE id = ?`, id)

	var inv invoice.Invoice
	var status, createdAt string
	err := row.Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &status,
		&inv.Date, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	inv.Status = invoice.Status(status)
	inv.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &inv, nil
}

// InvoiceRow is an invoice joined with its customer, as the listing
// view renders it.
type InvoiceRow struct {
	invoice.Invoice
	CustomerName  string
	CustomerEmail string
}

// ListInvoices returns all invoices joined with customer name and
// email, newest issue date first.
func (s *Store) ListInvoices(ctx context.Context) ([]InvoiceRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.customer_id, i.amount, i.status, i.date, i.created_at,
		       c.name, c.email
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		ORDER BY i.date DESC, i.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var result []InvoiceRow
	for rows.Next() {
		var r InvoiceRow
		var status, createdAt string
		if err := rows.Scan(&r.ID, &r.CustomerID, &r.Amount, &status, &r.Date,
			&createdAt, &r.CustomerName, &r.CustomerEmail); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		r.Status = invoice.Status(status)
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		result = append(result, r)
	}
	return result, rows.Err()
}

// =============================================================================
// CUSTOMERS
// =============================================================================

// Customer is an invoice counterparty.
type Customer struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}

// SaveCustomer inserts or replaces a customer.
func (s *Store) SaveCustomer(ctx context.Context, c Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO customers (id, name, email, image_url)
		VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

// ListCustomers returns all customers ordered by name.
func (s *Store) ListCustomers(ctx context.Context) ([]Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, COALESCE(image_url, '')
		FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var result []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// =============================================================================
// USERS
// =============================================================================

// SaveUser inserts or replaces a user. Password must already be a
// bcrypt hash.
func (s *Store) SaveUser(ctx context.Context, u auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO users (id, name, email, password)
		VALUES (?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.Password,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GetUserByEmail returns the user with the given email, or nil if
// absent. Implements auth.UserStore.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u auth.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
