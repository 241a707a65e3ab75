/*
dto.go - Data Transfer Objects for API responses

PURPOSE:
  JSON structures returned to clients, decoupling the storage model
  from the API contract. Mutations take form-encoded input, not JSON,
  so there are no request body types here.

NAMING CONVENTION:
  *DTO: Response types returned to clients
*/
package api

import (
	"github.com/finboard/invoicing/store/sqlite"
)

// InvoiceDTO is one row of the invoice listing. Amount is integer
// cents, as stored.
type InvoiceDTO struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	Date          string `json:"date"`
}

// CustomerDTO is one entry of the customer select.
type CustomerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url,omitempty"`
}

// LoginResponse is returned on a recognized authentication failure.
type LoginResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toInvoiceDTO(r sqlite.InvoiceRow) InvoiceDTO {
	return InvoiceDTO{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Amount:        r.Amount,
		Status:        string(r.Status),
		Date:          r.Date,
	}
}

func toCustomerDTO(c sqlite.Customer) CustomerDTO {
	return CustomerDTO{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		ImageURL: c.ImageURL,
	}
}
