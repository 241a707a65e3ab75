/*
handlers_test.go - HTTP-level tests for the mutation pipeline

Tests drive the real router with form-encoded requests against an
in-memory store, the way the dashboard frontend does.
*/
package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finboard/invoicing/api"
	"github.com/finboard/invoicing/auth"
	"github.com/finboard/invoicing/invoice"
	"github.com/finboard/invoicing/logger"
	"github.com/finboard/invoicing/store/sqlite"
	"github.com/finboard/invoicing/viewcache"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type testApp struct {
	store  *sqlite.Store
	views  *viewcache.Cache
	router http.Handler
}

// newTestApp wires a full app against an in-memory database. withAuth
// controls whether /login and the session guard are active.
func newTestApp(t *testing.T, withAuth bool) *testApp {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.SaveCustomer(context.Background(), sqlite.Customer{
		ID: "cust-1", Name: "Acme Corp", Email: "billing@acme.test",
	}))

	log := logger.NewNop()
	views := viewcache.New()
	mutations := invoice.NewMutations(store, views, log)

	var sessions *auth.Service
	if withAuth {
		require.NoError(t, store.Seed(context.Background()))
		sessions = auth.NewService(auth.NewCredentialsProvider(store, []byte("test-secret")))
	}

	handler := api.NewHandler(store, views, mutations, sessions, log)
	return &testApp{store: store, views: views, router: api.NewRouter(handler)}
}

func (app *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) do(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func invoiceForm(customerID, amount, status string) url.Values {
	return url.Values{
		"customerId": {customerID},
		"amount":     {amount},
		"status":     {status},
	}
}

// =============================================================================
// CREATE
// =============================================================================

func TestCreateInvoice_HTTP_Success(t *testing.T) {
	// GIVEN: A valid form submission
	// WHEN: POSTing to the invoices route
	// THEN: 303 to the listing and exactly one persisted row

	app := newTestApp(t, false)

	rec := app.postForm("/dashboard/invoices", invoiceForm("cust-1", "50", "pending"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/invoices", rec.Header().Get("Location"))

	rows, err := app.store.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(5000), rows[0].Amount)
	assert.Equal(t, invoice.StatusPending, rows[0].Status)
	assert.Equal(t, invoice.Today(), rows[0].Date)
}

func TestCreateInvoice_HTTP_ValidationErrors(t *testing.T) {
	app := newTestApp(t, false)

	rec := app.postForm("/dashboard/invoices", invoiceForm("", "0", "bogus"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Errors  map[string][]string `json:"errors"`
		Message string              `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Please fix the errors in the form. Failed to create invoice.", body.Message)
	assert.Equal(t, []string{"Please select a customer"}, body.Errors["customerId"])
	assert.Equal(t, []string{"Amount must be greater than $0"}, body.Errors["amount"])
	assert.Equal(t, []string{"Please select an invoice status"}, body.Errors["status"])

	rows, err := app.store.ListInvoices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows, "validation failure must not persist")
}

func TestCreateInvoice_HTTP_PersistenceFailure(t *testing.T) {
	// An unknown customer reference trips the store's foreign key, the
	// pipeline's persistence-failure path.
	app := newTestApp(t, false)

	rec := app.postForm("/dashboard/invoices", invoiceForm("no-such-customer", "50", "pending"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Database error: Failed to create invoice.", body.Message)
}

// =============================================================================
// UPDATE / DELETE
// =============================================================================

func TestUpdateInvoice_HTTP_Success(t *testing.T) {
	app := newTestApp(t, false)
	ctx := context.Background()

	require.NoError(t, app.store.InsertInvoice(ctx, invoice.Invoice{
		ID: "inv-1", CustomerID: "cust-1", Amount: 100,
		Status: invoice.StatusPending, Date: "2026-08-01",
	}))

	rec := app.postForm("/dashboard/invoices/inv-1", invoiceForm("cust-1", "75.50", "paid"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)

	got, err := app.store.GetInvoice(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7550), got.Amount)
	assert.Equal(t, invoice.StatusPaid, got.Status)
}

func TestDeleteInvoice_HTTP_Success(t *testing.T) {
	app := newTestApp(t, false)
	ctx := context.Background()

	require.NoError(t, app.store.InsertInvoice(ctx, invoice.Invoice{
		ID: "inv-1", CustomerID: "cust-1", Amount: 100,
		Status: invoice.StatusPaid, Date: "2026-08-01",
	}))

	rec := app.do(http.MethodDelete, "/dashboard/invoices/inv-1")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"), "delete must not redirect")

	got, err := app.store.GetInvoice(ctx, "inv-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// =============================================================================
// LISTING AND CACHE
// =============================================================================

func TestListInvoices_HTTP_CacheRevalidatedByMutation(t *testing.T) {
	// GIVEN: A filled listing cache
	// WHEN: A row is added behind the cache's back, then via a mutation
	// THEN: Only the mutation makes the listing change

	app := newTestApp(t, false)
	ctx := context.Background()

	rec := app.do(http.MethodGet, "/dashboard/invoices")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Behind the cache's back: no revalidation, listing stays stale.
	require.NoError(t, app.store.InsertInvoice(ctx, invoice.Invoice{
		ID: "inv-direct", CustomerID: "cust-1", Amount: 100,
		Status: invoice.StatusPaid, Date: "2026-08-01",
	}))

	rec = app.do(http.MethodGet, "/dashboard/invoices")
	var listing []api.InvoiceDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Empty(t, listing, "cached listing must not see the direct insert")

	// Through the pipeline: revalidation drops the cached view.
	app.postForm("/dashboard/invoices", invoiceForm("cust-1", "20", "paid"))

	rec = app.do(http.MethodGet, "/dashboard/invoices")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Len(t, listing, 2)
}

func TestListCustomers_HTTP(t *testing.T) {
	app := newTestApp(t, false)

	rec := app.do(http.MethodGet, "/api/customers")

	assert.Equal(t, http.StatusOK, rec.Code)
	var customers []api.CustomerDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customers))
	require.Len(t, customers, 1)
	assert.Equal(t, "Acme Corp", customers[0].Name)
}

// =============================================================================
// AUTHENTICATION
// =============================================================================

func TestLogin_HTTP_Success(t *testing.T) {
	app := newTestApp(t, true)

	rec := app.postForm("/login", url.Values{
		"email":    {sqlite.DemoUserEmail},
		"password": {sqlite.DemoUserPassword},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/invoices", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, api.SessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLogin_HTTP_InvalidCredentials(t *testing.T) {
	app := newTestApp(t, true)

	rec := app.postForm("/login", url.Values{
		"email":    {sqlite.DemoUserEmail},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body api.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid credentials.", body.Message)
}

func TestDashboard_HTTP_RequiresSession(t *testing.T) {
	app := newTestApp(t, true)

	rec := app.do(http.MethodGet, "/dashboard/invoices")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboard_HTTP_SessionCookieAdmits(t *testing.T) {
	app := newTestApp(t, true)

	login := app.postForm("/login", url.Values{
		"email":    {sqlite.DemoUserEmail},
		"password": {sqlite.DemoUserPassword},
	})
	cookies := login.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
	req.AddCookie(cookies[0])
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
