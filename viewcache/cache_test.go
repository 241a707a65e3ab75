package viewcache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finboard/invoicing/viewcache"
)

func TestCache_PutGet(t *testing.T) {
	vc := viewcache.New()

	vc.Put("/dashboard/invoices", []string{"a", "b"})

	got, ok := vc.Get("/dashboard/invoices")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestCache_MissOnEmpty(t *testing.T) {
	vc := viewcache.New()

	_, ok := vc.Get("/dashboard/invoices")
	assert.False(t, ok)
}

func TestCache_RevalidateDropsPathAndVariants(t *testing.T) {
	// GIVEN: A route cached with and without query variants
	// WHEN: Revalidating the route
	// THEN: The route and every variant are gone, other routes remain

	vc := viewcache.New()
	vc.Put("/dashboard/invoices", "listing")
	vc.Put(viewcache.Key("/dashboard/invoices", "page", 2), "page two")
	vc.Put("/dashboard/customers", "customers")

	vc.Revalidate("/dashboard/invoices")

	_, ok := vc.Get("/dashboard/invoices")
	assert.False(t, ok)
	_, ok = vc.Get(viewcache.Key("/dashboard/invoices", "page", 2))
	assert.False(t, ok)
	_, ok = vc.Get("/dashboard/customers")
	assert.True(t, ok, "revalidation must not touch other routes")
}

func TestKey(t *testing.T) {
	assert.Equal(t, "/dashboard/invoices", viewcache.Key("/dashboard/invoices"))
	assert.Equal(t, "/dashboard/invoices:page:2", viewcache.Key("/dashboard/invoices", "page", 2))
}
