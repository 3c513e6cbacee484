package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rightyway-storefront/models"
)

const wrappedBody = `{
	"products": [
		{"_id": "1", "name": "Royal Indigo Aso-Oke", "description": "Deep indigo weave", "price": 25000, "category": "Aso-Oke", "tags": ["wedding", "indigo"], "colors": ["blue"], "inStock": true, "featured": true},
		{"_id": "2", "name": "Ivory Wedding Set", "description": "Classic ivory set", "price": 40000, "category": "Wedding", "tags": ["wedding"], "colors": ["white", "gold"], "inStock": true, "stock": 3},
		{"_id": "3", "name": "Ankara Throw", "description": "Everyday ankara", "price": 8000, "category": "Ankara", "tags": ["casual"], "colors": ["red"], "inStock": false}
	]
}`

func serveCatalog(t *testing.T, body string) *Cache {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c := NewCache(srv.URL)
	require.NoError(t, c.Fetch(context.Background()))
	return c
}

// TestFetch_BareArray verifies a bare-array response is accepted.
func TestFetch_BareArray(t *testing.T) {
	t.Parallel()

	c := serveCatalog(t, `[{"_id": "1", "name": "Royal Indigo Aso-Oke", "price": 25000, "inStock": true}]`)
	require.Len(t, c.Products(), 1)
	assert.True(t, c.Loaded())
	assert.Equal(t, int64(25000), c.Products()[0].PriceNGN)
}

// TestFetch_WrappedObject verifies an object with a products array is
// accepted.
func TestFetch_WrappedObject(t *testing.T) {
	t.Parallel()

	c := serveCatalog(t, wrappedBody)
	assert.Len(t, c.Products(), 3)
}

// TestFetch_RejectsUnknownShape verifies any other shape fails with a
// descriptive error.
func TestFetch_RejectsUnknownShape(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	t.Cleanup(srv.Close)

	c := NewCache(srv.URL)
	err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected products response format")
	assert.False(t, c.Loaded())
}

// TestFetch_RejectsNullBody verifies a literal null body is treated as an
// unexpected shape, not an empty catalog.
func TestFetch_RejectsNullBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	t.Cleanup(srv.Close)

	c := NewCache(srv.URL)
	err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected products response format")
	assert.False(t, c.Loaded())
}

// TestConcurrentRefreshAndRead verifies a refresh racing reads from other
// request goroutines is safe.
func TestConcurrentRefreshAndRead(t *testing.T) {
	t.Parallel()

	c := serveCatalog(t, wrappedBody)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Fetch(context.Background()))
		}()
		go func() {
			defer wg.Done()
			c.Filter(FilterParams{Tag: "wedding"})
			c.ByID("1")
			c.Tags()
			c.SetStock("2", 5)
		}()
	}
	wg.Wait()

	assert.Len(t, c.Products(), 3)
}

// TestFetch_NonOKStatus verifies a non-OK backend response is an error.
func TestFetch_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewCache(srv.URL)
	assert.Error(t, c.Fetch(context.Background()))
}

// TestTransform_StockFallback verifies the stock fallback: explicit stock
// wins, inStock=true means a nominal 10, out of stock means 0.
func TestTransform_StockFallback(t *testing.T) {
	t.Parallel()

	c := serveCatalog(t, wrappedBody)

	p1, ok := c.ByID("1")
	require.True(t, ok)
	assert.Equal(t, 10, p1.Stock)

	p2, ok := c.ByID("2")
	require.True(t, ok)
	assert.Equal(t, 3, p2.Stock)

	p3, ok := c.ByID("3")
	require.True(t, ok)
	assert.Equal(t, 0, p3.Stock)
}

// TestFilter_AllDimensions verifies search, tag, color and category combine
// with AND semantics and empty dimensions are wildcards.
func TestFilter_AllDimensions(t *testing.T) {
	t.Parallel()

	c := serveCatalog(t, wrappedBody)

	// Case-insensitive substring against name or description
	assert.Len(t, c.Filter(FilterParams{Search: "INDIGO"}), 1)
	assert.Len(t, c.Filter(FilterParams{Search: "ankara"}), 1)

	// Tag filter
	assert.Len(t, c.Filter(FilterParams{Tag: "wedding"}), 2)

	// Combined: tag AND color
	matched := c.Filter(FilterParams{Tag: "wedding", Color: "gold"})
	require.Len(t, matched, 1)
	assert.Equal(t, "2", matched[0].ID)

	// Category equality
	assert.Len(t, c.Filter(FilterParams{Category: "Aso-Oke"}), 1)
	assert.Empty(t, c.Filter(FilterParams{Category: "Lace"}))

	// No filter matches everything
	assert.Len(t, c.Filter(FilterParams{}), 3)
}

// TestFacets_DeduplicatedAndSorted verifies the derived facet lists reflect
// only the loaded entries, deduplicated and sorted ascending.
func TestFacets_DeduplicatedAndSorted(t *testing.T) {
	t.Parallel()

	c := serveCatalog(t, wrappedBody)

	assert.Equal(t, []string{"casual", "indigo", "wedding"}, c.Tags())
	assert.Equal(t, []string{"blue", "gold", "red", "white"}, c.Colors())
	assert.Equal(t, []string{"Ankara", "Aso-Oke", "Wedding"}, c.Categories())
}

// TestFeatured verifies only flagged products are returned.
func TestFeatured(t *testing.T) {
	t.Parallel()

	c := serveCatalog(t, wrappedBody)
	featured := c.Featured()
	require.Len(t, featured, 1)
	assert.Equal(t, "1", featured[0].ID)
}

// TestSetStock_PatchesLocalCopy verifies the local stock patch after admin
// actions.
func TestSetStock_PatchesLocalCopy(t *testing.T) {
	t.Parallel()

	c := serveCatalog(t, wrappedBody)
	c.SetStock("2", 99)

	p, ok := c.ByID("2")
	require.True(t, ok)
	assert.Equal(t, 99, p.Stock)

	// Unknown id is a no-op
	c.SetStock("missing", 1)
}

// TestToProduct_ExplicitZeroStock verifies an explicit stock of 0 is kept
// as-is, even when the product is still flagged in stock.
func TestToProduct_ExplicitZeroStock(t *testing.T) {
	t.Parallel()

	zero := 0
	bp := models.BackendProduct{ID: "x", Name: "Sold Out", InStock: true, Stock: &zero}
	assert.Equal(t, 0, bp.ToProduct().Stock)
}

// TestToProduct_NilSlices verifies nil tag and color slices become empty
// slices on the client shape.
func TestToProduct_NilSlices(t *testing.T) {
	t.Parallel()

	bp := models.BackendProduct{ID: "x", Name: "Bare", Price: 100}
	p := bp.ToProduct()
	assert.NotNil(t, p.Tags)
	assert.NotNil(t, p.Colors)
	assert.Empty(t, p.Tags)
}
