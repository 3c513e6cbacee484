// Package catalog fetches the product list from the shop backend once and
// serves client-side filtering over the in-memory copy.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"rightyway-storefront/models"
)

// Cache holds the products fetched from the backend. The backend owns the
// authoritative records; the cache only applies local stock patches after
// admin actions. A refresh can race reads from other request goroutines, so
// the product slice is guarded by mu.
type Cache struct {
	baseURL string
	client  *http.Client

	mu       sync.RWMutex
	products []models.Product
	loaded   bool
}

// FilterParams represents the active storefront filter. Empty fields match
// everything.
type FilterParams struct {
	Search   string
	Tag      string
	Color    string
	Category string
}

// NewCache creates a catalog cache for the backend at baseURL.
func NewCache(baseURL string) *Cache {
	return &Cache{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch loads the product list from GET {base}/products and replaces the
// cached copy. The backend answers either with a bare array or with an
// object carrying a products field; any other shape is an error.
func (c *Cache) Fetch(ctx context.Context) error {
	url := c.baseURL + "/products"
	log.Printf("🔍 Fetching products from %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build products request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch products: backend returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read products response: %w", err)
	}

	backendProducts, err := decodeProducts(body)
	if err != nil {
		return err
	}

	products := make([]models.Product, 0, len(backendProducts))
	for _, bp := range backendProducts {
		products = append(products, bp.ToProduct())
	}

	c.mu.Lock()
	c.products = products
	c.loaded = true
	c.mu.Unlock()

	log.Printf("✅ Catalog loaded: %d products", len(products))
	return nil
}

// decodeProducts accepts the two response shapes the backend is known to
// produce: a bare array, or an object with an array-valued products field.
func decodeProducts(body []byte) ([]models.BackendProduct, error) {
	// A literal null decodes into a nil slice without error; only a real
	// array counts as the bare-array shape.
	var arr []models.BackendProduct
	if err := json.Unmarshal(body, &arr); err == nil && arr != nil {
		return arr, nil
	}

	var wrapper struct {
		Products []models.BackendProduct `json:"products"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Products != nil {
		return wrapper.Products, nil
	}

	return nil, fmt.Errorf("unexpected products response format: want an array or an object with a products array")
}

// Loaded reports whether a fetch has succeeded since startup.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.loaded
}

// Products returns a copy of the cached products.
func (c *Cache) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID returns the cached product with the given id.
func (c *Cache) ByID(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// SetStock patches the local stock count of a product after an admin action.
// The authoritative count still lives in the backend.
func (c *Cache) SetStock(id string, stock int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.products {
		if c.products[i].ID == id {
			c.products[i].Stock = stock
			return
		}
	}
}

// Filter returns the products matching all active filter dimensions. A
// product matches when its name or description contains the search substring
// (case-insensitive), its tags contain the selected tag, its colors contain
// the selected color, and its category equals the selected category. Empty
// dimensions are wildcards.
func (c *Cache) Filter(params FilterParams) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	search := strings.ToLower(params.Search)

	var matched []models.Product
	for _, p := range c.products {
		if search != "" {
			name := strings.ToLower(p.Name)
			desc := strings.ToLower(p.Description)
			if !strings.Contains(name, search) && !strings.Contains(desc, search) {
				continue
			}
		}
		if params.Tag != "" && !contains(p.Tags, params.Tag) {
			continue
		}
		if params.Color != "" && !contains(p.Colors, params.Color) {
			continue
		}
		if params.Category != "" && p.Category != params.Category {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// Featured returns the products flagged as featured.
func (c *Cache) Featured() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var featured []models.Product
	for _, p := range c.products {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}

// Tags returns the distinct tags across the loaded catalog, sorted ascending.
func (c *Cache) Tags() []string {
	return c.distinct(func(p models.Product) []string { return p.Tags })
}

// Colors returns the distinct colors across the loaded catalog, sorted ascending.
func (c *Cache) Colors() []string {
	return c.distinct(func(p models.Product) []string { return p.Colors })
}

// Categories returns the distinct categories across the loaded catalog,
// sorted ascending.
func (c *Cache) Categories() []string {
	return c.distinct(func(p models.Product) []string {
		if p.Category == "" {
			return nil
		}
		return []string{p.Category}
	})
}

func (c *Cache) distinct(values func(models.Product) []string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	out := []string{}
	for _, p := range c.products {
		for _, v := range values(p) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
