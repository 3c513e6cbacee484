package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"rightyway-storefront/catalog"
	"rightyway-storefront/models"
)

// CatalogController handles HTTP requests for the product catalog.
type CatalogController struct {
	catalog *catalog.Cache
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(cache *catalog.Cache) *CatalogController {
	return &CatalogController{catalog: cache}
}

// List handles GET /products
// Supports query filters: search, tag, color, category.
func (c *CatalogController) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	params := catalog.FilterParams{
		Search:   q.Get("search"),
		Tag:      q.Get("tag"),
		Color:    q.Get("color"),
		Category: q.Get("category"),
	}

	products := c.catalog.Filter(params)
	if products == nil {
		products = []models.Product{}
	}

	log.Printf("🔍 List: %d products match search=%q tag=%q color=%q category=%q",
		len(products), params.Search, params.Tag, params.Color, params.Category)

	writeJSON(w, http.StatusOK, models.ProductListResponse{Products: products, Count: len(products)})
}

// Facets handles GET /products/facets
// Returns the distinct tags, colors and categories of the loaded catalog.
func (c *CatalogController) Facets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, models.FacetsResponse{
		Tags:       c.catalog.Tags(),
		Colors:     c.catalog.Colors(),
		Categories: c.catalog.Categories(),
	})
}

// Featured handles GET /products/featured
func (c *CatalogController) Featured(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	featured := c.catalog.Featured()
	if featured == nil {
		featured = []models.Product{}
	}
	writeJSON(w, http.StatusOK, models.ProductListResponse{Products: featured, Count: len(featured)})
}

// Refresh handles POST /products/refresh
// Re-fetches the catalog from the backend.
func (c *CatalogController) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := c.catalog.Fetch(r.Context()); err != nil {
		log.Printf("❌ Refresh: failed to fetch catalog: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch products: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": len(c.catalog.Products())})
}

// GetByID handles GET /products/{id}
func (c *CatalogController) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/products/")
	if id == "" {
		http.Error(w, "Product id is required", http.StatusBadRequest)
		return
	}

	product, ok := c.catalog.ByID(id)
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// writeJSON encodes v as the JSON response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}
