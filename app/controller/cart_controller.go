package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"rightyway-storefront/cart"
	"rightyway-storefront/catalog"
	"rightyway-storefront/models"
)

// CartController handles HTTP requests for the session cart.
type CartController struct {
	cart    *cart.Cart
	catalog *catalog.Cache
}

// NewCartController creates a new CartController
func NewCartController(c *cart.Cart, cache *catalog.Cache) *CartController {
	return &CartController{cart: c, catalog: cache}
}

// Get handles GET /cart
func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, c.cartResponse())
}

// AddItem handles POST /cart/items
// Adds a catalog product to the cart, merging with an existing line item.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AddItem: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ AddItem: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.ProductID == "" {
		http.Error(w, "productId is required", http.StatusBadRequest)
		return
	}
	if req.Quantity <= 0 {
		http.Error(w, "quantity must be greater than 0", http.StatusBadRequest)
		return
	}

	product, ok := c.catalog.ByID(req.ProductID)
	if !ok {
		log.Printf("❌ AddItem: Product %s not found in catalog", req.ProductID)
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	if err := c.cart.Add(r.Context(), product, req.Quantity); err != nil {
		log.Printf("❌ AddItem: %v", err)
		http.Error(w, fmt.Sprintf("Failed to add to cart: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ AddItem: %s x%d added, cart count=%d", product.Name, req.Quantity, c.cart.Count())
	writeJSON(w, http.StatusOK, c.cartResponse())
}

// UpdateItem handles PUT /cart/items/{id}
// Replaces the line item quantity. Quantities below 1 leave the cart
// unchanged.
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimPrefix(r.URL.Path, "/cart/items/")
	if productID == "" {
		http.Error(w, "Product id is required", http.StatusBadRequest)
		return
	}

	var req models.SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateItem: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := c.cart.SetQuantity(r.Context(), productID, req.Quantity); err != nil {
		log.Printf("❌ UpdateItem: %v", err)
		http.Error(w, fmt.Sprintf("Failed to update cart: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, c.cartResponse())
}

// RemoveItem handles DELETE /cart/items/{id}
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimPrefix(r.URL.Path, "/cart/items/")
	if productID == "" {
		http.Error(w, "Product id is required", http.StatusBadRequest)
		return
	}

	if err := c.cart.Remove(r.Context(), productID); err != nil {
		log.Printf("❌ RemoveItem: %v", err)
		http.Error(w, fmt.Sprintf("Failed to remove from cart: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, c.cartResponse())
}

// Clear handles POST /cart/clear
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := c.cart.Clear(r.Context()); err != nil {
		log.Printf("❌ Clear: %v", err)
		http.Error(w, fmt.Sprintf("Failed to clear cart: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, c.cartResponse())
}

// Toggle handles POST /cart/toggle
// Flips the cart view open flag.
func (c *CartController) Toggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := c.cart.Toggle(r.Context()); err != nil {
		log.Printf("❌ Toggle: %v", err)
		http.Error(w, fmt.Sprintf("Failed to toggle cart: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, c.cartResponse())
}

func (c *CartController) cartResponse() models.CartResponse {
	return models.CartResponse{
		Items:  c.cart.Items(),
		Count:  c.cart.Count(),
		Total:  c.cart.Total(),
		IsOpen: c.cart.IsOpen(),
	}
}
