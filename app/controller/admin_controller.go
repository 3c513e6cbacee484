package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"rightyway-storefront/adminapi"
	"rightyway-storefront/models"
)

// maxUploadMemory bounds the in-memory part of a product upload form.
const maxUploadMemory = 32 << 20

// AdminController fronts the shop backend's admin surface: login, product
// CRUD with image upload, orders and revenue reporting.
type AdminController struct {
	client *adminapi.Client
}

// NewAdminController creates a new AdminController
func NewAdminController(client *adminapi.Client) *AdminController {
	return &AdminController{client: client}
}

// Login handles POST /admin/login
// Proxies the credentials to the backend; the bearer token is kept on the
// client for all subsequent admin calls.
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AdminLogin: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	admin, err := c.client.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Printf("❌ AdminLogin: %v", err)
		http.Error(w, fmt.Sprintf("Login failed: %v", err), http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, admin)
}

// CreateProduct handles POST /admin/products
// Accepts the same multipart form the backend does and forwards it with the
// images optimized.
func (c *AdminController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateProduct: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	form, images, err := productFormFromRequest(r)
	if err != nil {
		log.Printf("❌ CreateProduct: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := c.client.CreateProduct(r.Context(), form, images); err != nil {
		log.Printf("❌ CreateProduct: %v", err)
		http.Error(w, fmt.Sprintf("Failed to create product: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "created"})
}

// ProductByID handles PUT and DELETE /admin/products/{id}
func (c *AdminController) ProductByID(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimPrefix(r.URL.Path, "/admin/products/")
	if productID == "" {
		http.Error(w, "Product id is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPut:
		form, images, err := productFormFromRequest(r)
		if err != nil {
			log.Printf("❌ UpdateProduct: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := c.client.UpdateProduct(r.Context(), productID, form, images); err != nil {
			log.Printf("❌ UpdateProduct: %v", err)
			http.Error(w, fmt.Sprintf("Failed to update product: %v", err), http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		if err := c.client.DeleteProduct(r.Context(), productID); err != nil {
			log.Printf("❌ DeleteProduct: %v", err)
			http.Error(w, fmt.Sprintf("Failed to delete product: %v", err), http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Orders handles GET /admin/orders
func (c *AdminController) Orders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orders, err := c.client.ListOrders(r.Context())
	if err != nil {
		log.Printf("❌ Orders: %v", err)
		http.Error(w, fmt.Sprintf("Failed to list orders: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders, "count": len(orders)})
}

// CreateManualOrder handles POST /admin/orders/manual
// Records an order taken outside the storefront (phone, in-person).
func (c *AdminController) CreateManualOrder(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateManualOrder: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.ManualOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Customer.Name) == "" {
		http.Error(w, "customer name is required", http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, "at least one item is required", http.StatusBadRequest)
		return
	}

	if err := c.client.CreateManualOrder(r.Context(), req); err != nil {
		log.Printf("❌ CreateManualOrder: %v", err)
		http.Error(w, fmt.Sprintf("Failed to create order: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "created"})
}

// UpdateOrderStatus handles PUT /admin/orders/{id}/status
func (c *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/admin/orders/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "status" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	if err := c.client.UpdateOrderStatus(r.Context(), parts[0], req.Status); err != nil {
		log.Printf("❌ UpdateOrderStatus: %v", err)
		http.Error(w, fmt.Sprintf("Failed to update order status: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// Stats handles GET /admin/stats
func (c *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := c.client.OrderStats(r.Context())
	if err != nil {
		log.Printf("❌ Stats: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch order stats: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// MonthlyRevenue handles GET /admin/revenue
func (c *AdminController) MonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	revenue, err := c.client.MonthlyRevenue(r.Context())
	if err != nil {
		log.Printf("❌ MonthlyRevenue: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch monthly revenue: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, revenue)
}

// RevenueExport handles GET /admin/revenue/export?startDate=...&endDate=...
func (c *AdminController) RevenueExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")
	if startDate == "" || endDate == "" {
		http.Error(w, "startDate and endDate are required", http.StatusBadRequest)
		return
	}

	export, err := c.client.RevenueExport(r.Context(), startDate, endDate)
	if err != nil {
		log.Printf("❌ RevenueExport: %v", err)
		http.Error(w, fmt.Sprintf("Failed to export revenue: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, export)
}

// RefreshDashboard handles POST /admin/dashboard/refresh
// A refresh requested while one is running answers 409 instead of starting a
// duplicate.
func (c *AdminController) RefreshDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dashboard, err := c.client.RefreshDashboard(r.Context())
	if err != nil {
		if errors.Is(err, adminapi.ErrRefreshInFlight) {
			log.Printf("⏭️  RefreshDashboard: skipped, refresh already running")
			http.Error(w, "Dashboard refresh already in progress", http.StatusConflict)
			return
		}
		log.Printf("❌ RefreshDashboard: %v", err)
		http.Error(w, fmt.Sprintf("Failed to refresh dashboard: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

// productFormFromRequest reads the multipart product form and its image
// parts from the request.
func productFormFromRequest(r *http.Request) (models.ProductForm, []adminapi.ImageFile, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return models.ProductForm{}, nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	form := models.ProductForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Category:    r.FormValue("category"),
		Colors:      r.FormValue("colors"),
		Tags:        r.FormValue("tags"),
		Stock:       r.FormValue("stock"),
		InStock:     r.FormValue("inStock") == "true",
		Featured:    r.FormValue("featured") == "true",
	}
	if strings.TrimSpace(form.Name) == "" {
		return models.ProductForm{}, nil, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(form.Price) == "" {
		return models.ProductForm{}, nil, fmt.Errorf("price is required")
	}

	if existing := r.FormValue("existingImages"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &form.ExistingImages); err != nil {
			return models.ProductForm{}, nil, fmt.Errorf("invalid existingImages field: %w", err)
		}
	}

	var images []adminapi.ImageFile
	for _, header := range r.MultipartForm.File["images"] {
		f, err := header.Open()
		if err != nil {
			return models.ProductForm{}, nil, fmt.Errorf("failed to open image %s: %w", header.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return models.ProductForm{}, nil, fmt.Errorf("failed to read image %s: %w", header.Filename, err)
		}
		images = append(images, adminapi.ImageFile{Name: header.Filename, Data: data})
	}

	return form, images, nil
}
