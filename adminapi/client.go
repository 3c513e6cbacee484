// Package adminapi is the REST client for the shop backend's admin surface:
// login, product CRUD with image upload, order management and revenue
// reporting. The backend is an opaque collaborator; responses are consumed
// as-is beyond basic shape checks.
package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"rightyway-storefront/models"
	"rightyway-storefront/service"
)

// requestTimeout bounds every admin API call. A call that runs past it is
// treated as failed; there is no automatic retry.
const requestTimeout = 30 * time.Second

// ErrRefreshInFlight is returned when a dashboard refresh is requested while
// another one is still running.
var ErrRefreshInFlight = errors.New("adminapi: dashboard refresh already in flight")

// ImageFile is a product photo to upload: original filename plus raw bytes.
type ImageFile struct {
	Name string
	Data []byte
}

// Client talks to the admin API with bearer-token authentication.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string

	refreshing atomic.Bool
}

// NewClient creates an admin API client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// SetToken installs a bearer token obtained elsewhere (for example a token
// persisted from a previous login).
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token, empty when not logged in.
func (c *Client) Token() string {
	return c.token
}

// Login authenticates against POST /auth/login and stores the returned token
// on the client for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) (*models.AdminUser, error) {
	body, err := json.Marshal(models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login succeeded but no token was returned")
	}

	c.token = resp.Token
	log.Printf("✅ Admin login successful: %s", resp.Admin.Username)
	return &resp.Admin, nil
}

// do performs one request with the bearer header and timeout, returning the
// response body. Non-OK responses become an error carrying the backend's
// error message when one is present.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: %s", method, path, backendError(resp.StatusCode, data))
	}
	return data, nil
}

// backendError extracts the error message the backend sends as
// {"error": "..."} or {"message": "..."}, falling back to the status code.
func backendError(status int, body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("backend returned status %d", status)
}

// ListProducts fetches all products. The backend answers with a bare array
// or an object wrapping a products array.
func (c *Client) ListProducts(ctx context.Context) ([]models.BackendProduct, error) {
	data, err := c.do(ctx, http.MethodGet, "/products", "", nil)
	if err != nil {
		return nil, err
	}

	var arr []models.BackendProduct
	if err := json.Unmarshal(data, &arr); err == nil {
		return arr, nil
	}
	var wrapper struct {
		Products []models.BackendProduct `json:"products"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Products != nil {
		return wrapper.Products, nil
	}
	return nil, fmt.Errorf("unexpected products response format")
}

// CreateProduct uploads a new product as a multipart form. Images are
// optimized before upload.
func (c *Client) CreateProduct(ctx context.Context, form models.ProductForm, images []ImageFile) error {
	return c.submitProduct(ctx, http.MethodPost, "/products", form, images)
}

// UpdateProduct replaces an existing product. ExistingImages on the form
// lists backend image URLs to keep.
func (c *Client) UpdateProduct(ctx context.Context, productID string, form models.ProductForm, images []ImageFile) error {
	return c.submitProduct(ctx, http.MethodPut, "/products/"+url.PathEscape(productID), form, images)
}

func (c *Client) submitProduct(ctx context.Context, method, path string, form models.ProductForm, images []ImageFile) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        form.Name,
		"description": form.Description,
		"price":       form.Price,
		"price_ngn":   form.Price,
		"category":    form.Category,
		"colors":      form.Colors,
		"tags":        form.Tags,
		"stock":       form.Stock,
		"inStock":     strconv.FormatBool(form.InStock),
		"featured":    strconv.FormatBool(form.Featured),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if len(form.ExistingImages) > 0 {
		existing, err := json.Marshal(form.ExistingImages)
		if err != nil {
			return fmt.Errorf("failed to encode existing images: %w", err)
		}
		if err := w.WriteField("existingImages", string(existing)); err != nil {
			return fmt.Errorf("failed to write existing images field: %w", err)
		}
	}

	for _, img := range images {
		optimized, err := service.OptimizeForUpload(img.Data)
		if err != nil {
			return fmt.Errorf("failed to optimize image %s: %w", img.Name, err)
		}
		part, err := w.CreateFormFile("images", img.Name)
		if err != nil {
			return fmt.Errorf("failed to create image part %s: %w", img.Name, err)
		}
		if _, err := part.Write(optimized); err != nil {
			return fmt.Errorf("failed to write image %s: %w", img.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	if _, err := c.do(ctx, method, path, w.FormDataContentType(), &buf); err != nil {
		return err
	}
	log.Printf("✅ Product submitted: %s %s (%d images)", method, path, len(images))
	return nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(productID), "", nil)
	return err
}

// ListOrders fetches all orders, tolerating a bare array or a wrapped one.
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	data, err := c.do(ctx, http.MethodGet, "/orders", "", nil)
	if err != nil {
		return nil, err
	}

	var arr []models.Order
	if err := json.Unmarshal(data, &arr); err == nil {
		return arr, nil
	}
	var wrapper struct {
		Orders []models.Order `json:"orders"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Orders != nil {
		return wrapper.Orders, nil
	}
	return nil, fmt.Errorf("unexpected orders response format")
}

// CreateManualOrder records an order taken outside the storefront (phone,
// in-person) through POST /orders/manual.
func (c *Client) CreateManualOrder(ctx context.Context, order models.ManualOrderRequest) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode manual order: %w", err)
	}
	if _, err := c.do(ctx, http.MethodPost, "/orders/manual", "application/json", bytes.NewReader(body)); err != nil {
		return err
	}
	log.Printf("✅ Manual order created for %s (%d items)", order.Customer.Name, len(order.Items))
	return nil
}

// UpdateOrderStatus changes an order's status.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	body, err := json.Marshal(models.UpdateOrderStatusRequest{Status: status})
	if err != nil {
		return fmt.Errorf("failed to encode status update: %w", err)
	}
	path := "/orders/" + url.PathEscape(orderID) + "/status"
	if _, err := c.do(ctx, http.MethodPut, path, "application/json", bytes.NewReader(body)); err != nil {
		return err
	}
	log.Printf("✅ Order %s status updated to %s", orderID, status)
	return nil
}

// OrderStats fetches the aggregate order statistics.
func (c *Client) OrderStats(ctx context.Context) (*models.OrderStats, error) {
	data, err := c.do(ctx, http.MethodGet, "/orders-stats", "", nil)
	if err != nil {
		return nil, err
	}
	var stats models.OrderStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode order stats: %w", err)
	}
	return &stats, nil
}

// MonthlyRevenue fetches the per-month revenue aggregates.
func (c *Client) MonthlyRevenue(ctx context.Context) ([]models.MonthlyRevenue, error) {
	data, err := c.do(ctx, http.MethodGet, "/orders/monthly-revenue", "", nil)
	if err != nil {
		return nil, err
	}
	var revenue []models.MonthlyRevenue
	if err := json.Unmarshal(data, &revenue); err != nil {
		return nil, fmt.Errorf("failed to decode monthly revenue: %w", err)
	}
	return revenue, nil
}

// RevenueExport fetches the revenue report for a date range. Dates are
// YYYY-MM-DD strings as the backend expects.
func (c *Client) RevenueExport(ctx context.Context, startDate, endDate string) (*models.RevenueExport, error) {
	path := fmt.Sprintf("/orders/revenue-export?startDate=%s&endDate=%s",
		url.QueryEscape(startDate), url.QueryEscape(endDate))
	data, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	var export models.RevenueExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to decode revenue export: %w", err)
	}
	return &export, nil
}

// RefreshDashboard fetches products, orders, stats and monthly revenue in
// one pass. A refresh requested while one is already running returns
// ErrRefreshInFlight instead of starting a duplicate. Stats and revenue
// failures are logged and tolerated; products and orders are required.
func (c *Client) RefreshDashboard(ctx context.Context) (*models.DashboardData, error) {
	if !c.refreshing.CompareAndSwap(false, true) {
		log.Printf("⏭️  Dashboard refresh skipped: another refresh is in flight")
		return nil, ErrRefreshInFlight
	}
	defer c.refreshing.Store(false)

	products, err := c.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard refresh: %w", err)
	}
	orders, err := c.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard refresh: %w", err)
	}

	dashboard := &models.DashboardData{Products: products, Orders: orders}

	if stats, err := c.OrderStats(ctx); err != nil {
		log.Printf("❌ Dashboard refresh: order stats unavailable: %v", err)
	} else {
		dashboard.Stats = stats
	}
	if revenue, err := c.MonthlyRevenue(ctx); err != nil {
		log.Printf("❌ Dashboard refresh: monthly revenue unavailable: %v", err)
	} else {
		dashboard.Revenue = revenue
	}

	log.Printf("✅ Dashboard refreshed: %d products, %d orders", len(products), len(orders))
	return dashboard, nil
}
