package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rightyway-storefront/models"
)

// pngBytes returns a small valid PNG for upload tests.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

// TestLogin_StoresToken verifies a successful login installs the bearer
// token for subsequent calls.
func TestLogin_StoresToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin", req.Username)

		json.NewEncoder(w).Encode(models.LoginResponse{
			Token: "tok123",
			Admin: models.AdminUser{ID: "1", Username: "admin"},
		})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	admin, err := c.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, "tok123", c.Token())
}

// TestLogin_SurfacesBackendError verifies the backend's error message is
// carried into the returned error.
func TestLogin_SurfacesBackendError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Invalid credentials"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
}

// TestListProducts_SendsBearerAndToleratesShapes verifies the Authorization
// header and both response shapes.
func TestListProducts_SendsBearerAndToleratesShapes(t *testing.T) {
	t.Parallel()

	for name, body := range map[string]string{
		"bare array": `[{"_id": "1", "name": "Aso-Oke"}]`,
		"wrapped":    `{"products": [{"_id": "1", "name": "Aso-Oke"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
				w.Write([]byte(body))
			}))
			t.Cleanup(srv.Close)

			c := NewClient(srv.URL)
			c.SetToken("tok123")

			products, err := c.ListProducts(context.Background())
			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.Equal(t, "Aso-Oke", products[0].Name)
		})
	}
}

// TestListProducts_RejectsUnknownShape verifies an unrecognized response
// shape is an error.
func TestListProducts_RejectsUnknownShape(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	_, err := c.ListProducts(context.Background())
	assert.Error(t, err)
}

// TestCreateProduct_MultipartForm verifies the form fields and the optimized
// image part reach the backend.
func TestCreateProduct_MultipartForm(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/products", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))

		assert.Equal(t, "Royal Indigo Aso-Oke", r.FormValue("name"))
		assert.Equal(t, "25000", r.FormValue("price"))
		assert.Equal(t, "25000", r.FormValue("price_ngn"))
		assert.Equal(t, "true", r.FormValue("inStock"))
		assert.Equal(t, "false", r.FormValue("featured"))

		files := r.MultipartForm.File["images"]
		require.Len(t, files, 1)
		assert.Equal(t, "photo.png", files[0].Filename)
		// Optimizer re-encodes to JPEG
		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		head := make([]byte, 2)
		_, err = f.Read(head)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xFF, 0xD8}, head)

		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	form := models.ProductForm{
		Name:     "Royal Indigo Aso-Oke",
		Price:    "25000",
		Category: "Aso-Oke",
		Stock:    "12",
		InStock:  true,
	}
	err := c.CreateProduct(context.Background(), form, []ImageFile{{Name: "photo.png", Data: pngBytes(t)}})
	require.NoError(t, err)
}

// TestUpdateOrderStatus verifies the status update path and payload.
func TestUpdateOrderStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/orders/ord42/status", r.URL.Path)

		var req models.UpdateOrderStatusRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "shipped", req.Status)
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	require.NoError(t, c.UpdateOrderStatus(context.Background(), "ord42", "shipped"))
}

// TestRevenueExport_QueryParams verifies the date range reaches the backend
// and the summary decodes.
func TestRevenueExport_QueryParams(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-01-01", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2026-06-30", r.URL.Query().Get("endDate"))
		w.Write([]byte(`{"summary": {"totalOrders": 2, "totalRevenue": 50000, "averageOrderValue": 25000}, "orders": []}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	export, err := c.RevenueExport(context.Background(), "2026-01-01", "2026-06-30")
	require.NoError(t, err)
	assert.Equal(t, 2, export.Summary.TotalOrders)
}

// TestRefreshDashboard_Aggregates verifies one refresh pulls products,
// orders, stats and revenue together, tolerating stats failures.
func TestRefreshDashboard_Aggregates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			w.Write([]byte(`[{"_id": "1", "name": "Aso-Oke"}]`))
		case "/orders":
			w.Write([]byte(`{"orders": [{"_id": "o1", "orderNumber": "RW-1", "status": "pending"}]}`))
		case "/orders-stats":
			http.Error(w, `{"error": "stats offline"}`, http.StatusInternalServerError)
		case "/orders/monthly-revenue":
			w.Write([]byte(`[{"_id": {"year": 2026, "month": 8}, "totalRevenue": 50000, "orderCount": 2}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	dashboard, err := c.RefreshDashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, dashboard.Products, 1)
	assert.Len(t, dashboard.Orders, 1)
	assert.Nil(t, dashboard.Stats)
	require.Len(t, dashboard.Revenue, 1)
	assert.Equal(t, 2026, dashboard.Revenue[0].ID.Year)
}

// TestRefreshDashboard_SkipsWhenInFlight verifies the re-entrancy guard: a
// refresh requested while one is running is skipped.
func TestRefreshDashboard_SkipsWhenInFlight(t *testing.T) {
	t.Parallel()

	c := NewClient("http://127.0.0.1:0")
	c.refreshing.Store(true)

	_, err := c.RefreshDashboard(context.Background())
	assert.ErrorIs(t, err, ErrRefreshInFlight)
}
