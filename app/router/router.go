package router

import (
	"net/http"
	"strings"

	"rightyway-storefront/app/controller"
)

type Controllers struct {
	Catalog  *controller.CatalogController
	Cart     *controller.CartController
	Customer *controller.CustomerController
	Checkout *controller.CheckoutController
	Session  *controller.SessionController
	Admin    *controller.AdminController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Catalog routes
	http.HandleFunc("/products", controllers.Catalog.List)

	// Catalog sub-routes and product by id
	http.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/products/")
		switch path {
		case "facets":
			controllers.Catalog.Facets(w, r)
		case "featured":
			controllers.Catalog.Featured(w, r)
		case "refresh":
			controllers.Catalog.Refresh(w, r)
		default:
			controllers.Catalog.GetByID(w, r)
		}
	})

	// Cart routes
	http.HandleFunc("/cart", controllers.Cart.Get)
	http.HandleFunc("/cart/items", controllers.Cart.AddItem)
	http.HandleFunc("/cart/clear", controllers.Cart.Clear)
	http.HandleFunc("/cart/toggle", controllers.Cart.Toggle)

	// Cart line item by product id - PUT updates quantity, DELETE removes
	http.HandleFunc("/cart/items/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut || r.Method == http.MethodPatch {
			controllers.Cart.UpdateItem(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.Cart.RemoveItem(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Customer routes - GET returns the active profile, POST saves one
	http.HandleFunc("/customer", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Customer.Active(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Customer.Save(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	http.HandleFunc("/customer/lookup", controllers.Customer.Lookup)
	http.HandleFunc("/customer/activate", controllers.Customer.Activate)
	http.HandleFunc("/customer/clear", controllers.Customer.Clear)

	// Checkout route
	http.HandleFunc("/checkout", controllers.Checkout.Checkout)

	// Session routes
	http.HandleFunc("/session", controllers.Session.Get)
	http.HandleFunc("/session/consent", controllers.Session.Consent)

	// Admin routes - proxied to the shop backend's admin API
	http.HandleFunc("/admin/login", controllers.Admin.Login)
	http.HandleFunc("/admin/dashboard/refresh", controllers.Admin.RefreshDashboard)
	http.HandleFunc("/admin/products", controllers.Admin.CreateProduct)
	http.HandleFunc("/admin/products/", controllers.Admin.ProductByID)
	http.HandleFunc("/admin/orders", controllers.Admin.Orders)
	http.HandleFunc("/admin/orders/manual", controllers.Admin.CreateManualOrder)
	http.HandleFunc("/admin/orders/", controllers.Admin.UpdateOrderStatus)
	http.HandleFunc("/admin/stats", controllers.Admin.Stats)
	http.HandleFunc("/admin/revenue", controllers.Admin.MonthlyRevenue)
	http.HandleFunc("/admin/revenue/export", controllers.Admin.RevenueExport)
}
