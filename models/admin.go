package models

// LoginRequest represents the request body for admin login
// Example: {"username": "admin", "password": "secret"}
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminUser represents the authenticated admin returned by the backend.
type AdminUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginResponse represents the backend response for a successful login
// Example response: {"token": "eyJhbG...", "admin": {"id": "1", "username": "admin"}}
type LoginResponse struct {
	Token string    `json:"token"`
	Admin AdminUser `json:"admin"`
}

// OrderAddress represents a shipping address on a backend order.
type OrderAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// OrderCustomer represents the customer block on a backend order.
type OrderCustomer struct {
	Name    string       `json:"name"`
	Email   string       `json:"email"`
	Phone   string       `json:"phone"`
	Address OrderAddress `json:"address"`
}

// OrderItem represents a single item on a backend order.
type OrderItem struct {
	Product     string   `json:"product,omitempty"`
	ProductName string   `json:"productName"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	Color       string   `json:"color,omitempty"`
	Images      []string `json:"images"`
}

// Order represents an order record as returned by the backend.
// Status values: pending, confirmed, processing, shipped, delivered, cancelled.
type Order struct {
	ID             string        `json:"_id"`
	OrderNumber    string        `json:"orderNumber"`
	Customer       OrderCustomer `json:"customer"`
	Items          []OrderItem   `json:"items"`
	Subtotal       float64       `json:"subtotal"`
	ShippingFee    float64       `json:"shippingFee"`
	Total          float64       `json:"total"`
	Status         string        `json:"status"`
	PaymentStatus  string        `json:"paymentStatus"`
	ShippingMethod string        `json:"shippingMethod"`
	TrackingNumber string        `json:"trackingNumber,omitempty"`
	CreatedAt      string        `json:"createdAt"`
}

// ManualOrderRequest represents the request body for creating an order from
// the admin panel
// Example: {"customer": {...}, "items": [...], "shippingFee": 1500, "shippingMethod": "courier", "notes": "Call first"}
type ManualOrderRequest struct {
	Customer       OrderCustomer `json:"customer"`
	Items          []OrderItem   `json:"items"`
	ShippingFee    float64       `json:"shippingFee"`
	ShippingMethod string        `json:"shippingMethod"`
	Notes          string        `json:"notes,omitempty"`
}

// UpdateOrderStatusRequest represents the request body for an order status change
// Example: {"status": "shipped"}
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderStats represents the aggregate order statistics from /orders-stats.
type OrderStats struct {
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	CompletedOrders int     `json:"completedOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	SalesHistory    float64 `json:"salesHistory"`
}

// MonthlyRevenueID identifies the month bucket of a revenue aggregate.
type MonthlyRevenueID struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthlyRevenue represents one month of revenue from /orders/monthly-revenue.
type MonthlyRevenue struct {
	ID           MonthlyRevenueID `json:"_id"`
	TotalRevenue float64          `json:"totalRevenue"`
	OrderCount   int              `json:"orderCount"`
}

// RevenueSummary represents the summary block of a revenue export.
type RevenueSummary struct {
	TotalOrders       int     `json:"totalOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// RevenueExport represents the response of /orders/revenue-export
// Example response:
// {
//   "summary": {"totalOrders": 42, "totalRevenue": 1250000, "averageOrderValue": 29762},
//   "orders": [{"orderNumber": "RW-1042", "status": "delivered", "total": 25000, ...}]
// }
type RevenueExport struct {
	Summary RevenueSummary `json:"summary"`
	Orders  []Order        `json:"orders"`
}

// ProductForm represents the fields of the multipart form used to create or
// update a product through the admin API. Colors and tags are comma-separated
// strings, matching the backend's form contract.
type ProductForm struct {
	Name           string
	Description    string
	Price          string
	Category       string
	Colors         string
	Tags           string
	Stock          string
	InStock        bool
	Featured       bool
	ExistingImages []string
}

// DashboardData aggregates everything the admin dashboard shows in one refresh.
type DashboardData struct {
	Products []BackendProduct `json:"products"`
	Orders   []Order          `json:"orders"`
	Stats    *OrderStats      `json:"stats,omitempty"`
	Revenue  []MonthlyRevenue `json:"revenue,omitempty"`
}
