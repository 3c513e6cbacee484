package models

// CartItem represents a line item in the cart: a product plus a quantity.
// At most one line item exists per product id; adding an already-present
// product increments its quantity instead of appending a duplicate.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// AddToCartRequest represents the request body for adding a product to the cart
// Example: {"productId": "64f1c2...", "quantity": 2}
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// SetQuantityRequest represents the request body for replacing a line item quantity
// Example: {"quantity": 3}
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse represents the current cart state
// Example response:
// {
//   "items": [
//     {"id": "64f1c2...", "name": "Royal Indigo Aso-Oke", "price_ngn": 25000, "quantity": 2}
//   ],
//   "count": 2,
//   "total": 50000,
//   "isOpen": true
// }
type CartResponse struct {
	Items  []CartItem `json:"items"`
	Count  int        `json:"count"`
	Total  int64      `json:"total"`
	IsOpen bool       `json:"isOpen"`
}
