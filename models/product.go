package models

import "math"

// Product represents a product as the storefront sees it.
// Prices are whole naira. WholesaleThreshold and WholesalePriceNGN are
// optional: the wholesale tier only exists when both are set.
type Product struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	PriceNGN           int64    `json:"price_ngn"`
	Category           string   `json:"category"`
	Images             []string `json:"images"`
	Stock              int      `json:"stock"`
	WholesaleThreshold int      `json:"wholesale_threshold,omitempty"`
	WholesalePriceNGN  int64    `json:"wholesale_price_ngn,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	Colors             []string `json:"colors,omitempty"`
	Featured           bool     `json:"featured,omitempty"`
	InStock            bool     `json:"inStock,omitempty"`
}

// BackendProduct represents a product record as returned by the shop backend.
// The backend may omit stock; inStock is then used as a coarse fallback.
type BackendProduct struct {
	ID                 string   `json:"_id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	Category           string   `json:"category"`
	Images             []string `json:"images"`
	Colors             []string `json:"colors"`
	InStock            bool     `json:"inStock"`
	Featured           bool     `json:"featured"`
	Tags               []string `json:"tags"`
	Stock              *int     `json:"stock,omitempty"`
	WholesaleThreshold int      `json:"wholesale_threshold,omitempty"`
	WholesalePrice     float64  `json:"wholesale_price,omitempty"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

// ToProduct transforms a backend record into the storefront product shape.
// Stock falls back to a nominal 10 units when the backend only reports
// inStock=true, and 0 when the product is out of stock.
func (bp BackendProduct) ToProduct() Product {
	stock := 0
	if bp.Stock != nil {
		stock = *bp.Stock
	} else if bp.InStock {
		stock = 10
	}

	tags := bp.Tags
	if tags == nil {
		tags = []string{}
	}
	colors := bp.Colors
	if colors == nil {
		colors = []string{}
	}

	return Product{
		ID:                 bp.ID,
		Name:               bp.Name,
		Description:        bp.Description,
		PriceNGN:           int64(math.Round(bp.Price)),
		Category:           bp.Category,
		Images:             bp.Images,
		Stock:              stock,
		WholesaleThreshold: bp.WholesaleThreshold,
		WholesalePriceNGN:  int64(math.Round(bp.WholesalePrice)),
		Tags:               tags,
		Colors:             colors,
		Featured:           bp.Featured,
		InStock:            bp.InStock,
	}
}

// ProductListResponse represents the response for listing products
// Example response:
// {
//   "products": [
//     {
//       "id": "64f1c2...",
//       "name": "Royal Indigo Aso-Oke",
//       "price_ngn": 25000,
//       "category": "Aso-Oke",
//       "stock": 12
//     }
//   ],
//   "count": 1
// }
type ProductListResponse struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
}

// FacetsResponse represents the distinct filter values derived from the
// currently loaded catalog, deduplicated and sorted ascending.
type FacetsResponse struct {
	Tags       []string `json:"tags"`
	Colors     []string `json:"colors"`
	Categories []string `json:"categories"`
}
