package models

// CustomerProfile represents the delivery details for a customer.
// Email is the natural key: lookups normalize it (trim + lowercase).
type CustomerProfile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Notes   string `json:"notes,omitempty"`
}

// SavedCustomerRecord wraps a profile with its normalized email and the time
// it was last saved. Records live in an ordered collection; the normalized
// email is unique across the collection.
type SavedCustomerRecord struct {
	Email       string          `json:"email"`
	Details     CustomerProfile `json:"details"`
	LastUpdated string          `json:"lastUpdated"`
}

// CustomerLookupResponse represents the response for an email lookup
// Example response:
// {
//   "found": true,
//   "profile": {"name": "Ada Obi", "email": "ada@example.com", "phone": "+2348012345678", ...}
// }
type CustomerLookupResponse struct {
	Found   bool             `json:"found"`
	Profile *CustomerProfile `json:"profile,omitempty"`
}
