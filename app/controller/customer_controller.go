package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"rightyway-storefront/customer"
	"rightyway-storefront/models"
)

// CustomerController handles HTTP requests for customer profiles.
type CustomerController struct {
	directory *customer.Directory
}

// NewCustomerController creates a new CustomerController
func NewCustomerController(d *customer.Directory) *CustomerController {
	return &CustomerController{directory: d}
}

// Active handles GET /customer
// Returns the active session profile, if any.
func (c *CustomerController) Active(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profile, ok := c.directory.Active()
	if !ok {
		writeJSON(w, http.StatusOK, models.CustomerLookupResponse{Found: false})
		return
	}
	writeJSON(w, http.StatusOK, models.CustomerLookupResponse{Found: true, Profile: &profile})
}

// Lookup handles GET /customer/lookup?email=...
// A miss is a normal outcome and answers found=false, not an error.
func (c *CustomerController) Lookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email := r.URL.Query().Get("email")
	if strings.TrimSpace(email) == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	profile, found := c.directory.FindByEmail(email)
	if !found {
		log.Printf("🔍 Lookup: no saved customer for %s", customer.NormalizeEmail(email))
		writeJSON(w, http.StatusOK, models.CustomerLookupResponse{Found: false})
		return
	}

	log.Printf("✅ Lookup: found saved customer for %s", customer.NormalizeEmail(email))
	writeJSON(w, http.StatusOK, models.CustomerLookupResponse{Found: true, Profile: &profile})
}

// Save handles POST /customer
// Validates and upserts the profile into the directory, then makes it the
// active session profile.
func (c *CustomerController) Save(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Save: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var profile models.CustomerProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Printf("❌ Save: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := validateProfile(profile); err != nil {
		log.Printf("❌ Save: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := c.directory.Save(r.Context(), profile); err != nil {
		log.Printf("❌ Save: %v", err)
		http.Error(w, fmt.Sprintf("Failed to save customer: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.CustomerLookupResponse{Found: true, Profile: &profile})
}

// Activate handles POST /customer/activate
// Loads a profile into the session without saving it to the directory.
func (c *CustomerController) Activate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var profile models.CustomerProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := validateProfile(profile); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c.directory.SetActive(profile)
	writeJSON(w, http.StatusOK, models.CustomerLookupResponse{Found: true, Profile: &profile})
}

// Clear handles POST /customer/clear
// Forgets the active session profile without touching the directory.
func (c *CustomerController) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c.directory.ClearActive()
	writeJSON(w, http.StatusOK, models.CustomerLookupResponse{Found: false})
}

// validateProfile checks the fields checkout cannot proceed without.
func validateProfile(profile models.CustomerProfile) error {
	if strings.TrimSpace(profile.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(profile.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if strings.TrimSpace(profile.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	if strings.TrimSpace(profile.Address) == "" {
		return fmt.Errorf("address is required")
	}
	return nil
}
