package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"rightyway-storefront/models"
	"rightyway-storefront/session"
)

// SessionController handles HTTP requests for session metadata.
type SessionController struct {
	session *session.Manager
}

// NewSessionController creates a new SessionController
func NewSessionController(s *session.Manager) *SessionController {
	return &SessionController{session: s}
}

// Get handles GET /session
func (c *SessionController) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, models.SessionResponse{
		Reference:     c.session.Ref(),
		CookieConsent: c.session.CookieConsent(),
	})
}

// Consent handles POST /session/consent
func (c *SessionController) Consent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.ConsentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := c.session.SetCookieConsent(r.Context(), req.Accepted); err != nil {
		http.Error(w, fmt.Sprintf("Failed to record consent: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.SessionResponse{
		Reference:     c.session.Ref(),
		CookieConsent: c.session.CookieConsent(),
	})
}
