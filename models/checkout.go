package models

// CheckoutResponse represents the result of composing a checkout hand-off
// Example response:
// {
//   "message": "Hello Rightyway Aso-Oke! I would like to place an order: ...",
//   "whatsappUrl": "https://wa.me/2348012345678?text=Hello...",
//   "reference": "cart_5f3a..."
// }
type CheckoutResponse struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
	Reference   string `json:"reference"`
}

// SessionResponse represents the session reference and consent state
// Example response: {"reference": "cart_5f3a...", "cookieConsent": true}
type SessionResponse struct {
	Reference     string `json:"reference"`
	CookieConsent bool   `json:"cookieConsent"`
}

// ConsentRequest represents the request body for recording cookie consent
// Example: {"accepted": true}
type ConsentRequest struct {
	Accepted bool `json:"accepted"`
}
