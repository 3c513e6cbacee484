package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"rightyway-storefront/cart"
	"rightyway-storefront/checkout"
	"rightyway-storefront/customer"
	"rightyway-storefront/models"
	"rightyway-storefront/session"
)

// CheckoutController handles the WhatsApp checkout hand-off.
type CheckoutController struct {
	cart      *cart.Cart
	directory *customer.Directory
	composer  *checkout.Composer
	session   *session.Manager
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(c *cart.Cart, d *customer.Directory, composer *checkout.Composer, s *session.Manager) *CheckoutController {
	return &CheckoutController{cart: c, directory: d, composer: composer, session: s}
}

// Checkout handles POST /checkout
// Composes the order message, clears the cart on success and returns the
// wa.me deep link. The customer profile is deliberately retained for future
// visits. Missing delivery details or an empty cart abort the checkout and
// leave the cart untouched.
func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Checkout: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var profile *models.CustomerProfile
	if active, ok := c.directory.Active(); ok {
		profile = &active
	}

	message, err := c.composer.Compose(c.cart.Items(), profile, c.session.Ref())
	if err != nil {
		if errors.Is(err, checkout.ErrNoCustomer) {
			log.Printf("❌ Checkout: no delivery details on session")
			http.Error(w, "Please fill in your delivery details before checkout", http.StatusPreconditionFailed)
			return
		}
		if errors.Is(err, checkout.ErrEmptyCart) {
			log.Printf("❌ Checkout: cart is empty")
			http.Error(w, "Cart is empty", http.StatusPreconditionFailed)
			return
		}
		log.Printf("❌ Checkout: %v", err)
		http.Error(w, fmt.Sprintf("Failed to compose checkout: %v", err), http.StatusInternalServerError)
		return
	}

	// The hand-off succeeded once the message exists; clear the cart so a
	// reload doesn't re-send the same order.
	if err := c.cart.Clear(r.Context()); err != nil {
		log.Printf("❌ Checkout: failed to clear cart after hand-off: %v", err)
		http.Error(w, fmt.Sprintf("Failed to clear cart: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Checkout: order message composed, reference=%s", c.session.Ref())
	writeJSON(w, http.StatusOK, models.CheckoutResponse{
		Message:     message,
		WhatsAppURL: c.composer.WhatsAppURL(message),
		Reference:   c.session.Ref(),
	})
}
