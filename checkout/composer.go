// Package checkout builds the WhatsApp order message and deep link that hand
// the cart over to the shop's messaging channel.
package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"rightyway-storefront/models"
	"rightyway-storefront/pricing"
	"rightyway-storefront/utils"
)

// Preconditions for composing a checkout message.
var (
	// ErrNoCustomer means no delivery details are loaded for the session.
	ErrNoCustomer = errors.New("checkout: delivery details are required before checkout")
	// ErrEmptyCart means there is nothing to order.
	ErrEmptyCart = errors.New("checkout: cart is empty")
)

// Composer formats checkout messages for a fixed destination phone number.
type Composer struct {
	phone    string
	greeting string
}

// NewComposer creates a composer for the given WhatsApp number (digits only,
// international format without the leading +).
func NewComposer(phone string) *Composer {
	return &Composer{
		phone:    phone,
		greeting: "Hello Rightyway Aso-Oke! I would like to place an order:",
	}
}

// Compose builds the order message: greeting, customer block, itemized list
// with effective unit prices, grand total and the cart reference. It refuses
// to compose without a customer profile or with an empty cart; the caller's
// cart is untouched in both cases.
func (c *Composer) Compose(items []models.CartItem, profile *models.CustomerProfile, ref string) (string, error) {
	if profile == nil {
		return "", ErrNoCustomer
	}
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	var b strings.Builder
	b.WriteString(c.greeting)
	b.WriteString("\n\n")

	b.WriteString("*Customer Details:*\n")
	fmt.Fprintf(&b, "Name: %s\n", profile.Name)
	fmt.Fprintf(&b, "Email: %s\n", profile.Email)
	fmt.Fprintf(&b, "Phone: %s\n", profile.Phone)
	fmt.Fprintf(&b, "Address: %s, %s, %s, %s\n", profile.Address, profile.City, profile.State, profile.Country)
	if profile.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", profile.Notes)
	}
	b.WriteString("\n")

	b.WriteString("*Order Items:*\n")
	for _, item := range items {
		unit := pricing.EffectiveUnitPrice(item)
		fmt.Fprintf(&b, "• %s (x%d) - %s each\n", item.Name, item.Quantity, utils.FormatNGN(unit))
	}

	fmt.Fprintf(&b, "\n*Total: %s*", utils.FormatNGN(pricing.Total(items)))
	fmt.Fprintf(&b, "\n\nCart Reference: %s", ref)

	return b.String(), nil
}

// WhatsAppURL returns the wa.me deep link carrying the message. Opening it is
// fire-and-forget navigation, not a tracked transaction.
func (c *Composer) WhatsAppURL(message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", c.phone, url.QueryEscape(message))
}
