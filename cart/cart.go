// Package cart holds the ordered collection of line items for the active
// storefront session. Every mutation is persisted immediately, so the cart
// survives process restarts the way a browser cart survives page reloads.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"rightyway-storefront/models"
	"rightyway-storefront/pricing"
	"rightyway-storefront/storage"
)

// Cart is the session's line-item collection plus the cart-view open flag.
// Handlers run on separate goroutines, so all access goes through mu.
type Cart struct {
	store storage.Store

	mu    sync.Mutex
	items []models.CartItem
	open  bool
}

// Load builds a cart bound to the store, reloading any persisted line items
// and open flag from a previous run.
func Load(ctx context.Context, store storage.Store) (*Cart, error) {
	c := &Cart{store: store, items: []models.CartItem{}}

	if err := store.Get(ctx, storage.KeyCartItems, &c.items); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to load cart items: %w", err)
		}
		c.items = []models.CartItem{}
	}
	if err := store.Get(ctx, storage.KeyCartOpen, &c.open); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to load cart open flag: %w", err)
		}
	}

	log.Printf("🛒 Cart loaded: %d line items, open=%v", len(c.items), c.open)
	return c, nil
}

// Add merges quantity into the existing line item for the product, or
// appends a new line item. Adding also opens the cart view if it was closed.
func (c *Cart) Add(ctx context.Context, product models.Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be greater than 0")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	merged := false
	for i := range c.items {
		if c.items[i].ID == product.ID {
			c.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, models.CartItem{Product: product, Quantity: quantity})
	}

	if !c.open {
		c.open = true
		if err := c.persistOpen(ctx); err != nil {
			return err
		}
	}
	return c.persistItems(ctx)
}

// Remove deletes the line item for the product id. Removing an absent id is
// a silent no-op.
func (c *Cart) Remove(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return c.persistItems(ctx)
		}
	}
	return nil
}

// SetQuantity replaces the quantity of the line item for the product id.
// Quantities below 1 are ignored: removal is the only way to drop a line
// item, so a decrement can never push it to zero. An unknown id is a no-op.
func (c *Cart) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == productID {
			c.items[i].Quantity = quantity
			return c.persistItems(ctx)
		}
	}
	return nil
}

// Clear empties the collection.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = []models.CartItem{}
	return c.persistItems(ctx)
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Count returns the sum of all line-item quantities.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Total returns the cart total with the wholesale tier applied per line.
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return pricing.Total(c.items)
}

// IsOpen reports whether the cart view is open.
func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.open
}

// Toggle flips the cart view open flag.
func (c *Cart) Toggle(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.open = !c.open
	return c.persistOpen(ctx)
}

// SetOpen sets the cart view open flag.
func (c *Cart) SetOpen(ctx context.Context, open bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.open = open
	return c.persistOpen(ctx)
}

func (c *Cart) persistItems(ctx context.Context) error {
	if err := c.store.Put(ctx, storage.KeyCartItems, c.items); err != nil {
		return fmt.Errorf("failed to persist cart items: %w", err)
	}
	return nil
}

func (c *Cart) persistOpen(ctx context.Context) error {
	if err := c.store.Put(ctx, storage.KeyCartOpen, c.open); err != nil {
		return fmt.Errorf("failed to persist cart open flag: %w", err)
	}
	return nil
}
