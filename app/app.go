package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"rightyway-storefront/adminapi"
	"rightyway-storefront/app/controller"
	"rightyway-storefront/app/router"
	"rightyway-storefront/cart"
	"rightyway-storefront/catalog"
	"rightyway-storefront/checkout"
	"rightyway-storefront/customer"
	"rightyway-storefront/session"
	"rightyway-storefront/storage"
)

// Initialize initializes the application
func Initialize() (storage.Store, error) {
	// Open the persistent session store
	store, err := storage.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	ctx := context.Background()

	// Reload persisted session state
	sess, err := session.Load(ctx, store)
	if err != nil {
		return nil, err
	}
	cartStore, err := cart.Load(ctx, store)
	if err != nil {
		return nil, err
	}
	directory, err := customer.Load(ctx, store)
	if err != nil {
		return nil, err
	}

	// Catalog cache against the shop backend
	apiBaseURL := os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL environment variable is not set")
	}
	cache := catalog.NewCache(apiBaseURL)
	if err := cache.Fetch(ctx); err != nil {
		// The storefront still starts; the catalog can be refreshed later.
		log.Printf("❌ Initial catalog fetch failed: %v", err)
	}

	// Checkout composer with the shop's WhatsApp number
	phone := os.Getenv("WHATSAPP_PHONE")
	if phone == "" {
		return nil, fmt.Errorf("WHATSAPP_PHONE environment variable is not set")
	}
	composer := checkout.NewComposer(phone)

	// Admin API client against the same shop backend
	adminClient := adminapi.NewClient(apiBaseURL)

	// Create controllers
	controllers := &router.Controllers{
		Catalog:  controller.NewCatalogController(cache),
		Cart:     controller.NewCartController(cartStore, cache),
		Customer: controller.NewCustomerController(directory),
		Checkout: controller.NewCheckoutController(cartStore, directory, composer, sess),
		Session:  controller.NewSessionController(sess),
		Admin:    controller.NewAdminController(adminClient),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return store, nil
}
