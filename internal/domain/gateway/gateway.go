// Package gateway defines the interfaces the sync core uses to talk to the
// remote restaurant backend. Implementations live in internal/infra/api; use
// cases depend only on these contracts.
package gateway

import (
	"context"

	"mise/internal/domain/entity"
)

// TokenSource exposes the credentials of the current session, if any.
// The HTTP client reads it on every authenticated request.
type TokenSource interface {
	// CurrentToken returns the bearer token of the active session.
	CurrentToken() (string, bool)

	// CurrentUserID returns the authenticated account identifier.
	CurrentUserID() (string, bool)
}

// OrderGateway covers the order endpoints of the backend.
type OrderGateway interface {
	// FetchOrders retrieves all orders of a restaurant.
	FetchOrders(ctx context.Context, restaurantID string) ([]entity.Order, error)

	// CompleteOrder marks a single order completed on the backend.
	CompleteOrder(ctx context.Context, orderID string) error
}

// ProductGateway covers the menu endpoints of the backend.
type ProductGateway interface {
	// FetchProducts retrieves the full menu of a restaurant.
	FetchProducts(ctx context.Context, restaurantID string) ([]entity.Product, error)

	// CreateProduct creates a product and returns it with the server-assigned ID.
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)

	// UpdateProduct replaces the mutable fields of an existing product.
	UpdateProduct(ctx context.Context, product *entity.Product) error

	// DeleteProduct removes a product from the menu.
	DeleteProduct(ctx context.Context, productID string) error
}

// ImageGateway fetches binary product photos.
type ImageGateway interface {
	// FetchProductImage downloads the photo bytes for a product.
	FetchProductImage(ctx context.Context, productID string) ([]byte, error)
}

// AuthGateway covers login and profile endpoints.
type AuthGateway interface {
	// Login authenticates with the backend and returns the issued session.
	Login(ctx context.Context, email, password string) (*entity.Session, error)

	// FetchRestaurant retrieves the restaurant profile.
	FetchRestaurant(ctx context.Context, restaurantID string) (*entity.Restaurant, error)

	// UpdateRestaurant replaces the mutable fields of the restaurant profile.
	UpdateRestaurant(ctx context.Context, restaurant *entity.Restaurant) error
}
