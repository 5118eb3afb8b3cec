package usecase

import (
	"context"

	"mise/internal/domain/entity"
	"mise/internal/store"
)

// ProductUsecase defines the interface for menu management operations.
type ProductUsecase interface {
	// Products ensures the menu collection is loaded and returns its snapshot.
	Products(ctx context.Context, force bool) (store.Snapshot[entity.Product], error)

	// Snapshot returns the current menu state without fetching.
	Snapshot() store.Snapshot[entity.Product]

	// Create registers a new product on the backend and inserts the
	// server-assigned result into the store.
	Create(ctx context.Context, input *CreateProductInput) (*entity.Product, error)

	// Update applies the non-nil input fields to an existing product,
	// optimistically and with rollback on backend failure.
	Update(ctx context.Context, productID string, input *UpdateProductInput) error

	// SetAvailability flips the sold-out flag of a product.
	SetAvailability(ctx context.Context, productID string, available bool) error

	// Delete removes a product from the menu.
	Delete(ctx context.Context, productID string) error

	// Invalidate forces the next Products call to hit the backend.
	Invalidate()

	// Subscribe registers an observer for menu changes.
	Subscribe(obs store.Observer[entity.Product]) func()
}

// --- Input DTOs ---

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
	Name        string `json:"name" validate:"required"`
	Price       int64  `json:"price" validate:"gte=0"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ExtraTime   int    `json:"extra_time" validate:"gte=0"`
	IsAvailable bool   `json:"is_available"`
}

// UpdateProductInput defines the data to change on an existing product.
// Nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string `json:"name,omitempty"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	ExtraTime   *int    `json:"extra_time,omitempty" validate:"omitempty,gte=0"`
	IsAvailable *bool   `json:"is_available,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
