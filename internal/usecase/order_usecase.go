// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"mise/internal/domain/entity"
	"mise/internal/store"
)

// OrderUsecase defines the interface for order board operations.
type OrderUsecase interface {
	// Orders ensures the order collection is loaded and returns its snapshot.
	// With force set the cached value is bypassed. A failed refresh still
	// returns the last-good snapshot alongside the error.
	Orders(ctx context.Context, force bool) (store.Snapshot[entity.Order], error)

	// Snapshot returns the current order collection state without fetching.
	Snapshot() store.Snapshot[entity.Order]

	// Complete marks an order completed, optimistically and with rollback on
	// backend failure.
	Complete(ctx context.Context, orderID string) error

	// PickupQR renders the pickup QR code for an order in the store.
	PickupQR(orderID string) ([]byte, error)

	// Invalidate forces the next Orders call to hit the backend.
	Invalidate()

	// Subscribe registers an observer for order collection changes.
	Subscribe(obs store.Observer[entity.Order]) func()
}
