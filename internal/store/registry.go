package store

import (
	"mise/internal/domain/entity"
	domainerrors "mise/internal/domain/errors"
)

// Registry owns the three entity collections of a session. It is the single
// mutation point for entity data: use cases pull their collection from here
// and nothing outside the store mutates entities directly.
type Registry struct {
	Orders   *Collection[entity.Order]
	Products *Collection[entity.Product]
	Profile  *Collection[entity.Restaurant]
}

// NewRegistry builds the collections with their identity and clone functions.
func NewRegistry() *Registry {
	orders := NewCollection(
		func(o entity.Order) string { return o.ID },
		entity.Order.Clone,
	)
	// "No orders yet" comes back from the backend as a not-found, which is
	// an empty list as far as the UI is concerned.
	orders.RecoverEmpty(domainerrors.IsNotFound)

	return &Registry{
		Orders: orders,
		Products: NewCollection(
			func(p entity.Product) string { return p.ID },
			entity.Product.Clone,
		),
		Profile: NewCollection(
			func(r entity.Restaurant) string { return r.ID },
			entity.Restaurant.Clone,
		),
	}
}

// ResetAll clears every collection and starts new generations. Called on
// logout so stale in-flight results are discarded instead of committed.
func (r *Registry) ResetAll() {
	r.Orders.Reset()
	r.Products.Reset()
	r.Profile.Reset()
}
