// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// OrderStatus is the server-side lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusScheduled OrderStatus = "scheduled"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsTerminal reports whether the status admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ProductID string // Identifier of the ordered product.
	Name      string // Product name as it appeared at order time.
	Quantity  int    // Number of units ordered.
	Price     int64  // Unit price in minor currency units.
}

// Order is a customer order as reported by the backend. Orders are created
// server-side; the only transition this client performs is completing a
// non-terminal order.
type Order struct {
	ID           string      // Backend identifier of the order.
	RestaurantID string      // Restaurant this order belongs to.
	Items        []OrderItem // Ordered line items.
	TotalAmount  int64       // Order total in minor currency units.
	Status       OrderStatus // Current lifecycle state.
	ScheduledAt  *time.Time  // Optional pickup schedule; nil for immediate orders.
	CreatedAt    time.Time   // When the order was placed.
}

// CanComplete reports whether the complete transition is allowed.
func (o *Order) CanComplete() bool {
	return !o.Status.IsTerminal()
}

// Clone returns a deep copy, so optimistic rollback can restore the exact
// pre-mutation value even if line items were touched.
func (o Order) Clone() Order {
	out := o
	out.Items = make([]OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	if o.ScheduledAt != nil {
		at := *o.ScheduledAt
		out.ScheduledAt = &at
	}

	return out
}
