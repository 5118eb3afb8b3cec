package entity

// Product is a single menu entry owned by a restaurant.
// ID is empty only before the first successful creation round-trip.
type Product struct {
	ID           string // Backend identifier; empty until created remotely.
	RestaurantID string // Owning restaurant.
	Name         string // Display name.
	Price        int64  // Price in minor currency units; never negative.
	Category     string // Menu category, e.g. "mains".
	Description  string // Free-form description shown to customers.
	ExtraTime    int    // Extra preparation minutes on top of the restaurant default.
	IsAvailable  bool   // Whether the product can currently be ordered.
	IsActive     bool   // Whether the product is listed at all.
	ImageID      string // Optional reference to the product photo resource.
}

// Clone returns a copy suitable for optimistic rollback snapshots.
func (p Product) Clone() Product {
	return p
}
