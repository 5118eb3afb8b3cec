package entity

// Restaurant is the profile of the restaurant the current session manages.
// There is a single active instance per session: it is replaced wholesale on
// login and cleared on logout.
type Restaurant struct {
	ID            string // Backend identifier of the restaurant.
	Name          string // Display name.
	Address       string // Street address.
	Phone         string // Contact phone number.
	Email         string // Contact email.
	Cuisine       string // Cuisine label, e.g. "north indian".
	EstimatedTime int    // Default preparation estimate in minutes.
}

// Clone returns a copy suitable for optimistic rollback snapshots.
func (r Restaurant) Clone() Restaurant {
	return r
}
