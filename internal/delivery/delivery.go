// Package delivery defines the contract every long-running surface of the
// process implements, so main can start them uniformly.
package delivery

import "context"

// Delivery is a serving loop managed by the application lifecycle.
type Delivery interface {
	// Serve blocks until the delivery stops or fails.
	Serve(ctx context.Context) error
}
