// Package service defines interfaces for local capabilities the use cases
// need but whose implementations are infrastructure concerns.
package service

import (
	"context"
	"time"
)

// ImageCache is the persistent tier of the image cache. Implementations must
// keep failures isolated per key; a miss is reported via the ok flag, not an
// error.
type ImageCache interface {
	// Get returns the cached bytes for the key, if present.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Put stores the bytes under the key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Clear removes every cached entry.
	Clear(ctx context.Context) error
}

// QRCodeService renders pickup QR codes for orders.
type QRCodeService interface {
	// PickupQR returns a PNG QR code encoding the order pickup reference.
	PickupQR(orderID string) ([]byte, error)
}

// TokenInspector reads claims out of a backend-issued bearer token without
// verifying its signature; the backend owns the key.
type TokenInspector interface {
	// Inspect returns the subject and expiry carried by the token. Expiry is
	// zero when the token carries none.
	Inspect(token string) (subject string, expiresAt time.Time, err error)
}
