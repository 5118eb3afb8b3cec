// Package impl contains the application-specific business rules implementations.
package impl

import (
	domainerrors "mise/internal/domain/errors"
	"mise/internal/infra/auth"

	"github.com/pkg/errors"
)

// activeRestaurantID resolves the restaurant scope every synced collection is
// keyed by. All entity fetches require an authenticated session.
func activeRestaurantID(holder *auth.SessionHolder) (string, error) {
	session, ok := holder.Current()
	if !ok {
		return "", errors.Wrap(domainerrors.ErrUnauthorized, "no active session")
	}
	if session.RestaurantID == "" {
		return "", errors.Wrap(domainerrors.ErrUnauthorized, "session carries no restaurant")
	}

	return session.RestaurantID, nil
}
