package entity

import "time"

// Session is the authenticated context of the current login: the bearer token
// plus the identities it grants access to. It is persisted locally so the
// client survives process restarts without a fresh login.
type Session struct {
	Token        string    // Bearer token issued by the backend.
	UserID       string    // Authenticated account identifier.
	RestaurantID string    // Restaurant the account administers.
	ExpiresAt    time.Time // Token expiry; zero when the token carries none.
	CreatedAt    time.Time // When this session was established locally.
}

// Expired reports whether the token expiry, when known, has passed.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}
