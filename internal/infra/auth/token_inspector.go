// Package auth provides concrete implementations for session-related domain
// services: bearer-token claim inspection and the in-memory session holder.
package auth

import (
	"time"

	"mise/internal/domain/service"
	"mise/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// tokenInspector reads registered claims out of backend-issued JWTs. The
// backend holds the signing key, so the token is parsed unverified; the
// claims are used only to pre-empt calls that are certain to fail.
type tokenInspector struct {
	parser *jwt.Parser
}

// NewTokenInspector is the constructor for tokenInspector.
func NewTokenInspector() service.TokenInspector {
	return &tokenInspector{
		parser: jwt.NewParser(),
	}
}

// Inspect returns the subject and expiry carried by the token.
func (i *tokenInspector) Inspect(token string) (string, time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return "", time.Time{}, errors.Wrap(err, "parse bearer token")
	}

	subject, err := claims.GetSubject()
	if err != nil {
		subject = ""
	}

	var expiresAt time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	return subject, expiresAt, nil
}
