// Package repository defines the interfaces for local persistence. The only
// state this client persists is the session blob that survives restarts.
package repository

import (
	"context"

	"mise/internal/domain/entity"
	"mise/internal/errors"
)

// ErrSessionNotPersisted is returned when no session blob exists locally.
var ErrSessionNotPersisted = errors.New("no persisted session")

// SessionRepository stores the current session as an opaque key-value blob.
// The serialized format is private to the implementation.
type SessionRepository interface {
	// Save persists the session, replacing any previous one.
	Save(ctx context.Context, session *entity.Session) error

	// Load returns the persisted session, or ErrSessionNotPersisted.
	Load(ctx context.Context) (*entity.Session, error)

	// Clear removes the persisted session. Clearing an absent session is not
	// an error.
	Clear(ctx context.Context) error
}
