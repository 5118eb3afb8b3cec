package usecase

import (
	"context"

	"mise/internal/domain/entity"
)

// SessionUsecase defines the interface for session lifecycle operations.
type SessionUsecase interface {
	// Restore loads a previously persisted session at startup. It returns the
	// session not-found condition when none is stored or the stored one has
	// expired.
	Restore(ctx context.Context) (*entity.Session, error)

	// Login authenticates against the backend, installs the session as the
	// active one and persists it.
	Login(ctx context.Context, input *LoginInput) (*entity.Session, error)

	// Logout clears the active and persisted session and resets all entity
	// collections.
	Logout(ctx context.Context) error

	// Current returns a copy of the active session, if any.
	Current() (entity.Session, bool)
}

// LoginInput defines the credentials for a backend login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
