package usecase

import (
	"context"

	"mise/internal/domain/entity"
)

// ProfileUsecase defines the interface for restaurant profile operations.
type ProfileUsecase interface {
	// Profile ensures the restaurant profile is loaded and returns it.
	Profile(ctx context.Context, force bool) (*entity.Restaurant, error)

	// Update applies the non-nil input fields to the profile, optimistically
	// and with rollback on backend failure.
	Update(ctx context.Context, input *UpdateProfileInput) error

	// Invalidate forces the next Profile call to hit the backend.
	Invalidate()
}

// UpdateProfileInput defines the data to change on the restaurant profile.
// Nil fields are left untouched.
type UpdateProfileInput struct {
	Name          *string `json:"name,omitempty"`
	Address       *string `json:"address,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Cuisine       *string `json:"cuisine,omitempty"`
	EstimatedTime *int    `json:"estimated_time,omitempty" validate:"omitempty,gte=0"`
}
