package impl

import (
	"context"
	"log/slog"

	"mise/internal/domain/entity"
	domainerrors "mise/internal/domain/errors"
	"mise/internal/domain/gateway"
	"mise/internal/infra/auth"
	"mise/internal/store"
	"mise/internal/usecase"

	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface. The profile scope
// is a collection of exactly one restaurant.
type profileService struct {
	registry *store.Registry
	backend  gateway.AuthGateway
	session  *auth.SessionHolder
	logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	registry *store.Registry,
	backend gateway.AuthGateway,
	session *auth.SessionHolder,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		registry: registry,
		backend:  backend,
		session:  session,
		logger:   logger,
	}
}

// Profile ensures the restaurant profile is loaded and returns it.
func (srv *profileService) Profile(ctx context.Context, force bool) (*entity.Restaurant, error) {
	restaurantID, err := activeRestaurantID(srv.session)
	if err != nil {
		return nil, err
	}

	err = srv.registry.Profile.Load(ctx, force, func(ctx context.Context) ([]entity.Restaurant, error) {
		restaurant, err := srv.backend.FetchRestaurant(ctx, restaurantID)
		if err != nil {
			return nil, err
		}

		return []entity.Restaurant{*restaurant}, nil
	})
	if err != nil {
		srv.logger.Warn("profile refresh failed", "restaurantID", restaurantID, "error", err)

		return nil, errors.Wrap(err, "failed to load restaurant profile")
	}

	snap := srv.registry.Profile.Snapshot()
	if len(snap.Items) == 0 {
		return nil, domainerrors.ErrNotFound.WrapMessage("restaurant profile is not in the store")
	}
	restaurant := snap.Items[0]

	return &restaurant, nil
}

// Update applies the non-nil input fields to the profile, optimistically and
// with rollback on backend failure.
func (srv *profileService) Update(ctx context.Context, input *usecase.UpdateProfileInput) error {
	snap := srv.registry.Profile.Snapshot()
	if len(snap.Items) == 0 {
		return domainerrors.ErrNotFound.WrapMessage("restaurant profile is not in the store")
	}

	desired := snap.Items[0].Clone()
	applyProfileInput(&desired, input)

	err := srv.registry.Profile.Mutate(ctx, desired.ID,
		func(r *entity.Restaurant) { applyProfileInput(r, input) },
		func(ctx context.Context) error { return srv.backend.UpdateRestaurant(ctx, &desired) },
	)
	if err != nil {
		srv.logger.Warn("profile update rolled back", "restaurantID", desired.ID, "error", err)

		return errors.Wrap(err, "failed to update restaurant profile")
	}

	return nil
}

// Invalidate forces the next Profile call to hit the backend.
func (srv *profileService) Invalidate() {
	srv.registry.Profile.Invalidate()
}

func applyProfileInput(r *entity.Restaurant, input *usecase.UpdateProfileInput) {
	if input.Name != nil {
		r.Name = *input.Name
	}
	if input.Address != nil {
		r.Address = *input.Address
	}
	if input.Phone != nil {
		r.Phone = *input.Phone
	}
	if input.Email != nil {
		r.Email = *input.Email
	}
	if input.Cuisine != nil {
		r.Cuisine = *input.Cuisine
	}
	if input.EstimatedTime != nil {
		r.EstimatedTime = *input.EstimatedTime
	}
}
