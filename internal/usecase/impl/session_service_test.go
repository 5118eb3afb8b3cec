package impl

import (
	"context"
	"testing"
	"time"

	"mise/internal/domain/entity"
	domainerrors "mise/internal/domain/errors"
	"mise/internal/infra/auth"
	"mise/internal/store"
	"mise/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionServiceLogin(t *testing.T) {
	expiry := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	gw := &fakeAuthGateway{session: &entity.Session{
		Token:        "token-1",
		RestaurantID: "r-1",
	}}
	repo := &fakeSessionRepo{}
	holder := auth.NewSessionHolder()
	srv := NewSessionService(gw, repo, holder, &fakeInspector{subject: "user-1", expiresAt: expiry},
		store.NewRegistry(), testLogger())

	session, err := srv.Login(context.Background(), &usecase.LoginInput{
		Email:    "owner@cheznous.example",
		Password: "secret",
	})
	require.NoError(t, err)

	// Claims fill in what the login response left out.
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, expiry, session.ExpiresAt)
	assert.False(t, session.CreatedAt.IsZero())

	token, ok := holder.CurrentToken()
	require.True(t, ok)
	assert.Equal(t, "token-1", token)
	assert.Equal(t, 1, repo.saved)
}

func TestSessionServiceLoginFailure(t *testing.T) {
	gw := &fakeAuthGateway{loginErr: domainerrors.ErrUnauthorized}
	holder := auth.NewSessionHolder()
	srv := NewSessionService(gw, &fakeSessionRepo{}, holder, &fakeInspector{},
		store.NewRegistry(), testLogger())

	_, err := srv.Login(context.Background(), &usecase.LoginInput{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.True(t, domainerrors.IsUnauthorized(err))

	_, ok := holder.Current()
	assert.False(t, ok)
}

func TestSessionServiceLoginSurvivesPersistFailure(t *testing.T) {
	gw := &fakeAuthGateway{session: &entity.Session{Token: "token-1", UserID: "user-1", RestaurantID: "r-1"}}
	repo := &fakeSessionRepo{saveErr: errors.New("disk full")}
	holder := auth.NewSessionHolder()
	srv := NewSessionService(gw, repo, holder, &fakeInspector{subject: "user-1"},
		store.NewRegistry(), testLogger())

	_, err := srv.Login(context.Background(), &usecase.LoginInput{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	_, ok := holder.Current()
	assert.True(t, ok)
}

func TestSessionServiceRestore(t *testing.T) {
	repo := &fakeSessionRepo{session: &entity.Session{
		Token:        "token-1",
		UserID:       "user-1",
		RestaurantID: "r-1",
		ExpiresAt:    time.Now().Add(time.Hour),
	}}
	holder := auth.NewSessionHolder()
	srv := NewSessionService(&fakeAuthGateway{}, repo, holder, &fakeInspector{},
		store.NewRegistry(), testLogger())

	session, err := srv.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "r-1", session.RestaurantID)

	token, ok := holder.CurrentToken()
	require.True(t, ok)
	assert.Equal(t, "token-1", token)
}

func TestSessionServiceRestoreNothingPersisted(t *testing.T) {
	srv := NewSessionService(&fakeAuthGateway{}, &fakeSessionRepo{}, auth.NewSessionHolder(),
		&fakeInspector{}, store.NewRegistry(), testLogger())

	_, err := srv.Restore(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionNotFound))
}

func TestSessionServiceRestoreExpiredClears(t *testing.T) {
	repo := &fakeSessionRepo{session: &entity.Session{
		Token:     "token-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}}
	holder := auth.NewSessionHolder()
	srv := NewSessionService(&fakeAuthGateway{}, repo, holder, &fakeInspector{},
		store.NewRegistry(), testLogger())

	_, err := srv.Restore(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionNotFound))
	assert.Equal(t, 1, repo.cleared)

	_, ok := holder.Current()
	assert.False(t, ok)
}

func TestSessionServiceLogoutResetsEverything(t *testing.T) {
	repo := &fakeSessionRepo{session: &entity.Session{Token: "token-1"}}
	holder := loggedInHolder()
	registry := seededRegistry(testOrders(), testProducts())
	srv := NewSessionService(&fakeAuthGateway{}, repo, holder, &fakeInspector{}, registry, testLogger())

	require.NoError(t, srv.Logout(context.Background()))

	_, ok := holder.Current()
	assert.False(t, ok)
	assert.Nil(t, repo.session)
	assert.Equal(t, store.StateEmpty, registry.Orders.Snapshot().State)
	assert.Equal(t, store.StateEmpty, registry.Products.Snapshot().State)
}
