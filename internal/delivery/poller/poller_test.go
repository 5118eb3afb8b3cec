package poller

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"mise/internal/domain/entity"
	"mise/internal/store"
	"mise/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionUC struct {
	active atomic.Bool
}

func (f *fakeSessionUC) Restore(context.Context) (*entity.Session, error) { return nil, nil }
func (f *fakeSessionUC) Login(context.Context, *usecase.LoginInput) (*entity.Session, error) {
	return nil, nil
}
func (f *fakeSessionUC) Logout(context.Context) error { return nil }
func (f *fakeSessionUC) Current() (entity.Session, bool) {
	if !f.active.Load() {
		return entity.Session{}, false
	}

	return entity.Session{Token: "t", RestaurantID: "r-1"}, true
}

type fakeOrderUC struct {
	refreshes atomic.Int64
}

func (f *fakeOrderUC) Orders(context.Context, bool) (store.Snapshot[entity.Order], error) {
	f.refreshes.Add(1)

	return store.Snapshot[entity.Order]{State: store.StateLoaded}, nil
}
func (f *fakeOrderUC) Snapshot() store.Snapshot[entity.Order] {
	return store.Snapshot[entity.Order]{}
}
func (f *fakeOrderUC) Complete(context.Context, string) error { return nil }
func (f *fakeOrderUC) PickupQR(string) ([]byte, error)        { return nil, nil }
func (f *fakeOrderUC) Invalidate()                            {}
func (f *fakeOrderUC) Subscribe(store.Observer[entity.Order]) func() {
	return func() {}
}

func testPoller(interval time.Duration, sessions *fakeSessionUC, orders *fakeOrderUC) *poller {
	return &poller{
		enabled:   true,
		interval:  interval,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionUC: sessions,
		orderUC:   orders,
		stop:      make(chan struct{}),
	}
}

func TestPollerRefreshesWhileLoggedIn(t *testing.T) {
	sessions := &fakeSessionUC{}
	sessions.active.Store(true)
	orders := &fakeOrderUC{}
	p := testPoller(5*time.Millisecond, sessions, orders)

	done := make(chan error, 1)
	go func() { done <- p.Serve(context.Background()) }()

	require.Eventually(t, func() bool {
		return orders.refreshes.Load() >= 2
	}, time.Second, time.Millisecond)

	close(p.stop)
	require.NoError(t, <-done)
}

func TestPollerSkipsWithoutSession(t *testing.T) {
	sessions := &fakeSessionUC{}
	orders := &fakeOrderUC{}
	p := testPoller(2*time.Millisecond, sessions, orders)

	done := make(chan error, 1)
	go func() { done <- p.Serve(context.Background()) }()

	time.Sleep(30 * time.Millisecond)
	close(p.stop)
	require.NoError(t, <-done)

	assert.Zero(t, orders.refreshes.Load())
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	sessions := &fakeSessionUC{}
	orders := &fakeOrderUC{}
	p := testPoller(time.Millisecond, sessions, orders)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Serve(ctx) }()

	cancel()
	err := <-done
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPollerDisabledReturnsImmediately(t *testing.T) {
	p := testPoller(time.Millisecond, &fakeSessionUC{}, &fakeOrderUC{})
	p.enabled = false

	require.NoError(t, p.Serve(context.Background()))
}
