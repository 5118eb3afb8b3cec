package impl

import (
	"context"
	"testing"

	"mise/internal/domain/entity"
	domainerrors "mise/internal/domain/errors"
	"mise/internal/infra/auth"
	"mise/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrders() []entity.Order {
	return []entity.Order{
		{ID: "o-1", RestaurantID: "r-1", Status: entity.OrderStatusPending, TotalAmount: 1200,
			Items: []entity.OrderItem{{ProductID: "p-1", Name: "Soup", Quantity: 2, Price: 600}}},
		{ID: "o-2", RestaurantID: "r-1", Status: entity.OrderStatusCompleted, TotalAmount: 800},
	}
}

func TestOrderServiceOrdersLoadsOnce(t *testing.T) {
	gw := &fakeOrderGateway{orders: testOrders()}
	srv := NewOrderService(store.NewRegistry(), gw, loggedInHolder(), &fakeQRService{}, testLogger())

	snap, err := srv.Orders(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, store.StateLoaded, snap.State)
	assert.Len(t, snap.Items, 2)

	_, err = srv.Orders(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, gw.fetchCalls)
}

func TestOrderServiceOrdersRequiresSession(t *testing.T) {
	gw := &fakeOrderGateway{orders: testOrders()}
	// An empty holder means nobody logged in.
	srv := NewOrderService(store.NewRegistry(), gw, auth.NewSessionHolder(), &fakeQRService{}, testLogger())

	_, err := srv.Orders(context.Background(), false)
	require.Error(t, err)
	assert.True(t, domainerrors.IsUnauthorized(err))
	assert.Equal(t, 0, gw.fetchCalls)
}

func TestOrderServiceComplete(t *testing.T) {
	gw := &fakeOrderGateway{orders: testOrders()}
	srv := NewOrderService(seededRegistry(testOrders(), nil), gw, loggedInHolder(), &fakeQRService{}, testLogger())

	require.NoError(t, srv.Complete(context.Background(), "o-1"))
	assert.Equal(t, []string{"o-1"}, gw.completedIDs)

	snap := srv.Snapshot()
	assert.Equal(t, entity.OrderStatusCompleted, snap.Items[0].Status)
}

func TestOrderServiceCompleteRollsBack(t *testing.T) {
	gw := &fakeOrderGateway{orders: testOrders(), completeErr: domainerrors.ErrTransport}
	srv := NewOrderService(seededRegistry(testOrders(), nil), gw, loggedInHolder(), &fakeQRService{}, testLogger())

	err := srv.Complete(context.Background(), "o-1")
	require.Error(t, err)

	snap := srv.Snapshot()
	assert.Equal(t, entity.OrderStatusPending, snap.Items[0].Status)
}

func TestOrderServiceCompleteTerminalRejected(t *testing.T) {
	gw := &fakeOrderGateway{orders: testOrders()}
	srv := NewOrderService(seededRegistry(testOrders(), nil), gw, loggedInHolder(), &fakeQRService{}, testLogger())

	err := srv.Complete(context.Background(), "o-2")
	require.Error(t, err)
	assert.ErrorContains(t, err, "cannot be completed")
	assert.Equal(t, 0, gw.completeCalls)
}

func TestOrderServiceCompleteUnknownOrder(t *testing.T) {
	gw := &fakeOrderGateway{orders: testOrders()}
	srv := NewOrderService(seededRegistry(testOrders(), nil), gw, loggedInHolder(), &fakeQRService{}, testLogger())

	err := srv.Complete(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, domainerrors.IsNotFound(err))
}

func TestOrderServicePickupQR(t *testing.T) {
	qr := &fakeQRService{png: []byte("png-bytes")}
	srv := NewOrderService(seededRegistry(testOrders(), nil), &fakeOrderGateway{}, loggedInHolder(), qr, testLogger())

	png, err := srv.PickupQR("o-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), png)

	_, err = srv.PickupQR("missing")
	require.Error(t, err)
	assert.True(t, domainerrors.IsNotFound(err))
}
