package impl

import (
	"context"
	"log/slog"

	"mise/internal/domain/entity"
	domainerrors "mise/internal/domain/errors"
	"mise/internal/domain/gateway"
	"mise/internal/domain/service"
	"mise/internal/infra/auth"
	"mise/internal/store"
	"mise/internal/usecase"

	"github.com/pkg/errors"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	registry *store.Registry
	orders   gateway.OrderGateway
	session  *auth.SessionHolder
	qr       service.QRCodeService
	logger   *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	registry *store.Registry,
	orders gateway.OrderGateway,
	session *auth.SessionHolder,
	qr service.QRCodeService,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		registry: registry,
		orders:   orders,
		session:  session,
		qr:       qr,
		logger:   logger,
	}
}

// Orders ensures the order collection is loaded and returns its snapshot.
func (srv *orderService) Orders(ctx context.Context, force bool) (store.Snapshot[entity.Order], error) {
	restaurantID, err := activeRestaurantID(srv.session)
	if err != nil {
		return srv.registry.Orders.Snapshot(), err
	}

	err = srv.registry.Orders.Load(ctx, force, func(ctx context.Context) ([]entity.Order, error) {
		return srv.orders.FetchOrders(ctx, restaurantID)
	})
	if err != nil {
		srv.logger.Warn("order refresh failed", "restaurantID", restaurantID, "error", err)
	}

	return srv.registry.Orders.Snapshot(), err
}

// Snapshot returns the current order collection state without fetching.
func (srv *orderService) Snapshot() store.Snapshot[entity.Order] {
	return srv.registry.Orders.Snapshot()
}

// Complete marks an order completed. The status flips locally first; a
// backend failure restores the previous value.
func (srv *orderService) Complete(ctx context.Context, orderID string) error {
	order, err := srv.findOrder(orderID)
	if err != nil {
		return err
	}
	if !order.CanComplete() {
		return errors.Wrap(domainerrors.ErrValidationFailed,
			"order "+orderID+" cannot be completed from status "+string(order.Status))
	}

	err = srv.registry.Orders.Mutate(ctx, orderID,
		func(o *entity.Order) { o.Status = entity.OrderStatusCompleted },
		func(ctx context.Context) error { return srv.orders.CompleteOrder(ctx, orderID) },
	)
	if err != nil {
		srv.logger.Warn("order completion rolled back", "orderID", orderID, "error", err)

		return errors.Wrap(err, "failed to complete order")
	}
	srv.logger.Info("order completed", "orderID", orderID)

	return nil
}

// PickupQR renders the pickup QR code for an order in the store.
func (srv *orderService) PickupQR(orderID string) ([]byte, error) {
	if _, err := srv.findOrder(orderID); err != nil {
		return nil, err
	}

	png, err := srv.qr.PickupQR(orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render pickup QR")
	}

	return png, nil
}

// Invalidate forces the next Orders call to hit the backend.
func (srv *orderService) Invalidate() {
	srv.registry.Orders.Invalidate()
}

// Subscribe registers an observer for order collection changes.
func (srv *orderService) Subscribe(obs store.Observer[entity.Order]) func() {
	return srv.registry.Orders.Subscribe(obs)
}

func (srv *orderService) findOrder(orderID string) (entity.Order, error) {
	snap := srv.registry.Orders.Snapshot()
	for _, order := range snap.Items {
		if order.ID == orderID {
			return order, nil
		}
	}

	return entity.Order{}, domainerrors.ErrNotFound.WrapMessage("order " + orderID + " is not in the store")
}
