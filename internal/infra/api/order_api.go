package api

import (
	"context"
	"net/http"

	"mise/internal/domain/entity"
	"mise/internal/domain/gateway"
	"mise/internal/errors"
)

// orderAPI implements gateway.OrderGateway against the backend REST surface.
type orderAPI struct {
	client *Client
}

// NewOrderGateway is the constructor for orderAPI.
func NewOrderGateway(client *Client) gateway.OrderGateway {
	return &orderAPI{client: client}
}

// FetchOrders retrieves all orders of a restaurant.
func (a *orderAPI) FetchOrders(ctx context.Context, restaurantID string) ([]entity.Order, error) {
	raw, err := a.client.do(ctx, http.MethodGet, "/get-order/"+restaurantID, nil, true)
	if err != nil {
		return nil, errors.WithMessage(err, "fetch orders")
	}

	list, err := parseList(raw, "orders", "data")
	if err != nil {
		return nil, errors.WithMessage(err, "fetch orders")
	}

	orders := make([]entity.Order, 0, len(list))
	for _, item := range list {
		order, err := DecodeOrder(item, restaurantID)
		if err != nil {
			return nil, errors.WithMessage(err, "fetch orders")
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// CompleteOrder marks a single order completed on the backend.
func (a *orderAPI) CompleteOrder(ctx context.Context, orderID string) error {
	if _, err := a.client.do(ctx, http.MethodPut, "/order-complete/"+orderID, nil, true); err != nil {
		return errors.WithMessage(err, "complete order "+orderID)
	}

	return nil
}
