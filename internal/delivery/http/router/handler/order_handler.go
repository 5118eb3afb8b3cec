package handler

import (
	"log/slog"
	"net/http"
	"time"

	"mise/internal/delivery/http/response"
	"mise/internal/store"
	"mise/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order-related handlers
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// collectionView wraps a snapshot for the panel, exposing the fetch state
// alongside the data so the UI can render stale rows during a failed refresh.
type collectionView[T any] struct {
	State       string `json:"state"`
	Items       []T    `json:"items"`
	Error       string `json:"error,omitempty"`
	LastFetched string `json:"last_fetched,omitempty"`
}

func newCollectionView[T any](snap store.Snapshot[T]) collectionView[T] {
	view := collectionView[T]{
		State: snap.State.String(),
		Items: snap.Items,
	}
	if snap.Err != nil {
		view.Error = snap.Err.Error()
	}
	if !snap.LastFetched.IsZero() {
		view.LastFetched = snap.LastFetched.Format(time.RFC3339)
	}

	return view
}

// List handles retrieving the order board
func (h *OrderHandler) List(c echo.Context) error {
	force := c.QueryParam("refresh") == "true"

	snap, err := h.orderUC.Orders(c.Request().Context(), force)
	if err != nil && len(snap.Items) == 0 {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCollectionView(snap), "Orders retrieved successfully")
}

// Complete handles marking an order completed
func (h *OrderHandler) Complete(c echo.Context) error {
	orderID := c.Param("orderId")
	if orderID == "" {
		return response.BadRequest(c, "INVALID_ID", "Missing order ID")
	}

	if err := h.orderUC.Complete(c.Request().Context(), orderID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"order_id": orderID}, "Order completed successfully")
}

// PickupQR handles rendering the pickup QR code for an order
func (h *OrderHandler) PickupQR(c echo.Context) error {
	orderID := c.Param("orderId")
	if orderID == "" {
		return response.BadRequest(c, "INVALID_ID", "Missing order ID")
	}

	qrCode, err := h.orderUC.PickupQR(orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set("Content-Disposition", "inline; filename=pickup-qr.png")

	return c.Blob(http.StatusOK, "image/png", qrCode)
}
