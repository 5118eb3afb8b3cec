// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"mise/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SessionHandler *handler.SessionHandler
	OrderHandler   *handler.OrderHandler
	ProductHandler *handler.ProductHandler
	ProfileHandler *handler.ProfileHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler *handler.SessionHandler
	orderHandler   *handler.OrderHandler
	productHandler *handler.ProductHandler
	profileHandler *handler.ProfileHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler: params.SessionHandler,
		orderHandler:   params.OrderHandler,
		productHandler: params.ProductHandler,
		profileHandler: params.ProfileHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Session routes
	sessionGroup := e.Group("/session")
	{
		sessionGroup.POST("/login", r.sessionHandler.Login)
		sessionGroup.POST("/logout", r.sessionHandler.Logout)
		sessionGroup.GET("", r.sessionHandler.Current)
	}

	// Order board routes
	orderGroup := e.Group("/orders")
	{
		orderGroup.GET("", r.orderHandler.List)
		orderGroup.POST("/:orderId/complete", r.orderHandler.Complete)
		orderGroup.GET("/:orderId/pickup-qr", r.orderHandler.PickupQR)
	}

	// Menu routes
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.productHandler.List)
		productGroup.POST("", r.productHandler.Create)
		productGroup.PUT("/:productId", r.productHandler.Update)
		productGroup.PUT("/:productId/availability", r.productHandler.SetAvailability)
		productGroup.DELETE("/:productId", r.productHandler.Delete)
		productGroup.GET("/:productId/image", r.productHandler.Image)
	}

	// Restaurant profile routes
	profileGroup := e.Group("/profile")
	{
		profileGroup.GET("", r.profileHandler.Get)
		profileGroup.PUT("", r.profileHandler.Update)
	}

	// Cache maintenance
	e.DELETE("/cache/images", r.productHandler.ClearImageCache)
}
