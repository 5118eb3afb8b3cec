// Package handler contains the HTTP handlers of the local panel API.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"mise/internal/delivery/http/response"
	"mise/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	Logger    *slog.Logger
}

// SessionHandler holds dependencies for session-related handlers
type SessionHandler struct {
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler
func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return &SessionHandler{
		sessionUC: params.SessionUC,
		logger:    params.Logger,
	}
}

// sessionView is the session as exposed to the panel; the token never leaves
// the process.
type sessionView struct {
	UserID       string `json:"user_id"`
	RestaurantID string `json:"restaurant_id"`
	ExpiresAt    string `json:"expires_at,omitempty"`
}

// Login handles backend authentication
func (h *SessionHandler) Login(c echo.Context) error {
	var req usecase.LoginInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	session, err := h.sessionUC.Login(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	view := sessionView{
		UserID:       session.UserID,
		RestaurantID: session.RestaurantID,
	}
	if !session.ExpiresAt.IsZero() {
		view.ExpiresAt = session.ExpiresAt.Format(time.RFC3339)
	}

	return response.Success(c, http.StatusOK, view, "Logged in successfully")
}

// Logout handles clearing the active session
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessionUC.Logout(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Logged out successfully")
}

// Current handles reading the active session
func (h *SessionHandler) Current(c echo.Context) error {
	session, ok := h.sessionUC.Current()
	if !ok {
		return response.Unauthorized(c, "NO_SESSION", "No active session")
	}

	view := sessionView{
		UserID:       session.UserID,
		RestaurantID: session.RestaurantID,
	}
	if !session.ExpiresAt.IsZero() {
		view.ExpiresAt = session.ExpiresAt.Format(time.RFC3339)
	}

	return response.Success(c, http.StatusOK, view, "Session retrieved successfully")
}
