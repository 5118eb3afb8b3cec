package api

import (
	"context"
	"net/http"
	"time"

	"mise/internal/domain/entity"
	"mise/internal/domain/gateway"
	"mise/internal/errors"
)

// authAPI implements gateway.AuthGateway against the backend REST surface.
type authAPI struct {
	client *Client
}

// NewAuthGateway is the constructor for authAPI.
func NewAuthGateway(client *Client) gateway.AuthGateway {
	return &authAPI{client: client}
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with the backend and returns the issued session.
// Login itself never attaches a bearer token.
func (a *authAPI) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	raw, err := a.client.do(ctx, http.MethodPost, "/restaurant-login", loginBody{Email: email, Password: password}, false)
	if err != nil {
		return nil, errors.WithMessage(err, "login")
	}

	session, err := DecodeSession(raw)
	if err != nil {
		return nil, errors.WithMessage(err, "login")
	}
	session.CreatedAt = time.Now()

	return session, nil
}

// FetchRestaurant retrieves the restaurant profile.
func (a *authAPI) FetchRestaurant(ctx context.Context, restaurantID string) (*entity.Restaurant, error) {
	raw, err := a.client.do(ctx, http.MethodGet, "/get_restaurant/"+restaurantID, nil, true)
	if err != nil {
		return nil, errors.WithMessage(err, "fetch restaurant")
	}

	m, err := parseObject(raw)
	if err != nil {
		return nil, errors.WithMessage(err, "fetch restaurant")
	}

	restaurant, err := DecodeRestaurant(m)
	if err != nil {
		return nil, errors.WithMessage(err, "fetch restaurant")
	}

	return &restaurant, nil
}

type restaurantBody struct {
	RestaurantID  string `json:"restaurant_id"`
	Name          string `json:"restaurant_name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Cuisine       string `json:"cuisine"`
	EstimatedTime int    `json:"estimatedTime"`
}

// UpdateRestaurant replaces the mutable fields of the restaurant profile.
func (a *authAPI) UpdateRestaurant(ctx context.Context, restaurant *entity.Restaurant) error {
	body := restaurantBody{
		RestaurantID:  restaurant.ID,
		Name:          restaurant.Name,
		Address:       restaurant.Address,
		Phone:         restaurant.Phone,
		Email:         restaurant.Email,
		Cuisine:       restaurant.Cuisine,
		EstimatedTime: restaurant.EstimatedTime,
	}
	if _, err := a.client.do(ctx, http.MethodPost, "/update_restaurant", body, true); err != nil {
		return errors.WithMessage(err, "update restaurant")
	}

	return nil
}
