package api

import (
	"context"
	"net/http"

	"mise/internal/domain/gateway"
	"mise/internal/errors"
)

// imageAPI implements gateway.ImageGateway against the backend REST surface.
type imageAPI struct {
	client *Client
}

// NewImageGateway is the constructor for imageAPI.
func NewImageGateway(client *Client) gateway.ImageGateway {
	return &imageAPI{client: client}
}

// FetchProductImage downloads the photo bytes for a product. The endpoint
// returns raw image bytes rather than JSON.
func (a *imageAPI) FetchProductImage(ctx context.Context, productID string) ([]byte, error) {
	raw, err := a.client.do(ctx, http.MethodGet, "/get_product_photo/"+productID, nil, true)
	if err != nil {
		return nil, errors.WithMessage(err, "fetch product photo "+productID)
	}

	return raw, nil
}
