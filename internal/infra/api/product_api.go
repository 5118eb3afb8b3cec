package api

import (
	"context"
	"net/http"

	"mise/internal/domain/entity"
	"mise/internal/domain/gateway"
	"mise/internal/errors"
)

// productAPI implements gateway.ProductGateway against the backend REST surface.
type productAPI struct {
	client *Client
}

// NewProductGateway is the constructor for productAPI.
func NewProductGateway(client *Client) gateway.ProductGateway {
	return &productAPI{client: client}
}

// productBody is the wire shape the backend expects for create and update.
type productBody struct {
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"product_name"`
	Price        int64  `json:"product_price"`
	Category     string `json:"food_category"`
	Description  string `json:"description"`
	ExtraTime    int    `json:"extraTime"`
	Availability bool   `json:"availability"`
	IsActive     bool   `json:"isActive"`
}

func toProductBody(p *entity.Product) productBody {
	return productBody{
		RestaurantID: p.RestaurantID,
		Name:         p.Name,
		Price:        p.Price,
		Category:     p.Category,
		Description:  p.Description,
		ExtraTime:    p.ExtraTime,
		Availability: p.IsAvailable,
		IsActive:     p.IsActive,
	}
}

// FetchProducts retrieves the full menu of a restaurant.
func (a *productAPI) FetchProducts(ctx context.Context, restaurantID string) ([]entity.Product, error) {
	raw, err := a.client.do(ctx, http.MethodGet, "/get_all_product/"+restaurantID, nil, true)
	if err != nil {
		return nil, errors.WithMessage(err, "fetch products")
	}

	list, err := parseList(raw, "products", "data")
	if err != nil {
		return nil, errors.WithMessage(err, "fetch products")
	}

	products := make([]entity.Product, 0, len(list))
	for _, item := range list {
		product, err := DecodeProduct(item, restaurantID)
		if err != nil {
			return nil, errors.WithMessage(err, "fetch products")
		}
		products = append(products, product)
	}

	return products, nil
}

// CreateProduct creates a product and returns it with the server-assigned ID.
func (a *productAPI) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	raw, err := a.client.do(ctx, http.MethodPost, "/create-product", toProductBody(product), true)
	if err != nil {
		return nil, errors.WithMessage(err, "create product")
	}

	m, err := parseObject(raw)
	if err != nil {
		return nil, errors.WithMessage(err, "create product")
	}
	// Some responses wrap the created product, some return it bare.
	if nested, ok := m["product"].(map[string]any); ok {
		m = nested
	}

	created, err := DecodeProduct(m, product.RestaurantID)
	if err != nil {
		return nil, errors.WithMessage(err, "create product")
	}

	return &created, nil
}

// UpdateProduct replaces the mutable fields of an existing product.
func (a *productAPI) UpdateProduct(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		return errors.New("update requires a product id")
	}
	if _, err := a.client.do(ctx, http.MethodPut, "/update-product/"+product.ID, toProductBody(product), true); err != nil {
		return errors.WithMessage(err, "update product "+product.ID)
	}

	return nil
}

// DeleteProduct removes a product from the menu.
func (a *productAPI) DeleteProduct(ctx context.Context, productID string) error {
	if _, err := a.client.do(ctx, http.MethodDelete, "/delete_product/"+productID, nil, true); err != nil {
		return errors.WithMessage(err, "delete product "+productID)
	}

	return nil
}
