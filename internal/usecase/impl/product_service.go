package impl

import (
	"context"
	"log/slog"

	"mise/internal/domain/entity"
	domainerrors "mise/internal/domain/errors"
	"mise/internal/domain/gateway"
	"mise/internal/infra/auth"
	"mise/internal/store"
	"mise/internal/usecase"

	"github.com/pkg/errors"
)

// productService implements the ProductUsecase interface.
type productService struct {
	registry *store.Registry
	products gateway.ProductGateway
	session  *auth.SessionHolder
	logger   *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(
	registry *store.Registry,
	products gateway.ProductGateway,
	session *auth.SessionHolder,
	logger *slog.Logger,
) usecase.ProductUsecase {
	return &productService{
		registry: registry,
		products: products,
		session:  session,
		logger:   logger,
	}
}

// Products ensures the menu collection is loaded and returns its snapshot.
func (srv *productService) Products(ctx context.Context, force bool) (store.Snapshot[entity.Product], error) {
	restaurantID, err := activeRestaurantID(srv.session)
	if err != nil {
		return srv.registry.Products.Snapshot(), err
	}

	err = srv.registry.Products.Load(ctx, force, func(ctx context.Context) ([]entity.Product, error) {
		return srv.products.FetchProducts(ctx, restaurantID)
	})
	if err != nil {
		srv.logger.Warn("menu refresh failed", "restaurantID", restaurantID, "error", err)
	}

	return srv.registry.Products.Snapshot(), err
}

// Snapshot returns the current menu state without fetching.
func (srv *productService) Snapshot() store.Snapshot[entity.Product] {
	return srv.registry.Products.Snapshot()
}

// Create registers a new product on the backend. The store picks up the
// server-assigned row on the refresh that follows; identifiers are never
// invented locally.
func (srv *productService) Create(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	restaurantID, err := activeRestaurantID(srv.session)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		RestaurantID: restaurantID,
		Name:         input.Name,
		Price:        input.Price,
		Category:     input.Category,
		Description:  input.Description,
		ExtraTime:    input.ExtraTime,
		IsAvailable:  input.IsAvailable,
		IsActive:     true,
	}

	created, err := srv.products.CreateProduct(ctx, product)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}
	srv.logger.Info("product created", "productID", created.ID, "name", created.Name)

	srv.registry.Products.Invalidate()
	if _, err := srv.Products(ctx, true); err != nil {
		srv.logger.Warn("menu refresh after create failed", "error", err)
	}

	return created, nil
}

// Update applies the non-nil input fields to an existing product. The change
// is visible immediately; a backend failure restores the previous value.
func (srv *productService) Update(ctx context.Context, productID string, input *usecase.UpdateProductInput) error {
	current, err := srv.findProduct(productID)
	if err != nil {
		return err
	}

	desired := current.Clone()
	applyProductInput(&desired, input)

	err = srv.registry.Products.Mutate(ctx, productID,
		func(p *entity.Product) { applyProductInput(p, input) },
		func(ctx context.Context) error { return srv.products.UpdateProduct(ctx, &desired) },
	)
	if err != nil {
		srv.logger.Warn("product update rolled back", "productID", productID, "error", err)

		return errors.Wrap(err, "failed to update product")
	}

	return nil
}

// SetAvailability flips the sold-out flag of a product.
func (srv *productService) SetAvailability(ctx context.Context, productID string, available bool) error {
	return srv.Update(ctx, productID, &usecase.UpdateProductInput{IsAvailable: &available})
}

// Delete removes a product from the menu on the backend, then refreshes the
// store so the row disappears.
func (srv *productService) Delete(ctx context.Context, productID string) error {
	if _, err := srv.findProduct(productID); err != nil {
		return err
	}
	if srv.registry.Products.IsBusy(productID) {
		return domainerrors.ErrBusy.WrapMessage("product " + productID)
	}

	if err := srv.products.DeleteProduct(ctx, productID); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}
	srv.logger.Info("product deleted", "productID", productID)

	srv.registry.Products.Invalidate()
	if _, err := srv.Products(ctx, true); err != nil {
		srv.logger.Warn("menu refresh after delete failed", "error", err)
	}

	return nil
}

// Invalidate forces the next Products call to hit the backend.
func (srv *productService) Invalidate() {
	srv.registry.Products.Invalidate()
}

// Subscribe registers an observer for menu changes.
func (srv *productService) Subscribe(obs store.Observer[entity.Product]) func() {
	return srv.registry.Products.Subscribe(obs)
}

func (srv *productService) findProduct(productID string) (entity.Product, error) {
	snap := srv.registry.Products.Snapshot()
	for _, product := range snap.Items {
		if product.ID == productID {
			return product, nil
		}
	}

	return entity.Product{}, domainerrors.ErrNotFound.WrapMessage("product " + productID + " is not in the store")
}

func applyProductInput(p *entity.Product, input *usecase.UpdateProductInput) {
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Category != nil {
		p.Category = *input.Category
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.ExtraTime != nil {
		p.ExtraTime = *input.ExtraTime
	}
	if input.IsAvailable != nil {
		p.IsAvailable = *input.IsAvailable
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
}
