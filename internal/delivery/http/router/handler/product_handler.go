package handler

import (
	"log/slog"
	"net/http"

	"mise/internal/delivery/http/response"
	"mise/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	ImageUC   usecase.ImageUsecase
	Logger    *slog.Logger
}

// ProductHandler holds dependencies for menu-related handlers
type ProductHandler struct {
	productUC usecase.ProductUsecase
	imageUC   usecase.ImageUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		imageUC:   params.ImageUC,
		logger:    params.Logger,
	}
}

// SetAvailabilityRequest represents the request body for flipping the
// sold-out flag
type SetAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// List handles retrieving the menu
func (h *ProductHandler) List(c echo.Context) error {
	force := c.QueryParam("refresh") == "true"

	snap, err := h.productUC.Products(c.Request().Context(), force)
	if err != nil && len(snap.Items) == 0 {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCollectionView(snap), "Products retrieved successfully")
}

// Create handles adding a product to the menu
func (h *ProductHandler) Create(c echo.Context) error {
	var req usecase.CreateProductInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	product, err := h.productUC.Create(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// Update handles changing fields of an existing product
func (h *ProductHandler) Update(c echo.Context) error {
	productID := c.Param("productId")
	if productID == "" {
		return response.BadRequest(c, "INVALID_ID", "Missing product ID")
	}

	var req usecase.UpdateProductInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.productUC.Update(c.Request().Context(), productID, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"product_id": productID}, "Product updated successfully")
}

// SetAvailability handles flipping the sold-out flag of a product
func (h *ProductHandler) SetAvailability(c echo.Context) error {
	productID := c.Param("productId")
	if productID == "" {
		return response.BadRequest(c, "INVALID_ID", "Missing product ID")
	}

	var req SetAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid availability input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.productUC.SetAvailability(c.Request().Context(), productID, *req.Available); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"product_id": productID}, "Availability updated successfully")
}

// Delete handles removing a product from the menu
func (h *ProductHandler) Delete(c echo.Context) error {
	productID := c.Param("productId")
	if productID == "" {
		return response.BadRequest(c, "INVALID_ID", "Missing product ID")
	}

	if err := h.productUC.Delete(c.Request().Context(), productID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"product_id": productID}, "Product deleted successfully")
}

// Image handles retrieving the photo of a product
func (h *ProductHandler) Image(c echo.Context) error {
	productID := c.Param("productId")
	if productID == "" {
		return response.BadRequest(c, "INVALID_ID", "Missing product ID")
	}

	data, err := h.imageUC.ProductImage(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/jpeg", data)
}

// ClearImageCache handles dropping the image cache tiers
func (h *ProductHandler) ClearImageCache(c echo.Context) error {
	if err := h.imageUC.ClearCache(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Image cache cleared successfully")
}
