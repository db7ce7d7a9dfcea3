package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type productsResponse struct {
	Status   int               `json:"status"`
	Products []*domain.Product `json:"products"`
}

type productResponse struct {
	Status  int             `json:"status"`
	Product *domain.Product `json:"product"`
}

type updateStockRequest struct {
	Stock *int `json:"stock" validate:"required,min=0"`
}

// List serves the filtered, sorted catalog.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Param        category  query     string  false  "Category filter ('all' = none)"
// @Param        brand     query     string  false  "Brand filter ('all' = none)"
// @Param        color     query     string  false  "Color filter ('all' = none)"
// @Param        search    query     string  false  "Substring search over name and brand"
// @Param        minPrice  query     number  false  "Inclusive lower price bound"
// @Param        maxPrice  query     number  false  "Inclusive upper price bound"
// @Param        sort      query     string  false  "name_asc|name_desc|price_asc|price_desc|newest"
// @Success      200       {object}  productsResponse
// @Router       /products [get]
func (h *CatalogHandler) List(c echo.Context) error {
	products, err := h.service.ListProducts(c.Request().Context(), ports.ListProductsInput{
		Category: c.QueryParam("category"),
		Brand:    c.QueryParam("brand"),
		Color:    c.QueryParam("color"),
		Search:   c.QueryParam("search"),
		MinPrice: c.QueryParam("minPrice"),
		MaxPrice: c.QueryParam("maxPrice"),
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, productsResponse{Status: http.StatusOK, Products: products})
}

// Get serves a single product.
//
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  map[string]any
// @Router       /product/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	product, err := h.service.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, productResponse{Status: http.StatusOK, Product: product})
}

// UpdateStock sets the absolute stock of a product. Admin only.
//
// @Summary      Update product stock
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        token  header    string              true  "Session token (admin)"
// @Param        id     path      string              true  "Product ID"
// @Param        body   body      updateStockRequest  true  "New stock value"
// @Success      200    {object}  productResponse
// @Failure      400    {object}  map[string]any
// @Failure      403    {object}  map[string]any
// @Failure      404    {object}  map[string]any
// @Router       /products/{id}/stock [put]
func (h *CatalogHandler) UpdateStock(c echo.Context) error {
	var req updateStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.UpdateStock(c.Request().Context(), c.Param("id"), *req.Stock)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, productResponse{Status: http.StatusOK, Product: product})
}
