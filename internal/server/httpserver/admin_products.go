package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/awsomeshop/awsomeshop/internal/logging"
	"github.com/awsomeshop/awsomeshop/internal/server/models"
	"github.com/awsomeshop/awsomeshop/internal/server/service"
)

type AdminProductHTTP struct {
	Svc *service.ProductService
}

func (h *AdminProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_product")

	operatorID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user context")
	}

	var req service.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(ctx, req, operatorID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"product": product})
}

func (h *AdminProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()

	operatorID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user context")
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req service.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.UpdateProduct(ctx, uint(productID), req, operatorID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"product": product})
}

type productStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminProductHTTP) SetStatus(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req productStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.SetStatus(c.Request().Context(), uint(productID), req.Status); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product status updated"})
}

type batchImportRequest struct {
	Markdown string `json:"markdown"`
}

func (h *AdminProductHTTP) BatchImport(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.batch_import_products")

	operatorID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user context")
	}

	var req batchImportRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("batch_import_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	products, err := h.Svc.BatchImport(ctx, req.Markdown, operatorID)
	if err != nil {
		return mapError(err)
	}
	if products == nil {
		products = []models.Product{}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"products": products,
		"count":    len(products),
		"message":  "products imported",
	})
}

func (h *AdminProductHTTP) List(c echo.Context) error {
	var status *string
	if v := c.QueryParam("status"); v != "" {
		status = &v
	}

	products, err := h.Svc.List(c.Request().Context(), status)
	if err != nil {
		return mapError(err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}
