package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/awsomeshop/awsomeshop/internal/server/models"
	"github.com/awsomeshop/awsomeshop/internal/server/service"
)

type ProductHTTP struct {
	Svc *service.ProductService
}

// List returns the active catalog only; the full catalog lives behind the
// admin routes.
func (h *ProductHTTP) List(c echo.Context) error {
	products, err := h.Svc.ActiveProducts(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}

func (h *ProductHTTP) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Svc.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"product": product})
}
