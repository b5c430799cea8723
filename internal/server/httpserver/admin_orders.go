package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/awsomeshop/awsomeshop/internal/logging"
	"github.com/awsomeshop/awsomeshop/internal/server/models"
	"github.com/awsomeshop/awsomeshop/internal/server/service"
)

type AdminOrderHTTP struct {
	Svc *service.RedemptionService
}

func (h *AdminOrderHTTP) List(c echo.Context) error {
	var status *string
	if v := c.QueryParam("status"); v != "" {
		status = &v
	}

	var userID *uint
	if v := c.QueryParam("user_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id filter")
		}
		uid := uint(id)
		userID = &uid
	}

	orders, err := h.Svc.ListOrders(c.Request().Context(), status, userID)
	if err != nil {
		return mapError(err)
	}
	if orders == nil {
		orders = []models.RedemptionOrder{}
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// batchStatusRequest carries order numbers as raw text; the separator can be
// newlines, commas or spaces.
type batchStatusRequest struct {
	OrderNumbers string `json:"order_numbers"`
	Status       string `json:"status"`
}

func (h *AdminOrderHTTP) BatchUpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.batch_order_status")

	var req batchStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("batch_order_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	count, err := h.Svc.BatchUpdateStatus(ctx, service.ParseOrderNumbers(req.OrderNumbers), req.Status)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "order status updated",
		"count":   count,
	})
}
