package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/awsomeshop/awsomeshop/internal/logging"
	"github.com/awsomeshop/awsomeshop/internal/server/models"
	"github.com/awsomeshop/awsomeshop/internal/server/service"
)

type RedemptionHTTP struct {
	Svc *service.RedemptionService
}

type redeemRequest struct {
	ProductID uint `json:"product_id"`
}

func (h *RedemptionHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "redemptions.create")

	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user context")
	}

	var req redeemRequest
	if err := c.Bind(&req); err != nil || req.ProductID == 0 {
		l.Warn("redeem_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Redeem(ctx, userID, req.ProductID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"order": order})
}

func (h *RedemptionHTTP) History(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user context")
	}

	orders, err := h.Svc.History(c.Request().Context(), userID)
	if err != nil {
		return mapError(err)
	}
	if orders == nil {
		orders = []models.RedemptionOrder{}
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// Get returns one order; employees can only see their own.
func (h *RedemptionHTTP) Get(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user context")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		return mapError(err)
	}

	role, _ := c.Get("role").(string)
	if role != "admin" && order.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "not your order")
	}
	return c.JSON(http.StatusOK, echo.Map{"order": order})
}
