package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/awsomeshop/awsomeshop/internal/logging"
	"github.com/awsomeshop/awsomeshop/internal/server/service"
)

type AdminPointsHTTP struct {
	Svc *service.PointsService
}

type pointsChangeRequest struct {
	UserID uint   `json:"user_id"`
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

func (h *AdminPointsHTTP) Grant(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.grant_points")

	operatorID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user context")
	}

	var req pointsChangeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("grant_points_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Grant(ctx, req.UserID, req.Amount, req.Reason, operatorID); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "points granted"})
}

func (h *AdminPointsHTTP) Deduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.deduct_points")

	operatorID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user context")
	}

	var req pointsChangeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("deduct_points_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Deduct(ctx, req.UserID, req.Amount, req.Reason, operatorID); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "points deducted"})
}

type batchGrantRequest struct {
	Markdown string `json:"markdown"`
}

func (h *AdminPointsHTTP) BatchGrant(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.batch_grant_points")

	operatorID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user context")
	}

	var req batchGrantRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("batch_grant_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.BatchGrant(ctx, req.Markdown, operatorID); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "points granted"})
}
