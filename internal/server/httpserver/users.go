package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/awsomeshop/awsomeshop/internal/logging"
	"github.com/awsomeshop/awsomeshop/internal/server/service"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) Profile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user context")
	}

	user, err := h.Svc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

type updatePhoneRequest struct {
	Phone string `json:"phone"`
}

func (h *UserHTTP) UpdatePhone(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.update_phone")

	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user context")
	}

	var req updatePhoneRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_phone_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdatePhone(ctx, userID, req.Phone); err != nil {
		return mapError(err)
	}

	l.Info("phone_updated", "user_id", userID)
	return c.JSON(http.StatusOK, echo.Map{"message": "phone updated", "phone": req.Phone})
}
