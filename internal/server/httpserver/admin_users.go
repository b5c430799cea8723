package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/awsomeshop/awsomeshop/internal/logging"
	"github.com/awsomeshop/awsomeshop/internal/server/models"
	"github.com/awsomeshop/awsomeshop/internal/server/service"
)

type AdminUserHTTP struct {
	Svc *service.UserService
}

func (h *AdminUserHTTP) CreateEmployee(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_employee")

	var req service.CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_employee_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.CreateEmployee(ctx, req)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user":    user,
		"message": "employee created; initial password is the last 6 digits of the phone number",
	})
}

type setStatusRequest struct {
	IsActive bool `json:"is_active"`
}

// SetStatus only supports departure. Reactivating an account would need a
// points-restoration policy that does not exist yet.
func (h *AdminUserHTTP) SetStatus(c echo.Context) error {
	ctx := c.Request().Context()

	operatorID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user context")
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if req.IsActive {
		return echo.NewHTTPError(http.StatusBadRequest, "reactivating employees is not supported")
	}

	if err := h.Svc.SetDeparture(ctx, uint(userID), operatorID); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "employee set to inactive; points have been invalidated"})
}

func (h *AdminUserHTTP) List(c echo.Context) error {
	var isActive *bool
	if v := c.QueryParam("is_active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid is_active filter")
		}
		isActive = &b
	}

	users, err := h.Svc.List(c.Request().Context(), isActive)
	if err != nil {
		return mapError(err)
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}
