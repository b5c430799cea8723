package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/awsomeshop/awsomeshop/internal/server/models"
	"github.com/awsomeshop/awsomeshop/internal/server/service"
)

type Auth struct {
	Svc *service.AuthService
}

// RequireAuth resolves the bearer token to a live account on every request;
// a deactivated account is rejected even with a still-valid token.
func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		user, err := m.Svc.UserFromToken(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Set("user", user)
		return next(c)
	}
}

func (m *Auth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Get("role").(string)
		if role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

func currentUserID(c echo.Context) (uint, bool) {
	id, ok := c.Get("user_id").(uint)
	return id, ok
}

func currentUser(c echo.Context) (*models.User, bool) {
	u, ok := c.Get("user").(*models.User)
	return u, ok
}
