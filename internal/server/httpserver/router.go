package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"

	"github.com/awsomeshop/awsomeshop/internal/logging"
)

type Deps struct {
	Log *slog.Logger

	Auth *Auth

	AuthHandler       *AuthHTTP
	ProductHandler    *ProductHTTP
	RedemptionHandler *RedemptionHTTP
	PointsHandler     *PointsHTTP
	UserHandler       *UserHTTP

	AdminUserHandler    *AdminUserHTTP
	AdminProductHandler *AdminProductHTTP
	AdminPointsHandler  *AdminPointsHTTP
	AdminOrderHandler   *AdminOrderHTTP
	AdminReportHandler  *AdminReportHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = errorHandler
	e.Use(ecM.Recover())
	e.Use(ecM.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(ecM.Secure())

	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/auth/login", d.AuthHandler.Login)

	authed := v1.Group("", d.Auth.RequireAuth)
	authed.POST("/auth/logout", d.AuthHandler.Logout)
	authed.GET("/auth/me", d.AuthHandler.Me)

	authed.GET("/products", d.ProductHandler.List)
	authed.GET("/products/:id", d.ProductHandler.Get)

	authed.POST("/redemptions", d.RedemptionHandler.Create)
	authed.GET("/redemptions", d.RedemptionHandler.History)
	authed.GET("/redemptions/:id", d.RedemptionHandler.Get)

	authed.GET("/points/balance", d.PointsHandler.Balance)
	authed.GET("/points/transactions", d.PointsHandler.Transactions)

	authed.GET("/users/profile", d.UserHandler.Profile)
	authed.PUT("/users/phone", d.UserHandler.UpdatePhone)

	admin := authed.Group("/admin", d.Auth.RequireAdmin)
	admin.POST("/users", d.AdminUserHandler.CreateEmployee)
	admin.GET("/users", d.AdminUserHandler.List)
	admin.PUT("/users/:id/status", d.AdminUserHandler.SetStatus)

	admin.POST("/products", d.AdminProductHandler.Create)
	admin.GET("/products", d.AdminProductHandler.List)
	admin.PUT("/products/:id", d.AdminProductHandler.Update)
	admin.PUT("/products/:id/status", d.AdminProductHandler.SetStatus)
	admin.POST("/products/batch", d.AdminProductHandler.BatchImport)

	admin.POST("/points/grant", d.AdminPointsHandler.Grant)
	admin.POST("/points/deduct", d.AdminPointsHandler.Deduct)
	admin.POST("/points/batch-grant", d.AdminPointsHandler.BatchGrant)

	admin.GET("/orders", d.AdminOrderHandler.List)
	admin.PUT("/orders/batch-status", d.AdminOrderHandler.BatchUpdateStatus)

	admin.GET("/reports/points-grants", d.AdminReportHandler.PointsGrants)
	admin.GET("/reports/points-balances", d.AdminReportHandler.PointsBalances)
	admin.GET("/reports/redemptions", d.AdminReportHandler.Redemptions)
}

// requestLogger puts a request-scoped logger into the context and logs one
// line per request.
func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := log.With("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			l.Info("http_request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}
