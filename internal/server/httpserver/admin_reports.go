package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/awsomeshop/awsomeshop/internal/server/repo"
	"github.com/awsomeshop/awsomeshop/internal/server/service"
)

type AdminReportHTTP struct {
	Points        *service.PointsService
	RedemptionSvc *service.RedemptionService
}

func (h *AdminReportHTTP) PointsGrants(c echo.Context) error {
	grants, err := h.Points.GrantsReport(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	if grants == nil {
		grants = []repo.GrantStats{}
	}
	return c.JSON(http.StatusOK, echo.Map{"grants": grants})
}

func (h *AdminReportHTTP) PointsBalances(c echo.Context) error {
	balances, err := h.Points.BalancesReport(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	if balances == nil {
		balances = []repo.BalanceStats{}
	}
	return c.JSON(http.StatusOK, echo.Map{"balances": balances})
}

func (h *AdminReportHTTP) Redemptions(c echo.Context) error {
	redemptions, err := h.RedemptionSvc.Report(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	if redemptions == nil {
		redemptions = []repo.OrderStats{}
	}
	return c.JSON(http.StatusOK, echo.Map{"redemptions": redemptions})
}
