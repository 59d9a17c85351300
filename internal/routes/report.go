package routes

import (
	"time"

	"gym-admin/internal/controllers"
	"gym-admin/internal/services"
	"gym-admin/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runMonthlyCostRouter(api *echo.Group, repos *Repositories, authMW *middleware.AuthMiddleware, logger *zap.Logger, cacheTTL time.Duration) {
	costService := services.NewMonthlyCostService(repos.Tx, repos.Schedules, repos.Costs, repos.Cache, cacheTTL, logger)
	costCtrl := controllers.NewMonthlyCostController(costService, logger)

	api.GET("/monthly-costs", costCtrl.GetAll)
	api.GET("/filter-monthly-cost", costCtrl.FilterByMonth)
	api.GET("/filter-yearly-cost", costCtrl.FilterByYear)
	api.POST("/update-monthly-costs", costCtrl.Recompute, authMW.Auth)
}
