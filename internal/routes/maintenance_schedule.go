package routes

import (
	"gym-admin/internal/controllers"
	"gym-admin/internal/services"
	"gym-admin/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runMaintenanceScheduleRouter(api *echo.Group, repos *Repositories, authMW *middleware.AuthMiddleware, logger *zap.Logger) {
	scheduleService := services.NewMaintenanceScheduleService(repos.Schedules, repos.Equipment, logger)
	scheduleCtrl := controllers.NewMaintenanceScheduleController(scheduleService, logger)

	g := api.Group("/maintenance-schedule")
	g.GET("", scheduleCtrl.GetAll)
	g.GET("/search", scheduleCtrl.Search)
	g.GET("/filter-by-status", scheduleCtrl.FilterByStatus)
	g.GET("/filter-by-equipmentId", scheduleCtrl.FilterByEquipmentID)
	g.GET("/filter-by-type", scheduleCtrl.FilterByType)
	g.GET("/:id", scheduleCtrl.GetByID)

	g.POST("", scheduleCtrl.Create, authMW.Auth)
	g.DELETE("/:id", scheduleCtrl.Delete, authMW.Auth)
	g.PUT("/:id/MaintenanceDate", scheduleCtrl.UpdateDate, authMW.Auth)
	g.PUT("/:id/status", scheduleCtrl.UpdateStatus, authMW.Auth)
	g.PUT("/:id/cost", scheduleCtrl.UpdateCost, authMW.Auth)
	g.PUT("/:id/technician", scheduleCtrl.UpdateTechnician, authMW.Auth)
	g.PUT("/:id/description", scheduleCtrl.UpdateDescription, authMW.Auth)
}
