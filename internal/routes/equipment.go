package routes

import (
	"gym-admin/internal/controllers"
	"gym-admin/internal/services"
	"gym-admin/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runEquipmentRouter(api *echo.Group, repos *Repositories, authMW *middleware.AuthMiddleware, logger *zap.Logger) {
	equipmentService := services.NewEquipmentService(repos.Equipment, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)

	g := api.Group("/equipment")
	g.GET("", equipmentCtrl.GetEquipments)
	g.GET("/get-all", equipmentCtrl.GetAllEquipments)
	g.GET("/search", equipmentCtrl.SearchEquipments)
	g.GET("/filter-by-status", equipmentCtrl.FilterByStatus)
	g.GET("/:id", equipmentCtrl.FindEquipment)

	g.POST("", equipmentCtrl.CreateEquipment, authMW.Auth)
	g.DELETE("/:id", equipmentCtrl.DeleteEquipment, authMW.Auth)
	g.PUT("/:id/status", equipmentCtrl.UpdateStatus, authMW.Auth)
	g.PUT("/:id/Maintenance", equipmentCtrl.UpdateLastMaintenanceDate, authMW.Auth)
}
