package routes

import (
	"gym-admin/internal/controllers"
	"gym-admin/internal/services"
	"gym-admin/pkg/config"
	"gym-admin/pkg/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAuthRouter(api *echo.Group, repos *Repositories, jwtSvc service.JWTService, logger *zap.Logger, cfg config.AuthConfig) {
	authService := services.NewAuthService(repos.Staff, repos.Cache, jwtSvc, logger, cfg)
	authCtrl := controllers.NewAuthController(authService, logger)

	auth := api.Group("/auth")
	auth.POST("/staff/login", authCtrl.StaffLogin)
}
