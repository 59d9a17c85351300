package routes

import (
	"gym-admin/internal/controllers"
	"gym-admin/internal/services"
	"gym-admin/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runPeopleRouter(api *echo.Group, repos *Repositories, authMW *middleware.AuthMiddleware, logger *zap.Logger) {
	memberCtrl := controllers.NewMemberController(services.NewMemberService(repos.Members, logger), logger)
	staffCtrl := controllers.NewStaffController(services.NewStaffService(repos.Staff, logger), logger)

	members := api.Group("/members")
	members.POST("", memberCtrl.Create)
	members.GET("", memberCtrl.GetAll)
	members.GET("/:id", memberCtrl.GetByID)

	staff := api.Group("/staff")
	staff.GET("", staffCtrl.GetAll, authMW.Auth)
	staff.GET("/:id", staffCtrl.GetByID, authMW.Auth)
	staff.POST("", staffCtrl.Create, authMW.Auth)
}
