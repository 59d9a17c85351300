package routes

import (
	"gym-admin/internal/controllers"
	"gym-admin/internal/services"
	"gym-admin/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runTicketRouter(api *echo.Group, repos *Repositories, authMW *middleware.AuthMiddleware, logger *zap.Logger) {
	ticketService := services.NewTicketService(repos.Tx, repos.Tickets, repos.Relations, repos.Members, repos.Staff, logger)
	ticketCtrl := controllers.NewTicketController(ticketService, logger)

	g := api.Group("/tickets")
	// тикет может открыть участник без учётной записи сотрудника
	g.POST("", ticketCtrl.Create)
	g.GET("", ticketCtrl.GetAll)
	g.GET("/filter-by-status", ticketCtrl.FilterByStatus)
	g.GET("/filter-by-priority", ticketCtrl.FilterByPriority)
	g.GET("/count-by-status", ticketCtrl.CountByStatus)
	g.GET("/count-by-status-staff", ticketCtrl.CountByStatusForStaff)
	g.GET("/raised-by/member/:memberId", ticketCtrl.RaisedByMember)
	g.GET("/raised-by/staff/:staffId", ticketCtrl.RaisedByStaff)
	g.GET("/assigned-to/staff/:staffId", ticketCtrl.AssignedToStaff)
	g.GET("/:ticketId", ticketCtrl.GetDetails)

	g.PUT("/:ticketId/assign", ticketCtrl.Assign, authMW.Auth)
	g.PUT("/:ticketId/status", ticketCtrl.UpdateStatus, authMW.Auth)
}
