package controllers

import (
	"net/http"

	"gym-admin/internal/dto"
	"gym-admin/internal/services"
	"gym-admin/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) StaffLogin(c echo.Context) error {
	var payload dto.StaffLoginDTO

	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("StaffLogin: ошибка привязки данных", zap.Error(err))
		return ctrl.errorResponse(c, badBody(err))
	}
	if err := c.Validate(&payload); err != nil {
		ctrl.logger.Warn("StaffLogin: ошибка валидации данных", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.StaffLogin(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("StaffLogin: ошибка авторизации", zap.String("nic", payload.NIC), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Авторизация прошла успешно", http.StatusOK)
}
