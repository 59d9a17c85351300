package controllers

import (
	"net/http"

	"gym-admin/internal/dto"
	"gym-admin/internal/services"
	"gym-admin/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type StaffController struct {
	staffService services.StaffServiceInterface
	logger       *zap.Logger
}

func NewStaffController(staffService services.StaffServiceInterface, logger *zap.Logger) *StaffController {
	return &StaffController{staffService: staffService, logger: logger}
}

func (c *StaffController) Create(ctx echo.Context) error {
	var payload dto.CreateStaffDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, badBody(err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		c.logger.Warn("CreateStaff: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.staffService.Create(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Сотрудник создан", http.StatusCreated)
}

func (c *StaffController) GetAll(ctx echo.Context) error {
	res, err := c.staffService.GetAll(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Сотрудники получены", http.StatusOK)
}

func (c *StaffController) GetByID(ctx echo.Context) error {
	res, err := c.staffService.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Сотрудник найден", http.StatusOK)
}
