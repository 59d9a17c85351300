package controllers

import (
	"net/http"
	"strconv"

	"gym-admin/internal/dto"
	"gym-admin/internal/services"
	apperrors "gym-admin/pkg/errors"
	"gym-admin/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type MaintenanceScheduleController struct {
	scheduleService services.MaintenanceScheduleServiceInterface
	logger          *zap.Logger
}

func NewMaintenanceScheduleController(
	service services.MaintenanceScheduleServiceInterface,
	logger *zap.Logger,
) *MaintenanceScheduleController {
	return &MaintenanceScheduleController{
		scheduleService: service,
		logger:          logger,
	}
}

func (c *MaintenanceScheduleController) Create(ctx echo.Context) error {
	var payload dto.CreateMaintenanceScheduleDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateSchedule: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, badBody(err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		c.logger.Warn("CreateSchedule: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.scheduleService.Create(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "График обслуживания создан", http.StatusCreated)
}

func (c *MaintenanceScheduleController) GetAll(ctx echo.Context) error {
	res, err := c.scheduleService.GetAll(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Графики обслуживания получены", http.StatusOK)
}

func (c *MaintenanceScheduleController) GetByID(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.scheduleService.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "График обслуживания найден", http.StatusOK)
}

func (c *MaintenanceScheduleController) Delete(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.scheduleService.Delete(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteSchedule: ошибка при удалении графика", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "График обслуживания удалён", http.StatusOK)
}

func (c *MaintenanceScheduleController) Search(ctx echo.Context) error {
	res, err := c.scheduleService.Search(ctx.Request().Context(), ctx.QueryParam("search"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Результаты поиска графиков", http.StatusOK)
}

// updateField - общий каркас для PUT /{id}/<поле>?<param>=.
func (c *MaintenanceScheduleController) updateField(
	ctx echo.Context,
	param string,
	update func(id uint64, value string) (*dto.MaintenanceScheduleDTO, error),
) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	value, err := requiredQuery(ctx, param)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := update(id, value)
	if err != nil {
		c.logger.Warn("UpdateSchedule: ошибка обновления графика",
			zap.Uint64("id", id), zap.String("field", param), zap.String("value", value), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "График обслуживания обновлён", http.StatusOK)
}

func (c *MaintenanceScheduleController) UpdateDate(ctx echo.Context) error {
	return c.updateField(ctx, "date", func(id uint64, v string) (*dto.MaintenanceScheduleDTO, error) {
		return c.scheduleService.UpdateDate(ctx.Request().Context(), id, v)
	})
}

func (c *MaintenanceScheduleController) UpdateStatus(ctx echo.Context) error {
	return c.updateField(ctx, "status", func(id uint64, v string) (*dto.MaintenanceScheduleDTO, error) {
		return c.scheduleService.UpdateStatus(ctx.Request().Context(), id, v)
	})
}

func (c *MaintenanceScheduleController) UpdateCost(ctx echo.Context) error {
	return c.updateField(ctx, "cost", func(id uint64, v string) (*dto.MaintenanceScheduleDTO, error) {
		return c.scheduleService.UpdateCost(ctx.Request().Context(), id, v)
	})
}

func (c *MaintenanceScheduleController) UpdateTechnician(ctx echo.Context) error {
	return c.updateField(ctx, "technician", func(id uint64, v string) (*dto.MaintenanceScheduleDTO, error) {
		return c.scheduleService.UpdateTechnician(ctx.Request().Context(), id, v)
	})
}

func (c *MaintenanceScheduleController) UpdateDescription(ctx echo.Context) error {
	return c.updateField(ctx, "description", func(id uint64, v string) (*dto.MaintenanceScheduleDTO, error) {
		return c.scheduleService.UpdateDescription(ctx.Request().Context(), id, v)
	})
}

func (c *MaintenanceScheduleController) FilterByStatus(ctx echo.Context) error {
	status, err := requiredQuery(ctx, "status")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.scheduleService.FilterByStatus(ctx.Request().Context(), status)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Графики отфильтрованы по статусу", http.StatusOK)
}

func (c *MaintenanceScheduleController) FilterByEquipmentID(ctx echo.Context) error {
	raw := ctx.QueryParam("equipmentId")
	equipmentID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Неверный equipmentId '%s'", raw), c.logger)
	}
	res, err := c.scheduleService.FilterByEquipmentID(ctx.Request().Context(), equipmentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Графики отфильтрованы по оборудованию", http.StatusOK)
}

func (c *MaintenanceScheduleController) FilterByType(ctx echo.Context) error {
	maintenanceType, err := requiredQuery(ctx, "type")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.scheduleService.FilterByType(ctx.Request().Context(), maintenanceType)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Графики отфильтрованы по типу", http.StatusOK)
}
