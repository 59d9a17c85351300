package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"gym-admin/internal/dto"
	"gym-admin/internal/services"
	apperrors "gym-admin/pkg/errors"
	"gym-admin/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type TicketController struct {
	ticketService services.TicketServiceInterface
	logger        *zap.Logger
}

func NewTicketController(ticketService services.TicketServiceInterface, logger *zap.Logger) *TicketController {
	return &TicketController{ticketService: ticketService, logger: logger}
}

func (c *TicketController) Create(ctx echo.Context) error {
	var payload dto.CreateTicketDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateTicket: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, badBody(err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		c.logger.Warn("CreateTicket: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ticketService.Create(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Тикет создан", http.StatusCreated)
}

// Assign: PUT /{ticketId}/assign?staffId=&version=. Без version проверка версии не выполняется.
func (c *TicketController) Assign(ctx echo.Context) error {
	ticketID, err := parseIDParam(ctx, "ticketId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	staffID, err := requiredQuery(ctx, "staffId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var expectedVersion *uint64
	if raw := strings.TrimSpace(ctx.QueryParam("version")); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Неверная версия назначения '%s'", raw), c.logger)
		}
		expectedVersion = &v
	}

	res, err := c.ticketService.Assign(ctx.Request().Context(), ticketID, staffID, expectedVersion)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Тикет назначен", http.StatusOK)
}

func (c *TicketController) UpdateStatus(ctx echo.Context) error {
	ticketID, err := parseIDParam(ctx, "ticketId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	status, err := requiredQuery(ctx, "status")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ticketService.UpdateStatus(ctx.Request().Context(), ticketID, status)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статус тикета обновлён", http.StatusOK)
}

func (c *TicketController) GetAll(ctx echo.Context) error {
	res, err := c.ticketService.GetAllWithDetails(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Тикеты получены", http.StatusOK)
}

func (c *TicketController) GetDetails(ctx echo.Context) error {
	ticketID, err := parseIDParam(ctx, "ticketId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.ticketService.GetDetails(ctx.Request().Context(), ticketID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Тикет найден", http.StatusOK)
}

func (c *TicketController) RaisedByMember(ctx echo.Context) error {
	memberID, err := parseIDParam(ctx, "memberId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.ticketService.RaisedByMember(ctx.Request().Context(), memberID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Тикеты участника получены", http.StatusOK)
}

func (c *TicketController) RaisedByStaff(ctx echo.Context) error {
	res, err := c.ticketService.RaisedByStaff(ctx.Request().Context(), ctx.Param("staffId"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Тикеты сотрудника получены", http.StatusOK)
}

func (c *TicketController) AssignedToStaff(ctx echo.Context) error {
	res, err := c.ticketService.AssignedToStaff(ctx.Request().Context(), ctx.Param("staffId"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Назначенные тикеты получены", http.StatusOK)
}

func (c *TicketController) FilterByStatus(ctx echo.Context) error {
	res, err := c.ticketService.ByStatus(ctx.Request().Context(), ctx.QueryParam("status"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Тикеты отфильтрованы по статусу", http.StatusOK)
}

func (c *TicketController) FilterByPriority(ctx echo.Context) error {
	res, err := c.ticketService.ByPriority(ctx.Request().Context(), ctx.QueryParam("priority"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Тикеты отфильтрованы по приоритету", http.StatusOK)
}

func (c *TicketController) CountByStatus(ctx echo.Context) error {
	count, err := c.ticketService.CountByStatus(ctx.Request().Context(), ctx.QueryParam("status"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.CountDTO{Count: count}, "Количество тикетов", http.StatusOK)
}

func (c *TicketController) CountByStatusForStaff(ctx echo.Context) error {
	count, err := c.ticketService.CountByStatusForStaff(ctx.Request().Context(), ctx.QueryParam("status"), ctx.QueryParam("staffId"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.CountDTO{Count: count}, "Количество тикетов сотрудника", http.StatusOK)
}
