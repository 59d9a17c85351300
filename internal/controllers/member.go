package controllers

import (
	"net/http"

	"gym-admin/internal/dto"
	"gym-admin/internal/services"
	"gym-admin/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type MemberController struct {
	memberService services.MemberServiceInterface
	logger        *zap.Logger
}

func NewMemberController(memberService services.MemberServiceInterface, logger *zap.Logger) *MemberController {
	return &MemberController{memberService: memberService, logger: logger}
}

func (c *MemberController) Create(ctx echo.Context) error {
	var payload dto.CreateMemberDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, badBody(err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.memberService.Create(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Участник зарегистрирован", http.StatusCreated)
}

func (c *MemberController) GetAll(ctx echo.Context) error {
	res, err := c.memberService.GetAll(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Участники получены", http.StatusOK)
}

func (c *MemberController) GetByID(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.memberService.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Участник найден", http.StatusOK)
}
