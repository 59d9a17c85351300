package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"gym-admin/internal/dto"
	"gym-admin/internal/services"
	"gym-admin/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// MonthlyCostController - итоги затрат на обслуживание по месяцам и их выгрузка.
type MonthlyCostController struct {
	costService services.MonthlyCostServiceInterface
	logger      *zap.Logger
}

func NewMonthlyCostController(costService services.MonthlyCostServiceInterface, logger *zap.Logger) *MonthlyCostController {
	return &MonthlyCostController{costService: costService, logger: logger}
}

// GetAll отдаёт все месяцы. С ?format=xlsx отдаёт Excel-файл.
func (c *MonthlyCostController) GetAll(ctx echo.Context) error {
	data, err := c.costService.All(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetMonthlyCosts: ошибка получения итогов", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if strings.EqualFold(ctx.QueryParam("format"), "xlsx") {
		return c.respondWithXLSX(ctx, data)
	}
	return utils.SuccessResponse(ctx, data, "Месячные затраты получены", http.StatusOK)
}

func (c *MonthlyCostController) Recompute(ctx echo.Context) error {
	res, err := c.costService.Recompute(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Месячные затраты пересчитаны", http.StatusOK)
}

func (c *MonthlyCostController) FilterByMonth(ctx echo.Context) error {
	month, err := requiredQuery(ctx, "month")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.costService.ByMonth(ctx.Request().Context(), month)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Затраты за месяц получены", http.StatusOK)
}

func (c *MonthlyCostController) FilterByYear(ctx echo.Context) error {
	year, err := requiredQuery(ctx, "year")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.costService.ByYear(ctx.Request().Context(), year)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Затраты за год получены", http.StatusOK)
}

var monthlyCostHeaders = []string{"№", "Месяц", "Сумма затрат"}

func (c *MonthlyCostController) respondWithXLSX(ctx echo.Context, data []dto.MonthlyCostDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Затраты по месяцам"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	f.SetSheetRow(sheet, "A1", &monthlyCostHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "C1", style)

	var total float64
	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		month := item.Month
		if len(month) >= 7 {
			month = month[:7]
		}
		row := []interface{}{i + 1, month, item.TotalCost}
		f.SetSheetRow(sheet, cell, &row)
		total += item.TotalCost
	}
	totalCell, _ := excelize.CoordinatesToCellName(2, len(data)+2)
	totalRow := []interface{}{"Итого", total}
	f.SetSheetRow(sheet, totalCell, &totalRow)
	f.SetColWidth(sheet, "B", "C", 20)

	fileName := fmt.Sprintf("monthly_costs_%s.xlsx", time.Now().Format(utils.DateLayout))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
