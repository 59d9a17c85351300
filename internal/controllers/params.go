package controllers

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "gym-admin/pkg/errors"

	"github.com/labstack/echo/v4"
)

// parseIDParam читает числовой параметр пути. Ошибка уже готова для utils.ErrorResponse.
func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный формат ID",
			err,
			map[string]interface{}{"param": raw},
		)
	}
	return id, nil
}

// requiredQuery возвращает непустой query-параметр или ошибку 400.
func requiredQuery(ctx echo.Context, name string) (string, error) {
	v := strings.TrimSpace(ctx.QueryParam(name))
	if v == "" {
		return "", apperrors.NewInvalidInputError("Параметр '%s' обязателен", name)
	}
	return v, nil
}

func badBody(err error) error {
	return apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil)
}
