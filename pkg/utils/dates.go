package utils

import (
	"strconv"
	"strings"
	"time"

	apperrors "gym-admin/pkg/errors"
)

const (
	DateLayout     = "2006-01-02"
	MonthLayout    = "2006-01"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// ParseDate разбирает дату формата yyyy-MM-dd.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperrors.NewInvalidInputError("Неверный формат даты '%s', ожидается yyyy-MM-dd", raw)
	}
	return t, nil
}

// ParseMonth разбирает месяц формата YYYY-MM и возвращает первое число месяца.
func ParseMonth(raw string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperrors.NewInvalidInputError("Неверный формат месяца '%s', ожидается YYYY-MM", raw)
	}
	return t, nil
}

// ParseYear возвращает границы года: 1 января и 1 декабря (последний месячный бакет).
func ParseYear(raw string) (from, to time.Time, err error) {
	y, convErr := strconv.Atoi(strings.TrimSpace(raw))
	if convErr != nil || y < 1 || y > 9999 {
		return time.Time{}, time.Time{}, apperrors.NewInvalidInputError("Неверный формат года '%s', ожидается YYYY", raw)
	}
	from = time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	to = time.Date(y, time.December, 1, 0, 0, 0, 0, time.UTC)
	return from, to, nil
}

// MonthStart - первое число месяца даты t (UTC, полночь).
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
