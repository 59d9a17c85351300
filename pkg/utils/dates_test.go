package utils

import (
	"testing"
	"time"

	apperrors "gym-admin/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), m)

	for _, bad := range []string{"", "2024-13", "03-2024", "2024/03", "март"} {
		_, err := ParseMonth(bad)
		assert.True(t, apperrors.IsInvalidInput(err), "ожидалась ошибка валидации для %q", bad)
	}
}

func TestParseYear(t *testing.T) {
	from, to, err := ParseYear("2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), to)

	_, _, err = ParseYear("двадцать")
	assert.True(t, apperrors.IsInvalidInput(err))
	_, _, err = ParseYear("0")
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 15, d.Day())

	_, err = ParseDate("15.03.2024")
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestMonthStart(t *testing.T) {
	got := MonthStart(time.Date(2024, time.February, 29, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), got)
}
