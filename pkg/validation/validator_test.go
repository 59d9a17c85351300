package validation

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	NIC   string       `validate:"required,staff_nic"`
	Date  string       `validate:"omitempty,yyyy_mm_dd"`
	Cost  null.Float64 `validate:"omitempty,gte=0"`
	Phone string       `validate:"omitempty,phone"`
}

func TestValidator_CustomRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sample{NIC: "STF001", Date: "2024-03-15", Cost: null.Float64From(10)}))
	assert.NoError(t, v.Validate(&sample{NIC: "STF001"}), "пустая стоимость допустима")

	assert.Error(t, v.Validate(&sample{NIC: "stf-001"}))
	assert.Error(t, v.Validate(&sample{NIC: "STF001", Date: "15.03.2024"}))
	assert.Error(t, v.Validate(&sample{NIC: "STF001", Cost: null.Float64From(-1)}))
	assert.Error(t, v.Validate(&sample{NIC: "STF001", Phone: "телефон"}))
}
