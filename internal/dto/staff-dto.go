package dto

import "github.com/aarondl/null/v8"

type CreateStaffDTO struct {
	NIC       string      `json:"nic" validate:"required,staff_nic"`
	Name      string      `json:"name" validate:"required,max=255"`
	Role      string      `json:"role" validate:"required"`
	Phone     null.String `json:"phone" validate:"omitempty,phone"`
	StartDate null.String `json:"startDate" validate:"omitempty,yyyy_mm_dd"`
	Shift     null.String `json:"shift" validate:"omitempty,max=32"`
	Password  string      `json:"password" validate:"required,min=6"`
}

// StaffDTO - хэш пароля наружу не отдаётся.
type StaffDTO struct {
	NIC       string      `json:"nic"`
	Name      string      `json:"name"`
	Role      string      `json:"role"`
	Phone     null.String `json:"phone"`
	StartDate *string     `json:"startDate"`
	Shift     null.String `json:"shift"`
}
