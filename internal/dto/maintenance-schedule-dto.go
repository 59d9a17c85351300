package dto

import "github.com/aarondl/null/v8"

type CreateMaintenanceScheduleDTO struct {
	EquipmentID     uint64       `json:"equipmentId" validate:"required,gte=1"`
	MaintenanceType string       `json:"maintenanceType" validate:"required,max=255"`
	MaintenanceDate string       `json:"maintenanceDate" validate:"required,yyyy_mm_dd"`
	Description     null.String  `json:"description"`
	Status          string       `json:"status"`
	Technician      null.String  `json:"technician" validate:"omitempty,max=255"`
	Cost            null.Float64 `json:"cost" validate:"omitempty,gte=0"`
}

type MaintenanceScheduleDTO struct {
	ID              uint64       `json:"id"`
	EquipmentID     uint64       `json:"equipmentId"`
	MaintenanceType string       `json:"maintenanceType"`
	MaintenanceDate string       `json:"maintenanceDate"`
	Description     null.String  `json:"description"`
	Status          string       `json:"status"`
	Technician      null.String  `json:"technician"`
	Cost            null.Float64 `json:"cost"`
}
