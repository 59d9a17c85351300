package entities

import "time"

type MaintenanceSchedule struct {
	ID              uint64
	EquipmentID     uint64
	MaintenanceType string
	MaintenanceDate time.Time
	Description     *string
	Status          string
	Technician      *string
	Cost            *float64
}

type MaintenanceScheduleFilter struct {
	Status       string
	EquipmentID  *uint64
	TypeContains string
	OnlyCosted   bool
}

// MaintenanceSchedulePatch - частичное обновление, nil означает "не трогать".
// Для Cost отдельный флаг, т.к. стоимость можно сбросить в NULL.
type MaintenanceSchedulePatch struct {
	MaintenanceDate *time.Time
	Status          *string
	Technician      *string
	Description     *string
	SetCost         bool
	Cost            *float64
}

func (p MaintenanceSchedulePatch) IsEmpty() bool {
	return p.MaintenanceDate == nil && p.Status == nil && p.Technician == nil && p.Description == nil && !p.SetCost
}
