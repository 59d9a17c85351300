package entities

import "time"

type Equipment struct {
	ID                  uint64
	Name                string
	Category            string
	PurchaseDate        *time.Time
	LastMaintenanceDate *time.Time
	Status              string
	WarrantyExpiry      *time.Time
	Deleted             bool
}

// EquipmentFilter - условия выборки. Пустые поля не фильтруют.
type EquipmentFilter struct {
	ID             *uint64
	Search         string // подстрока в name или category, без учёта регистра
	Status         string
	IncludeDeleted bool
}
