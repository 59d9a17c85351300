package dto

type CreateEquipmentDTO struct {
	Name                string  `json:"name" validate:"required,max=255"`
	Category            string  `json:"category" validate:"max=255"`
	PurchaseDate        *string `json:"purchaseDate" validate:"omitempty,yyyy_mm_dd"`
	LastMaintenanceDate *string `json:"lastMaintenanceDate" validate:"omitempty,yyyy_mm_dd"`
	Status              string  `json:"status"`
	WarrantyExpiry      *string `json:"warrantyExpiry" validate:"omitempty,yyyy_mm_dd"`
}

type EquipmentDTO struct {
	ID                  uint64  `json:"id"`
	Name                string  `json:"name"`
	Category            string  `json:"category"`
	PurchaseDate        *string `json:"purchaseDate"`
	LastMaintenanceDate *string `json:"lastMaintenanceDate"`
	Status              string  `json:"status"`
	WarrantyExpiry      *string `json:"warrantyExpiry"`
	Deleted             bool    `json:"deleted"`
}
