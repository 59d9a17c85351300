package entities

import "time"

// MonthlyMaintenanceCost - затраты за календарный месяц. Month всегда первое число месяца.
type MonthlyMaintenanceCost struct {
	ID        uint64
	Month     time.Time
	TotalCost float64
}
