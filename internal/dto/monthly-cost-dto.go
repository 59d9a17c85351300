package dto

// MonthlyCostDTO - month в формате YYYY-MM-01, как хранится в БД.
type MonthlyCostDTO struct {
	ID        uint64  `json:"id"`
	Month     string  `json:"month"`
	TotalCost float64 `json:"totalCost"`
}

type RecomputeResultDTO struct {
	MonthsUpdated int `json:"monthsUpdated"`
}
