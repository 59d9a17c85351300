package seeders

type memberSeed struct {
	Name  string
	Email string
	Phone string
}

type equipmentSeed struct {
	Name           string
	Category       string
	PurchaseDate   string
	WarrantyExpiry string
	Status         string
}

type scheduleSeed struct {
	EquipmentName   string
	MaintenanceType string
	MaintenanceDate string
	Description     string
	Status          string
	Technician      string
	Cost            *float64
}

func cost(v float64) *float64 { return &v }

var membersData = []memberSeed{
	{Name: "Иван Петров", Email: "ivan.petrov@example.com", Phone: "+7 900 111-22-33"},
	{Name: "Анна Смирнова", Email: "anna.smirnova@example.com", Phone: "+7 900 222-33-44"},
	{Name: "Олег Кузнецов", Email: "oleg.kuznetsov@example.com", Phone: "+7 900 333-44-55"},
	{Name: "Мария Волкова", Email: "maria.volkova@example.com", Phone: "+7 900 444-55-66"},
	{Name: "Дмитрий Орлов", Email: "dmitry.orlov@example.com", Phone: "+7 900 555-66-77"},
}

var equipmentsData = []equipmentSeed{
	{Name: "Treadmill T-100", Category: "Cardio", PurchaseDate: "2022-01-15", WarrantyExpiry: "2025-01-15", Status: "AVAILABLE"},
	{Name: "Treadmill T-200", Category: "Cardio", PurchaseDate: "2023-03-10", WarrantyExpiry: "2026-03-10", Status: "IN_USE"},
	{Name: "Exercise Bike B-3", Category: "Cardio", PurchaseDate: "2021-06-01", WarrantyExpiry: "2024-06-01", Status: "AVAILABLE"},
	{Name: "Rowing Machine R-1", Category: "Cardio", PurchaseDate: "2022-09-20", WarrantyExpiry: "2025-09-20", Status: "UNDER_MAINTENANCE"},
	{Name: "Bench Press", Category: "Strength", PurchaseDate: "2020-11-05", WarrantyExpiry: "2023-11-05", Status: "AVAILABLE"},
	{Name: "Leg Press", Category: "Strength", PurchaseDate: "2021-02-14", WarrantyExpiry: "2024-02-14", Status: "OUT_OF_ORDER"},
	{Name: "Smith Machine", Category: "Strength", PurchaseDate: "2019-08-30", WarrantyExpiry: "2022-08-30", Status: "RETIRED"},
	{Name: "Cable Crossover", Category: "Strength", PurchaseDate: "2023-05-12", WarrantyExpiry: "2026-05-12", Status: "AVAILABLE"},
}

var schedulesData = []scheduleSeed{
	{EquipmentName: "Treadmill T-100", MaintenanceType: "Belt replacement", MaintenanceDate: "2024-01-12", Status: "COMPLETED", Technician: "Сервис-Плюс", Cost: cost(120.50)},
	{EquipmentName: "Treadmill T-200", MaintenanceType: "Lubrication", MaintenanceDate: "2024-01-25", Status: "COMPLETED", Technician: "Сервис-Плюс", Cost: cost(35)},
	{EquipmentName: "Rowing Machine R-1", MaintenanceType: "Chain inspection", MaintenanceDate: "2024-02-03", Description: "Шум при тяге", Status: "IN_PROGRESS", Technician: "ФитТех"},
	{EquipmentName: "Leg Press", MaintenanceType: "Hydraulics repair", MaintenanceDate: "2024-02-18", Status: "COMPLETED", Technician: "ФитТех", Cost: cost(410)},
	{EquipmentName: "Exercise Bike B-3", MaintenanceType: "Pedal replacement", MaintenanceDate: "2024-03-05", Status: "COMPLETED", Technician: "Сервис-Плюс", Cost: cost(60.25)},
	{EquipmentName: "Bench Press", MaintenanceType: "Upholstery", MaintenanceDate: "2024-03-21", Status: "SCHEDULED", Technician: "ФитТех", Cost: cost(90)},
	{EquipmentName: "Cable Crossover", MaintenanceType: "Cable inspection", MaintenanceDate: "2024-04-10", Status: "SCHEDULED"},
}
