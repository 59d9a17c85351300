package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seedEquipment пересоздаёт демо-оборудование и его графики обслуживания.
func seedEquipment(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблиц 'equipment' и 'maintenance_schedule'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE monthly_maintenance_cost, maintenance_schedule, equipment RESTART IDENTITY CASCADE"); err != nil {
		return err
	}

	idsByName := make(map[string]uint64, len(equipmentsData))
	for _, e := range equipmentsData {
		var id uint64
		err := tx.QueryRow(ctx,
			`INSERT INTO equipment (name, category, purchase_date, warranty_expiry, status)
			 VALUES ($1, $2, $3::date, $4::date, $5) RETURNING id`,
			e.Name, e.Category, e.PurchaseDate, e.WarrantyExpiry, e.Status,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("ошибка при вставке оборудования '%s': %w", e.Name, err)
		}
		idsByName[e.Name] = id
	}

	for _, m := range schedulesData {
		equipmentID, ok := idsByName[m.EquipmentName]
		if !ok {
			log.Printf("ПРЕДУПРЕЖДЕНИЕ: оборудование '%s' не найдено, пропускаем график.", m.EquipmentName)
			continue
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO maintenance_schedule (equipment_id, maintenance_type, maintenance_date, description, status, technician, cost)
			 VALUES ($1, $2, $3::date, NULLIF($4, ''), $5, NULLIF($6, ''), $7)`,
			equipmentID, m.MaintenanceType, m.MaintenanceDate, m.Description, m.Status, m.Technician, m.Cost,
		)
		if err != nil {
			return fmt.Errorf("ошибка при вставке графика '%s': %w", m.MaintenanceType, err)
		}
		// дата последнего обслуживания по завершённым работам
		if m.Status == "COMPLETED" {
			if _, err := tx.Exec(ctx,
				`UPDATE equipment SET last_maintenance_date = GREATEST(COALESCE(last_maintenance_date, $2::date), $2::date) WHERE id = $1`,
				equipmentID, m.MaintenanceDate,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}
