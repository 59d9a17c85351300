package repositories

import (
	"context"
	"errors"
	"fmt"

	"gym-admin/internal/entities"
	apperrors "gym-admin/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maintenanceScheduleTable = "maintenance_schedule"
	// cost приводится к float8, чтобы NUMERIC сканировался прямо в *float64
	maintenanceScheduleFields = "id, equipment_id, maintenance_type, maintenance_date, description, status, technician, cost::float8"
)

type MaintenanceScheduleRepositoryInterface interface {
	Create(ctx context.Context, m entities.MaintenanceSchedule) (*entities.MaintenanceSchedule, error)
	FindByID(ctx context.Context, id uint64) (*entities.MaintenanceSchedule, error)
	GetAll(ctx context.Context, tx pgx.Tx, filter entities.MaintenanceScheduleFilter) ([]entities.MaintenanceSchedule, error)
	Update(ctx context.Context, id uint64, patch entities.MaintenanceSchedulePatch) (*entities.MaintenanceSchedule, error)
	Delete(ctx context.Context, id uint64) error
}

type MaintenanceScheduleRepository struct {
	storage *pgxpool.Pool
}

func NewMaintenanceScheduleRepository(storage *pgxpool.Pool) MaintenanceScheduleRepositoryInterface {
	return &MaintenanceScheduleRepository{storage: storage}
}

func (r *MaintenanceScheduleRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanMaintenanceSchedule(row pgx.Row) (*entities.MaintenanceSchedule, error) {
	var m entities.MaintenanceSchedule
	err := row.Scan(&m.ID, &m.EquipmentID, &m.MaintenanceType, &m.MaintenanceDate, &m.Description, &m.Status, &m.Technician, &m.Cost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования maintenance_schedule: %w", err)
	}
	return &m, nil
}

func (r *MaintenanceScheduleRepository) Create(ctx context.Context, m entities.MaintenanceSchedule) (*entities.MaintenanceSchedule, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(maintenanceScheduleTable).
		Columns("equipment_id", "maintenance_type", "maintenance_date", "description", "status", "technician", "cost").
		Values(m.EquipmentID, m.MaintenanceType, m.MaintenanceDate, m.Description, m.Status, m.Technician, m.Cost).
		Suffix("RETURNING " + maintenanceScheduleFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}

	created, err := scanMaintenanceSchedule(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, fmt.Errorf("оборудование %d: %w", m.EquipmentID, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return created, nil
}

func (r *MaintenanceScheduleRepository) FindByID(ctx context.Context, id uint64) (*entities.MaintenanceSchedule, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", maintenanceScheduleFields, maintenanceScheduleTable)
	return scanMaintenanceSchedule(r.storage.QueryRow(ctx, query, id))
}

func (r *MaintenanceScheduleRepository) GetAll(ctx context.Context, tx pgx.Tx, filter entities.MaintenanceScheduleFilter) ([]entities.MaintenanceSchedule, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(maintenanceScheduleFields).From(maintenanceScheduleTable).OrderBy("id")

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.EquipmentID != nil {
		builder = builder.Where(sq.Eq{"equipment_id": *filter.EquipmentID})
	}
	if filter.TypeContains != "" {
		builder = builder.Where(sq.ILike{"maintenance_type": containsPattern(filter.TypeContains)})
	}
	if filter.OnlyCosted {
		builder = builder.Where(sq.NotEq{"cost": nil})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для GetAll: %w", err)
	}

	rows, err := r.getQuerier(tx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки maintenance_schedule: %w", err)
	}
	defer rows.Close()

	result := make([]entities.MaintenanceSchedule, 0)
	for rows.Next() {
		m, err := scanMaintenanceSchedule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	return result, rows.Err()
}

// Update меняет только поля, заданные в patch. Пустой patch просто возвращает запись.
func (r *MaintenanceScheduleRepository) Update(ctx context.Context, id uint64, patch entities.MaintenanceSchedulePatch) (*entities.MaintenanceSchedule, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Update(maintenanceScheduleTable).Where(sq.Eq{"id": id})

	if patch.MaintenanceDate != nil {
		builder = builder.Set("maintenance_date", *patch.MaintenanceDate)
	}
	if patch.Status != nil {
		builder = builder.Set("status", *patch.Status)
	}
	if patch.Technician != nil {
		builder = builder.Set("technician", *patch.Technician)
	}
	if patch.Description != nil {
		builder = builder.Set("description", *patch.Description)
	}
	if patch.SetCost {
		builder = builder.Set("cost", patch.Cost)
	}

	query, args, err := builder.Suffix("RETURNING " + maintenanceScheduleFields).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса Update: %w", err)
	}
	return scanMaintenanceSchedule(r.storage.QueryRow(ctx, query, args...))
}

func (r *MaintenanceScheduleRepository) Delete(ctx context.Context, id uint64) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Delete(maintenanceScheduleTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Delete: %w", err)
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка удаления maintenance_schedule: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
