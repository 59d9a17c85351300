package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym-admin/internal/entities"
	apperrors "gym-admin/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	equipmentTable  = "equipment"
	equipmentFields = "id, name, category, purchase_date, last_maintenance_date, status, warranty_expiry, deleted"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern - шаблон ILIKE "подстрока", спецсимволы экранируются.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, e entities.Equipment) (*entities.Equipment, error)
	SoftDeleteEquipment(ctx context.Context, id uint64) error
	UpdateStatus(ctx context.Context, id uint64, status string) (*entities.Equipment, error)
	UpdateLastMaintenanceDate(ctx context.Context, id uint64, date time.Time) (*entities.Equipment, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(&e.ID, &e.Name, &e.Category, &e.PurchaseDate, &e.LastMaintenanceDate, &e.Status, &e.WarrantyExpiry, &e.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования equipment: %w", err)
	}
	return &e, nil
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(equipmentFields).From(equipmentTable).OrderBy("id")

	if !filter.IncludeDeleted {
		builder = builder.Where(sq.Eq{"deleted": false})
	}
	if filter.ID != nil {
		builder = builder.Where(sq.Eq{"id": *filter.ID})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		builder = builder.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"category": pattern},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для GetEquipments: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки equipment: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", equipmentFields, equipmentTable)
	return scanEquipment(r.storage.QueryRow(ctx, query, id))
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, e entities.Equipment) (*entities.Equipment, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(equipmentTable).
		Columns("name", "category", "purchase_date", "last_maintenance_date", "status", "warranty_expiry").
		Values(e.Name, e.Category, e.PurchaseDate, e.LastMaintenanceDate, e.Status, e.WarrantyExpiry).
		Suffix("RETURNING " + equipmentFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса CreateEquipment: %w", err)
	}
	return scanEquipment(r.storage.QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) SoftDeleteEquipment(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("UPDATE %s SET deleted = TRUE WHERE id = $1", equipmentTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) UpdateStatus(ctx context.Context, id uint64, status string) (*entities.Equipment, error) {
	query := fmt.Sprintf("UPDATE %s SET status = @status WHERE id = @id RETURNING %s", equipmentTable, equipmentFields)
	args := pgx.NamedArgs{"status": status, "id": id}
	return scanEquipment(r.storage.QueryRow(ctx, query, args))
}

func (r *EquipmentRepository) UpdateLastMaintenanceDate(ctx context.Context, id uint64, date time.Time) (*entities.Equipment, error) {
	query := fmt.Sprintf("UPDATE %s SET last_maintenance_date = @date WHERE id = @id RETURNING %s", equipmentTable, equipmentFields)
	args := pgx.NamedArgs{"date": date, "id": id}
	return scanEquipment(r.storage.QueryRow(ctx, query, args))
}
