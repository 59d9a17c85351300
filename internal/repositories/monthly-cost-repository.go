package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gym-admin/internal/entities"
	apperrors "gym-admin/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	monthlyCostTable  = "monthly_maintenance_cost"
	monthlyCostFields = "id, month, total_cost::float8"
)

type MonthlyCostRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entities.MonthlyMaintenanceCost, error)
	FindByMonth(ctx context.Context, month time.Time) (*entities.MonthlyMaintenanceCost, error)
	GetBetween(ctx context.Context, from, to time.Time) ([]entities.MonthlyMaintenanceCost, error)
	Upsert(ctx context.Context, tx pgx.Tx, month time.Time, total float64) error
}

type MonthlyCostRepository struct {
	storage *pgxpool.Pool
}

func NewMonthlyCostRepository(storage *pgxpool.Pool) MonthlyCostRepositoryInterface {
	return &MonthlyCostRepository{storage: storage}
}

func (r *MonthlyCostRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *MonthlyCostRepository) selectMany(ctx context.Context, builder sq.SelectBuilder) ([]entities.MonthlyMaintenanceCost, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для monthly_maintenance_cost: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки monthly_maintenance_cost: %w", err)
	}
	defer rows.Close()

	result := make([]entities.MonthlyMaintenanceCost, 0)
	for rows.Next() {
		var c entities.MonthlyMaintenanceCost
		if err := rows.Scan(&c.ID, &c.Month, &c.TotalCost); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *MonthlyCostRepository) GetAll(ctx context.Context) ([]entities.MonthlyMaintenanceCost, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return r.selectMany(ctx, psql.Select(monthlyCostFields).From(monthlyCostTable).OrderBy("month"))
}

func (r *MonthlyCostRepository) FindByMonth(ctx context.Context, month time.Time) (*entities.MonthlyMaintenanceCost, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE month = $1", monthlyCostFields, monthlyCostTable)

	var c entities.MonthlyMaintenanceCost
	err := r.storage.QueryRow(ctx, query, month).Scan(&c.ID, &c.Month, &c.TotalCost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetBetween - записи с month в [from, to], по возрастанию месяца.
func (r *MonthlyCostRepository) GetBetween(ctx context.Context, from, to time.Time) ([]entities.MonthlyMaintenanceCost, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(monthlyCostFields).
		From(monthlyCostTable).
		Where(sq.GtOrEq{"month": from}).
		Where(sq.LtOrEq{"month": to}).
		OrderBy("month")
	return r.selectMany(ctx, builder)
}

// Upsert создаёт строку месяца или перезаписывает её итог.
func (r *MonthlyCostRepository) Upsert(ctx context.Context, tx pgx.Tx, month time.Time, total float64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (month, total_cost) VALUES (@month, @total)
		ON CONFLICT (month) DO UPDATE SET total_cost = EXCLUDED.total_cost`, monthlyCostTable)

	_, err := r.getQuerier(tx).Exec(ctx, query, pgx.NamedArgs{"month": month, "total": total})
	if err != nil {
		return fmt.Errorf("ошибка upsert monthly_maintenance_cost за %s: %w", month.Format("2006-01"), err)
	}
	return nil
}
