package memory

import (
	"context"
	"sort"
	"time"

	"gym-admin/internal/entities"
	"gym-admin/internal/repositories"
	apperrors "gym-admin/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type MonthlyCostRepository struct {
	store *Store
}

func NewMonthlyCostRepository(store *Store) repositories.MonthlyCostRepositoryInterface {
	return &MonthlyCostRepository{store: store}
}

func monthKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func (r *MonthlyCostRepository) sorted(keep func(c entities.MonthlyMaintenanceCost) bool) []entities.MonthlyMaintenanceCost {
	result := make([]entities.MonthlyMaintenanceCost, 0)
	for _, c := range r.store.monthly {
		if keep(c) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month.Before(result[j].Month) })
	return result
}

func (r *MonthlyCostRepository) GetAll(ctx context.Context) ([]entities.MonthlyMaintenanceCost, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.sorted(func(entities.MonthlyMaintenanceCost) bool { return true }), nil
}

func (r *MonthlyCostRepository) FindByMonth(ctx context.Context, month time.Time) (*entities.MonthlyMaintenanceCost, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.monthly[monthKey(month)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (r *MonthlyCostRepository) GetBetween(ctx context.Context, from, to time.Time) ([]entities.MonthlyMaintenanceCost, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failure("GetBetween"); err != nil {
		return nil, err
	}
	return r.sorted(func(c entities.MonthlyMaintenanceCost) bool {
		return !c.Month.Before(from) && !c.Month.After(to)
	}), nil
}

func (r *MonthlyCostRepository) Upsert(ctx context.Context, tx pgx.Tx, month time.Time, total float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failure("UpsertMonthlyCost"); err != nil {
		return err
	}
	key := monthKey(month)
	c, ok := r.store.monthly[key]
	if !ok {
		c = entities.MonthlyMaintenanceCost{ID: r.store.nextID("monthly_maintenance_cost"), Month: month}
	}
	c.TotalCost = total
	r.store.monthly[key] = c
	return nil
}
