package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gym-admin/internal/entities"
	"gym-admin/internal/repositories"
	apperrors "gym-admin/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", raw)
	require.NoError(t, err)
	return d
}

func TestAggregateMonthlyCosts(t *testing.T) {
	schedules := []entities.MaintenanceSchedule{
		{ID: 1, MaintenanceDate: date(t, "2024-04-01"), Cost: costPtr(20)},
		{ID: 2, MaintenanceDate: date(t, "2024-03-15"), Cost: costPtr(100)},
		{ID: 3, MaintenanceDate: date(t, "2024-03-02"), Cost: costPtr(50)},
		{ID: 4, MaintenanceDate: date(t, "2024-03-10"), Cost: nil},
		{ID: 5, MaintenanceDate: date(t, "2024-03-31"), Cost: costPtr(0.1)},
		{ID: 6, MaintenanceDate: date(t, "2024-03-31"), Cost: costPtr(0.2)},
	}

	result := AggregateMonthlyCosts(schedules)

	require.Len(t, result, 2)
	assert.Equal(t, date(t, "2024-03-01"), result[0].Month)
	assert.Equal(t, 150.3, result[0].TotalCost, "Сумма за март должна быть округлена до копеек")
	assert.Equal(t, date(t, "2024-04-01"), result[1].Month)
	assert.Equal(t, 20.0, result[1].TotalCost)
}

func TestAggregateMonthlyCosts_Empty(t *testing.T) {
	assert.Empty(t, AggregateMonthlyCosts(nil))
	assert.Empty(t, AggregateMonthlyCosts([]entities.MaintenanceSchedule{{MaintenanceDate: date(t, "2024-01-01")}}))
}

func newMonthlyCostService(env *testEnv) MonthlyCostServiceInterface {
	return NewMonthlyCostService(env.tx, env.schedules, env.costs, nil, time.Hour, env.logger)
}

func TestMonthlyCostService_RecomputeSumsMonth(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newMonthlyCostService(env)

	eq := env.addEquipment(t, "Беговая дорожка", "Кардио")
	env.addSchedule(t, eq.ID, "2024-03-15", costPtr(100))
	env.addSchedule(t, eq.ID, "2024-03-02", costPtr(50))
	env.addSchedule(t, eq.ID, "2024-03-20", nil)

	res, err := svc.Recompute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.MonthsUpdated)

	march, err := svc.ByMonth(ctx, "2024-03")
	require.NoError(t, err)
	require.Len(t, march, 1)
	assert.Equal(t, "2024-03-01", march[0].Month)
	assert.Equal(t, 150.0, march[0].TotalCost)

	empty, err := svc.ByMonth(ctx, "2024-05")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty, "Месяц без итогов возвращает пустой список")
}

func TestMonthlyCostService_RecomputeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newMonthlyCostService(env)

	eq := env.addEquipment(t, "Гребной тренажёр", "Кардио")
	env.addSchedule(t, eq.ID, "2024-01-10", costPtr(30))
	env.addSchedule(t, eq.ID, "2024-02-10", costPtr(45.5))

	_, err := svc.Recompute(ctx)
	require.NoError(t, err)
	first, err := svc.All(ctx)
	require.NoError(t, err)

	_, err = svc.Recompute(ctx)
	require.NoError(t, err)
	second, err := svc.All(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second, "Повторный пересчёт не должен создавать дубликаты или менять суммы")
	assert.Len(t, second, 2)
}

func TestMonthlyCostService_StaleMonthIsKept(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newMonthlyCostService(env)

	eq := env.addEquipment(t, "Штанга", "Свободные веса")
	s := env.addSchedule(t, eq.ID, "2024-06-05", costPtr(75))

	_, err := svc.Recompute(ctx)
	require.NoError(t, err)

	require.NoError(t, env.schedules.Delete(ctx, s.ID))
	res, err := svc.Recompute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.MonthsUpdated)

	june, err := svc.ByMonth(ctx, "2024-06")
	require.NoError(t, err)
	require.Len(t, june, 1)
	assert.Equal(t, 75.0, june[0].TotalCost, "Месяц без графиков сохраняет прежний итог")
}

func TestMonthlyCostService_RecomputeRollsBack(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newMonthlyCostService(env)

	eq := env.addEquipment(t, "Велотренажёр", "Кардио")
	env.addSchedule(t, eq.ID, "2024-07-01", costPtr(10))

	boom := errors.New("упала запись")
	env.store.FailNext("UpsertMonthlyCost", boom)

	_, err := svc.Recompute(ctx)
	require.ErrorIs(t, err, boom)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMonthlyCostService_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := newMonthlyCostService(newTestEnv(t))

	_, err := svc.ByMonth(ctx, "2024-13")
	assert.True(t, apperrors.IsInvalidInput(err))
	_, err = svc.ByMonth(ctx, "март")
	assert.True(t, apperrors.IsInvalidInput(err))
	_, err = svc.ByYear(ctx, "20x4")
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestMonthlyCostService_ByYearOrdered(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newMonthlyCostService(env)

	eq := env.addEquipment(t, "Кроссовер", "Силовые")
	env.addSchedule(t, eq.ID, "2024-11-03", costPtr(5))
	env.addSchedule(t, eq.ID, "2024-02-03", costPtr(7))
	env.addSchedule(t, eq.ID, "2023-12-31", costPtr(9))

	_, err := svc.Recompute(ctx)
	require.NoError(t, err)

	year, err := svc.ByYear(ctx, "2024")
	require.NoError(t, err)
	require.Len(t, year, 2)
	assert.Equal(t, "2024-02-01", year[0].Month)
	assert.Equal(t, "2024-11-01", year[1].Month)
}

func TestMonthlyCostService_YearCacheInvalidatedByRecompute(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	mr, cache := newTestCache(t)
	svc := NewMonthlyCostService(env.tx, env.schedules, env.costs, cache, time.Hour, env.logger)

	eq := env.addEquipment(t, "Жим лёжа", "Силовые")
	env.addSchedule(t, eq.ID, "2024-03-01", costPtr(100))
	_, err := svc.Recompute(ctx)
	require.NoError(t, err)

	year, err := svc.ByYear(ctx, "2024")
	require.NoError(t, err)
	require.Len(t, year, 1)
	assert.True(t, mr.Exists(yearlyCostCacheKey(2024)), "Годовая выборка должна попасть в кеш")

	// запись в обход сервиса не видна, пока кеш жив
	require.NoError(t, env.costs.Upsert(ctx, nil, date(t, "2024-04-01"), 1))
	cached, err := svc.ByYear(ctx, "2024")
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	env.addSchedule(t, eq.ID, "2024-03-20", costPtr(50))
	_, err = svc.Recompute(ctx)
	require.NoError(t, err)
	assert.False(t, mr.Exists(yearlyCostCacheKey(2024)), "Пересчёт должен сбросить кеш года")

	fresh, err := svc.ByYear(ctx, "2024")
	require.NoError(t, err)
	require.Len(t, fresh, 2)
	assert.Equal(t, 150.0, fresh[0].TotalCost)
}

func TestMonthlyCostService_CacheFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	mr, cache := newTestCache(t)
	svc := NewMonthlyCostService(env.tx, env.schedules, env.costs, cache, time.Hour, env.logger)

	eq := env.addEquipment(t, "Гантели", "Свободные веса")
	env.addSchedule(t, eq.ID, "2024-08-08", costPtr(12.5))

	mr.Close()

	_, err := svc.Recompute(ctx)
	require.NoError(t, err, "Недоступный Redis не должен ломать пересчёт")

	year, err := svc.ByYear(ctx, "2024")
	require.NoError(t, err)
	require.Len(t, year, 1)
	assert.Equal(t, 12.5, year[0].TotalCost)
}

// recomputeDuringRead запускает пересчёт сразу после того, как ByYear прочитал БД,
// т.е. ByYear держит уже устаревшие строки.
type recomputeDuringRead struct {
	repositories.MonthlyCostRepositoryInterface
	onRead func()
}

func (r *recomputeDuringRead) GetBetween(ctx context.Context, from, to time.Time) ([]entities.MonthlyMaintenanceCost, error) {
	list, err := r.MonthlyCostRepositoryInterface.GetBetween(ctx, from, to)
	if r.onRead != nil {
		hook := r.onRead
		r.onRead = nil
		hook()
	}
	return list, err
}

func TestMonthlyCostService_ByYearDoesNotCacheRowsReadBeforeRecompute(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	mr, cache := newTestCache(t)
	costs := &recomputeDuringRead{MonthlyCostRepositoryInterface: env.costs}
	svc := NewMonthlyCostService(env.tx, env.schedules, costs, cache, time.Hour, env.logger)

	eq := env.addEquipment(t, "Эллипс", "Кардио")
	env.addSchedule(t, eq.ID, "2024-03-01", costPtr(100))
	_, err := svc.Recompute(ctx)
	require.NoError(t, err)

	env.addSchedule(t, eq.ID, "2024-03-15", costPtr(50))
	costs.onRead = func() {
		_, err := svc.Recompute(ctx)
		require.NoError(t, err)
	}

	stale, err := svc.ByYear(ctx, "2024")
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, 100.0, stale[0].TotalCost)
	assert.False(t, mr.Exists(yearlyCostCacheKey(2024)), "Устаревшая выборка не должна остаться в кеше")

	fresh, err := svc.ByYear(ctx, "2024")
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, 150.0, fresh[0].TotalCost)
	assert.True(t, mr.Exists(yearlyCostCacheKey(2024)))
}
