package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"gym-admin/internal/dto"
	"gym-admin/internal/entities"
	"gym-admin/internal/repositories"
	apperrors "gym-admin/pkg/errors"
	"gym-admin/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	yearlyCostCacheKeyPrefix = "monthly_costs:year:"
	// счётчик пересчётов: ByYear не кладёт в кеш выборку, если во время чтения прошёл Recompute
	costGenerationKey = "monthly_costs:generation"
)

func yearlyCostCacheKey(year int) string {
	return fmt.Sprintf("%s%04d", yearlyCostCacheKeyPrefix, year)
}

type MonthlyCostServiceInterface interface {
	Recompute(ctx context.Context) (*dto.RecomputeResultDTO, error)
	ByMonth(ctx context.Context, rawMonth string) ([]dto.MonthlyCostDTO, error)
	ByYear(ctx context.Context, rawYear string) ([]dto.MonthlyCostDTO, error)
	All(ctx context.Context) ([]dto.MonthlyCostDTO, error)
}

type MonthlyCostService struct {
	txManager          repositories.TxManagerInterface
	scheduleRepository repositories.MaintenanceScheduleRepositoryInterface
	costRepository     repositories.MonthlyCostRepositoryInterface
	cache              repositories.CacheRepositoryInterface
	cacheTTL           time.Duration
	logger             *zap.Logger
}

// NewMonthlyCostService - cache может быть nil, тогда годовые выборки всегда идут в БД.
func NewMonthlyCostService(
	txManager repositories.TxManagerInterface,
	scheduleRepository repositories.MaintenanceScheduleRepositoryInterface,
	costRepository repositories.MonthlyCostRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) MonthlyCostServiceInterface {
	return &MonthlyCostService{
		txManager:          txManager,
		scheduleRepository: scheduleRepository,
		costRepository:     costRepository,
		cache:              cache,
		cacheTTL:           cacheTTL,
		logger:             logger,
	}
}

// AggregateMonthlyCosts группирует графики со стоимостью по первому числу месяца
// даты обслуживания и суммирует стоимость. Графики без стоимости пропускаются.
// Результат отсортирован по месяцу, ID не заполняется.
func AggregateMonthlyCosts(schedules []entities.MaintenanceSchedule) []entities.MonthlyMaintenanceCost {
	totals := make(map[string]*entities.MonthlyMaintenanceCost)
	for _, m := range schedules {
		if m.Cost == nil {
			continue
		}
		month := utils.MonthStart(m.MaintenanceDate)
		key := month.Format(utils.MonthLayout)
		bucket, ok := totals[key]
		if !ok {
			bucket = &entities.MonthlyMaintenanceCost{Month: month}
			totals[key] = bucket
		}
		bucket.TotalCost += *m.Cost
	}

	result := make([]entities.MonthlyMaintenanceCost, 0, len(totals))
	for _, bucket := range totals {
		// NUMERIC в БД хранит копейки, приводим сумму к тому же виду
		bucket.TotalCost = math.Round(bucket.TotalCost*100) / 100
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month.Before(result[j].Month) })
	return result
}

func monthlyCostToDTO(c entities.MonthlyMaintenanceCost) dto.MonthlyCostDTO {
	return dto.MonthlyCostDTO{
		ID:        c.ID,
		Month:     c.Month.Format(utils.DateLayout),
		TotalCost: c.TotalCost,
	}
}

func monthlyCostsToDTOs(list []entities.MonthlyMaintenanceCost) []dto.MonthlyCostDTO {
	result := make([]dto.MonthlyCostDTO, 0, len(list))
	for _, c := range list {
		result = append(result, monthlyCostToDTO(c))
	}
	return result
}

// Recompute пересчитывает итоги всех месяцев, где есть графики со стоимостью.
// Месяцы без таких графиков не трогаются, их старые итоги остаются.
func (s *MonthlyCostService) Recompute(ctx context.Context) (*dto.RecomputeResultDTO, error) {
	var buckets []entities.MonthlyMaintenanceCost

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		schedules, err := s.scheduleRepository.GetAll(ctx, tx, entities.MaintenanceScheduleFilter{OnlyCosted: true})
		if err != nil {
			return err
		}
		buckets = AggregateMonthlyCosts(schedules)
		for _, b := range buckets {
			if err := s.costRepository.Upsert(ctx, tx, b.Month, b.TotalCost); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Ошибка при пересчёте месячных затрат", zap.Error(err))
		return nil, err
	}

	s.invalidateYears(ctx, buckets)
	s.logger.Info("Месячные затраты пересчитаны", zap.Int("months", len(buckets)))
	return &dto.RecomputeResultDTO{MonthsUpdated: len(buckets)}, nil
}

func (s *MonthlyCostService) invalidateYears(ctx context.Context, buckets []entities.MonthlyMaintenanceCost) {
	if s.cache == nil || len(buckets) == 0 {
		return
	}
	// сначала поколение, потом удаление: ByYear, прочитавший БД до коммита,
	// увидит новое поколение и уберёт свою запись
	if _, err := s.cache.Incr(ctx, costGenerationKey); err != nil {
		s.logger.Warn("Не удалось сменить поколение кеша затрат", zap.Error(err))
	}
	seen := make(map[int]bool)
	keys := make([]string, 0)
	for _, b := range buckets {
		if y := b.Month.Year(); !seen[y] {
			seen[y] = true
			keys = append(keys, yearlyCostCacheKey(y))
		}
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		s.logger.Warn("Не удалось сбросить кеш годовых затрат", zap.Strings("keys", keys), zap.Error(err))
	}
}

// ByMonth возвращает ноль или одну запись за месяц YYYY-MM.
func (s *MonthlyCostService) ByMonth(ctx context.Context, rawMonth string) ([]dto.MonthlyCostDTO, error) {
	month, err := utils.ParseMonth(rawMonth)
	if err != nil {
		return nil, err
	}
	c, err := s.costRepository.FindByMonth(ctx, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []dto.MonthlyCostDTO{}, nil
		}
		return nil, err
	}
	return []dto.MonthlyCostDTO{monthlyCostToDTO(*c)}, nil
}

// ByYear возвращает месяцы года по возрастанию. Результат кешируется в Redis до следующего пересчёта.
func (s *MonthlyCostService) ByYear(ctx context.Context, rawYear string) ([]dto.MonthlyCostDTO, error) {
	from, to, err := utils.ParseYear(rawYear)
	if err != nil {
		return nil, err
	}
	key := yearlyCostCacheKey(from.Year())

	if cached, ok := s.readCache(ctx, key); ok {
		return cached, nil
	}

	generation, genOK := s.cacheGeneration(ctx)
	list, err := s.costRepository.GetBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	result := monthlyCostsToDTOs(list)
	if genOK {
		s.writeCache(ctx, key, result)
		// пересчёт прошёл между чтением и записью: значение могло устареть
		if current, ok := s.cacheGeneration(ctx); !ok || current != generation {
			if err := s.cache.Del(ctx, key); err != nil {
				s.logger.Warn("Не удалось удалить устаревший кеш", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return result, nil
}

// cacheGeneration - текущее поколение кеша затрат, "" если пересчётов ещё не было.
// false, если кеш недоступен.
func (s *MonthlyCostService) cacheGeneration(ctx context.Context) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	generation, err := s.cache.Get(ctx, costGenerationKey)
	if err != nil {
		if errors.Is(err, repositories.ErrCacheMiss) {
			return "", true
		}
		return "", false
	}
	return generation, true
}

func (s *MonthlyCostService) All(ctx context.Context) ([]dto.MonthlyCostDTO, error) {
	list, err := s.costRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return monthlyCostsToDTOs(list), nil
}

func (s *MonthlyCostService) readCache(ctx context.Context, key string) ([]dto.MonthlyCostDTO, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			s.logger.Warn("Ошибка чтения кеша", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var result []dto.MonthlyCostDTO
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.logger.Warn("Повреждённое значение в кеше", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return result, true
}

func (s *MonthlyCostService) writeCache(ctx context.Context, key string, value []dto.MonthlyCostDTO) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.logger.Warn("Ошибка записи в кеш", zap.String("key", key), zap.Error(err))
	}
}
