package memory

import (
	"context"
	"fmt"
	"sort"

	"gym-admin/internal/entities"
	"gym-admin/internal/repositories"
	apperrors "gym-admin/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type MaintenanceScheduleRepository struct {
	store *Store
}

func NewMaintenanceScheduleRepository(store *Store) repositories.MaintenanceScheduleRepositoryInterface {
	return &MaintenanceScheduleRepository{store: store}
}

func (r *MaintenanceScheduleRepository) Create(ctx context.Context, m entities.MaintenanceSchedule) (*entities.MaintenanceSchedule, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.equipment[m.EquipmentID]; !ok {
		return nil, fmt.Errorf("оборудование %d: %w", m.EquipmentID, apperrors.ErrNotFound)
	}
	m.ID = r.store.nextID("maintenance_schedule")
	r.store.schedules[m.ID] = m
	return &m, nil
}

func (r *MaintenanceScheduleRepository) FindByID(ctx context.Context, id uint64) (*entities.MaintenanceSchedule, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m, ok := r.store.schedules[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &m, nil
}

func (r *MaintenanceScheduleRepository) GetAll(ctx context.Context, tx pgx.Tx, filter entities.MaintenanceScheduleFilter) ([]entities.MaintenanceSchedule, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failure("GetSchedules"); err != nil {
		return nil, err
	}

	result := make([]entities.MaintenanceSchedule, 0)
	for _, m := range r.store.schedules {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.EquipmentID != nil && m.EquipmentID != *filter.EquipmentID {
			continue
		}
		if filter.TypeContains != "" && !containsFold(m.MaintenanceType, filter.TypeContains) {
			continue
		}
		if filter.OnlyCosted && m.Cost == nil {
			continue
		}
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MaintenanceScheduleRepository) Update(ctx context.Context, id uint64, patch entities.MaintenanceSchedulePatch) (*entities.MaintenanceSchedule, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m, ok := r.store.schedules[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if patch.MaintenanceDate != nil {
		m.MaintenanceDate = *patch.MaintenanceDate
	}
	if patch.Status != nil {
		m.Status = *patch.Status
	}
	if patch.Technician != nil {
		m.Technician = patch.Technician
	}
	if patch.Description != nil {
		m.Description = patch.Description
	}
	if patch.SetCost {
		m.Cost = patch.Cost
	}
	r.store.schedules[id] = m
	return &m, nil
}

func (r *MaintenanceScheduleRepository) Delete(ctx context.Context, id uint64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.schedules[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.store.schedules, id)
	return nil
}
