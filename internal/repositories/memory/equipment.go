package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"gym-admin/internal/entities"
	"gym-admin/internal/repositories"
	apperrors "gym-admin/pkg/errors"
)

type EquipmentRepository struct {
	store *Store
}

func NewEquipmentRepository(store *Store) repositories.EquipmentRepositoryInterface {
	return &EquipmentRepository{store: store}
}

// containsFold - аналог ILIKE '%sub%'.
func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failure("GetEquipments"); err != nil {
		return nil, err
	}

	result := make([]entities.Equipment, 0)
	for _, e := range r.store.equipment {
		if !filter.IncludeDeleted && e.Deleted {
			continue
		}
		if filter.ID != nil && e.ID != *filter.ID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !containsFold(e.Name, filter.Search) && !containsFold(e.Category, filter.Search) {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, e entities.Equipment) (*entities.Equipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failure("CreateEquipment"); err != nil {
		return nil, err
	}
	e.ID = r.store.nextID("equipment")
	e.Deleted = false
	r.store.equipment[e.ID] = e
	return &e, nil
}

func (r *EquipmentRepository) SoftDeleteEquipment(ctx context.Context, id uint64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.equipment[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Deleted = true
	r.store.equipment[id] = e
	return nil
}

func (r *EquipmentRepository) UpdateStatus(ctx context.Context, id uint64, status string) (*entities.Equipment, error) {
	return r.update(id, func(e *entities.Equipment) { e.Status = status })
}

func (r *EquipmentRepository) UpdateLastMaintenanceDate(ctx context.Context, id uint64, date time.Time) (*entities.Equipment, error) {
	return r.update(id, func(e *entities.Equipment) { e.LastMaintenanceDate = &date })
}

func (r *EquipmentRepository) update(id uint64, apply func(e *entities.Equipment)) (*entities.Equipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	apply(&e)
	r.store.equipment[id] = e
	return &e, nil
}
