package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gym-admin/internal/entities"
	"gym-admin/internal/repositories"
	apperrors "gym-admin/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type MemberRepository struct {
	store *Store
}

func NewMemberRepository(store *Store) repositories.MemberRepositoryInterface {
	return &MemberRepository{store: store}
}

func (r *MemberRepository) Create(ctx context.Context, m entities.Member) (*entities.Member, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m.ID = r.store.nextID("members")
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.store.members[m.ID] = m
	return &m, nil
}

func (r *MemberRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Member, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m, ok := r.store.members[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &m, nil
}

func (r *MemberRepository) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]entities.Member, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make(map[uint64]entities.Member, len(ids))
	for _, id := range ids {
		if m, ok := r.store.members[id]; ok {
			result[id] = m
		}
	}
	return result, nil
}

func (r *MemberRepository) GetAll(ctx context.Context) ([]entities.Member, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]entities.Member, 0, len(r.store.members))
	for _, m := range r.store.members {
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type StaffRepository struct {
	store *Store
}

func NewStaffRepository(store *Store) repositories.StaffRepositoryInterface {
	return &StaffRepository{store: store}
}

func (r *StaffRepository) Create(ctx context.Context, s entities.Staff) (*entities.Staff, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.staff[s.NIC]; exists {
		return nil, fmt.Errorf("сотрудник с NIC %s уже существует: %w", s.NIC, apperrors.ErrConflict)
	}
	r.store.staff[s.NIC] = s
	return &s, nil
}

func (r *StaffRepository) FindByID(ctx context.Context, tx pgx.Tx, nic string) (*entities.Staff, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.staff[nic]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &s, nil
}

func (r *StaffRepository) FindByIDs(ctx context.Context, nics []string) (map[string]entities.Staff, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make(map[string]entities.Staff, len(nics))
	for _, nic := range nics {
		if s, ok := r.store.staff[nic]; ok {
			result[nic] = s
		}
	}
	return result, nil
}

func (r *StaffRepository) GetAll(ctx context.Context) ([]entities.Staff, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]entities.Staff, 0, len(r.store.staff))
	for _, s := range r.store.staff {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].NIC < result[j].NIC })
	return result, nil
}
