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

type TicketRepository struct {
	store *Store
}

func NewTicketRepository(store *Store) repositories.TicketRepositoryInterface {
	return &TicketRepository{store: store}
}

// matches вызывается под s.mu.
func (r *TicketRepository) matches(t entities.Ticket, filter entities.TicketFilter) bool {
	if filter.Status != "" && t.Status != filter.Status {
		return false
	}
	if filter.Priority != "" && t.Priority != filter.Priority {
		return false
	}
	if filter.AssignedTo != "" {
		a, ok := r.store.assigned[t.ID]
		if !ok || a.StaffID != filter.AssignedTo {
			return false
		}
	}
	if filter.RaisedByMember != nil {
		rb, ok := r.store.raisedBy[t.ID]
		if !ok || rb.MemberID == nil || *rb.MemberID != *filter.RaisedByMember {
			return false
		}
	}
	if filter.RaisedByStaff != "" {
		rb, ok := r.store.raisedBy[t.ID]
		if !ok || rb.StaffID == nil || *rb.StaffID != filter.RaisedByStaff {
			return false
		}
	}
	return true
}

func (r *TicketRepository) Create(ctx context.Context, tx pgx.Tx, t entities.Ticket) (*entities.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failure("CreateTicket"); err != nil {
		return nil, err
	}
	t.ID = r.store.nextID("tickets")
	r.store.tickets[t.ID] = t
	return &t, nil
}

func (r *TicketRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tickets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (r *TicketRepository) GetAll(ctx context.Context, filter entities.TicketFilter) ([]entities.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]entities.Ticket, 0)
	for _, t := range r.store.tickets {
		if r.matches(t, filter) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *TicketRepository) Count(ctx context.Context, filter entities.TicketFilter) (uint64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var total uint64
	for _, t := range r.store.tickets {
		if r.matches(t, filter) {
			total++
		}
	}
	return total, nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status string, updatedAt time.Time) (*entities.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failure("UpdateTicketStatus"); err != nil {
		return nil, err
	}
	t, ok := r.store.tickets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = updatedAt
	r.store.tickets[id] = t
	return &t, nil
}

type TicketRelationRepository struct {
	store *Store
}

func NewTicketRelationRepository(store *Store) repositories.TicketRelationRepositoryInterface {
	return &TicketRelationRepository{store: store}
}

func (r *TicketRelationRepository) CreateRaisedBy(ctx context.Context, tx pgx.Tx, rb entities.TicketRaisedBy) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failure("CreateRaisedBy"); err != nil {
		return err
	}
	if (rb.MemberID == nil) == (rb.StaffID == nil) {
		return apperrors.NewInvalidInputError("Тикет должен открыть ровно один участник: memberId или staffId")
	}
	if _, ok := r.store.tickets[rb.TicketID]; !ok {
		return fmt.Errorf("тикет %d: %w", rb.TicketID, apperrors.ErrNotFound)
	}
	if rb.MemberID != nil {
		if _, ok := r.store.members[*rb.MemberID]; !ok {
			return fmt.Errorf("автор тикета не найден: %w", apperrors.ErrNotFound)
		}
	}
	if rb.StaffID != nil {
		if _, ok := r.store.staff[*rb.StaffID]; !ok {
			return fmt.Errorf("автор тикета не найден: %w", apperrors.ErrNotFound)
		}
	}
	if _, exists := r.store.raisedBy[rb.TicketID]; exists {
		return fmt.Errorf("автор тикета %d уже записан: %w", rb.TicketID, apperrors.ErrConflict)
	}
	rb.Version = 0
	r.store.raisedBy[rb.TicketID] = rb
	return nil
}

func (r *TicketRelationRepository) GetRaisedBy(ctx context.Context, ticketIDs []uint64) (map[uint64]entities.TicketRaisedBy, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make(map[uint64]entities.TicketRaisedBy, len(ticketIDs))
	for _, id := range ticketIDs {
		if rb, ok := r.store.raisedBy[id]; ok {
			result[id] = rb
		}
	}
	return result, nil
}

func (r *TicketRelationRepository) FindAssignment(ctx context.Context, tx pgx.Tx, ticketID uint64) (*entities.TicketAssignedTo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.assigned[ticketID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (r *TicketRelationRepository) InsertAssignment(ctx context.Context, tx pgx.Tx, ticketID uint64, staffID string) (*entities.TicketAssignedTo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failure("InsertAssignment"); err != nil {
		return nil, err
	}
	if _, exists := r.store.assigned[ticketID]; exists {
		return nil, fmt.Errorf("тикет %d уже назначен: %w", ticketID, apperrors.ErrConflict)
	}
	if _, ok := r.store.staff[staffID]; !ok {
		return nil, fmt.Errorf("сотрудник %s: %w", staffID, apperrors.ErrNotFound)
	}
	a := entities.TicketAssignedTo{TicketID: ticketID, StaffID: staffID, Version: entities.FirstAssignmentVersion}
	r.store.assigned[ticketID] = a
	return &a, nil
}

func (r *TicketRelationRepository) UpdateAssignment(ctx context.Context, tx pgx.Tx, ticketID uint64, staffID string, expectedVersion uint64) (*entities.TicketAssignedTo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failure("UpdateAssignment"); err != nil {
		return nil, err
	}
	a, ok := r.store.assigned[ticketID]
	if !ok || a.Version != expectedVersion {
		return nil, fmt.Errorf("назначение тикета %d изменено другим запросом: %w", ticketID, apperrors.ErrConflict)
	}
	if _, ok := r.store.staff[staffID]; !ok {
		return nil, fmt.Errorf("сотрудник %s: %w", staffID, apperrors.ErrNotFound)
	}
	a.StaffID = staffID
	a.Version++
	r.store.assigned[ticketID] = a
	return &a, nil
}

func (r *TicketRelationRepository) GetAssignments(ctx context.Context, ticketIDs []uint64) (map[uint64]entities.TicketAssignedTo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make(map[uint64]entities.TicketAssignedTo, len(ticketIDs))
	for _, id := range ticketIDs {
		if a, ok := r.store.assigned[id]; ok {
			result[id] = a
		}
	}
	return result, nil
}
