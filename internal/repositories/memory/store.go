// Package memory - реализации репозиториев в памяти. Используются в тестах
// сервисов и контроллеров вместо PostgreSQL.
package memory

import (
	"context"
	"maps"
	"sync"

	"gym-admin/internal/entities"
	"gym-admin/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// Store - общее состояние всех репозиториев. Один Store соответствует одной БД.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	equipment map[uint64]entities.Equipment
	schedules map[uint64]entities.MaintenanceSchedule
	monthly   map[string]entities.MonthlyMaintenanceCost
	tickets   map[uint64]entities.Ticket
	raisedBy  map[uint64]entities.TicketRaisedBy
	assigned  map[uint64]entities.TicketAssignedTo
	members   map[uint64]entities.Member
	staff     map[string]entities.Staff
	seq       map[string]uint64

	failures map[string]error
}

func NewStore() *Store {
	return &Store{
		equipment: map[uint64]entities.Equipment{},
		schedules: map[uint64]entities.MaintenanceSchedule{},
		monthly:   map[string]entities.MonthlyMaintenanceCost{},
		tickets:   map[uint64]entities.Ticket{},
		raisedBy:  map[uint64]entities.TicketRaisedBy{},
		assigned:  map[uint64]entities.TicketAssignedTo{},
		members:   map[uint64]entities.Member{},
		staff:     map[string]entities.Staff{},
		seq:       map[string]uint64{},
		failures:  map[string]error{},
	}
}

// FailNext заставляет следующий вызов операции op вернуть err. Срабатывает один раз.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// failure вызывается под s.mu.
func (s *Store) failure(op string) error {
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

// nextID вызывается под s.mu.
func (s *Store) nextID(table string) uint64 {
	s.seq[table]++
	return s.seq[table]
}

type snapshot struct {
	equipment map[uint64]entities.Equipment
	schedules map[uint64]entities.MaintenanceSchedule
	monthly   map[string]entities.MonthlyMaintenanceCost
	tickets   map[uint64]entities.Ticket
	raisedBy  map[uint64]entities.TicketRaisedBy
	assigned  map[uint64]entities.TicketAssignedTo
	members   map[uint64]entities.Member
	staff     map[string]entities.Staff
	seq       map[string]uint64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		equipment: maps.Clone(s.equipment),
		schedules: maps.Clone(s.schedules),
		monthly:   maps.Clone(s.monthly),
		tickets:   maps.Clone(s.tickets),
		raisedBy:  maps.Clone(s.raisedBy),
		assigned:  maps.Clone(s.assigned),
		members:   maps.Clone(s.members),
		staff:     maps.Clone(s.staff),
		seq:       maps.Clone(s.seq),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.equipment = snap.equipment
	s.schedules = snap.schedules
	s.monthly = snap.monthly
	s.tickets = snap.tickets
	s.raisedBy = snap.raisedBy
	s.assigned = snap.assigned
	s.members = snap.members
	s.staff = snap.staff
	s.seq = snap.seq
}

// TxManager сериализует транзакции и при ошибке возвращает Store в состояние до fn.
// Репозитории получают tx == nil.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) repositories.TxManagerInterface {
	return &TxManager{store: store}
}

func (m *TxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	snap := m.store.snapshot()
	defer func() {
		if p := recover(); p != nil {
			m.store.restore(snap)
			panic(p)
		} else if err != nil {
			m.store.restore(snap)
		}
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	err = fn(nil)
	return err
}
