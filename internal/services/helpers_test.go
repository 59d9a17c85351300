package services

import (
	"context"
	"testing"
	"time"

	"gym-admin/internal/entities"
	"gym-admin/internal/repositories"
	"gym-admin/internal/repositories/memory"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEnv - все репозитории поверх одного Store в памяти.
type testEnv struct {
	store     *memory.Store
	tx        repositories.TxManagerInterface
	equipment repositories.EquipmentRepositoryInterface
	schedules repositories.MaintenanceScheduleRepositoryInterface
	costs     repositories.MonthlyCostRepositoryInterface
	tickets   repositories.TicketRepositoryInterface
	relations repositories.TicketRelationRepositoryInterface
	members   repositories.MemberRepositoryInterface
	staff     repositories.StaffRepositoryInterface
	logger    *zap.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	return &testEnv{
		store:     store,
		tx:        memory.NewTxManager(store),
		equipment: memory.NewEquipmentRepository(store),
		schedules: memory.NewMaintenanceScheduleRepository(store),
		costs:     memory.NewMonthlyCostRepository(store),
		tickets:   memory.NewTicketRepository(store),
		relations: memory.NewTicketRelationRepository(store),
		members:   memory.NewMemberRepository(store),
		staff:     memory.NewStaffRepository(store),
		logger:    zap.NewNop(),
	}
}

func (e *testEnv) addEquipment(t *testing.T, name, category string) *entities.Equipment {
	t.Helper()
	created, err := e.equipment.CreateEquipment(context.Background(), entities.Equipment{Name: name, Category: category, Status: "AVAILABLE"})
	require.NoError(t, err)
	return created
}

func (e *testEnv) addSchedule(t *testing.T, equipmentID uint64, date string, cost *float64) *entities.MaintenanceSchedule {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	created, err := e.schedules.Create(context.Background(), entities.MaintenanceSchedule{
		EquipmentID:     equipmentID,
		MaintenanceType: "Плановое ТО",
		MaintenanceDate: d,
		Status:          "SCHEDULED",
		Cost:            cost,
	})
	require.NoError(t, err)
	return created
}

func (e *testEnv) addMember(t *testing.T, name string) *entities.Member {
	t.Helper()
	created, err := e.members.Create(context.Background(), entities.Member{Name: name})
	require.NoError(t, err)
	return created
}

func (e *testEnv) addStaff(t *testing.T, nic, name string) *entities.Staff {
	t.Helper()
	created, err := e.staff.Create(context.Background(), entities.Staff{NIC: nic, Name: name, Role: "TECHNICIAN"})
	require.NoError(t, err)
	return created
}

// newTestCache поднимает miniredis. Повторы клиента выключены, чтобы тесты с
// остановленным сервером не ждали backoff.
func newTestCache(t *testing.T) (*miniredis.Miniredis, repositories.CacheRepositoryInterface) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return mr, repositories.NewRedisCacheRepository(client)
}

func costPtr(v float64) *float64 { return &v }
