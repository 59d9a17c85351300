package repositories_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"gym-admin/internal/entities"
	"gym-admin/internal/migrations"
	"gym-admin/internal/repositories"
	"gym-admin/pkg/constants"
	apperrors "gym-admin/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testPool *pgxpool.Pool

// Интеграционные тесты запускаются только при заданном TEST_DATABASE_URL.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		panic(err)
	}
	if err := migrations.Up(ctx, pool, zap.NewNop()); err != nil {
		panic(err)
	}
	testPool = pool
	code := m.Run()
	pool.Close()
	os.Exit(code)
}

func requireDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL не задан")
	}
	_, err := testPool.Exec(context.Background(), `TRUNCATE TABLE
		ticket_assigned_to, ticket_raised_by, tickets, staff, members,
		monthly_maintenance_cost, maintenance_schedule, equipment
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return testPool
}

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", raw)
	require.NoError(t, err)
	return d
}

func TestEquipmentRepository_Postgres(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := repositories.NewEquipmentRepository(pool)

	treadmill, err := repo.CreateEquipment(ctx, entities.Equipment{Name: "Treadmill", Category: "Cardio", Status: constants.EquipmentAvailable})
	require.NoError(t, err)
	_, err = repo.CreateEquipment(ctx, entities.Equipment{Name: "Bench 50%", Category: "Strength", Status: constants.EquipmentAvailable})
	require.NoError(t, err)

	found, err := repo.GetEquipments(ctx, entities.EquipmentFilter{Search: "CARD"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, treadmill.ID, found[0].ID)

	// % в подстроке ищется буквально
	found, err = repo.GetEquipments(ctx, entities.EquipmentFilter{Search: "0%"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Bench 50%", found[0].Name)

	require.NoError(t, repo.SoftDeleteEquipment(ctx, treadmill.ID))
	visible, err := repo.GetEquipments(ctx, entities.EquipmentFilter{})
	require.NoError(t, err)
	assert.Len(t, visible, 1)
	all, err := repo.GetEquipments(ctx, entities.EquipmentFilter{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, repo.SoftDeleteEquipment(ctx, 999), apperrors.ErrNotFound)

	updated, err := repo.UpdateLastMaintenanceDate(ctx, treadmill.ID, mustDate(t, "2024-03-15"))
	require.NoError(t, err)
	require.NotNil(t, updated.LastMaintenanceDate)
	assert.Equal(t, "2024-03-15", updated.LastMaintenanceDate.Format("2006-01-02"))
}

func TestMonthlyCostRepository_UpsertAndRange(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := repositories.NewMonthlyCostRepository(pool)

	require.NoError(t, repo.Upsert(ctx, nil, mustDate(t, "2024-03-01"), 100))
	require.NoError(t, repo.Upsert(ctx, nil, mustDate(t, "2024-01-01"), 20.5))
	require.NoError(t, repo.Upsert(ctx, nil, mustDate(t, "2024-03-01"), 150))
	require.NoError(t, repo.Upsert(ctx, nil, mustDate(t, "2025-01-01"), 7))

	march, err := repo.FindByMonth(ctx, mustDate(t, "2024-03-01"))
	require.NoError(t, err)
	assert.Equal(t, 150.0, march.TotalCost)

	_, err = repo.FindByMonth(ctx, mustDate(t, "2024-02-01"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	year, err := repo.GetBetween(ctx, mustDate(t, "2024-01-01"), mustDate(t, "2024-12-01"))
	require.NoError(t, err)
	require.Len(t, year, 2)
	assert.Equal(t, "2024-01", year[0].Month.Format("2006-01"))
	assert.Equal(t, "2024-03", year[1].Month.Format("2006-01"))
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	txManager := repositories.NewTxManager(pool)
	costs := repositories.NewMonthlyCostRepository(pool)

	boom := errors.New("boom")
	err := txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := costs.Upsert(ctx, tx, mustDate(t, "2024-05-01"), 10); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := costs.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTicketRelations_Postgres(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	members := repositories.NewMemberRepository(pool)
	staff := repositories.NewStaffRepository(pool)
	tickets := repositories.NewTicketRepository(pool)
	relations := repositories.NewTicketRelationRepository(pool)

	member, err := members.Create(ctx, entities.Member{Name: "Ivan"})
	require.NoError(t, err)
	_, err = staff.Create(ctx, entities.Staff{NIC: "STF001", Name: "Oleg", Role: constants.RoleTechnician})
	require.NoError(t, err)
	_, err = staff.Create(ctx, entities.Staff{NIC: "STF002", Name: "Nina", Role: constants.RoleTechnician})
	require.NoError(t, err)

	now := time.Now().UTC()
	ticket, err := tickets.Create(ctx, nil, entities.Ticket{
		Type: "AC broken", Status: constants.TicketOpen, Priority: constants.PriorityMedium,
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	// оба автора сразу нарушают CHECK
	nic := "STF001"
	err = relations.CreateRaisedBy(ctx, nil, entities.TicketRaisedBy{TicketID: ticket.ID, MemberID: &member.ID, StaffID: &nic})
	assert.True(t, apperrors.IsInvalidInput(err))

	require.NoError(t, relations.CreateRaisedBy(ctx, nil, entities.TicketRaisedBy{TicketID: ticket.ID, MemberID: &member.ID}))
	raised, err := relations.GetRaisedBy(ctx, []uint64{ticket.ID})
	require.NoError(t, err)
	require.NotNil(t, raised[ticket.ID].MemberID)
	assert.Equal(t, member.ID, *raised[ticket.ID].MemberID)

	a, err := relations.InsertAssignment(ctx, nil, ticket.ID, "STF001")
	require.NoError(t, err)
	assert.Equal(t, entities.FirstAssignmentVersion, a.Version)

	_, err = relations.InsertAssignment(ctx, nil, ticket.ID, "STF002")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// версия 0 - "не назначен", против существующей строки это всегда конфликт
	_, err = relations.UpdateAssignment(ctx, nil, ticket.ID, "STF002", 0)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	a, err = relations.UpdateAssignment(ctx, nil, ticket.ID, "STF002", 1)
	require.NoError(t, err)
	assert.Equal(t, "STF002", a.StaffID)
	assert.Equal(t, uint64(2), a.Version)

	_, err = relations.UpdateAssignment(ctx, nil, ticket.ID, "STF001", 1)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = relations.UpdateAssignment(ctx, nil, ticket.ID, "NOPE01", 2)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	count, err := tickets.Count(ctx, entities.TicketFilter{Status: constants.TicketOpen, AssignedTo: "STF002"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}
