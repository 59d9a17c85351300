package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gym-admin/internal/dto"
	"gym-admin/internal/entities"
	"gym-admin/pkg/constants"
	apperrors "gym-admin/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

func newTicketService(env *testEnv) *TicketService {
	svc := NewTicketService(env.tx, env.tickets, env.relations, env.members, env.staff, env.logger).(*TicketService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func strPtr(s string) *string { return &s }

func TestTicketService_CreateByMember(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newTicketService(env)
	member := env.addMember(t, "Иван Петров")

	created, err := svc.Create(ctx, dto.CreateTicketDTO{
		Type:        "Поломка",
		Description: null.StringFrom("AC broken"),
		MemberID:    null.Int64From(int64(member.ID)),
	})
	require.NoError(t, err)

	assert.Equal(t, constants.TicketOpen, created.Status)
	assert.Equal(t, constants.PriorityMedium, created.Priority, "Приоритет по умолчанию MEDIUM")
	assert.Equal(t, dto.RaisedByMember, created.RaisedByType)
	require.NotNil(t, created.RaisedByID)
	assert.Equal(t, "1", *created.RaisedByID)
	require.NotNil(t, created.RaisedByName)
	assert.Equal(t, "Иван Петров", *created.RaisedByName)
	assert.Nil(t, created.AssignedToID)
	assert.Nil(t, created.AssignmentVersion)
	assert.Equal(t, "2024-03-01 10:00:00", created.CreatedAt)
}

func TestTicketService_CreateRequiresExactlyOneRaiser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newTicketService(env)
	member := env.addMember(t, "Мария")
	env.addStaff(t, "STF001", "Олег")

	_, err := svc.Create(ctx, dto.CreateTicketDTO{Type: "Жалоба"})
	assert.True(t, apperrors.IsInvalidInput(err), "Без автора тикет создавать нельзя")

	_, err = svc.Create(ctx, dto.CreateTicketDTO{
		Type:     "Жалоба",
		MemberID: null.Int64From(int64(member.ID)),
		StaffID:  strPtr("STF001"),
	})
	assert.True(t, apperrors.IsInvalidInput(err), "Два автора одновременно недопустимы")

	all, err := svc.GetAllWithDetails(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTicketService_CreateValidatesPriority(t *testing.T) {
	env := newTestEnv(t)
	svc := newTicketService(env)
	env.addStaff(t, "STF001", "Олег")

	_, err := svc.Create(context.Background(), dto.CreateTicketDTO{Type: "Запрос", Priority: "URGENT", StaffID: strPtr("STF001")})
	assert.True(t, apperrors.IsInvalidInput(err))

	created, err := svc.Create(context.Background(), dto.CreateTicketDTO{Type: "Запрос", Priority: "high", StaffID: strPtr("STF001")})
	require.NoError(t, err)
	assert.Equal(t, constants.PriorityHigh, created.Priority)
	assert.Equal(t, dto.RaisedByStaff, created.RaisedByType)
}

func TestTicketService_CreateUnknownRaiser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newTicketService(env)

	_, err := svc.Create(ctx, dto.CreateTicketDTO{Type: "Поломка", MemberID: null.Int64From(42)})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Create(ctx, dto.CreateTicketDTO{Type: "Поломка", StaffID: strPtr("STF404")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	all, err := env.tickets.GetAll(ctx, entities.TicketFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTicketService_CreateRollsBackWhenRaiserLinkFails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newTicketService(env)
	member := env.addMember(t, "Анна")

	boom := errors.New("сбой записи автора")
	env.store.FailNext("CreateRaisedBy", boom)

	_, err := svc.Create(ctx, dto.CreateTicketDTO{Type: "Поломка", MemberID: null.Int64From(int64(member.ID))})
	require.ErrorIs(t, err, boom)

	all, err := env.tickets.GetAll(ctx, entities.TicketFilter{})
	require.NoError(t, err)
	assert.Empty(t, all, "Тикет без автора не должен остаться в хранилище")
}

func TestTicketService_AssignScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newTicketService(env)
	for i := 0; i < 5; i++ {
		env.addMember(t, "Участник")
	}
	env.addStaff(t, "STF001", "Олег Техник")

	created, err := svc.Create(ctx, dto.CreateTicketDTO{
		Type:        "Поломка",
		Description: null.StringFrom("AC broken"),
		MemberID:    null.Int64From(5),
	})
	require.NoError(t, err)

	assigned, err := svc.Assign(ctx, created.ID, "STF001", nil)
	require.NoError(t, err)

	assert.Equal(t, constants.TicketInProgress, assigned.Status)
	require.NotNil(t, assigned.AssignedToID)
	assert.Equal(t, "STF001", *assigned.AssignedToID)
	require.NotNil(t, assigned.AssignedToName)
	assert.Equal(t, "Олег Техник", *assigned.AssignedToName)
	require.NotNil(t, assigned.AssignmentVersion)
	assert.Equal(t, uint64(1), *assigned.AssignmentVersion)
	require.NotNil(t, assigned.RaisedByID)
	assert.Equal(t, "5", *assigned.RaisedByID)

	mine, err := svc.AssignedToStaff(ctx, "STF001")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)

	raised, err := svc.RaisedByMember(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, raised, 1)
}

func TestTicketService_ReassignOverwrites(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newTicketService(env)
	env.addStaff(t, "STF001", "Олег")
	env.addStaff(t, "STF002", "Пётр")

	created, err := svc.Create(ctx, dto.CreateTicketDTO{Type: "Уборка", StaffID: strPtr("STF001")})
	require.NoError(t, err)

	_, err = svc.Assign(ctx, created.ID, "STF001", nil)
	require.NoError(t, err)
	second, err := svc.Assign(ctx, created.ID, "STF002", nil)
	require.NoError(t, err)

	require.NotNil(t, second.AssignedToID)
	assert.Equal(t, "STF002", *second.AssignedToID)
	assert.Equal(t, uint64(2), *second.AssignmentVersion, "Каждое переназначение увеличивает версию")

	first, err := svc.AssignedToStaff(ctx, "STF001")
	require.NoError(t, err)
	assert.Empty(t, first, "У тикета только одно назначение")

	raisedBy, err := svc.RaisedByStaff(ctx, "STF001")
	require.NoError(t, err)
	assert.Len(t, raisedBy, 1)
}

func TestTicketService_AssignReopensClosedTicket(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newTicketService(env)
	env.addStaff(t, "STF001", "Олег")

	created, err := svc.Create(ctx, dto.CreateTicketDTO{Type: "Поломка", StaffID: strPtr("STF001")})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, created.ID, "CLOSED")
	require.NoError(t, err)

	assigned, err := svc.Assign(ctx, created.ID, "STF001", nil)
	require.NoError(t, err)
	assert.Equal(t, constants.TicketInProgress, assigned.Status)
}

func TestTicketService_AssignVersionConflict(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newTicketService(env)
	env.addStaff(t, "STF001", "Олег")
	env.addStaff(t, "STF002", "Пётр")

	created, err := svc.Create(ctx, dto.CreateTicketDTO{Type: "Поломка", StaffID: strPtr("STF001")})
	require.NoError(t, err)

	stale := uint64(3)
	_, err = svc.Assign(ctx, created.ID, "STF001", &stale)
	assert.ErrorIs(t, err, apperrors.ErrConflict, "Ненулевая версия для неназначенного тикета")

	zero := uint64(0)
	first, err := svc.Assign(ctx, created.ID, "STF001", &zero)
	require.NoError(t, err)
	require.NotNil(t, first.AssignmentVersion)
	assert.Equal(t, uint64(1), *first.AssignmentVersion)

	// второй клиент тоже видел тикет неназначенным
	_, err = svc.Assign(ctx, created.ID, "STF002", &zero)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	details, err := svc.GetDetails(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "STF001", *details.AssignedToID, "Первое назначение не перезаписано")

	seen := *first.AssignmentVersion
	second, err := svc.Assign(ctx, created.ID, "STF002", &seen)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), *second.AssignmentVersion)

	_, err = svc.Assign(ctx, created.ID, "STF001", &seen)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	details, err = svc.GetDetails(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "STF002", *details.AssignedToID)
}

func TestTicketService_AssignNotFound(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newTicketService(env)
	env.addStaff(t, "STF001", "Олег")

	_, err := svc.Assign(ctx, 99, "STF001", nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	created, err := svc.Create(ctx, dto.CreateTicketDTO{Type: "Поломка", StaffID: strPtr("STF001")})
	require.NoError(t, err)
	_, err = svc.Assign(ctx, created.ID, "STF404", nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Assign(ctx, created.ID, "  ", nil)
	assert.True(t, apperrors.IsInvalidInput(err))

	details, err := svc.GetDetails(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TicketOpen, details.Status, "Неудачное назначение не меняет статус")
}

func TestTicketService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newTicketService(env)
	env.addStaff(t, "STF001", "Олег")

	created, err := svc.Create(ctx, dto.CreateTicketDTO{Type: "Поломка", StaffID: strPtr("STF001")})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, created.ID, "DONE")
	assert.True(t, apperrors.IsInvalidInput(err), "Неизвестный статус - ошибка валидации")

	_, err = svc.UpdateStatus(ctx, 77, "RESOLVED")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	svc.now = func() time.Time { return fixedNow.Add(time.Hour) }
	updated, err := svc.UpdateStatus(ctx, created.ID, "resolved")
	require.NoError(t, err)
	assert.Equal(t, constants.TicketResolved, updated.Status)
	assert.Equal(t, "2024-03-01 11:00:00", updated.UpdatedAt)
	assert.Equal(t, "2024-03-01 10:00:00", updated.CreatedAt)
}

func TestTicketService_FiltersAndCounts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newTicketService(env)
	env.addStaff(t, "STF001", "Олег")
	env.addStaff(t, "STF002", "Пётр")
	member := env.addMember(t, "Анна")

	t1, err := svc.Create(ctx, dto.CreateTicketDTO{Type: "A", Priority: "HIGH", StaffID: strPtr("STF001")})
	require.NoError(t, err)
	t2, err := svc.Create(ctx, dto.CreateTicketDTO{Type: "B", MemberID: null.Int64From(int64(member.ID))})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateTicketDTO{Type: "C", Priority: "LOW", MemberID: null.Int64From(int64(member.ID))})
	require.NoError(t, err)

	_, err = svc.Assign(ctx, t1.ID, "STF002", nil)
	require.NoError(t, err)
	_, err = svc.Assign(ctx, t2.ID, "STF002", nil)
	require.NoError(t, err)

	open, err := svc.CountByStatus(ctx, "OPEN")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), open)

	inProgress, err := svc.CountByStatusForStaff(ctx, "IN_PROGRESS", "STF002")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), inProgress)

	none, err := svc.CountByStatusForStaff(ctx, "IN_PROGRESS", "STF001")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), none)

	high, err := svc.ByPriority(ctx, "HIGH")
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, t1.ID, high[0].ID)

	byStatus, err := svc.ByStatus(ctx, "in_progress")
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byMember, err := svc.RaisedByMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Len(t, byMember, 2)

	_, err = svc.ByStatus(ctx, "WAITING")
	assert.True(t, apperrors.IsInvalidInput(err))
	_, err = svc.ByPriority(ctx, "CRITICAL")
	assert.True(t, apperrors.IsInvalidInput(err))
	_, err = svc.CountByStatus(ctx, "")
	assert.True(t, apperrors.IsInvalidInput(err))
	_, err = svc.CountByStatusForStaff(ctx, "OPEN", "")
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestTicketService_GetDetailsNotFound(t *testing.T) {
	svc := newTicketService(newTestEnv(t))
	_, err := svc.GetDetails(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
