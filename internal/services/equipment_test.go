package services

import (
	"context"
	"testing"

	"gym-admin/internal/dto"
	"gym-admin/pkg/constants"
	apperrors "gym-admin/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEquipmentService_CreateDefaults(t *testing.T) {
	svc := NewEquipmentService(newTestEnv(t).equipment, zap.NewNop())

	created, err := svc.Create(context.Background(), dto.CreateEquipmentDTO{
		Name:         "  Беговая дорожка  ",
		Category:     "Кардио",
		PurchaseDate: strPtr("2023-05-10"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Беговая дорожка", created.Name)
	assert.Equal(t, constants.EquipmentAvailable, created.Status)
	require.NotNil(t, created.PurchaseDate)
	assert.Equal(t, "2023-05-10", *created.PurchaseDate)
	assert.Nil(t, created.WarrantyExpiry)
	assert.False(t, created.Deleted)
}

func TestEquipmentService_CreateRejectsBadInput(t *testing.T) {
	svc := NewEquipmentService(newTestEnv(t).equipment, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateEquipmentDTO{Name: "Штанга", Status: "BROKEN"})
	assert.True(t, apperrors.IsInvalidInput(err))

	_, err = svc.Create(ctx, dto.CreateEquipmentDTO{Name: "Штанга", WarrantyExpiry: strPtr("10.05.2023")})
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestEquipmentService_SearchByIDOrName(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewEquipmentService(env.equipment, zap.NewNop())

	treadmill := env.addEquipment(t, "Treadmill X3", "cardio")
	env.addEquipment(t, "Rowing machine", "Treadmills and rowers")
	bike := env.addEquipment(t, "Bike", "cardio")
	gone := env.addEquipment(t, "Old treadmill", "cardio")
	require.NoError(t, svc.SoftDelete(ctx, gone.ID))

	byName, err := svc.SearchByIDOrName(ctx, "tread")
	require.NoError(t, err)
	require.Len(t, byName, 2, "Поиск по названию и категории без учёта регистра, без удалённых")
	assert.Equal(t, treadmill.ID, byName[0].ID)

	byID, err := svc.SearchByIDOrName(ctx, "3")
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, bike.ID, byID[0].ID)

	missing, err := svc.SearchByIDOrName(ctx, "42")
	require.NoError(t, err)
	assert.Empty(t, missing)

	deleted, err := svc.SearchByIDOrName(ctx, "4")
	require.NoError(t, err)
	assert.Empty(t, deleted, "Удалённое оборудование не ищется по id")
}

func TestEquipmentService_SoftDeleteVisibility(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewEquipmentService(env.equipment, zap.NewNop())

	keep := env.addEquipment(t, "Гантели", "Свободные веса")
	drop := env.addEquipment(t, "Скамья", "Силовые")
	require.NoError(t, svc.SoftDelete(ctx, drop.ID))

	active, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, keep.ID, active[0].ID)

	all, err := svc.GetAllIncludingDeleted(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[1].Deleted)

	// по id удалённая запись доступна
	found, err := svc.GetByID(ctx, drop.ID)
	require.NoError(t, err)
	assert.True(t, found.Deleted)

	assert.ErrorIs(t, svc.SoftDelete(ctx, 100), apperrors.ErrNotFound)
}

func TestEquipmentService_UpdateStatusAndMaintenance(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewEquipmentService(env.equipment, zap.NewNop())
	eq := env.addEquipment(t, "Велотренажёр", "Кардио")

	updated, err := svc.UpdateStatus(ctx, eq.ID, "under_maintenance")
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentUnderMaintenance, updated.Status)

	_, err = svc.UpdateStatus(ctx, eq.ID, "BROKEN")
	assert.True(t, apperrors.IsInvalidInput(err))

	_, err = svc.UpdateStatus(ctx, 999, "AVAILABLE")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	maintained, err := svc.UpdateLastMaintenanceDate(ctx, eq.ID, "2024-02-29")
	require.NoError(t, err)
	require.NotNil(t, maintained.LastMaintenanceDate)
	assert.Equal(t, "2024-02-29", *maintained.LastMaintenanceDate)

	_, err = svc.UpdateLastMaintenanceDate(ctx, eq.ID, "2023-02-29")
	assert.True(t, apperrors.IsInvalidInput(err))

	filtered, err := svc.FilterByStatus(ctx, "UNDER_MAINTENANCE")
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	_, err = svc.FilterByStatus(ctx, "nope")
	assert.True(t, apperrors.IsInvalidInput(err))
}
