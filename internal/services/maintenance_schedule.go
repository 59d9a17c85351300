package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gym-admin/internal/dto"
	"gym-admin/internal/entities"
	"gym-admin/internal/repositories"
	"gym-admin/pkg/constants"
	apperrors "gym-admin/pkg/errors"
	"gym-admin/pkg/utils"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

type MaintenanceScheduleServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateMaintenanceScheduleDTO) (*dto.MaintenanceScheduleDTO, error)
	GetAll(ctx context.Context) ([]dto.MaintenanceScheduleDTO, error)
	GetByID(ctx context.Context, id uint64) (*dto.MaintenanceScheduleDTO, error)
	Delete(ctx context.Context, id uint64) error
	Search(ctx context.Context, text string) ([]dto.MaintenanceScheduleDTO, error)
	UpdateDate(ctx context.Context, id uint64, rawDate string) (*dto.MaintenanceScheduleDTO, error)
	UpdateStatus(ctx context.Context, id uint64, rawStatus string) (*dto.MaintenanceScheduleDTO, error)
	UpdateCost(ctx context.Context, id uint64, rawCost string) (*dto.MaintenanceScheduleDTO, error)
	UpdateTechnician(ctx context.Context, id uint64, technician string) (*dto.MaintenanceScheduleDTO, error)
	UpdateDescription(ctx context.Context, id uint64, description string) (*dto.MaintenanceScheduleDTO, error)
	FilterByStatus(ctx context.Context, rawStatus string) ([]dto.MaintenanceScheduleDTO, error)
	FilterByEquipmentID(ctx context.Context, equipmentID uint64) ([]dto.MaintenanceScheduleDTO, error)
	FilterByType(ctx context.Context, maintenanceType string) ([]dto.MaintenanceScheduleDTO, error)
}

type MaintenanceScheduleService struct {
	scheduleRepository  repositories.MaintenanceScheduleRepositoryInterface
	equipmentRepository repositories.EquipmentRepositoryInterface
	logger              *zap.Logger
}

func NewMaintenanceScheduleService(
	scheduleRepository repositories.MaintenanceScheduleRepositoryInterface,
	equipmentRepository repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) MaintenanceScheduleServiceInterface {
	return &MaintenanceScheduleService{
		scheduleRepository:  scheduleRepository,
		equipmentRepository: equipmentRepository,
		logger:              logger,
	}
}

func scheduleEntityToDTO(m *entities.MaintenanceSchedule) dto.MaintenanceScheduleDTO {
	return dto.MaintenanceScheduleDTO{
		ID:              m.ID,
		EquipmentID:     m.EquipmentID,
		MaintenanceType: m.MaintenanceType,
		MaintenanceDate: m.MaintenanceDate.Format(utils.DateLayout),
		Description:     null.StringFromPtr(m.Description),
		Status:          m.Status,
		Technician:      null.StringFromPtr(m.Technician),
		Cost:            null.Float64FromPtr(m.Cost),
	}
}

func scheduleEntitiesToDTOs(list []entities.MaintenanceSchedule) []dto.MaintenanceScheduleDTO {
	result := make([]dto.MaintenanceScheduleDTO, 0, len(list))
	for i := range list {
		result = append(result, scheduleEntityToDTO(&list[i]))
	}
	return result
}

func (s *MaintenanceScheduleService) Create(ctx context.Context, payload dto.CreateMaintenanceScheduleDTO) (*dto.MaintenanceScheduleDTO, error) {
	equipment, err := s.equipmentRepository.FindEquipment(ctx, payload.EquipmentID)
	if err != nil {
		return nil, err
	}
	if equipment.Deleted {
		return nil, fmt.Errorf("оборудование %d удалено: %w", payload.EquipmentID, apperrors.ErrNotFound)
	}

	date, err := utils.ParseDate(payload.MaintenanceDate)
	if err != nil {
		return nil, err
	}

	status := constants.MaintenanceScheduled
	if strings.TrimSpace(payload.Status) != "" {
		if status, err = constants.ParseMaintenanceStatus(payload.Status); err != nil {
			return nil, err
		}
	}

	if payload.Cost.Valid && (payload.Cost.Float64 < 0 || math.IsNaN(payload.Cost.Float64)) {
		return nil, apperrors.NewInvalidInputError("Стоимость обслуживания не может быть отрицательной")
	}

	created, err := s.scheduleRepository.Create(ctx, entities.MaintenanceSchedule{
		EquipmentID:     payload.EquipmentID,
		MaintenanceType: strings.TrimSpace(payload.MaintenanceType),
		MaintenanceDate: date,
		Description:     payload.Description.Ptr(),
		Status:          status,
		Technician:      payload.Technician.Ptr(),
		Cost:            payload.Cost.Ptr(),
	})
	if err != nil {
		s.logger.Error("Ошибка при создании графика обслуживания", zap.Uint64("equipment_id", payload.EquipmentID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("График обслуживания создан", zap.Uint64("id", created.ID), zap.Uint64("equipment_id", created.EquipmentID))

	result := scheduleEntityToDTO(created)
	return &result, nil
}

func (s *MaintenanceScheduleService) list(ctx context.Context, filter entities.MaintenanceScheduleFilter) ([]dto.MaintenanceScheduleDTO, error) {
	list, err := s.scheduleRepository.GetAll(ctx, nil, filter)
	if err != nil {
		s.logger.Error("Ошибка при получении графиков обслуживания", zap.Error(err))
		return nil, err
	}
	return scheduleEntitiesToDTOs(list), nil
}

func (s *MaintenanceScheduleService) GetAll(ctx context.Context) ([]dto.MaintenanceScheduleDTO, error) {
	return s.list(ctx, entities.MaintenanceScheduleFilter{})
}

func (s *MaintenanceScheduleService) GetByID(ctx context.Context, id uint64) (*dto.MaintenanceScheduleDTO, error) {
	m, err := s.scheduleRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := scheduleEntityToDTO(m)
	return &result, nil
}

func (s *MaintenanceScheduleService) Delete(ctx context.Context, id uint64) error {
	if err := s.scheduleRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("График обслуживания удалён", zap.Uint64("id", id))
	return nil
}

func (s *MaintenanceScheduleService) Search(ctx context.Context, text string) ([]dto.MaintenanceScheduleDTO, error) {
	return s.list(ctx, entities.MaintenanceScheduleFilter{TypeContains: strings.TrimSpace(text)})
}

func (s *MaintenanceScheduleService) FilterByType(ctx context.Context, maintenanceType string) ([]dto.MaintenanceScheduleDTO, error) {
	return s.Search(ctx, maintenanceType)
}

func (s *MaintenanceScheduleService) FilterByStatus(ctx context.Context, rawStatus string) ([]dto.MaintenanceScheduleDTO, error) {
	status, err := constants.ParseMaintenanceStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, entities.MaintenanceScheduleFilter{Status: status})
}

func (s *MaintenanceScheduleService) FilterByEquipmentID(ctx context.Context, equipmentID uint64) ([]dto.MaintenanceScheduleDTO, error) {
	return s.list(ctx, entities.MaintenanceScheduleFilter{EquipmentID: &equipmentID})
}

func (s *MaintenanceScheduleService) update(ctx context.Context, id uint64, patch entities.MaintenanceSchedulePatch) (*dto.MaintenanceScheduleDTO, error) {
	updated, err := s.scheduleRepository.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	result := scheduleEntityToDTO(updated)
	return &result, nil
}

func (s *MaintenanceScheduleService) UpdateDate(ctx context.Context, id uint64, rawDate string) (*dto.MaintenanceScheduleDTO, error) {
	date, err := utils.ParseDate(rawDate)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, entities.MaintenanceSchedulePatch{MaintenanceDate: &date})
}

func (s *MaintenanceScheduleService) UpdateStatus(ctx context.Context, id uint64, rawStatus string) (*dto.MaintenanceScheduleDTO, error) {
	status, err := constants.ParseMaintenanceStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, entities.MaintenanceSchedulePatch{Status: &status})
}

func (s *MaintenanceScheduleService) UpdateCost(ctx context.Context, id uint64, rawCost string) (*dto.MaintenanceScheduleDTO, error) {
	cost, err := strconv.ParseFloat(strings.TrimSpace(rawCost), 64)
	if err != nil || cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return nil, apperrors.NewInvalidInputError("Неверное значение стоимости '%s'", rawCost)
	}
	return s.update(ctx, id, entities.MaintenanceSchedulePatch{SetCost: true, Cost: &cost})
}

func (s *MaintenanceScheduleService) UpdateTechnician(ctx context.Context, id uint64, technician string) (*dto.MaintenanceScheduleDTO, error) {
	return s.update(ctx, id, entities.MaintenanceSchedulePatch{Technician: &technician})
}

func (s *MaintenanceScheduleService) UpdateDescription(ctx context.Context, id uint64, description string) (*dto.MaintenanceScheduleDTO, error) {
	return s.update(ctx, id, entities.MaintenanceSchedulePatch{Description: &description})
}
