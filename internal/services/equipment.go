package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gym-admin/internal/dto"
	"gym-admin/internal/entities"
	"gym-admin/internal/repositories"
	"gym-admin/pkg/constants"
	"gym-admin/pkg/utils"

	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetAll(ctx context.Context) ([]dto.EquipmentDTO, error)
	GetAllIncludingDeleted(ctx context.Context) ([]dto.EquipmentDTO, error)
	GetByID(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	SoftDelete(ctx context.Context, id uint64) error
	SearchByIDOrName(ctx context.Context, token string) ([]dto.EquipmentDTO, error)
	UpdateStatus(ctx context.Context, id uint64, rawStatus string) (*dto.EquipmentDTO, error)
	UpdateLastMaintenanceDate(ctx context.Context, id uint64, rawDate string) (*dto.EquipmentDTO, error)
	FilterByStatus(ctx context.Context, rawStatus string) ([]dto.EquipmentDTO, error)
}

type EquipmentService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	logger              *zap.Logger
}

func NewEquipmentService(equipmentRepository repositories.EquipmentRepositoryInterface, logger *zap.Logger) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepository: equipmentRepository,
		logger:              logger,
	}
}

func equipmentEntityToDTO(e *entities.Equipment) dto.EquipmentDTO {
	return dto.EquipmentDTO{
		ID:                  e.ID,
		Name:                e.Name,
		Category:            e.Category,
		PurchaseDate:        utils.FormatDatePtr(e.PurchaseDate),
		LastMaintenanceDate: utils.FormatDatePtr(e.LastMaintenanceDate),
		Status:              e.Status,
		WarrantyExpiry:      utils.FormatDatePtr(e.WarrantyExpiry),
		Deleted:             e.Deleted,
	}
}

func equipmentEntitiesToDTOs(list []entities.Equipment) []dto.EquipmentDTO {
	result := make([]dto.EquipmentDTO, 0, len(list))
	for i := range list {
		result = append(result, equipmentEntityToDTO(&list[i]))
	}
	return result
}

func (s *EquipmentService) list(ctx context.Context, filter entities.EquipmentFilter) ([]dto.EquipmentDTO, error) {
	list, err := s.equipmentRepository.GetEquipments(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при получении списка оборудования", zap.Error(err))
		return nil, err
	}
	return equipmentEntitiesToDTOs(list), nil
}

func (s *EquipmentService) GetAll(ctx context.Context) ([]dto.EquipmentDTO, error) {
	return s.list(ctx, entities.EquipmentFilter{})
}

func (s *EquipmentService) GetAllIncludingDeleted(ctx context.Context) ([]dto.EquipmentDTO, error) {
	return s.list(ctx, entities.EquipmentFilter{IncludeDeleted: true})
}

func (s *EquipmentService) GetByID(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	e, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	result := equipmentEntityToDTO(e)
	return &result, nil
}

// parseOptionalDate - пустая строка или nil означает "не задано".
func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *EquipmentService) Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	status := constants.EquipmentAvailable
	if strings.TrimSpace(payload.Status) != "" {
		parsed, err := constants.ParseEquipmentStatus(payload.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	purchaseDate, err := parseOptionalDate(payload.PurchaseDate)
	if err != nil {
		return nil, err
	}
	lastMaintenance, err := parseOptionalDate(payload.LastMaintenanceDate)
	if err != nil {
		return nil, err
	}
	warranty, err := parseOptionalDate(payload.WarrantyExpiry)
	if err != nil {
		return nil, err
	}

	created, err := s.equipmentRepository.CreateEquipment(ctx, entities.Equipment{
		Name:                strings.TrimSpace(payload.Name),
		Category:            strings.TrimSpace(payload.Category),
		PurchaseDate:        purchaseDate,
		LastMaintenanceDate: lastMaintenance,
		Status:              status,
		WarrantyExpiry:      warranty,
	})
	if err != nil {
		s.logger.Error("Ошибка при создании оборудования", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Оборудование создано", zap.Uint64("id", created.ID), zap.String("name", created.Name))

	result := equipmentEntityToDTO(created)
	return &result, nil
}

func (s *EquipmentService) SoftDelete(ctx context.Context, id uint64) error {
	if err := s.equipmentRepository.SoftDeleteEquipment(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Оборудование помечено удалённым", zap.Uint64("id", id))
	return nil
}

// SearchByIDOrName: число ищется как id, иначе подстрока в названии или категории.
// Удалённое оборудование не возвращается в обоих случаях.
func (s *EquipmentService) SearchByIDOrName(ctx context.Context, token string) ([]dto.EquipmentDTO, error) {
	token = strings.TrimSpace(token)
	if id, err := strconv.ParseUint(token, 10, 64); err == nil {
		return s.list(ctx, entities.EquipmentFilter{ID: &id})
	}
	return s.list(ctx, entities.EquipmentFilter{Search: token})
}

func (s *EquipmentService) UpdateStatus(ctx context.Context, id uint64, rawStatus string) (*dto.EquipmentDTO, error) {
	status, err := constants.ParseEquipmentStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	updated, err := s.equipmentRepository.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	result := equipmentEntityToDTO(updated)
	return &result, nil
}

func (s *EquipmentService) UpdateLastMaintenanceDate(ctx context.Context, id uint64, rawDate string) (*dto.EquipmentDTO, error) {
	date, err := utils.ParseDate(rawDate)
	if err != nil {
		return nil, err
	}
	updated, err := s.equipmentRepository.UpdateLastMaintenanceDate(ctx, id, date)
	if err != nil {
		return nil, err
	}
	result := equipmentEntityToDTO(updated)
	return &result, nil
}

func (s *EquipmentService) FilterByStatus(ctx context.Context, rawStatus string) ([]dto.EquipmentDTO, error) {
	status, err := constants.ParseEquipmentStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, entities.EquipmentFilter{Status: status})
}
