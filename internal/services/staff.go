package services

import (
	"context"
	"strings"

	"gym-admin/internal/dto"
	"gym-admin/internal/entities"
	"gym-admin/internal/repositories"
	"gym-admin/pkg/constants"
	"gym-admin/pkg/utils"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type StaffServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateStaffDTO) (*dto.StaffDTO, error)
	GetByID(ctx context.Context, nic string) (*dto.StaffDTO, error)
	GetAll(ctx context.Context) ([]dto.StaffDTO, error)
}

type StaffService struct {
	staffRepository repositories.StaffRepositoryInterface
	logger          *zap.Logger
}

func NewStaffService(staffRepository repositories.StaffRepositoryInterface, logger *zap.Logger) StaffServiceInterface {
	return &StaffService{staffRepository: staffRepository, logger: logger}
}

func staffEntityToDTO(s *entities.Staff) dto.StaffDTO {
	return dto.StaffDTO{
		NIC:       s.NIC,
		Name:      s.Name,
		Role:      s.Role,
		Phone:     null.StringFromPtr(s.Phone),
		StartDate: utils.FormatDatePtr(s.StartDate),
		Shift:     null.StringFromPtr(s.Shift),
	}
}

func (s *StaffService) Create(ctx context.Context, payload dto.CreateStaffDTO) (*dto.StaffDTO, error) {
	role, err := constants.ParseStaffRole(payload.Role)
	if err != nil {
		return nil, err
	}
	startDate, err := parseOptionalDate(payload.StartDate.Ptr())
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, err
	}

	created, err := s.staffRepository.Create(ctx, entities.Staff{
		NIC:          strings.TrimSpace(payload.NIC),
		Name:         strings.TrimSpace(payload.Name),
		Role:         role,
		Phone:        payload.Phone.Ptr(),
		StartDate:    startDate,
		Shift:        payload.Shift.Ptr(),
		PasswordHash: string(hash),
	})
	if err != nil {
		s.logger.Error("Ошибка при создании сотрудника", zap.String("nic", payload.NIC), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Сотрудник создан", zap.String("nic", created.NIC), zap.String("role", created.Role))
	result := staffEntityToDTO(created)
	return &result, nil
}

func (s *StaffService) GetByID(ctx context.Context, nic string) (*dto.StaffDTO, error) {
	found, err := s.staffRepository.FindByID(ctx, nil, strings.TrimSpace(nic))
	if err != nil {
		return nil, err
	}
	result := staffEntityToDTO(found)
	return &result, nil
}

func (s *StaffService) GetAll(ctx context.Context) ([]dto.StaffDTO, error) {
	list, err := s.staffRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.StaffDTO, 0, len(list))
	for i := range list {
		result = append(result, staffEntityToDTO(&list[i]))
	}
	return result, nil
}
