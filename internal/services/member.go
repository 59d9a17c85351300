package services

import (
	"context"
	"strings"

	"gym-admin/internal/dto"
	"gym-admin/internal/entities"
	"gym-admin/internal/repositories"
	"gym-admin/pkg/utils"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

type MemberServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateMemberDTO) (*dto.MemberDTO, error)
	GetByID(ctx context.Context, id uint64) (*dto.MemberDTO, error)
	GetAll(ctx context.Context) ([]dto.MemberDTO, error)
}

type MemberService struct {
	memberRepository repositories.MemberRepositoryInterface
	logger           *zap.Logger
}

func NewMemberService(memberRepository repositories.MemberRepositoryInterface, logger *zap.Logger) MemberServiceInterface {
	return &MemberService{memberRepository: memberRepository, logger: logger}
}

func memberEntityToDTO(m *entities.Member) dto.MemberDTO {
	return dto.MemberDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     null.StringFromPtr(m.Email),
		Phone:     null.StringFromPtr(m.Phone),
		CreatedAt: m.CreatedAt.Format(utils.DateTimeLayout),
	}
}

func (s *MemberService) Create(ctx context.Context, payload dto.CreateMemberDTO) (*dto.MemberDTO, error) {
	created, err := s.memberRepository.Create(ctx, entities.Member{
		Name:  strings.TrimSpace(payload.Name),
		Email: payload.Email.Ptr(),
		Phone: payload.Phone.Ptr(),
	})
	if err != nil {
		s.logger.Error("Ошибка при регистрации участника", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Участник зарегистрирован", zap.Uint64("member_id", created.ID))
	result := memberEntityToDTO(created)
	return &result, nil
}

func (s *MemberService) GetByID(ctx context.Context, id uint64) (*dto.MemberDTO, error) {
	m, err := s.memberRepository.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	result := memberEntityToDTO(m)
	return &result, nil
}

func (s *MemberService) GetAll(ctx context.Context) ([]dto.MemberDTO, error) {
	list, err := s.memberRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.MemberDTO, 0, len(list))
	for i := range list {
		result = append(result, memberEntityToDTO(&list[i]))
	}
	return result, nil
}
