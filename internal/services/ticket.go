package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gym-admin/internal/dto"
	"gym-admin/internal/entities"
	"gym-admin/internal/repositories"
	"gym-admin/pkg/constants"
	apperrors "gym-admin/pkg/errors"
	"gym-admin/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TicketServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateTicketDTO) (*dto.TicketResponseDTO, error)
	Assign(ctx context.Context, ticketID uint64, staffID string, expectedVersion *uint64) (*dto.TicketResponseDTO, error)
	UpdateStatus(ctx context.Context, ticketID uint64, rawStatus string) (*dto.TicketResponseDTO, error)
	GetDetails(ctx context.Context, ticketID uint64) (*dto.TicketResponseDTO, error)
	GetAllWithDetails(ctx context.Context) ([]dto.TicketResponseDTO, error)
	RaisedByMember(ctx context.Context, memberID uint64) ([]dto.TicketResponseDTO, error)
	RaisedByStaff(ctx context.Context, staffID string) ([]dto.TicketResponseDTO, error)
	AssignedToStaff(ctx context.Context, staffID string) ([]dto.TicketResponseDTO, error)
	ByStatus(ctx context.Context, rawStatus string) ([]dto.TicketResponseDTO, error)
	ByPriority(ctx context.Context, rawPriority string) ([]dto.TicketResponseDTO, error)
	CountByStatus(ctx context.Context, rawStatus string) (uint64, error)
	CountByStatusForStaff(ctx context.Context, rawStatus, staffID string) (uint64, error)
}

type TicketService struct {
	txManager          repositories.TxManagerInterface
	ticketRepository   repositories.TicketRepositoryInterface
	relationRepository repositories.TicketRelationRepositoryInterface
	memberRepository   repositories.MemberRepositoryInterface
	staffRepository    repositories.StaffRepositoryInterface
	logger             *zap.Logger
	now                func() time.Time
}

func NewTicketService(
	txManager repositories.TxManagerInterface,
	ticketRepository repositories.TicketRepositoryInterface,
	relationRepository repositories.TicketRelationRepositoryInterface,
	memberRepository repositories.MemberRepositoryInterface,
	staffRepository repositories.StaffRepositoryInterface,
	logger *zap.Logger,
) TicketServiceInterface {
	return &TicketService{
		txManager:          txManager,
		ticketRepository:   ticketRepository,
		relationRepository: relationRepository,
		memberRepository:   memberRepository,
		staffRepository:    staffRepository,
		logger:             logger,
		now:                time.Now,
	}
}

// Create открывает тикет от имени участника или сотрудника (ровно одного из них).
// Статус всегда OPEN, приоритет по умолчанию MEDIUM.
func (s *TicketService) Create(ctx context.Context, payload dto.CreateTicketDTO) (*dto.TicketResponseDTO, error) {
	var staffID string
	if payload.StaffID != nil {
		staffID = strings.TrimSpace(*payload.StaffID)
	}
	hasMember := payload.MemberID.Valid
	hasStaff := staffID != ""
	if hasMember == hasStaff {
		return nil, apperrors.NewInvalidInputError("Укажите ровно одного автора тикета: memberId или staffId")
	}
	if hasMember && payload.MemberID.Int64 <= 0 {
		return nil, apperrors.NewInvalidInputError("Неверный memberId: %d", payload.MemberID.Int64)
	}

	priority := constants.PriorityMedium
	if strings.TrimSpace(payload.Priority) != "" {
		parsed, err := constants.ParseTicketPriority(payload.Priority)
		if err != nil {
			return nil, err
		}
		priority = parsed
	}

	ticketType := strings.TrimSpace(payload.Type)
	if ticketType == "" {
		return nil, apperrors.NewInvalidInputError("Тип тикета обязателен")
	}

	raisedBy := entities.TicketRaisedBy{}
	if hasMember {
		memberID := uint64(payload.MemberID.Int64)
		raisedBy.MemberID = &memberID
	} else {
		raisedBy.StaffID = &staffID
	}

	now := s.now()
	var created *entities.Ticket

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if raisedBy.MemberID != nil {
			if _, err := s.memberRepository.FindByID(ctx, tx, *raisedBy.MemberID); err != nil {
				return fmt.Errorf("участник %d: %w", *raisedBy.MemberID, err)
			}
		} else {
			if _, err := s.staffRepository.FindByID(ctx, tx, staffID); err != nil {
				return fmt.Errorf("сотрудник %s: %w", staffID, err)
			}
		}

		ticket, err := s.ticketRepository.Create(ctx, tx, entities.Ticket{
			Type:        ticketType,
			Description: payload.Description.Ptr(),
			Status:      constants.TicketOpen,
			Priority:    priority,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}

		raisedBy.TicketID = ticket.ID
		if err := s.relationRepository.CreateRaisedBy(ctx, tx, raisedBy); err != nil {
			return err
		}
		created = ticket
		return nil
	})
	if err != nil {
		s.logger.Error("Ошибка при создании тикета", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Тикет создан", zap.Uint64("ticket_id", created.ID), zap.String("priority", created.Priority))
	return s.GetDetails(ctx, created.ID)
}

// Assign назначает (или переназначает) тикет сотруднику и переводит его в IN_PROGRESS
// независимо от текущего статуса. expectedVersion - версия назначения, которую видел клиент
// (0 - тикет был не назначен); при расхождении ErrConflict.
func (s *TicketService) Assign(ctx context.Context, ticketID uint64, staffID string, expectedVersion *uint64) (*dto.TicketResponseDTO, error) {
	staffID = strings.TrimSpace(staffID)
	if staffID == "" {
		return nil, apperrors.NewInvalidInputError("Параметр staffId обязателен")
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.ticketRepository.FindByID(ctx, tx, ticketID); err != nil {
			return fmt.Errorf("тикет %d: %w", ticketID, err)
		}
		if _, err := s.staffRepository.FindByID(ctx, tx, staffID); err != nil {
			return fmt.Errorf("сотрудник %s: %w", staffID, err)
		}

		current, err := s.relationRepository.FindAssignment(ctx, tx, ticketID)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			if expectedVersion != nil && *expectedVersion != 0 {
				return fmt.Errorf("тикет %d ещё не назначен: %w", ticketID, apperrors.ErrConflict)
			}
			if _, err := s.relationRepository.InsertAssignment(ctx, tx, ticketID, staffID); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if expectedVersion != nil && *expectedVersion != current.Version {
				return fmt.Errorf("назначение тикета %d изменено другим запросом: %w", ticketID, apperrors.ErrConflict)
			}
			if _, err := s.relationRepository.UpdateAssignment(ctx, tx, ticketID, staffID, current.Version); err != nil {
				return err
			}
		}

		_, err = s.ticketRepository.UpdateStatus(ctx, tx, ticketID, constants.TicketInProgress, s.now())
		return err
	})
	if err != nil {
		s.logger.Error("Ошибка при назначении тикета", zap.Uint64("ticket_id", ticketID), zap.String("staff_id", staffID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Тикет назначен", zap.Uint64("ticket_id", ticketID), zap.String("staff_id", staffID))
	return s.GetDetails(ctx, ticketID)
}

func (s *TicketService) UpdateStatus(ctx context.Context, ticketID uint64, rawStatus string) (*dto.TicketResponseDTO, error) {
	status, err := constants.ParseTicketStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		_, err := s.ticketRepository.UpdateStatus(ctx, tx, ticketID, status, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetDetails(ctx, ticketID)
}

func (s *TicketService) GetDetails(ctx context.Context, ticketID uint64) (*dto.TicketResponseDTO, error) {
	ticket, err := s.ticketRepository.FindByID(ctx, nil, ticketID)
	if err != nil {
		return nil, err
	}
	details, err := s.buildDetails(ctx, []entities.Ticket{*ticket})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *TicketService) GetAllWithDetails(ctx context.Context) ([]dto.TicketResponseDTO, error) {
	return s.listWithDetails(ctx, entities.TicketFilter{})
}

func (s *TicketService) RaisedByMember(ctx context.Context, memberID uint64) ([]dto.TicketResponseDTO, error) {
	return s.listWithDetails(ctx, entities.TicketFilter{RaisedByMember: &memberID})
}

func (s *TicketService) RaisedByStaff(ctx context.Context, staffID string) ([]dto.TicketResponseDTO, error) {
	return s.listWithDetails(ctx, entities.TicketFilter{RaisedByStaff: strings.TrimSpace(staffID)})
}

func (s *TicketService) AssignedToStaff(ctx context.Context, staffID string) ([]dto.TicketResponseDTO, error) {
	return s.listWithDetails(ctx, entities.TicketFilter{AssignedTo: strings.TrimSpace(staffID)})
}

func (s *TicketService) ByStatus(ctx context.Context, rawStatus string) ([]dto.TicketResponseDTO, error) {
	status, err := constants.ParseTicketStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return s.listWithDetails(ctx, entities.TicketFilter{Status: status})
}

func (s *TicketService) ByPriority(ctx context.Context, rawPriority string) ([]dto.TicketResponseDTO, error) {
	priority, err := constants.ParseTicketPriority(rawPriority)
	if err != nil {
		return nil, err
	}
	return s.listWithDetails(ctx, entities.TicketFilter{Priority: priority})
}

func (s *TicketService) CountByStatus(ctx context.Context, rawStatus string) (uint64, error) {
	status, err := constants.ParseTicketStatus(rawStatus)
	if err != nil {
		return 0, err
	}
	return s.ticketRepository.Count(ctx, entities.TicketFilter{Status: status})
}

func (s *TicketService) CountByStatusForStaff(ctx context.Context, rawStatus, staffID string) (uint64, error) {
	status, err := constants.ParseTicketStatus(rawStatus)
	if err != nil {
		return 0, err
	}
	staffID = strings.TrimSpace(staffID)
	if staffID == "" {
		return 0, apperrors.NewInvalidInputError("Параметр staffId обязателен")
	}
	return s.ticketRepository.Count(ctx, entities.TicketFilter{Status: status, AssignedTo: staffID})
}

func (s *TicketService) listWithDetails(ctx context.Context, filter entities.TicketFilter) ([]dto.TicketResponseDTO, error) {
	tickets, err := s.ticketRepository.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при получении тикетов", zap.Error(err))
		return nil, err
	}
	return s.buildDetails(ctx, tickets)
}

// buildDetails дополняет тикеты исполнителем и автором. Связи и люди грузятся пачкой.
func (s *TicketService) buildDetails(ctx context.Context, tickets []entities.Ticket) ([]dto.TicketResponseDTO, error) {
	result := make([]dto.TicketResponseDTO, 0, len(tickets))
	if len(tickets) == 0 {
		return result, nil
	}

	ids := make([]uint64, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.ID)
	}

	assignments, err := s.relationRepository.GetAssignments(ctx, ids)
	if err != nil {
		return nil, err
	}
	raisers, err := s.relationRepository.GetRaisedBy(ctx, ids)
	if err != nil {
		return nil, err
	}

	staffIDs := make([]string, 0)
	memberIDs := make([]uint64, 0)
	for _, a := range assignments {
		staffIDs = append(staffIDs, a.StaffID)
	}
	for _, rb := range raisers {
		if rb.StaffID != nil {
			staffIDs = append(staffIDs, *rb.StaffID)
		}
		if rb.MemberID != nil {
			memberIDs = append(memberIDs, *rb.MemberID)
		}
	}

	staff, err := s.staffRepository.FindByIDs(ctx, staffIDs)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepository.FindByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	for _, t := range tickets {
		item := dto.TicketResponseDTO{
			ID:          t.ID,
			Type:        t.Type,
			Description: null.StringFromPtr(t.Description),
			Status:      t.Status,
			Priority:    t.Priority,
			CreatedAt:   t.CreatedAt.Format(utils.DateTimeLayout),
			UpdatedAt:   t.UpdatedAt.Format(utils.DateTimeLayout),
		}

		if a, ok := assignments[t.ID]; ok {
			item.AssignedToID = utils.ToPtr(a.StaffID)
			item.AssignmentVersion = utils.ToPtr(a.Version)
			if person, ok := staff[a.StaffID]; ok {
				item.AssignedToName = utils.ToPtr(person.Name)
			}
		}

		if rb, ok := raisers[t.ID]; ok {
			switch {
			case rb.MemberID != nil:
				item.RaisedByType = dto.RaisedByMember
				item.RaisedByID = utils.ToPtr(strconv.FormatUint(*rb.MemberID, 10))
				if person, ok := members[*rb.MemberID]; ok {
					item.RaisedByName = utils.ToPtr(person.Name)
				}
			case rb.StaffID != nil:
				item.RaisedByType = dto.RaisedByStaff
				item.RaisedByID = utils.ToPtr(*rb.StaffID)
				if person, ok := staff[*rb.StaffID]; ok {
					item.RaisedByName = utils.ToPtr(person.Name)
				}
			}
		}

		result = append(result, item)
	}
	return result, nil
}
