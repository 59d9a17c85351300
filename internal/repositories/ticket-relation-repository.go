package repositories

import (
	"context"
	"errors"
	"fmt"

	"gym-admin/internal/entities"
	apperrors "gym-admin/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ticketRaisedByTable    = "ticket_raised_by"
	ticketRaisedByFields   = "ticket_id, member_id, staff_id, version"
	ticketAssignedToTable  = "ticket_assigned_to"
	ticketAssignedToFields = "ticket_id, staff_id, version"
)

// TicketRelationRepositoryInterface - связи тикета один-к-одному: кто открыл и кому назначен.
// Обе таблицы несут счётчик version для оптимистичной блокировки.
type TicketRelationRepositoryInterface interface {
	CreateRaisedBy(ctx context.Context, tx pgx.Tx, rb entities.TicketRaisedBy) error
	GetRaisedBy(ctx context.Context, ticketIDs []uint64) (map[uint64]entities.TicketRaisedBy, error)

	FindAssignment(ctx context.Context, tx pgx.Tx, ticketID uint64) (*entities.TicketAssignedTo, error)
	InsertAssignment(ctx context.Context, tx pgx.Tx, ticketID uint64, staffID string) (*entities.TicketAssignedTo, error)
	UpdateAssignment(ctx context.Context, tx pgx.Tx, ticketID uint64, staffID string, expectedVersion uint64) (*entities.TicketAssignedTo, error)
	GetAssignments(ctx context.Context, ticketIDs []uint64) (map[uint64]entities.TicketAssignedTo, error)
}

type TicketRelationRepository struct {
	storage *pgxpool.Pool
}

func NewTicketRelationRepository(storage *pgxpool.Pool) TicketRelationRepositoryInterface {
	return &TicketRelationRepository{storage: storage}
}

func (r *TicketRelationRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *TicketRelationRepository) CreateRaisedBy(ctx context.Context, tx pgx.Tx, rb entities.TicketRaisedBy) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(ticketRaisedByTable).
		Columns("ticket_id", "member_id", "staff_id").
		Values(rb.TicketID, rb.MemberID, rb.StaffID).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса CreateRaisedBy: %w", err)
	}

	if _, err := r.getQuerier(tx).Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23503":
				return fmt.Errorf("автор тикета не найден: %w", apperrors.ErrNotFound)
			case "23514":
				return apperrors.NewInvalidInputError("Тикет должен открыть ровно один участник: memberId или staffId")
			case "23505":
				return fmt.Errorf("автор тикета %d уже записан: %w", rb.TicketID, apperrors.ErrConflict)
			}
		}
		return fmt.Errorf("ошибка создания ticket_raised_by: %w", err)
	}
	return nil
}

func (r *TicketRelationRepository) GetRaisedBy(ctx context.Context, ticketIDs []uint64) (map[uint64]entities.TicketRaisedBy, error) {
	result := make(map[uint64]entities.TicketRaisedBy, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return result, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(ticketRaisedByFields).From(ticketRaisedByTable).Where(sq.Eq{"ticket_id": ticketIDs}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для GetRaisedBy: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rb entities.TicketRaisedBy
		if err := rows.Scan(&rb.TicketID, &rb.MemberID, &rb.StaffID, &rb.Version); err != nil {
			return nil, err
		}
		result[rb.TicketID] = rb
	}
	return result, rows.Err()
}

func scanAssignment(row pgx.Row) (*entities.TicketAssignedTo, error) {
	var a entities.TicketAssignedTo
	if err := row.Scan(&a.TicketID, &a.StaffID, &a.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *TicketRelationRepository) FindAssignment(ctx context.Context, tx pgx.Tx, ticketID uint64) (*entities.TicketAssignedTo, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE ticket_id = $1", ticketAssignedToFields, ticketAssignedToTable)
	return scanAssignment(r.getQuerier(tx).QueryRow(ctx, query, ticketID))
}

// InsertAssignment - первое назначение, версия 1. Если строку успел вставить параллельный запрос, ErrConflict.
func (r *TicketRelationRepository) InsertAssignment(ctx context.Context, tx pgx.Tx, ticketID uint64, staffID string) (*entities.TicketAssignedTo, error) {
	query := fmt.Sprintf("INSERT INTO %s (ticket_id, staff_id, version) VALUES ($1, $2, $3) RETURNING %s", ticketAssignedToTable, ticketAssignedToFields)

	a, err := scanAssignment(r.getQuerier(tx).QueryRow(ctx, query, ticketID, staffID, entities.FirstAssignmentVersion))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, fmt.Errorf("тикет %d уже назначен: %w", ticketID, apperrors.ErrConflict)
			case "23503":
				return nil, fmt.Errorf("сотрудник %s: %w", staffID, apperrors.ErrNotFound)
			}
		}
		return nil, fmt.Errorf("ошибка создания ticket_assigned_to: %w", err)
	}
	return a, nil
}

// UpdateAssignment переназначает тикет, только если версия строки не изменилась.
func (r *TicketRelationRepository) UpdateAssignment(ctx context.Context, tx pgx.Tx, ticketID uint64, staffID string, expectedVersion uint64) (*entities.TicketAssignedTo, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET staff_id = @staffID, version = version + 1
		WHERE ticket_id = @ticketID AND version = @version
		RETURNING %s`, ticketAssignedToTable, ticketAssignedToFields)
	args := pgx.NamedArgs{"staffID": staffID, "ticketID": ticketID, "version": expectedVersion}

	a, err := scanAssignment(r.getQuerier(tx).QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("назначение тикета %d изменено другим запросом: %w", ticketID, apperrors.ErrConflict)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, fmt.Errorf("сотрудник %s: %w", staffID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка обновления ticket_assigned_to: %w", err)
	}
	return a, nil
}

func (r *TicketRelationRepository) GetAssignments(ctx context.Context, ticketIDs []uint64) (map[uint64]entities.TicketAssignedTo, error) {
	result := make(map[uint64]entities.TicketAssignedTo, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return result, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(ticketAssignedToFields).From(ticketAssignedToTable).Where(sq.Eq{"ticket_id": ticketIDs}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для GetAssignments: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		result[a.TicketID] = *a
	}
	return result, rows.Err()
}
