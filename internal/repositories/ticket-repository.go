package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gym-admin/internal/entities"
	apperrors "gym-admin/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ticketTable  = "tickets"
	ticketFields = "id, type, description, status, priority, created_at, updated_at"
)

type TicketRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, t entities.Ticket) (*entities.Ticket, error)
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Ticket, error)
	GetAll(ctx context.Context, filter entities.TicketFilter) ([]entities.Ticket, error)
	Count(ctx context.Context, filter entities.TicketFilter) (uint64, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status string, updatedAt time.Time) (*entities.Ticket, error)
}

type TicketRepository struct {
	storage *pgxpool.Pool
}

func NewTicketRepository(storage *pgxpool.Pool) TicketRepositoryInterface {
	return &TicketRepository{storage: storage}
}

func (r *TicketRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanTicket(row pgx.Row) (*entities.Ticket, error) {
	var t entities.Ticket
	err := row.Scan(&t.ID, &t.Type, &t.Description, &t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования tickets: %w", err)
	}
	return &t, nil
}

// applyTicketFilter - одни и те же условия для выборки и для COUNT.
func applyTicketFilter(builder sq.SelectBuilder, filter entities.TicketFilter) sq.SelectBuilder {
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Priority != "" {
		builder = builder.Where(sq.Eq{"priority": filter.Priority})
	}
	if filter.AssignedTo != "" {
		builder = builder.Where(sq.Expr("id IN (SELECT ticket_id FROM "+ticketAssignedToTable+" WHERE staff_id = ?)", filter.AssignedTo))
	}
	if filter.RaisedByMember != nil {
		builder = builder.Where(sq.Expr("id IN (SELECT ticket_id FROM "+ticketRaisedByTable+" WHERE member_id = ?)", *filter.RaisedByMember))
	}
	if filter.RaisedByStaff != "" {
		builder = builder.Where(sq.Expr("id IN (SELECT ticket_id FROM "+ticketRaisedByTable+" WHERE staff_id = ?)", filter.RaisedByStaff))
	}
	return builder
}

func (r *TicketRepository) Create(ctx context.Context, tx pgx.Tx, t entities.Ticket) (*entities.Ticket, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(ticketTable).
		Columns("type", "description", "status", "priority", "created_at", "updated_at").
		Values(t.Type, t.Description, t.Status, t.Priority, t.CreatedAt, t.UpdatedAt).
		Suffix("RETURNING " + ticketFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}
	return scanTicket(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *TicketRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Ticket, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", ticketFields, ticketTable)
	return scanTicket(r.getQuerier(tx).QueryRow(ctx, query, id))
}

func (r *TicketRepository) GetAll(ctx context.Context, filter entities.TicketFilter) ([]entities.Ticket, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := applyTicketFilter(psql.Select(ticketFields).From(ticketTable), filter).OrderBy("id")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL select: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки tickets: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	return result, rows.Err()
}

func (r *TicketRepository) Count(ctx context.Context, filter entities.TicketFilter) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := applyTicketFilter(psql.Select("COUNT(id)").From(ticketTable), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка сборки SQL count: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("ошибка выполнения count: %w", err)
	}
	return total, nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status string, updatedAt time.Time) (*entities.Ticket, error) {
	query := fmt.Sprintf("UPDATE %s SET status = @status, updated_at = @updatedAt WHERE id = @id RETURNING %s", ticketTable, ticketFields)
	args := pgx.NamedArgs{"status": status, "updatedAt": updatedAt, "id": id}
	return scanTicket(r.getQuerier(tx).QueryRow(ctx, query, args))
}
