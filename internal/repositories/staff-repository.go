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
	staffTable  = "staff"
	staffFields = "nic, name, role, phone, start_date, shift, password_hash"
)

type StaffRepositoryInterface interface {
	Create(ctx context.Context, s entities.Staff) (*entities.Staff, error)
	FindByID(ctx context.Context, tx pgx.Tx, nic string) (*entities.Staff, error)
	FindByIDs(ctx context.Context, nics []string) (map[string]entities.Staff, error)
	GetAll(ctx context.Context) ([]entities.Staff, error)
}

type StaffRepository struct {
	storage *pgxpool.Pool
}

func NewStaffRepository(storage *pgxpool.Pool) StaffRepositoryInterface {
	return &StaffRepository{storage: storage}
}

func (r *StaffRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanStaff(row pgx.Row) (*entities.Staff, error) {
	var s entities.Staff
	if err := row.Scan(&s.NIC, &s.Name, &s.Role, &s.Phone, &s.StartDate, &s.Shift, &s.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования staff: %w", err)
	}
	return &s, nil
}

func (r *StaffRepository) Create(ctx context.Context, s entities.Staff) (*entities.Staff, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(staffTable).
		Columns("nic", "name", "role", "phone", "start_date", "shift", "password_hash").
		Values(s.NIC, s.Name, s.Role, s.Phone, s.StartDate, s.Shift, s.PasswordHash).
		Suffix("RETURNING " + staffFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}

	created, err := scanStaff(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("сотрудник с NIC %s уже существует: %w", s.NIC, apperrors.ErrConflict)
		}
		return nil, err
	}
	return created, nil
}

func (r *StaffRepository) FindByID(ctx context.Context, tx pgx.Tx, nic string) (*entities.Staff, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE nic = $1", staffFields, staffTable)
	return scanStaff(r.getQuerier(tx).QueryRow(ctx, query, nic))
}

func (r *StaffRepository) FindByIDs(ctx context.Context, nics []string) (map[string]entities.Staff, error) {
	result := make(map[string]entities.Staff, len(nics))
	if len(nics) == 0 {
		return result, nil
	}
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	staff, err := r.selectMany(ctx, psql.Select(staffFields).From(staffTable).Where(sq.Eq{"nic": nics}))
	if err != nil {
		return nil, err
	}
	for _, s := range staff {
		result[s.NIC] = s
	}
	return result, nil
}

func (r *StaffRepository) GetAll(ctx context.Context) ([]entities.Staff, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return r.selectMany(ctx, psql.Select(staffFields).From(staffTable).OrderBy("nic"))
}

func (r *StaffRepository) selectMany(ctx context.Context, builder sq.SelectBuilder) ([]entities.Staff, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для staff: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}
