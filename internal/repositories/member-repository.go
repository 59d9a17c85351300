package repositories

import (
	"context"
	"errors"
	"fmt"

	"gym-admin/internal/entities"
	apperrors "gym-admin/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	memberTable  = "members"
	memberFields = "id, name, email, phone, created_at"
)

type MemberRepositoryInterface interface {
	Create(ctx context.Context, m entities.Member) (*entities.Member, error)
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Member, error)
	FindByIDs(ctx context.Context, ids []uint64) (map[uint64]entities.Member, error)
	GetAll(ctx context.Context) ([]entities.Member, error)
}

type MemberRepository struct {
	storage *pgxpool.Pool
}

func NewMemberRepository(storage *pgxpool.Pool) MemberRepositoryInterface {
	return &MemberRepository{storage: storage}
}

func (r *MemberRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanMember(row pgx.Row) (*entities.Member, error) {
	var m entities.Member
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования members: %w", err)
	}
	return &m, nil
}

func (r *MemberRepository) Create(ctx context.Context, m entities.Member) (*entities.Member, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(memberTable).
		Columns("name", "email", "phone").
		Values(m.Name, m.Email, m.Phone).
		Suffix("RETURNING " + memberFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}
	return scanMember(r.storage.QueryRow(ctx, query, args...))
}

func (r *MemberRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Member, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", memberFields, memberTable)
	return scanMember(r.getQuerier(tx).QueryRow(ctx, query, id))
}

func (r *MemberRepository) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]entities.Member, error) {
	result := make(map[uint64]entities.Member, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	members, err := r.selectMany(ctx, psql.Select(memberFields).From(memberTable).Where(sq.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		result[m.ID] = m
	}
	return result, nil
}

func (r *MemberRepository) GetAll(ctx context.Context) ([]entities.Member, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return r.selectMany(ctx, psql.Select(memberFields).From(memberTable).OrderBy("id"))
}

func (r *MemberRepository) selectMany(ctx context.Context, builder sq.SelectBuilder) ([]entities.Member, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для members: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	return result, rows.Err()
}
