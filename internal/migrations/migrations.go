package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

func withProvider(pool *pgxpool.Pool, fn func(p *goose.Provider) error) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return withDB(db, fn)
}

func withDB(db *sql.DB, fn func(p *goose.Provider) error) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, mustSub())
	if err != nil {
		return fmt.Errorf("не удалось создать goose provider: %w", err)
	}
	return fn(provider)
}

// Up применяет все неприменённые миграции схемы через goose.
func Up(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	return withProvider(pool, func(p *goose.Provider) error {
		results, err := p.Up(ctx)
		if err != nil {
			return fmt.Errorf("ошибка применения миграций: %w", err)
		}
		for _, r := range results {
			logger.Info("Миграция применена",
				zap.String("source", r.Source.Path),
				zap.Duration("duration", r.Duration),
			)
		}
		return nil
	})
}

// Down откатывает последнюю применённую миграцию.
func Down(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	return withProvider(pool, func(p *goose.Provider) error {
		r, err := p.Down(ctx)
		if err != nil {
			return fmt.Errorf("ошибка отката миграции: %w", err)
		}
		if r != nil && r.Source != nil {
			logger.Info("Миграция откачена", zap.String("source", r.Source.Path))
		}
		return nil
	})
}

func Status(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	return withProvider(pool, func(p *goose.Provider) error {
		statuses, err := p.Status(ctx)
		if err != nil {
			return fmt.Errorf("не удалось получить статус миграций: %w", err)
		}
		for _, st := range statuses {
			logger.Info("Миграция",
				zap.Int64("version", st.Source.Version),
				zap.String("source", st.Source.Path),
				zap.String("state", string(st.State)),
			)
		}
		return nil
	})
}

func mustSub() fs.FS {
	sub, err := fs.Sub(migrationsFS, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}
