package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedMembers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'members'...")

	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM members").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Println("    ℹ️  Участники уже есть, пропускаем.")
		return nil
	}

	for _, m := range membersData {
		if _, err := db.Exec(ctx,
			"INSERT INTO members (name, email, phone) VALUES ($1, $2, $3)",
			m.Name, m.Email, m.Phone,
		); err != nil {
			return err
		}
	}
	return nil
}
