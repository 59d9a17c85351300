package seeders

import (
	"context"
	"log"

	"gym-admin/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDemoData наполняет участников, оборудование и графики обслуживания.
func SeedDemoData(ctx context.Context, db *pgxpool.Pool) {
	log.Println("▶️  Запуск наполнения демо-данных...")

	if err := seedMembers(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения участников: %v", err)
	}
	if err := seedEquipment(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения оборудования: %v", err)
	}
	log.Println("✅ Наполнение демо-данных завершено!")
}

func SeedAdminAccount(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) {
	if err := SeedAdmin(ctx, db, cfg); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}
}
