package main

import (
	"context"
	"flag"
	"log"

	"gym-admin/internal/migrations"
	"gym-admin/pkg/config"
	"gym-admin/pkg/database/postgresql"
	applogger "gym-admin/pkg/logger"
	"gym-admin/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runDemo := flag.Bool("demo", false, "Наполнить участников, оборудование и графики обслуживания")
	runAdmin := flag.Bool("admin", false, "Создать администратора из SEED_ADMIN_NIC / SEED_ADMIN_PASSWORD")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -demo -admin)")

	flag.Parse()

	if !*runDemo && !*runAdmin && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -demo")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.OutputPaths...)
	defer logger.Sync()

	ctx := context.Background()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		log.Fatalf("❌ Не удалось подключиться к БД: %v", err)
	}
	defer dbPool.Close()

	if err := migrations.Up(ctx, dbPool, logger); err != nil {
		log.Fatalf("❌ Ошибка миграций: %v", err)
	}

	log.Println("======================================================")

	if *runAll || *runDemo {
		seeders.SeedDemoData(ctx, dbPool)
		log.Println("======================================================")
	}
	if *runAll || *runAdmin {
		seeders.SeedAdminAccount(ctx, dbPool, cfg)
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
