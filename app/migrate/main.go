package main

import (
	"context"
	"flag"
	"time"

	"gym-admin/internal/migrations"
	"gym-admin/pkg/config"
	"gym-admin/pkg/database/postgresql"
	applogger "gym-admin/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	command := flag.String("cmd", "up", "команда миграций: up, down, status")
	flag.Parse()

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.OutputPaths...)
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	switch *command {
	case "up":
		err = migrations.Up(ctx, dbConn, logger)
	case "down":
		err = migrations.Down(ctx, dbConn, logger)
	case "status":
		err = migrations.Status(ctx, dbConn, logger)
	default:
		logger.Fatal("неизвестная команда миграций", zap.String("cmd", *command))
	}
	if err != nil {
		logger.Fatal("миграции завершились с ошибкой", zap.String("cmd", *command), zap.Error(err))
	}
}
