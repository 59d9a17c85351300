// Файл: main.go

package main

import (
	"context"
	"net/http"
	"time"

	"gym-admin/internal/migrations"
	"gym-admin/internal/routes"
	"gym-admin/pkg/config"
	"gym-admin/pkg/database/postgresql"
	apperrors "gym-admin/pkg/errors"
	applogger "gym-admin/pkg/logger"
	appmiddleware "gym-admin/pkg/middleware"
	"gym-admin/pkg/service"
	"gym-admin/pkg/utils"
	"gym-admin/pkg/validation"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg := config.New()

	e := echo.New()
	e.HideBanner = true
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.OutputPaths...)
	defer logger.Sync()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(appmiddleware.InjectLogger(logger))

	// только явный список источников, без "*"
	if err := cfg.CORS.Validate(); err != nil {
		logger.Fatal("Неверная настройка CORS", zap.Error(err))
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.CORS.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, appmiddleware.RequestIDHeader},
		ExposeHeaders: []string{echo.HeaderContentDisposition, appmiddleware.RequestIDHeader},
	}))

	e.Validator = validation.New()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	if err := migrations.Up(ctx, dbConn, logger); err != nil {
		logger.Fatal("не удалось применить миграции", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		// без Redis сервис работает, но без кеша и блокировки входа
		logger.Warn("Redis недоступен, кеш отключён", zap.Error(err), zap.String("address", cfg.Redis.Address))
		redisClient = nil
	}

	if cfg.JWT.Enabled && cfg.JWT.SecretKey == "" {
		logger.Fatal("AUTH_ENABLED=true, но JWT_SECRET_KEY не задан")
	}
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)

	loggers := &routes.Loggers{
		Main:        logger,
		Auth:        logger.Named("auth"),
		Equipment:   logger.Named("equipment"),
		Maintenance: logger.Named("maintenance"),
		Ticket:      logger.Named("ticket"),
	}
	routes.InitRouter(e, routes.NewPostgresRepositories(dbConn, redisClient), jwtSvc, loggers, cfg)

	logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
