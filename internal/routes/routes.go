package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gym-admin/internal/repositories"
	"gym-admin/pkg/config"
	"gym-admin/pkg/middleware"
	"gym-admin/pkg/service"
)

type Loggers struct {
	Main        *zap.Logger
	Auth        *zap.Logger
	Equipment   *zap.Logger
	Maintenance *zap.Logger
	Ticket      *zap.Logger
}

// Repositories - набор хранилищ, с которыми собирается роутер.
// Cache может быть nil: тогда годовые итоги не кешируются и нет блокировки входа.
type Repositories struct {
	Tx        repositories.TxManagerInterface
	Equipment repositories.EquipmentRepositoryInterface
	Schedules repositories.MaintenanceScheduleRepositoryInterface
	Costs     repositories.MonthlyCostRepositoryInterface
	Tickets   repositories.TicketRepositoryInterface
	Relations repositories.TicketRelationRepositoryInterface
	Members   repositories.MemberRepositoryInterface
	Staff     repositories.StaffRepositoryInterface
	Cache     repositories.CacheRepositoryInterface
}

func NewPostgresRepositories(dbConn *pgxpool.Pool, redisClient *redis.Client) *Repositories {
	repos := &Repositories{
		Tx:        repositories.NewTxManager(dbConn),
		Equipment: repositories.NewEquipmentRepository(dbConn),
		Schedules: repositories.NewMaintenanceScheduleRepository(dbConn),
		Costs:     repositories.NewMonthlyCostRepository(dbConn),
		Tickets:   repositories.NewTicketRepository(dbConn),
		Relations: repositories.NewTicketRelationRepository(dbConn),
		Members:   repositories.NewMemberRepository(dbConn),
		Staff:     repositories.NewStaffRepository(dbConn),
	}
	if redisClient != nil {
		repos.Cache = repositories.NewRedisCacheRepository(redisClient)
	}
	return repos
}

func InitRouter(e *echo.Echo, repos *Repositories, jwtSvc service.JWTService, loggers *Loggers, cfg *config.Config) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, cfg.JWT.Enabled, loggers.Auth)

	runAuthRouter(api, repos, jwtSvc, loggers.Auth, cfg.Auth)
	runEquipmentRouter(api, repos, authMW, loggers.Equipment)
	runMaintenanceScheduleRouter(api, repos, authMW, loggers.Maintenance)
	runMonthlyCostRouter(api, repos, authMW, loggers.Maintenance, cfg.Cache.MonthlyCostTTL)
	runTicketRouter(api, repos, authMW, loggers.Ticket)
	runPeopleRouter(api, repos, authMW, loggers.Main)

	loggers.Main.Info("InitRouter: Создание маршрутов завершено", zap.Int("routes", len(e.Routes())))
}
