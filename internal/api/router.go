package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/agrovia/farm-system/internal/api/handler"
	"github.com/agrovia/farm-system/internal/api/middleware"
	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/service"
	"github.com/agrovia/farm-system/internal/infrastructure/db/postgres"
	"github.com/agrovia/farm-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the leaderboard cache is disabled without it.
func NewRouter(pool *pgxpool.Pool, rdb *goredis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("farm"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	perfRepo := postgres.NewPerformanceRepository(pool)
	cropRepo := postgres.NewCropRepository(pool)
	fieldRepo := postgres.NewFieldRepository(pool)
	supplyRepo := postgres.NewSupplyRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	// --- Services ---
	var cache service.LeaderboardCache
	if rdb != nil {
		cache = redis.NewLeaderboardCache(rdb, log)
	}
	perfService := service.NewPerformanceService(userRepo, taskRepo, perfRepo, cache, log)
	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo, log)
	taskService := service.NewTaskService(taskRepo, perfService, log)
	cropService := service.NewCropService(cropRepo, log)
	fieldService := service.NewFieldService(fieldRepo, log)
	supplyService := service.NewSupplyService(supplyRepo, log)
	notifService := service.NewNotificationService(notifRepo, log)
	reportService := service.NewReportService(reportRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)
	perfHandler := handler.NewPerformanceHandler(perfService, userService)
	cropHandler := handler.NewCropHandler(cropService)
	fieldHandler := handler.NewFieldHandler(fieldService)
	fertilizerHandler := handler.NewSupplyHandler(supplyService, domain.SupplyFertilizer)
	pesticideHandler := handler.NewSupplyHandler(supplyService, domain.SupplyPesticide)
	notifHandler := handler.NewNotificationHandler(notifService)
	reportHandler := handler.NewReportHandler(reportService)
	statsHandler := handler.NewStatsHandler(taskService)

	authMiddleware := middleware.Auth(jwtSecret)
	managers := middleware.RBAC(domain.RoleManager, domain.RoleAdmin)
	admins := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)

	users := v1.Group("/users")
	users.POST("", userHandler.Create, managers)
	users.GET("/me", userHandler.Me)
	users.GET("/check-phone", userHandler.CheckPhone)
	users.GET("", userHandler.List, managers)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Deactivate, admins)

	tasks := v1.Group("/tasks")
	tasks.POST("", taskHandler.Create, managers)
	tasks.GET("", taskHandler.ListMine)
	tasks.GET("/overdue", taskHandler.ListOverdue, managers)
	tasks.GET("/user/:id", taskHandler.ListForUser, managers)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete, managers)

	perf := v1.Group("/performance")
	perf.GET("/leaderboard", perfHandler.Leaderboard)
	perf.POST("/batch-update", perfHandler.BatchUpdate, admins)
	perf.GET("/:id", perfHandler.GetScore)
	perf.GET("/:id/history", perfHandler.GetHistory)
	perf.POST("/:id/update", perfHandler.UpdateScore, managers)

	crops := v1.Group("/crops")
	crops.POST("", cropHandler.Create, managers)
	crops.GET("", cropHandler.List)
	crops.GET("/stats", cropHandler.Stats)
	crops.GET("/:id", cropHandler.Get)
	crops.PUT("/:id", cropHandler.Update, managers)
	crops.DELETE("/:id", cropHandler.Delete, managers)

	fields := v1.Group("/fields")
	fields.POST("", fieldHandler.Create, managers)
	fields.GET("", fieldHandler.List)
	fields.GET("/:id", fieldHandler.Get)
	fields.PUT("/:id", fieldHandler.Update, managers)
	fields.DELETE("/:id", fieldHandler.Delete, managers)

	registerSupplyRoutes(v1.Group("/fertilizers"), fertilizerHandler, managers)
	registerSupplyRoutes(v1.Group("/pesticides"), pesticideHandler, managers)

	notifications := v1.Group("/notifications")
	notifications.POST("", notifHandler.Create, managers)
	notifications.GET("", notifHandler.List)
	notifications.GET("/unread-count", notifHandler.UnreadCount)
	notifications.PUT("/:id/read", notifHandler.MarkRead)

	reports := v1.Group("/reports")
	reports.POST("", reportHandler.Create)
	reports.GET("", reportHandler.List)
	reports.GET("/:id", reportHandler.Get)
	reports.DELETE("/:id", reportHandler.Delete, managers)

	stats := v1.Group("/stats")
	stats.GET("/tasks/daily", statsHandler.DailyTasks, managers)

	return e
}

func registerSupplyRoutes(g *echo.Group, h *handler.SupplyHandler, managers echo.MiddlewareFunc) {
	g.POST("", h.Create, managers)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.AdjustQuantity, managers)
	g.DELETE("/:id", h.Delete, managers)
}
