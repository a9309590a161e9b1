package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/apnajourney/platform/internal/api/handler"
	"github.com/apnajourney/platform/internal/api/middleware"
	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
	"github.com/apnajourney/platform/internal/core/service"
	"github.com/apnajourney/platform/internal/infrastructure/config"
	mongorepo "github.com/apnajourney/platform/internal/infrastructure/db/mongo"
	redisstore "github.com/apnajourney/platform/internal/infrastructure/db/redis"
	"github.com/apnajourney/platform/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns it
// together with the view dispatcher, whose workers the caller must Start.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, mailer ports.Mailer, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("apnajourney"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Repositories ---
	accountRepo := mongorepo.NewAccountRepository(db)
	jobRepo := mongorepo.NewJobRepository(db)
	newsRepo := mongorepo.NewNewsRepository(db)
	applicationRepo := mongorepo.NewApplicationRepository(db)
	inquiryRepo := mongorepo.NewInquiryRepository(db)
	settingsRepo := mongorepo.NewSettingsRepository(db)
	viewMarker := redisstore.NewViewMarker(rdb)

	// --- Services ---
	authService := service.NewAuthService(accountRepo, cfg.JWTSecret, 24*time.Hour)
	accountService := service.NewAccountService(accountRepo, log)
	jobService := service.NewJobService(jobRepo, log)
	newsService := service.NewNewsService(newsRepo, log)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, log)
	inquiryService := service.NewInquiryService(inquiryRepo, mailer, log)
	settingsService := service.NewSettingsService(settingsRepo, log)
	statsService := service.NewStatsService(jobRepo, newsRepo, applicationRepo, inquiryRepo, log)
	viewService := service.NewViewService(viewMarker, jobRepo, newsRepo, log)

	dispatcher := queue.NewDispatcher(cfg.ViewWorkers, viewService, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	jobHandler := handler.NewJobHandler(jobService, dispatcher)
	newsHandler := handler.NewNewsHandler(newsService, dispatcher)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	inquiryHandler := handler.NewInquiryHandler(inquiryService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	statsHandler := handler.NewStatsHandler(statsService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	authRequired := middleware.Auth(cfg.JWTSecret)
	authOptional := middleware.OptionalAuth(cfg.JWTSecret)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	// --- Auth ---
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	// --- Public content ---
	v1.GET("/jobs", jobHandler.ListPublic)
	v1.GET("/jobs/:slug", jobHandler.Get, authOptional)
	v1.GET("/news", newsHandler.ListPublic)
	v1.GET("/news/:slug", newsHandler.Get, authOptional)
	v1.POST("/inquiries", inquiryHandler.Create)
	v1.GET("/settings", settingsHandler.Get)

	// --- Authenticated content operations ---
	v1.POST("/jobs", jobHandler.Create, authRequired,
		middleware.RequirePermission(domain.PermCreateJobs, domain.PermManageJobs))
	v1.PATCH("/jobs/:id", jobHandler.Update, authRequired)
	v1.DELETE("/jobs/:id", jobHandler.Delete, authRequired)

	v1.POST("/news", newsHandler.Create, authRequired,
		middleware.RequirePermission(domain.PermCreateNews, domain.PermManageNews))
	v1.PATCH("/news/:id", newsHandler.Update, authRequired)
	v1.POST("/news/:id/submit", newsHandler.Submit, authRequired)
	v1.DELETE("/news/:id", newsHandler.Delete, authRequired)

	v1.POST("/jobs/:id/applications", applicationHandler.Submit, authRequired)
	v1.GET("/jobs/:id/applications", applicationHandler.ListForJob, authRequired)
	v1.PATCH("/applications/:id", applicationHandler.Review, authRequired,
		middleware.RequirePermission(domain.PermManageApplications))

	me := v1.Group("/me", authRequired)
	me.GET("/jobs", jobHandler.ListOwn)
	me.GET("/news", newsHandler.ListOwn)
	me.GET("/applications", applicationHandler.ListOwn)

	// --- Admin back-office ---
	admin := v1.Group("/admin", authRequired)

	admin.GET("/jobs", jobHandler.ModerationQueue,
		middleware.RequirePermission(domain.PermManageJobs))
	admin.POST("/jobs/:id/approve", jobHandler.Approve,
		middleware.RequirePermission(domain.PermManageJobs))
	admin.POST("/jobs/:id/reject", jobHandler.Reject,
		middleware.RequirePermission(domain.PermManageJobs))

	admin.GET("/news", newsHandler.ModerationQueue,
		middleware.RequirePermission(domain.PermManageNews))
	admin.POST("/news/:id/approve", newsHandler.Approve,
		middleware.RequirePermission(domain.PermManageNews))
	admin.POST("/news/:id/reject", newsHandler.Reject,
		middleware.RequirePermission(domain.PermManageNews))
	admin.POST("/news/:id/publish", newsHandler.Publish,
		middleware.RequirePermission(domain.PermManageNews))
	admin.PUT("/news/:id/feature", newsHandler.Feature,
		middleware.RequirePermission(domain.PermManageNews))

	admin.GET("/inquiries", inquiryHandler.List, middleware.RequireKind(domain.KindAdmin))
	admin.PATCH("/inquiries/:id", inquiryHandler.Triage, middleware.RequireKind(domain.KindAdmin))

	admin.GET("/accounts", accountHandler.List,
		middleware.RequirePermission(domain.PermManageUsers))
	admin.POST("/accounts", accountHandler.CreateAdmin,
		middleware.RequirePermission(domain.PermManageAdmins))
	admin.PUT("/accounts/:id/role", accountHandler.AssignRole,
		middleware.RequirePermission(domain.PermManageUsers))
	admin.PUT("/accounts/:id/status", accountHandler.SetStatus,
		middleware.RequirePermission(domain.PermManageUsers))

	admin.PUT("/settings", settingsHandler.Update,
		middleware.RequirePermission(domain.PermManageSettings))
	admin.GET("/stats", statsHandler.Summary,
		middleware.RequirePermission(domain.PermViewAnalytics))

	return e, dispatcher
}
