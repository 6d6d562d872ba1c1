package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/usermanager/user-management-api/docs"
	"github.com/usermanager/user-management-api/internal/api/handler"
	"github.com/usermanager/user-management-api/internal/api/middleware"
	"github.com/usermanager/user-management-api/internal/core/domain"
	"github.com/usermanager/user-management-api/internal/core/service"
	mongodb "github.com/usermanager/user-management-api/internal/infrastructure/db/mongo"
	redisdb "github.com/usermanager/user-management-api/internal/infrastructure/db/redis"
	"github.com/usermanager/user-management-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("usermanager"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	resourceRepo := mongodb.NewResourceRepository(db)
	scopeCache := redisdb.NewScopeCache(rdb)

	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	accountService := service.NewAccountService(userRepo, resourceRepo, tokens, scopeCache, cfg.ResetTokenTTL, log)
	resourceService := service.NewResourceService(resourceRepo, userRepo, scopeCache, log)

	accountHandler := handler.NewAccountHandler(accountService)
	userHandler := handler.NewUserHandler(accountService)
	resourceHandler := handler.NewResourceHandler(resourceService)

	auth := middleware.Auth(tokens)

	// --- Account routes (anonymous) ---
	account := e.Group("/api/account")
	account.POST("/login", accountHandler.Login)
	account.POST("/requestpasswordreset", accountHandler.RequestPasswordReset)
	account.POST("/resetpassword", accountHandler.ResetPassword)

	// --- User routes ---
	users := e.Group("/api/users", auth)
	users.POST("/managers", userHandler.CreateManager, middleware.RBAC(domain.RoleAdmin))
	users.POST("/clients", userHandler.CreateClient, middleware.RBAC(domain.RoleManager))
	users.GET("/profile", userHandler.GetProfile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.DELETE("/profile", userHandler.DeleteProfile)

	// --- Resource routes ---
	resources := e.Group("/api/resources", auth)
	resources.POST("", resourceHandler.Create, middleware.RBAC(domain.RoleClient))
	resources.GET("", resourceHandler.List)
	resources.PUT("/:id", resourceHandler.Update)
	resources.DELETE("/:id", resourceHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
