package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/streetlab/storefront-api/docs"
	"github.com/streetlab/storefront-api/internal/api/handler"
	"github.com/streetlab/storefront-api/internal/api/middleware"
	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/service"
	"github.com/streetlab/storefront-api/internal/infrastructure/config"
	mongodb "github.com/streetlab/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/streetlab/storefront-api/internal/infrastructure/db/redis"
	"github.com/streetlab/storefront-api/internal/infrastructure/queue"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, dispatcher *queue.Dispatcher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	cartRepo := mongodb.NewCartRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	eventRepo := mongodb.NewEventRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	sessionService := service.NewSessionService(userRepo, cfg.JWTSecret)
	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo, log)
	checkoutGuard := redisdb.NewCheckoutGuard(rdb)
	checkoutService := service.NewCheckoutService(orderRepo, cartRepo, checkoutGuard, log)
	eventService := service.NewEventService(eventRepo, log)
	analyticsService := service.NewAnalyticsService(userRepo, orderRepo, eventRepo, productRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	eventHandler := handler.NewEventHandler(eventService, dispatcher)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	sessionRequired := middleware.Session(sessionService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/products", catalogHandler.List)
	e.GET("/product/:id", catalogHandler.Get)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Session routes (valid token required) ---
	session := e.Group("", sessionRequired)
	session.GET("/profile", authHandler.Profile)
	session.POST("/cart/:productId", cartHandler.Add)
	session.GET("/cart", cartHandler.Get)
	session.DELETE("/cart/:id", cartHandler.Remove)
	session.POST("/checkout", checkoutHandler.Checkout)
	session.GET("/orders/history", checkoutHandler.History)
	session.POST("/events", eventHandler.Record)
	session.POST("/events/batch", eventHandler.RecordBatch)

	// --- Admin routes ---
	admin := e.Group("", sessionRequired, adminOnly)
	admin.PUT("/products/:id/stock", catalogHandler.UpdateStock)
	admin.GET("/adminprofile", analyticsHandler.Dashboard)

	return e
}
