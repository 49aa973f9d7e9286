package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go-erp-api/internal/apperrors"
	"go-erp-api/internal/handler"
	"go-erp-api/internal/middleware"
	"go-erp-api/internal/model"
	"go-erp-api/internal/repository"
	"go-erp-api/internal/service"
	"go-erp-api/internal/ws"
	"go-erp-api/pkg/config"
	"go-erp-api/pkg/database"
	"go-erp-api/pkg/jwt"
	"go-erp-api/pkg/logger"
	"go-erp-api/pkg/metrics"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.AppEnv, "go-erp-api")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)

	// 2. Setup Database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := repository.AutoMigrate(db); err != nil {
		zlog.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup WebSocket Hub and metrics
	wsHub := ws.NewHub(zlog)
	go wsHub.Run(ctx)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.New(registry)
	notifier := service.NewChangeNotifier(wsHub, httpMetrics)

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	unitRepo := repository.NewResourceRepo[model.Unit](db)
	itemRepo := repository.NewResourceRepo[model.Item](db, "Unit")
	vendorRepo := repository.NewResourceRepo[model.Vendor](db)
	accountTypeRepo := repository.NewResourceRepo[model.AccountType](db)
	chartRepo := repository.NewResourceRepo[model.ChartOfAccount](db, "AccountType")
	groupRepo := repository.NewResourceRepo[model.CategoryGroup](db)
	dashRepo := repository.NewDashboardRepo(db)

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry)
	authService := service.NewAuthService(userRepo, tokens)
	dashService := service.NewDashboardService(dashRepo)
	userService := service.NewUserService(userRepo)

	seedAdmin(ctx, zlog, authService, cfg.Admin)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	dashHandler := handler.NewDashboardHandler(dashService)
	gstHandler := handler.NewGSTHandler()

	rate, err := limiter.NewRateFromFormatted(cfg.AuthRateLimit)
	if err != nil {
		zlog.Fatal("Invalid AUTH_RATE_LIMIT", zap.String("value", cfg.AuthRateLimit), zap.Error(err))
	}
	authLimiter := limiter.New(memory.NewStore(), rate)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      "ERP Master Data API",
		ErrorHandler: handler.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpMetrics.Middleware())
	app.Use(middleware.RequestLogger(zlog))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(registry)))

	// 6. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(authLimiter), authHandler.Register)
	auth.Post("/login", middleware.RateLimit(authLimiter), authHandler.Login)

	// ============ PROTECTED ROUTES ============
	requireAuth := middleware.RequireAuth(authService)
	auth.Post("/logout", requireAuth, authHandler.Logout)
	auth.Get("/me", requireAuth, userHandler.GetProfile)

	protected := api.Group("", requireAuth)
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/gst-configuration/tax-status", gstHandler.TaxStatus)
	protected.Get("/gst-configuration/gst-rate", gstHandler.GSTRate)

	users := protected.Group("/users")
	users.Get("/", userHandler.GetUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Patch("/:id/status", userHandler.UpdateUserStatus)

	handler.NewResourceHandler(service.NewUnitService(unitRepo, itemRepo, notifier)).
		Register(protected.Group("/unit"))
	handler.NewResourceHandler(service.NewItemService(itemRepo, unitRepo, notifier)).
		Register(protected.Group("/item"))
	handler.NewResourceHandler(service.NewVendorService(vendorRepo, notifier)).
		Register(protected.Group("/vendor"))
	handler.NewResourceHandler(service.NewAccountTypeService(accountTypeRepo, chartRepo, notifier)).
		Register(protected.Group("/account-type"))
	handler.NewResourceHandler(service.NewCategoryGroupService(groupRepo, notifier)).
		Register(protected.Group("/category-group"))
	handler.NewResourceHandler(service.NewChartOfAccountService(chartRepo, accountTypeRepo, notifier)).
		Register(protected.Group("/chart-of-account"))

	// WebSocket Route
	app.Use("/ws", middleware.RequireWebSocketAuth(authService))
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Error("Server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	zlog.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exited")
}

// seedAdmin creates the configured admin account if it does not exist yet
func seedAdmin(ctx context.Context, zlog *zap.Logger, auth service.AuthService, admin config.AdminConfig) {
	if admin.Username == "" {
		return
	}

	_, err := auth.Register(ctx, service.RegisterRequest{
		Username:       admin.Username,
		Password:       admin.Password,
		RepeatPassword: admin.Password,
	})

	var verr *apperrors.ValidationError
	switch {
	case err == nil:
		zlog.Info("Admin user created", zap.String("username", admin.Username))
	case errors.As(err, &verr) && len(verr.Violations) == 1 && verr.Violations[0].Field == "username":
		zlog.Debug("Admin user already exists", zap.String("username", admin.Username))
	default:
		zlog.Warn("Failed to seed admin user", zap.String("username", admin.Username), zap.Error(err))
	}
}
