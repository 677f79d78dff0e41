// Package main provides the main entry point for the Churnbase offer analytics platform
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/churnbase/churnbase/app/handlers"
	"github.com/churnbase/churnbase/app/middleware"
	"github.com/churnbase/churnbase/app/router"
	"github.com/churnbase/churnbase/app/scheduler"
	"github.com/churnbase/churnbase/app/services"
	businessflow "github.com/churnbase/churnbase/business_flow"
	"github.com/churnbase/churnbase/config"
	_ "github.com/churnbase/churnbase/docs"
	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
	"github.com/churnbase/churnbase/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting Churnbase application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Route the standard logger through lumberjack when file output is configured
	utils.ConfigureLogging(cfg.Logging.Output, cfg.Logging.FilePath, cfg.Logging.MaxSize, cfg.Logging.MaxBackups, cfg.Logging.MaxAge, cfg.Logging.Compress)

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity.
// Returns nil when caching is disabled; the analytics flow treats a nil
// client as cache-off and always recomputes.
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established (db=%d)", cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	if rc != nil {
		cancel := startCacheHealthMonitor(context.Background(), rc, cfg.Cache.CleanupInterval)
		stopFuncs = append(stopFuncs, cancel)
	}

	// Promote the configured bootstrap admin if present
	if err := ensureAdminAccount(db, cfg.Admin); err != nil {
		return nil, err
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewUserSessionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	interactionRepo := repository.NewOfferInteractionRepository(db)
	offerImageRepo := repository.NewOfferImageRepository(db)

	// Background counter reconciliation keeps the denormalized offer counters
	// in sync with the interaction log
	reconciler := scheduler.NewCounterReconciler(offerRepo, interactionRepo, db, 15*time.Minute)
	stopFuncs = append(stopFuncs, reconciler.Start(context.Background()))

	// Captcha service for admin login
	captchaSvc, err := services.NewCaptchaServiceRotate(2*time.Minute, 15, 300)
	if err != nil {
		return nil, err
	}

	// Initialize token service
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	// Google OAuth client
	googleSvc := services.NewGoogleOAuthService(
		cfg.GoogleOAuth.ClientID,
		cfg.GoogleOAuth.ClientSecret,
		cfg.GoogleOAuth.RedirectURL,
		cfg.GoogleOAuth.Timeout,
	)

	// Initialize flows
	authFlow := businessflow.NewAuthFlow(
		userRepo,
		sessionRepo,
		auditRepo,
		tokenService,
		googleSvc,
		db,
	)

	adminAuthFlow := businessflow.NewAdminAuthFlow(
		userRepo,
		sessionRepo,
		auditRepo,
		tokenService,
		captchaSvc,
		db,
	)

	offerFlow := businessflow.NewOfferFlow(
		offerRepo,
		auditRepo,
		db,
	)

	interactionFlow := businessflow.NewInteractionFlow(
		offerRepo,
		interactionRepo,
		db,
	)

	analyticsFlow := businessflow.NewAnalyticsFlow(
		offerRepo,
		interactionRepo,
		rc,
		&cfg.Cache,
		db,
	)

	exportFlow := businessflow.NewAdminExportFlow(analyticsFlow)
	offerImageFlow := businessflow.NewOfferImageFlow(offerRepo, offerImageRepo, cfg.Uploads)
	auditFlow := businessflow.NewAuditFlow(auditRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authFlow)
	adminAuthHandler := handlers.NewAdminAuthHandler(adminAuthFlow)
	offerHandler := handlers.NewOfferHandler(offerFlow, interactionFlow)
	adminOfferHandler := handlers.NewAdminOfferHandler(offerFlow)
	adminAnalyticsHandler := handlers.NewAdminAnalyticsHandler(analyticsFlow, exportFlow, auditFlow)
	offerImageHandler := handlers.NewOfferImageHandler(offerImageFlow)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Initialize router
	appRouter := router.NewFiberRouter(
		authHandler,
		adminAuthHandler,
		offerHandler,
		adminOfferHandler,
		adminAnalyticsHandler,
		offerImageHandler,
		authMiddleware,
	)

	// Create application struct from FiberRouter
	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}

// ensureAdminAccount promotes the configured bootstrap account to admin.
// The account must already exist (signed up through the normal flow).
func ensureAdminAccount(db *gorm.DB, cfg config.AdminConfig) error {
	if cfg.Email == "" {
		return nil
	}

	result := db.Model(&models.User{}).
		Where("email = ? AND role <> ?", cfg.Email, models.UserRoleAdmin).
		Update("role", models.UserRoleAdmin)
	if result.Error != nil {
		return fmt.Errorf("failed to promote admin account: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("Promoted %s to admin", cfg.Email)
	}

	return nil
}
