package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/eduflex/backend/docs"
	"github.com/eduflex/backend/internal/auth"
	"github.com/eduflex/backend/internal/config"
	"github.com/eduflex/backend/internal/handlers"
	"github.com/eduflex/backend/internal/logger"
	"github.com/eduflex/backend/internal/middlewares"
	"github.com/eduflex/backend/internal/models"
	"github.com/eduflex/backend/internal/payments"
	"github.com/eduflex/backend/internal/repositories"
	"github.com/eduflex/backend/internal/revalidate"
	"github.com/eduflex/backend/internal/services"
)

const maxRequestSize = 1 * 1024 * 1024 // 1MB, JSON bodies only

// @title EduFlex API
// @version 1.0
// @description API for the EduFlex learning platform

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token, prefixed with "Bearer "
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting EduFlex API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize token validator for auth middleware
	tokenValidator := auth.NewTokenValidator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize payment gateway and revalidation webhook clients
	checkoutProvider := payments.NewSnapProvider(cfg.Checkout)
	revalidator := revalidate.NewClient(cfg.Revalidate, logger.Logger)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	courseRepo := repositories.NewCourseRepository(db)
	chapterRepo := repositories.NewChapterRepository(db)
	lessonRepo := repositories.NewLessonRepository(db)
	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	progressRepo := repositories.NewUserProgressRepository(db)
	wishlistRepo := repositories.NewWishlistRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	messageRepo := repositories.NewContactMessageRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	// Initialize services
	settingsService := services.NewSettingsService(settingRepo)
	catalogService := services.NewCatalogService(courseRepo, lessonRepo, enrollmentRepo, progressRepo, reviewRepo)
	progressService := services.NewProgressService(lessonRepo, enrollmentRepo, progressRepo, courseRepo)
	wishlistService := services.NewWishlistService(wishlistRepo, courseRepo)
	reviewService := services.NewReviewService(reviewRepo, courseRepo, enrollmentRepo)
	checkoutService := services.NewCheckoutService(checkoutProvider, courseRepo, enrollmentRepo, userRepo, logger.Logger)
	contactService := services.NewContactService(messageRepo)
	profileService := services.NewProfileService(userRepo)
	instructorService := services.NewInstructorService(courseRepo, chapterRepo, lessonRepo, enrollmentRepo, progressRepo, settingsService, revalidator)
	adminService := services.NewAdminService(userRepo, courseRepo, messageRepo, revalidator)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger.Logger)
	learnerHandler := handlers.NewLearnerHandler(progressService, wishlistService, reviewService, logger.Logger)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, logger.Logger)
	contactHandler := handlers.NewContactHandler(contactService, profileService, logger.Logger)
	instructorHandler := handlers.NewInstructorHandler(instructorService, logger.Logger)
	adminHandler := handlers.NewAdminHandler(adminService, settingsService, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(maxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public surface. A token is picked up when present so the catalog
		// can attach enrollment and completion state.
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth(tokenValidator))
			catalogHandler.RegisterRoutes(r)
			contactHandler.RegisterPublicRoutes(r)
		})

		// Signed-in surface
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokenValidator))
			learnerHandler.RegisterRoutes(r)
			checkoutHandler.RegisterRoutes(r)
			contactHandler.RegisterAuthRoutes(r)
		})

		// Instructor surface. Admins pass the role check too.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(tokenValidator, models.RoleInstructor))
			instructorHandler.RegisterRoutes(r)
		})

		// Admin surface
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(tokenValidator, models.RoleAdmin))
			adminHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Try the migrations folder relative to the binary first
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
