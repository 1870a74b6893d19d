package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oncotrack/config"
	deliveryHttp "oncotrack/internal/delivery/http"
	"oncotrack/internal/delivery/http/handler"
	"oncotrack/internal/delivery/http/middleware"
	"oncotrack/internal/infrastructure/cache"
	"oncotrack/internal/infrastructure/database"
	"oncotrack/internal/repository"
	"oncotrack/internal/service"
	"oncotrack/internal/usecase"
	"oncotrack/pkg/jwt"
	"oncotrack/pkg/timeutil"
	"oncotrack/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	setupLogger(cfg.App)
	logrus.Info("Configuration loaded successfully")

	location, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	// Initialize database
	db, err := openDatabase(cfg, location)
	if err != nil {
		return nil, err
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Sessions live in Redis when configured, in process memory otherwise
	var (
		sessions service.SessionStore
		limiter  service.AttemptLimiter
	)
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		sessions = cache.NewRedisSessionStore(redisClient)
		limiter = cache.NewRedisAttemptLimiter(redisClient, cfg.Login.MaxAttempts, cfg.Login.AttemptWindow)
		logrus.Info("Redis connected successfully")
	} else {
		sessions = cache.NewMemorySessionStore()
		limiter = cache.NewMemoryAttemptLimiter(cfg.Login.MaxAttempts, cfg.Login.AttemptWindow)
		logrus.Warn("REDIS_HOST not set, sessions are kept in memory")
	}

	days := timeutil.NewDayResolver(timeutil.SystemClock(), location)
	app.Server = initializeServer(cfg, db, sessions, limiter, days)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func gormLogLevel(env string) string {
	if env == "development" {
		return "info"
	}
	return "warn"
}

func openDatabase(cfg *config.Config, location *time.Location) (*gorm.DB, error) {
	if cfg.DB.Driver == config.DriverSQLite {
		db, err := database.NewSQLiteConnection(cfg.DB.SQLitePath, gormLogLevel(cfg.App.Env))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return db, nil
	}

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(cfg.DB); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	db, err := database.NewPostgresConnection(cfg.DB, location, gormLogLevel(cfg.App.Env))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	db *gorm.DB,
	sessions service.SessionStore,
	limiter service.AttemptLimiter,
	days *timeutil.DayResolver,
) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	moodRepo := repository.NewMoodRepository()
	symptomOptionRepo := repository.NewSymptomOptionRepository()
	symptomRepo := repository.NewSymptomRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	medicationRepo := repository.NewMedicationRepository()
	postRepo := repository.NewPostRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, auditService, jwtService, sessions, limiter)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	moodUsecase := usecase.NewMoodUsecase(db, log, moodRepo, auditService, days)
	symptomUsecase := usecase.NewSymptomUsecase(db, log, symptomOptionRepo, symptomRepo, auditService, days)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, auditService, days)
	medicationUsecase := usecase.NewMedicationUsecase(db, log, medicationRepo, auditService, days)
	postUsecase := usecase.NewPostUsecase(db, log, postRepo, auditService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	userHandler := handler.NewUserHandler(userUsecase, auditLogUsecase)
	moodHandler := handler.NewMoodHandler(moodUsecase, customValidator)
	symptomHandler := handler.NewSymptomHandler(symptomUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	medicationHandler := handler.NewMedicationHandler(medicationUsecase, customValidator)
	postHandler := handler.NewPostHandler(postUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessions, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		userHandler,
		moodHandler,
		symptomHandler,
		appointmentHandler,
		medicationHandler,
		postHandler,
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
	)

	// Create server
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.App.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes the database and Redis connections
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
