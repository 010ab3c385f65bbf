package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/my2a/courseselect/internal/app/controllers"
	appMigrations "github.com/my2a/courseselect/internal/app/migrations"
	appRepos "github.com/my2a/courseselect/internal/app/repositories"
	appRoutes "github.com/my2a/courseselect/internal/app/routes"
	appServices "github.com/my2a/courseselect/internal/app/services"
	"github.com/my2a/courseselect/internal/config"
	"github.com/my2a/courseselect/internal/db"
	appMiddleware "github.com/my2a/courseselect/internal/middleware"
	"github.com/my2a/courseselect/internal/pkg/logger"
	"github.com/my2a/courseselect/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	EnrollmentService    appServices.EnrollmentService
	CalendarService      appServices.CalendarService
	CatalogService       appServices.CatalogService
	StudentService       appServices.StudentService
	EnrollmentController *appControllers.EnrollmentController
	CalendarController   *appControllers.CalendarController
	CatalogController    *appControllers.CatalogController
	StudentController    *appControllers.StudentController
	Repos                *appRepos.Repositories
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", "configs/config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(ctx, dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
	if cfg.Seed.Demo {
		if err := seed.CreateDemoData(ctx, dbPool, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.StudentRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.ParcoursRepository,
		deps.Repos.CourseRepository,
		cfg.Enrollment,
		lgr.With().Str("component", "enrollment").Logger(),
	)
	deps.CalendarService = appServices.NewCalendarService(
		deps.Repos.CalendarRepository,
		cfg.Calendar.StrictSave,
		lgr.With().Str("component", "calendar").Logger(),
	)
	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.DepartmentRepository,
		deps.Repos.ParcoursRepository,
		deps.Repos.CourseRepository,
	)

	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.DepartmentRepository,
		lgr.With().Str("component", "students").Logger(),
	)

	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService)
	deps.CalendarController = appControllers.NewCalendarController(deps.CalendarService)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.CatalogController,
		deps.EnrollmentController,
		deps.CalendarController,
		deps.StudentController,
	)

	return router
}
