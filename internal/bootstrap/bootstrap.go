package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edutech-cl/platform/docs" // Generated swagger docs
	appControllers "github.com/edutech-cl/platform/internal/app/controllers"
	appMigrations "github.com/edutech-cl/platform/internal/app/migrations"
	appRepos "github.com/edutech-cl/platform/internal/app/repositories"
	appRoutes "github.com/edutech-cl/platform/internal/app/routes"
	appServices "github.com/edutech-cl/platform/internal/app/services"
	"github.com/edutech-cl/platform/internal/config"
	"github.com/edutech-cl/platform/internal/db"
	appMiddleware "github.com/edutech-cl/platform/internal/middleware"
	pkgAuth "github.com/edutech-cl/platform/internal/pkg/auth"
	"github.com/edutech-cl/platform/internal/pkg/helpers"
	"github.com/edutech-cl/platform/internal/pkg/logger"
	"github.com/edutech-cl/platform/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	UserService          *appServices.UserService
	CourseService        *appServices.CourseService
	EnrollmentService    *appServices.EnrollmentService
	AuthController       *appControllers.AuthController
	UserController       *appControllers.UserController
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
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
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Startup continues without default data
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	txRunner := appRepos.NewTxRunner(database, deps.Repos)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.UserService = appServices.NewUserService(
		txRunner,
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
		deps.Repos.EnrollmentRepository,
		cfg.Entities.CascadeDelete,
		lgr,
	)
	deps.CourseService = appServices.NewCourseService(
		txRunner,
		deps.Repos.CourseRepository,
		deps.Repos.EnrollmentRepository,
		cfg.Entities.CascadeDelete,
	)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		txRunner,
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
		deps.Repos.EnrollmentRepository,
		lgr,
	)

	deps.AuthController = appControllers.NewAuthController(deps.UserService, deps.JWTService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService)

	return deps, nil
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

	router := gin.Default()
	router.Use(appMiddleware.RequestID())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.CourseController,
		deps.EnrollmentController,
		deps.JWTService,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
