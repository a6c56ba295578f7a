package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/admissions/internal/app/controllers"
	appRepos "github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/app/repositories/postgres"
	"github.com/yigit/admissions/internal/app/repositories/sqlite"
	appRoutes "github.com/yigit/admissions/internal/app/routes"
	appServices "github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/config"
	appMiddleware "github.com/yigit/admissions/internal/middleware"
	"github.com/yigit/admissions/internal/pkg/logger"
	"github.com/yigit/admissions/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store               appRepos.Store
	CourseService       appServices.CourseService
	ApplicantService    appServices.ApplicantService
	ReportService       appServices.ReportService
	AuditService        appServices.AuditService
	CourseController    *appControllers.CourseController
	ApplicantController *appControllers.ApplicantController
	ReportController    *appControllers.ReportController
	HealthController    *appControllers.HealthController
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
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

// OpenStore connects to the database selected by database.driver.
func OpenStore(cfg *config.Config, lgr zerolog.Logger) (appRepos.Store, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")

	var (
		store appRepos.Store
		err   error
	)
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		store, err = postgres.Open(cfg)
	case config.DriverSQLite:
		store, err = sqlite.Open(cfg)
	default:
		err = fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Database connection successfully established.")
	return store, nil
}

// InitializeDatabase migrates the schema, installs the delete-audit trail
// and, when seedDemo is set, inserts demo data into an empty database.
func InitializeDatabase(ctx context.Context, store appRepos.Store, seedDemo bool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	if err := store.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return err
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	audit := appServices.NewAuditService(store, logger.Component("audit"))
	if err := audit.EnsureAuditTrail(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to install audit trail")
		return fmt.Errorf("audit trail setup failed: %w", err)
	}
	lgr.Info().Msg("Audit trail ready.")

	if seedDemo {
		if _, err := seed.CreateDemoData(ctx, store, lgr); err != nil {
			return fmt.Errorf("demo data failed: %w", err)
		}
	}
	return nil
}

// SetupDatabase opens the store and initializes it for serving.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (appRepos.Store, error) {
	store, err := OpenStore(cfg, lgr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := InitializeDatabase(ctx, store, cfg.Seed.DemoData, lgr); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(store appRepos.Store, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Store: store, Logger: lgr}

	deps.CourseService = appServices.NewCourseService(store, logger.Component("course"))
	deps.ApplicantService = appServices.NewApplicantService(store, logger.Component("applicant"))
	deps.ReportService = appServices.NewReportService(store, logger.Component("report"))
	deps.AuditService = appServices.NewAuditService(store, logger.Component("audit"))

	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.ApplicantController = appControllers.NewApplicantController(deps.ApplicantService)
	deps.ReportController = appControllers.NewReportController(deps.ReportService)
	deps.HealthController = appControllers.NewHealthController(store)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.Recovery(),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Course:    deps.CourseController,
		Applicant: deps.ApplicantController,
		Report:    deps.ReportController,
		Health:    deps.HealthController,
	})

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
