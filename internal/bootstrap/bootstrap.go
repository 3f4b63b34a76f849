package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/gradnexus/campusconnect/internal/app/controllers"
	appMigrations "github.com/gradnexus/campusconnect/internal/app/migrations"
	appRepos "github.com/gradnexus/campusconnect/internal/app/repositories"
	appRoutes "github.com/gradnexus/campusconnect/internal/app/routes"
	appServices "github.com/gradnexus/campusconnect/internal/app/services"
	"github.com/gradnexus/campusconnect/internal/config"
	"github.com/gradnexus/campusconnect/internal/db"
	appMiddleware "github.com/gradnexus/campusconnect/internal/middleware"
	pkgAuth "github.com/gradnexus/campusconnect/internal/pkg/auth"
	"github.com/gradnexus/campusconnect/internal/pkg/email"
	"github.com/gradnexus/campusconnect/internal/pkg/filestorage"
	"github.com/gradnexus/campusconnect/internal/pkg/logger"
	"github.com/gradnexus/campusconnect/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	Dispatcher     *email.Dispatcher
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.Logging.Pretty,
	})

	lgr := log.Logger // the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Bool("pretty", cfg.Logging.Pretty).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool, logger.Component("migrator"))
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.BaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	notifier := email.NewSMTPNotifier(email.SMTPConfig{
		Host:      cfg.Email.Host,
		Port:      cfg.Email.Port,
		Username:  cfg.Email.Username,
		Password:  cfg.Email.Password,
		FromName:  cfg.Email.FromName,
		FromEmail: cfg.Email.FromEmail,
		UseTLS:    cfg.Email.UseTLS,
	}, logger.Component("smtp"))
	deps.Dispatcher = email.NewDispatcher(notifier, cfg.Email.QueueSize, logger.Component("email"))
	go deps.Dispatcher.Run()

	hasher := pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost)
	signer := pkgAuth.NewSessionSigner(pkgAuth.SessionConfig{
		SecretKey: cfg.Auth.SessionSecret,
		TTL:       cfg.SessionTTL(),
		Issuer:    cfg.Auth.Issuer,
	})

	deps.Services = appServices.NewServices(database, deps.Repos, hasher, signer, deps.Dispatcher)

	if err := seed.CreateDefaultData(ctx, deps.Services.MentorshipTypes, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(
		logger.Component("auth-middleware"),
		appMiddleware.NewTokenStrategy(deps.Services.Auth),
		appMiddleware.NewSessionStrategy(deps.Services.Auth, cfg.Auth.CookieName),
	)

	cookie := appControllers.CookieConfig{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure}
	svc := deps.Services
	deps.Controllers = appRoutes.Controllers{
		Auth:           appControllers.NewAuthController(svc.Auth, svc.Account, cookie, logger.Component("auth-controller")),
		Profile:        appControllers.NewProfileController(svc.Account, deps.FileStorage, cookie, logger.Component("profile-controller")),
		Alumni:         appControllers.NewAlumniController(svc.Alumni, svc.Mentorship),
		Event:          appControllers.NewEventController(svc.Event),
		MentorshipType: appControllers.NewMentorshipTypeController(svc.MentorshipTypes),
		Mentorship:     appControllers.NewMentorshipController(svc.Mentorship, deps.FileStorage, logger.Component("mentorship-controller")),
		Job:            appControllers.NewJobController(svc.Job),
		Referral:       appControllers.NewReferralController(svc.Referral, deps.FileStorage, logger.Component("referral-controller")),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.MaxMultipartMemory = int64(cfg.Server.MaxUploadMB) << 20
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router, nil
}
