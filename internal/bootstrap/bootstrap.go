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

	_ "github.com/emaktab/pesantren-backend/docs" // Generated swagger docs
	appControllers "github.com/emaktab/pesantren-backend/internal/app/controllers"
	appMigrations "github.com/emaktab/pesantren-backend/internal/app/migrations"
	appRepos "github.com/emaktab/pesantren-backend/internal/app/repositories"
	appRoutes "github.com/emaktab/pesantren-backend/internal/app/routes"
	appServices "github.com/emaktab/pesantren-backend/internal/app/services"
	"github.com/emaktab/pesantren-backend/internal/config"
	"github.com/emaktab/pesantren-backend/internal/db"
	appMiddleware "github.com/emaktab/pesantren-backend/internal/middleware"
	pkgAuth "github.com/emaktab/pesantren-backend/internal/pkg/auth"
	"github.com/emaktab/pesantren-backend/internal/pkg/filestorage"
	"github.com/emaktab/pesantren-backend/internal/pkg/helpers"
	"github.com/emaktab/pesantren-backend/internal/pkg/logger"
	"github.com/emaktab/pesantren-backend/internal/seed"
)

// signedURLBasePath is the route prefix the file download endpoint is
// mounted at. Signed URLs are built against it.
const signedURLBasePath = "/api/v1/files"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	Services          *appServices.Services
	AuthController    *appControllers.AuthController
	SantriController  *appControllers.SantriController
	WaliController    *appControllers.WaliController
	DokumenController *appControllers.DokumenController
	LayananController *appControllers.LayananController
	PilarController   *appControllers.PilarController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	JWTService        *pkgAuth.JWTService
	FileStorage       *filestorage.LocalStorage
	URLSigner         *filestorage.HMACSigner
	Logger            zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds default master data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection established")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := filepath.Join("internal", "app", "migrations", "sql")
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations applied")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.Path)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.URLSigner = filestorage.NewHMACSigner(cfg.Storage.SigningSecret, signedURLBasePath)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	pilarService := appServices.NewPilarService(deps.Repos.PilarRepository)
	deps.Services = &appServices.Services{
		AuthService: appServices.NewAuthService(
			deps.Repos.UserRepository,
			deps.Repos.TokenRepository,
			deps.JWTService,
		),
		SantriService: appServices.NewSantriService(
			deps.Repos.SantriRepository,
			deps.Repos.WaliRepository,
		),
		WaliService: appServices.NewWaliService(
			deps.Repos.WaliRepository,
			deps.Repos.SantriRepository,
		),
		DokumenService: appServices.NewDokumenService(
			deps.Repos.DokumenRepository,
			deps.Repos.SantriRepository,
			deps.FileStorage,
			deps.URLSigner,
			helpers.ParseDuration(cfg.Storage.SignedURLTTL, 1*time.Hour),
		),
		LayananService: appServices.NewLayananService(
			deps.Repos.LedgerRepository,
			deps.Repos.SantriRepository,
		),
		GenerateService: appServices.NewGenerateService(
			deps.Repos.LedgerRepository,
			deps.Repos.KeuanganRepository,
			deps.Repos.SantriRepository,
			pilarService,
			database,
		),
		PilarService: pilarService,
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.SantriController = appControllers.NewSantriController(deps.Services.SantriService)
	deps.WaliController = appControllers.NewWaliController(deps.Services.WaliService)
	deps.DokumenController = appControllers.NewDokumenController(deps.Services.DokumenService, deps.FileStorage, deps.URLSigner)
	deps.LayananController = appControllers.NewLayananController(deps.Services.LayananService, deps.Services.GenerateService)
	deps.PilarController = appControllers.NewPilarController(deps.Services.PilarService)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.SantriController,
		deps.WaliController,
		deps.DokumenController,
		deps.LayananController,
		deps.PilarController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
