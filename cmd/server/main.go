package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	_ "github.com/menudash/backend/docs"
	catalogapp "github.com/menudash/backend/internal/application/catalog"
	"github.com/menudash/backend/internal/application/catalog/form"
	"github.com/menudash/backend/internal/infrastructure/apiclient"
	"github.com/menudash/backend/internal/infrastructure/auth"
	"github.com/menudash/backend/internal/infrastructure/cache"
	"github.com/menudash/backend/internal/infrastructure/config"
	"github.com/menudash/backend/internal/infrastructure/event"
	"github.com/menudash/backend/internal/infrastructure/logger"
	"github.com/menudash/backend/internal/infrastructure/migration"
	"github.com/menudash/backend/internal/infrastructure/persistence"
	"github.com/menudash/backend/internal/infrastructure/storage"
	"github.com/menudash/backend/internal/infrastructure/telemetry"
	"github.com/menudash/backend/internal/interfaces/http/handler"
	"github.com/menudash/backend/internal/interfaces/http/middleware"
	"github.com/menudash/backend/internal/interfaces/http/router"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Menu Catalog API
//	@version		1.0
//	@description	Admin API of the restaurant menu catalog: companies, categories, products and complements.

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token issued by the authentication provider. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	telCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}

	logProvider, err := telemetry.NewLoggerProvider(ctx, telCfg, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log export", zap.Error(err))
	}
	log, err := logger.New(logCfg, logProvider.Core(telCfg.ServiceName, logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting menu catalog backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics export", zap.Error(err))
	}

	if cfg.Database.MigrateOnStart {
		if err := migrateUp(&cfg.Database, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), logger.WithSlowThreshold(cfg.Database.SlowQuery))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBName:     cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	complementRepo := persistence.NewGormComplementRepository(db.DB)
	itemRepo := persistence.NewGormComplementItemRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)

	complementCache, cacheCloser := cache.NewComplementCache(cfg.Cache, cfg.Redis, log)
	defer func() { _ = cacheCloser.Close() }()

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLoggingHandler(log))
	if complementCache != nil {
		eventBus.Subscribe(cache.NewComplementInvalidationHandler(complementCache, log))
	}
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	var imageStorage catalogapp.ObjectStorageService
	if cfg.Storage.Enabled {
		store, err := storage.NewImageStore(cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize image storage", zap.Error(err))
		}
		if cfg.App.Env == "development" {
			if err := store.EnsureBucket(ctx); err != nil {
				log.Warn("Failed to ensure image bucket", zap.String("bucket", store.Bucket()), zap.Error(err))
			}
		}
		imageStorage = store
	}

	// Services
	companyService := catalogapp.NewCompanyService(companyRepo)
	companyService.SetEventPublisher(eventBus)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	categoryService.SetEventPublisher(eventBus)
	complementService := catalogapp.NewComplementService(complementRepo, productRepo)
	complementService.SetEventPublisher(eventBus)
	complementService.SetCache(complementCache)
	itemService := catalogapp.NewItemService(complementRepo, itemRepo)
	itemService.SetEventPublisher(eventBus)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, imageStorage)
	productService.SetEventPublisher(eventBus)
	imageCfg := catalogapp.DefaultProductImageConfig()
	if cfg.Storage.PresignExpiry > 0 {
		imageCfg.UploadURLExpiry = cfg.Storage.PresignExpiry
	}
	productService.SetImageConfig(imageCfg)

	var gateway form.Gateway = form.NewLocalGateway(complementService, itemService, productService)
	if cfg.Form.Gateway == "http" {
		client, err := apiclient.New(cfg.Form, apiclient.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize form API client", zap.Error(err))
		}
		gateway = client
		log.Info("Complement form uses the HTTP gateway", zap.String("base_url", cfg.Form.APIBaseURL))
	}
	formMetrics, err := telemetry.NewFormMetrics(meterProvider.Meter("menudash/form"))
	if err != nil {
		log.Fatal("Failed to register form metrics", zap.Error(err))
	}
	editor := form.NewComplementEditor(gateway, log, form.WithMetrics(formMetrics))

	verifier, err := auth.NewSessionVerifier(cfg.Auth)
	if err != nil {
		log.Fatal("Failed to initialize session verifier", zap.Error(err))
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: telCfg.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
			SkipPaths:   []string{"/health", cfg.Metrics.Path},
		}),
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log, logger.WithSkipPaths("/health", cfg.Metrics.Path)),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.SpanErrorMarker(),
	)

	if cfg.Metrics.Enabled {
		httpMetrics := telemetry.NewHTTPMetrics(telCfg.ServiceName)
		poolStats, err := db.Collector()
		if err == nil {
			err = httpMetrics.Register(poolStats)
		}
		if err != nil {
			log.Warn("Database pool metrics unavailable", zap.Error(err))
		}
		engine.Use(httpMetrics.Middleware())
		engine.GET(cfg.Metrics.Path, httpMetrics.Handler())
	}

	checks := map[string]handler.Pinger{"database": db}
	if pinger, ok := complementCache.(handler.Pinger); ok {
		checks["redis"] = pinger
	}
	systemHandler := handler.NewSystemHandler(version, checks)
	engine.GET("/health", systemHandler.Health)

	authCfg := middleware.DefaultAuthConfig(verifier)
	authCfg.Logger = log

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, middleware.SessionAuth(middleware.AuthConfig{Verifier: verifier, Logger: log})),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	router.NewRouter(engine).
		Use(middleware.SessionAuth(authCfg), middleware.TracingAttributeInjector()).
		Register(router.CatalogRoutes(router.CatalogHandlers{
			Company:        handler.NewCompanyHandler(companyService),
			Category:       handler.NewCategoryHandler(categoryService),
			Complement:     handler.NewComplementHandler(complementService),
			ComplementForm: handler.NewComplementFormHandler(editor),
			Item:           handler.NewItemHandler(itemService),
			Product:        handler.NewProductHandler(productService),
			System:         systemHandler,
		})...).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Event bus stop failed", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Meter provider shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Log provider shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// migrateUp applies pending embedded migrations over a dedicated connection,
// since the migrate driver closes the pool it is given.
func migrateUp(cfg *config.DatabaseConfig, log *zap.Logger) error {
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, "", log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer m.Close()
	return m.Up()
}
