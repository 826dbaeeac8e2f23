package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsync "github.com/gradestock/backend/internal/application/sync"
	"github.com/gradestock/backend/internal/domain/sync"
	"github.com/gradestock/backend/internal/infrastructure/config"
	"github.com/gradestock/backend/internal/infrastructure/logger"
	"github.com/gradestock/backend/internal/infrastructure/persistence"
	"github.com/gradestock/backend/internal/infrastructure/remote"
	"github.com/gradestock/backend/internal/interfaces/http/handler"
	"github.com/gradestock/backend/internal/interfaces/http/middleware"
	"github.com/gradestock/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting GradeStock Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully",
		zap.String("driver", cfg.Database.Driver),
	)

	// Initialize repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	masterProductRepo := persistence.NewGormMasterProductRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	mappingRepo := persistence.NewGormMappingRepository(db.DB)

	// Initialize the remote catalog client
	remoteClient, err := remote.NewClient(&remote.Config{
		APIBaseURL:     cfg.Remote.APIBaseURL,
		SearchURL:      cfg.Remote.SearchURL,
		SearchIndex:    cfg.Remote.SearchIndex,
		SearchAppID:    cfg.Remote.SearchAppID,
		SearchAPIKey:   cfg.Remote.SearchAPIKey,
		UserAgent:      cfg.Remote.UserAgent,
		HitsPerPage:    cfg.Remote.HitsPerPage,
		TimeoutSeconds: cfg.Remote.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to create remote catalog client", zap.Error(err))
	}

	// Initialize the sync engine
	runState := sync.NewRunState()
	resolver := appsync.NewIdentityResolver(masterProductRepo, variantRepo, mappingRepo)

	syncConfig := appsync.Config{
		Workers:         cfg.Sync.Workers,
		IncludeKeywords: cfg.Sync.IncludeKeywords,
		ExcludeKeywords: cfg.Sync.ExcludeKeywords,
	}
	if len(syncConfig.IncludeKeywords) == 0 {
		syncConfig.IncludeKeywords = appsync.DefaultIncludeKeywords
	}
	if len(syncConfig.ExcludeKeywords) == 0 {
		syncConfig.ExcludeKeywords = appsync.DefaultExcludeKeywords
	}
	coordinator := appsync.NewCoordinator(remoteClient, categoryRepo, resolver, variantRepo, runState, log, syncConfig)
	taxonomyRefresher := appsync.NewTaxonomyRefresher(remoteClient, categoryRepo, log)

	// Initialize HTTP handlers
	syncHandler := handler.NewSyncHandler(coordinator, taxonomyRefresher, log)
	catalogHandler := handler.NewCatalogHandler(masterProductRepo, categoryRepo)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(syncHandler).
		Register(catalogHandler).
		Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Ask a running sync to stop and wait for its workers to drain before
	// closing the database.
	coordinator.Stop()
	coordinator.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
