package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"assessment-prediction-api/config"
	"assessment-prediction-api/dataset"
	"assessment-prediction-api/handlers"
	"assessment-prediction-api/logger"
	"assessment-prediction-api/middleware"
	"assessment-prediction-api/models"
	"assessment-prediction-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Assessment Prediction API")

	db, err := openDatabase(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.Assessment{}, &models.ReloadAudit{}); err != nil {
		logger.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	var cache *services.CacheService
	if cfg.Redis.Enabled {
		cache, err = services.NewCacheService(cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		}
	}

	fetcher := dataset.NewFetcher(cfg.Dataset)
	store := services.NewAssessmentStore(db)
	state := services.NewModelState()
	reloadSvc := services.NewReloadService(fetcher, store, state, cache)

	reloadHandler := handlers.NewReloadHandler(reloadSvc)
	predictHandler := handlers.NewPredictHandler(state)
	summaryHandler := handlers.NewSummaryHandler(state, store, cache)
	healthHandler := handlers.NewHealthHandler(state, store)

	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))

	router.POST("/reload", reloadHandler.Reload)
	router.POST("/predict", predictHandler.Predict)
	router.GET("/summary", summaryHandler.GetSummary)
	router.GET("/reloads", summaryHandler.GetReloads)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws/reloads", handlers.LiveReloads(cache))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Server starting", zap.String("address", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// openDatabase connects with the configured gorm dialect. SQLite mirrors the
// original single-file deployment; postgres is for shared environments.
func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error
	switch cfg.Driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	default:
		db, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}
