package main

// @title Inverse Zastavky API
// @version 1.0.0
// @description Обратное геокодирование остановок: цепочки остановок из NeTEx,
// @description восстановление пути цепочки по населённым пунктам и по станциям,
// @description редактирование станций и привязок позиций цепочек.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/frfole/inverse-zastavky/docs"
	"github.com/frfole/inverse-zastavky/internal/config"
	httpDelivery "github.com/frfole/inverse-zastavky/internal/delivery/http"
	"github.com/frfole/inverse-zastavky/internal/delivery/http/handler"
	"github.com/frfole/inverse-zastavky/internal/pkg/logger"
	"github.com/frfole/inverse-zastavky/internal/repository/cache"
	redisRepo "github.com/frfole/inverse-zastavky/internal/repository/redis"
	"github.com/frfole/inverse-zastavky/internal/repository/sqldb"
	"github.com/frfole/inverse-zastavky/internal/suggest"
	"github.com/frfole/inverse-zastavky/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, logger.WithName("api"))
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting inverse-zastavky API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// 3. Connect to the database and make sure the schema exists
	db, err := sqldb.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to apply schema", zap.Error(err))
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 5. Repositories
	chainRepo := sqldb.NewChainRepository(db)
	stationRepo := sqldb.NewStationRepository(db)
	baseCityRepo := sqldb.NewBaseCityRepository(db)
	baseStationRepo := sqldb.NewBaseStationRepository(db)
	statsRepo := sqldb.NewStatsRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	remap, err := suggest.LoadRemap(cfg.Suggest.RemapPath)
	if err != nil {
		log.Fatal("Failed to load city remap", zap.String("path", cfg.Suggest.RemapPath), zap.Error(err))
	}
	log.Info("Repositories initialized", zap.Int("city_remap", len(remap)))

	// 6. Use cases
	engine := suggest.NewEngine(chainRepo, baseCityRepo, stationRepo, remap, suggest.Options{
		MaxPaths:      cfg.Suggest.MaxPaths,
		DedupRadiusKm: cfg.Suggest.DedupRadiusKm,
	}, log)

	suggestUC := usecase.NewSuggestUseCase(engine, cacheRepo, cfg.Cache.SuggestCacheTTL, log)
	chainUC := usecase.NewChainUseCase(chainRepo, stationRepo, log)
	stationUC := usecase.NewStationUseCase(stationRepo, log)
	baseDataUC := usecase.NewBaseDataUseCase(baseStationRepo, baseCityRepo, remap, log)
	statsUC := usecase.NewStatsUseCase(statsRepo, cacheRepo, cfg.Cache.StatsCacheTTL, log)

	// 7. HTTP handlers and server
	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Chain:    handler.NewChainHandler(chainUC, suggestUC, log),
		Station:  handler.NewStationHandler(stationUC, log),
		BaseData: handler.NewBaseDataHandler(baseDataUC, log),
		Stats:    handler.NewStatsHandler(statsUC, log),
		Import:   handler.NewImportHandler(streamRepo, log),
	}, db)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Failed to close database", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
