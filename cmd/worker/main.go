package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/config"
	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/pkg/logger"
	"github.com/frfole/inverse-zastavky/internal/repository/cache"
	redisRepo "github.com/frfole/inverse-zastavky/internal/repository/redis"
	"github.com/frfole/inverse-zastavky/internal/repository/sqldb"
	"github.com/frfole/inverse-zastavky/internal/usecase"
	"github.com/frfole/inverse-zastavky/internal/worker"
	"github.com/frfole/inverse-zastavky/internal/worker/importer"
)

// statsRefreshingImporter обновляет кеш статистики после каждого успешного импорта
type statsRefreshingImporter struct {
	*usecase.ImportUseCase
	stats  *usecase.StatsUseCase
	logger *zap.Logger
}

func (i statsRefreshingImporter) Run(ctx context.Context, job domain.ImportJob) (*domain.ImportResult, error) {
	result, err := i.ImportUseCase.Run(ctx, job)
	if err != nil {
		return nil, err
	}
	if _, err := i.stats.RefreshStatistics(ctx); err != nil {
		i.logger.Warn("Failed to refresh statistics after import", zap.Error(err))
	}
	return result, nil
}

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, logger.WithName("worker"))
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting import worker",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Duration("read_timeout", cfg.Worker.StreamReadTimeout),
		zap.String("import_dir", cfg.Import.Dir))

	// 3. Database
	db, err := sqldb.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	if err := db.EnsureSchema(context.Background()); err != nil {
		log.Fatal("Failed to apply schema", zap.Error(err))
	}

	// 4. Redis: cache client for invalidation, separate client for blocking stream reads
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	streamsClient, err := cache.NewRedisStreams(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis Streams", zap.Error(err))
	}
	defer streamsClient.Close()

	// 5. Repositories and use cases
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(streamsClient, log)

	chainRepo := sqldb.NewChainRepository(db)
	stationRepo := sqldb.NewStationRepository(db)

	// движок не нужен: воркер только сбрасывает кеш подсказок
	suggestUC := usecase.NewSuggestUseCase(nil, cacheRepo, cfg.Cache.SuggestCacheTTL, log)
	importUC := usecase.NewImportUseCase(
		chainRepo,
		stationRepo,
		sqldb.NewBaseStationRepository(db),
		sqldb.NewBaseCityRepository(db),
		suggestUC,
		cfg.Import.BatchSize,
		cfg.Import.Dir,
		log,
	)
	statsUC := usecase.NewStatsUseCase(sqldb.NewStatsRepository(db, log), cacheRepo, cfg.Cache.StatsCacheTTL, log)

	// 6. Workers
	importWorker := importer.NewImportWorker(
		streamRepo,
		statsRefreshingImporter{ImportUseCase: importUC, stats: statsUC, logger: log},
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		cfg.Worker.StreamReadTimeout,
		log,
	)

	workerManager := worker.NewWorkerManager(worker.DefaultShutdownTimeout, log)
	workerManager.Register(importWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
