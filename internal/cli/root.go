// Package cli implements the zastavky management command: offline imports,
// export of located stations, statistics and a dry-run chain extraction.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/config"
	"github.com/frfole/inverse-zastavky/internal/pkg/logger"
	"github.com/frfole/inverse-zastavky/internal/repository/cache"
	"github.com/frfole/inverse-zastavky/internal/repository/sqldb"
	"github.com/frfole/inverse-zastavky/internal/usecase"
)

var Version = "dev"

type options struct {
	configFile string
	logLevel   string
}

// Execute runs the root command and exits non-zero on failure.
func Execute(version string) {
	Version = version
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "zastavky",
		Short:         "Manage stop chains and located stations",
		SilenceUsage:  true,
		SilenceErrors: false,
		Version:       Version,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", ".env", "path to the env config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level, overrides LOG_LEVEL")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import data into the database",
	}
	importCmd.AddCommand(
		newImportNetexCommand(opts),
		newImportBaseCommand(opts, "base-stations", "Import the base stop layer (GeoJSON)", baseStations),
		newImportBaseCommand(opts, "base-cities", "Import the base city layer (GeoJSON)", baseCities),
	)

	root.AddCommand(
		importCmd,
		newExportCommand(opts),
		newStatsCommand(opts),
		newExtractCommand(opts),
	)
	return root
}

// env is what a command needs after config is loaded; store is opened lazily.
type env struct {
	cfg *config.Config
	log *zap.Logger

	db    *sqldb.DB
	redis *cache.Redis
}

func (o *options) load() (*env, error) {
	cfg, err := config.LoadFile(o.configFile)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	// stdout занят результатами команд
	log, err := logger.New(level, logger.WithOutput("stderr"), logger.WithName("cli"))
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	return &env{cfg: cfg, log: log}, nil
}

func (e *env) openStore(ctx context.Context) error {
	db, err := sqldb.New(&e.cfg.Database, e.log)
	if err != nil {
		return err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return err
	}
	e.db = db
	return nil
}

// importUseCase wires the import use case; Redis is optional here and only
// used to drop cached suggestions after the import.
func (e *env) importUseCase() *usecase.ImportUseCase {
	var invalidator usecase.SuggestionInvalidator
	if e.cfg.Redis.Host != "" {
		redis, err := cache.NewRedis(&e.cfg.Redis, e.log)
		if err != nil {
			e.log.Warn("Redis unavailable, cached suggestions are not invalidated", zap.Error(err))
		} else {
			e.redis = redis
			invalidator = usecase.NewSuggestUseCase(nil, cache.NewCacheRepository(redis), e.cfg.Cache.SuggestCacheTTL, e.log)
		}
	}

	return usecase.NewImportUseCase(
		sqldb.NewChainRepository(e.db),
		sqldb.NewStationRepository(e.db),
		sqldb.NewBaseStationRepository(e.db),
		sqldb.NewBaseCityRepository(e.db),
		invalidator,
		e.cfg.Import.BatchSize,
		"",
		e.log,
	)
}

func (e *env) close() {
	if e.redis != nil {
		if err := e.redis.Close(); err != nil {
			e.log.Warn("Failed to close Redis", zap.Error(err))
		}
	}
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			e.log.Warn("Failed to close database", zap.Error(err))
		}
	}
	_ = e.log.Sync()
}
