package sqldb

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/domain/repository"
)

type statsRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewStatsRepository создает новый экземпляр stats repository
func NewStatsRepository(db *DB, logger *zap.Logger) repository.StatsRepository {
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

// GetStatistics возвращает счётчики по всем таблицам одним запросом
func (r *statsRepository) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM stations)                        AS stations,
			(SELECT COUNT(*) FROM station_names)                   AS station_names,
			(SELECT COUNT(DISTINCT chain_hash) FROM chain_stops)   AS chains,
			(SELECT COUNT(*) FROM chain_stops)                     AS chain_stops,
			(SELECT COUNT(*) FROM chain_stop_links l
				JOIN chain_stops c ON c.chain_hash = l.chain_hash AND c.pos = l.pos) AS linked_stops,
			(SELECT COUNT(*) FROM base_stations)                   AS base_stations,
			(SELECT COUNT(*) FROM base_cities)                     AS base_cities
	`

	stats := &domain.Statistics{}
	if err := r.db.GetContext(ctx, stats, query); err != nil {
		r.logger.Error("failed to get statistics", zap.Error(err))
		return nil, fmt.Errorf("get statistics: %w", err)
	}
	stats.LastUpdated = time.Now()

	return stats, nil
}
