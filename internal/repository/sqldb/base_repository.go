package sqldb

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/domain/repository"
	"github.com/frfole/inverse-zastavky/internal/pkg/errors"
	"github.com/frfole/inverse-zastavky/internal/pkg/utils"
)

const (
	baseStationsBBoxLimit = 500
	baseCitiesSearchLimit = 50
)

type baseCityRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewBaseCityRepository(db *DB) repository.BaseCityRepository {
	return &baseCityRepository{
		db:     db,
		logger: db.logger,
	}
}

// GetByName возвращает одноимённые города в порядке импорта
func (r *baseCityRepository) GetByName(ctx context.Context, name string) ([]domain.BaseCity, error) {
	var cities []domain.BaseCity
	err := r.db.SelectContext(ctx, &cities,
		r.db.Rebind(`SELECT city_name, lat, lon FROM base_cities WHERE city_name = ? ORDER BY seq`), name)
	if err != nil {
		r.logger.Error("Failed to get cities by name", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return cities, nil
}

func (r *baseCityRepository) Search(ctx context.Context, query string) ([]domain.BaseCity, error) {
	var cities []domain.BaseCity
	err := r.db.SelectContext(ctx, &cities, r.db.Rebind(`
		SELECT city_name, lat, lon FROM base_cities
		WHERE search_key LIKE ? ESCAPE '\'
		ORDER BY city_name
		LIMIT ?
	`), utils.ContainsPattern(query), baseCitiesSearchLimit)
	if err != nil {
		r.logger.Error("Failed to search cities", zap.String("query", query), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return cities, nil
}

func (r *baseCityRepository) ReplaceAll(ctx context.Context, cities []domain.BaseCity, batchSize int) error {
	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM base_cities`); err != nil {
			return err
		}
		return insertBatches(ctx, tx,
			`INSERT INTO base_cities (seq, city_name, lat, lon, search_key) VALUES `,
			5, len(cities), batchSize,
			func(i int) []interface{} {
				c := cities[i]
				return []interface{}{i, c.Name, c.Lat, c.Lon, utils.SearchKey(c.Name)}
			})
	})
	if err != nil {
		r.logger.Error("Failed to replace base cities", zap.Int("rows", len(cities)), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

type baseStationRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewBaseStationRepository(db *DB) repository.BaseStationRepository {
	return &baseStationRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *baseStationRepository) GetByBBox(ctx context.Context, bbox domain.BBox) ([]domain.BaseStation, error) {
	var stations []domain.BaseStation
	err := r.db.SelectContext(ctx, &stations, r.db.Rebind(`
		SELECT station_name, lat, lon FROM base_stations
		WHERE ? <= lat AND lat <= ? AND ? <= lon AND lon <= ?
		LIMIT ?
	`), bbox.LatFrom, bbox.LatTo, bbox.LonFrom, bbox.LonTo, baseStationsBBoxLimit)
	if err != nil {
		r.logger.Error("Failed to get base stations by bbox", zap.Any("bbox", bbox), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return stations, nil
}

func (r *baseStationRepository) ReplaceAll(ctx context.Context, stations []domain.BaseStation, batchSize int) error {
	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM base_stations`); err != nil {
			return err
		}
		return insertBatches(ctx, tx,
			`INSERT INTO base_stations (station_name, lat, lon) VALUES `,
			3, len(stations), batchSize,
			func(i int) []interface{} {
				s := stations[i]
				return []interface{}{s.Name, s.Lat, s.Lon}
			})
	})
	if err != nil {
		r.logger.Error("Failed to replace base stations", zap.Int("rows", len(stations)), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}
