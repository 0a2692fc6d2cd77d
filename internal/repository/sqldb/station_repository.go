package sqldb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/domain/repository"
	"github.com/frfole/inverse-zastavky/internal/pkg/errors"
	"github.com/frfole/inverse-zastavky/internal/pkg/utils"
)

const (
	stationsByNameLimit   = 50
	stationsByBBoxLimit   = 500
	stationsSearchLimit   = 50
	stationNameRowsSelect = `
		SELECT s.stop_id, s.lat, s.lon, n.station_name
		FROM stations s
		JOIN station_names n ON n.stop_id = s.stop_id
	`
)

// stationRow is one (station, name) pair of the names join.
type stationRow struct {
	StopID uuid.UUID `db:"stop_id"`
	Lat    float64   `db:"lat"`
	Lon    float64   `db:"lon"`
	Name   string    `db:"station_name"`
}

// groupStations folds name rows into stations, keeping first-seen order.
func groupStations(rows []stationRow) []domain.Station {
	index := make(map[uuid.UUID]int)
	var out []domain.Station
	for _, row := range rows {
		i, ok := index[row.StopID]
		if !ok {
			i = len(out)
			index[row.StopID] = i
			out = append(out, domain.Station{
				StopID: row.StopID,
				Point:  domain.Point{Lat: row.Lat, Lon: row.Lon},
			})
		}
		out[i].Names = append(out[i].Names, row.Name)
	}
	return out
}

type stationRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewStationRepository(db *DB) repository.StationRepository {
	return &stationRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *stationRepository) selectStations(ctx context.Context, q sqlx.QueryerContext, where string, args ...interface{}) ([]domain.Station, error) {
	query := r.db.Rebind(stationNameRowsSelect + where + ` ORDER BY s.stop_id, n.station_name`)

	var rows []stationRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, err
	}
	return groupStations(rows), nil
}

func (r *stationRepository) GetByName(ctx context.Context, name string) ([]domain.Station, error) {
	stations, err := r.selectStations(ctx, r.db,
		`WHERE s.stop_id IN (SELECT stop_id FROM station_names WHERE station_name = ? LIMIT ?)`,
		name, stationsByNameLimit)
	if err != nil {
		r.logger.Error("Failed to get stations by name", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return stations, nil
}

func (r *stationRepository) GetByID(ctx context.Context, stopID uuid.UUID) (*domain.Station, error) {
	return r.getByID(ctx, r.db, stopID)
}

func (r *stationRepository) getByID(ctx context.Context, q sqlx.QueryerContext, stopID uuid.UUID) (*domain.Station, error) {
	stations, err := r.selectStations(ctx, q, `WHERE s.stop_id = ?`, stopID)
	if err != nil {
		r.logger.Error("Failed to get station", zap.String("stop_id", stopID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if len(stations) == 0 {
		return nil, errors.ErrStationNotFound.WithDetails(map[string]interface{}{"stop_id": stopID.String()})
	}
	return &stations[0], nil
}

func (r *stationRepository) GetByBBox(ctx context.Context, bbox domain.BBox) ([]domain.Station, error) {
	stations, err := r.selectStations(ctx, r.db,
		`WHERE s.stop_id IN (
			SELECT stop_id FROM stations
			WHERE ? <= lat AND lat <= ? AND ? <= lon AND lon <= ?
			LIMIT ?
		)`,
		bbox.LatFrom, bbox.LatTo, bbox.LonFrom, bbox.LonTo, stationsByBBoxLimit)
	if err != nil {
		r.logger.Error("Failed to get stations by bbox", zap.Any("bbox", bbox), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return stations, nil
}

func (r *stationRepository) Search(ctx context.Context, query string) ([]domain.Station, error) {
	stations, err := r.selectStations(ctx, r.db,
		`WHERE s.stop_id IN (
			SELECT DISTINCT stop_id FROM station_names
			WHERE search_key LIKE ? ESCAPE '\'
			LIMIT ?
		)`,
		utils.ContainsPattern(query), stationsSearchLimit)
	if err != nil {
		r.logger.Error("Failed to search stations", zap.String("query", query), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return stations, nil
}

func (r *stationRepository) Create(ctx context.Context, name string, point domain.Point) (*domain.Station, error) {
	stopID := uuid.New()

	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			tx.Rebind(`INSERT INTO stations (stop_id, lat, lon) VALUES (?, ?, ?)`),
			stopID, point.Lat, point.Lon); err != nil {
			return fmt.Errorf("insert station: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			tx.Rebind(`INSERT INTO station_names (stop_id, station_name, search_key) VALUES (?, ?, ?)`),
			stopID, name, utils.SearchKey(name)); err != nil {
			return fmt.Errorf("insert station name: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to create station", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &domain.Station{StopID: stopID, Names: []string{name}, Point: point}, nil
}

func (r *stationRepository) Move(ctx context.Context, stopID uuid.UUID, point domain.Point) (*domain.Station, error) {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE stations SET lat = ?, lon = ? WHERE stop_id = ?`),
		point.Lat, point.Lon, stopID)
	if err != nil {
		r.logger.Error("Failed to move station", zap.String("stop_id", stopID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, errors.ErrStationNotFound.WithDetails(map[string]interface{}{"stop_id": stopID.String()})
	}
	return r.GetByID(ctx, stopID)
}

func (r *stationRepository) AddName(ctx context.Context, stopID uuid.UUID, name string) (*domain.Station, error) {
	var station *domain.Station

	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := r.getByID(ctx, tx, stopID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO station_names (stop_id, station_name, search_key) VALUES (?, ?, ?)
			ON CONFLICT (stop_id, station_name) DO NOTHING
		`), stopID, name, utils.SearchKey(name)); err != nil {
			return err
		}
		var err error
		station, err = r.getByID(ctx, tx, stopID)
		return err
	})
	if err != nil {
		return nil, r.mapError("add station name", stopID, err)
	}
	return station, nil
}

func (r *stationRepository) RemoveName(ctx context.Context, stopID uuid.UUID, name string) (*domain.Station, error) {
	var station *domain.Station

	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		current, err := r.getByID(ctx, tx, stopID)
		if err != nil {
			return err
		}
		if !current.HasName(name) {
			return errors.ErrStationNotFound.WithDetails(map[string]interface{}{
				"stop_id": stopID.String(),
				"name":    name,
			})
		}

		if len(current.Names) == 1 {
			return deleteStation(ctx, tx, stopID)
		}

		if _, err := tx.ExecContext(ctx,
			tx.Rebind(`DELETE FROM station_names WHERE stop_id = ? AND station_name = ?`),
			stopID, name); err != nil {
			return err
		}
		station, err = r.getByID(ctx, tx, stopID)
		return err
	})
	if err != nil {
		return nil, r.mapError("remove station name", stopID, err)
	}
	return station, nil
}

func (r *stationRepository) Remove(ctx context.Context, stopID uuid.UUID) error {
	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		var exists int
		if err := tx.GetContext(ctx, &exists,
			tx.Rebind(`SELECT COUNT(*) FROM stations WHERE stop_id = ?`), stopID); err != nil {
			return err
		}
		if exists == 0 {
			return errors.ErrStationNotFound.WithDetails(map[string]interface{}{"stop_id": stopID.String()})
		}
		return deleteStation(ctx, tx, stopID)
	})
	if err != nil {
		return r.mapError("remove station", stopID, err)
	}
	return nil
}

// deleteStation drops a station with its names and chain links.
func deleteStation(ctx context.Context, tx *sqlx.Tx, stopID uuid.UUID) error {
	for _, q := range []string{
		`DELETE FROM chain_stop_links WHERE stop_id = ?`,
		`DELETE FROM station_names WHERE stop_id = ?`,
		`DELETE FROM stations WHERE stop_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, tx.Rebind(q), stopID); err != nil {
			return err
		}
	}
	return nil
}

func (r *stationRepository) All(ctx context.Context) ([]domain.Station, error) {
	stations, err := r.selectStations(ctx, r.db, ``)
	if err != nil {
		r.logger.Error("Failed to list stations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return stations, nil
}

// mapError passes application errors through and hides driver errors.
func (r *stationRepository) mapError(op string, stopID uuid.UUID, err error) error {
	if _, ok := errors.As(err); ok {
		return err
	}
	r.logger.Error("Failed to "+op, zap.String("stop_id", stopID.String()), zap.Error(err))
	return errors.ErrDatabaseError
}
