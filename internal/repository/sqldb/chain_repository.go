package sqldb

import (
	"context"
	"database/sql"
	stderrors "errors"
	"sort"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/domain/repository"
	"github.com/frfole/inverse-zastavky/internal/pkg/errors"
	"github.com/frfole/inverse-zastavky/internal/pkg/utils"
)

const chainStationSelect = `
	SELECT c.chain_hash, c.pos, c.station_name, l.stop_id
	FROM chain_stops c
	LEFT JOIN chain_stop_links l ON l.chain_hash = c.chain_hash AND l.pos = c.pos
`

type chainRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewChainRepository(db *DB) repository.ChainRepository {
	return &chainRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *chainRepository) ReplaceAll(ctx context.Context, chains domain.Chains, batchSize int) error {
	hashes := make([]string, 0, len(chains))
	for h := range chains {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)

	type stopRow struct {
		hash string
		pos  int
		name string
	}
	rows := make([]stopRow, 0, chains.StopCount())
	for _, h := range hashes {
		for pos, name := range chains[h] {
			rows = append(rows, stopRow{hash: h, pos: pos, name: name})
		}
	}

	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM chain_stops`); err != nil {
			return err
		}
		return insertBatches(ctx, tx,
			`INSERT INTO chain_stops (chain_hash, pos, station_name) VALUES `,
			3, len(rows), batchSize,
			func(i int) []interface{} {
				return []interface{}{rows[i].hash, rows[i].pos, rows[i].name}
			})
	})
	if err != nil {
		r.logger.Error("Failed to replace chains", zap.Int("chains", len(chains)), zap.Error(err))
		return errors.ErrDatabaseError
	}

	r.logger.Info("Chains replaced",
		zap.Int("chains", len(chains)),
		zap.Int("stops", len(rows)))
	return nil
}

func (r *chainRepository) GetByHash(ctx context.Context, hash string) ([]domain.ChainStation, error) {
	query := r.db.Rebind(chainStationSelect + `WHERE c.chain_hash = ? ORDER BY c.pos`)

	var stations []domain.ChainStation
	if err := r.db.SelectContext(ctx, &stations, query, hash); err != nil {
		r.logger.Error("Failed to get chain", zap.String("chain_hash", hash), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return stations, nil
}

func (r *chainRepository) List(ctx context.Context, limit, offset int) ([]domain.ChainStation, error) {
	query := r.db.Rebind(chainStationSelect + `ORDER BY c.chain_hash, c.pos LIMIT ? OFFSET ?`)

	var stations []domain.ChainStation
	if err := r.db.SelectContext(ctx, &stations, query, limit, offset); err != nil {
		r.logger.Error("Failed to list chains", zap.Int("limit", limit), zap.Int("offset", offset), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return stations, nil
}

func (r *chainRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(DISTINCT chain_hash) FROM chain_stops`); err != nil {
		r.logger.Error("Failed to count chains", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return n, nil
}

func (r *chainRepository) LinkStation(ctx context.Context, hash string, pos int, stopID uuid.UUID) (*domain.ChainStation, error) {
	var linked domain.ChainStation

	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		var name string
		err := tx.GetContext(ctx, &name,
			tx.Rebind(`SELECT station_name FROM chain_stops WHERE chain_hash = ? AND pos = ?`), hash, pos)
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.ErrChainNotFound.WithDetails(map[string]interface{}{
				"chain_hash": hash,
				"pos":        pos,
			})
		}
		if err != nil {
			return err
		}

		var exists int
		err = tx.GetContext(ctx, &exists, tx.Rebind(`SELECT COUNT(*) FROM stations WHERE stop_id = ?`), stopID)
		if err != nil {
			return err
		}
		if exists == 0 {
			return errors.ErrStationNotFound.WithDetails(map[string]interface{}{"stop_id": stopID.String()})
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO chain_stop_links (chain_hash, pos, stop_id) VALUES (?, ?, ?)
			ON CONFLICT (chain_hash, pos) DO UPDATE SET stop_id = excluded.stop_id
		`), hash, pos, stopID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO station_names (stop_id, station_name, search_key) VALUES (?, ?, ?)
			ON CONFLICT (stop_id, station_name) DO NOTHING
		`), stopID, name, utils.SearchKey(name)); err != nil {
			return err
		}

		id := stopID
		linked = domain.ChainStation{ChainHash: hash, Name: name, Pos: pos, StopID: &id}
		return nil
	})
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		r.logger.Error("Failed to link station",
			zap.String("chain_hash", hash),
			zap.Int("pos", pos),
			zap.String("stop_id", stopID.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &linked, nil
}
