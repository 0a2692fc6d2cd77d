package testhelpers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// InsertStation stores a located station directly, bypassing the repository.
func (tdb *TestDB) InsertStation(ctx context.Context, lat, lon float64, names ...string) (uuid.UUID, error) {
	id := uuid.New()
	if _, err := tdb.DB.ExecContext(ctx,
		tdb.DB.Rebind(`INSERT INTO stations (stop_id, lat, lon) VALUES (?, ?, ?)`), id, lat, lon); err != nil {
		return uuid.Nil, fmt.Errorf("insert station: %w", err)
	}
	for _, name := range names {
		if _, err := tdb.DB.ExecContext(ctx,
			tdb.DB.Rebind(`INSERT INTO station_names (stop_id, station_name, search_key) VALUES (?, ?, ?)`),
			id, name, name); err != nil {
			return uuid.Nil, fmt.Errorf("insert station name %q: %w", name, err)
		}
	}
	return id, nil
}

// CountRows returns the number of rows in table.
func (tdb *TestDB) CountRows(ctx context.Context, table string) (int, error) {
	var n int
	err := tdb.DB.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table)
	return n, err
}
