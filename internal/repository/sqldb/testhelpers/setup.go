package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/frfole/inverse-zastavky/internal/repository/sqldb"
)

// TestDB represents a test database connection
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
	Driver string
}

// SetupTestDB opens an in-memory SQLite database, or the PostgreSQL server
// described by TEST_DB_* when TEST_DB_DRIVER=postgres, and applies the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	driver := getEnv("TEST_DB_DRIVER", "sqlite")

	var (
		db  *sqlx.DB
		err error
	)
	switch driver {
	case "postgres":
		db, err = connectPostgres(t)
	default:
		driver = "sqlite"
		db, err = sqlx.Connect("sqlite", ":memory:")
		if err == nil {
			// every connection would otherwise get its own empty database
			db.SetMaxOpenConns(1)
			db.SetConnMaxLifetime(0)
		}
	}
	if err != nil {
		t.Fatalf("Failed to open test database (%s): %v", driver, err)
	}

	tdb := &TestDB{
		DB:     db,
		Logger: zap.NewNop(),
		Driver: driver,
	}
	if err := tdb.Wrap().EnsureSchema(context.Background()); err != nil {
		db.Close()
		t.Fatalf("Failed to apply schema: %v", err)
	}
	return tdb
}

func connectPostgres(t *testing.T) (*sqlx.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5433"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "zastavky_test"),
		getEnv("TEST_DB_SSLMODE", "disable"),
	)

	// Retry connection with exponential backoff to wait for DB recovery
	var (
		db  *sqlx.DB
		err error
	)
	maxRetries := 5
	retryDelay := 500 * time.Millisecond
	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", connStr)
		if err == nil {
			return db, nil
		}
		if i < maxRetries-1 {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i+1, maxRetries, retryDelay)
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}
	return nil, err
}

// Wrap returns the connection as the repositories' DB type.
func (tdb *TestDB) Wrap() *sqldb.DB {
	return sqldb.NewDBForTest(tdb.DB, tdb.Logger)
}

// Close closes the database connection
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

// Cleanup empties every table
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	tables := []string{
		"chain_stop_links",
		"chain_stops",
		"station_names",
		"stations",
		"base_stations",
		"base_cities",
	}

	for _, table := range tables {
		if _, err := tdb.DB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("cleanup %s: %w", table, err)
		}
	}
	return nil
}

// getEnv gets environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
