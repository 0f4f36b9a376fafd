package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	"modernc.org/sqlite"
)

// foldFunc lowercases text with full Unicode rules. SQLite's own LIKE and
// lower() only fold ASCII letters.
const foldFunc = "fold"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(foldFunc, 1, fold)
}

func fold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	}
	return args[0], nil
}

// SQLiteStore keeps journey maps in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

const createJourneyMapsTable = `
	CREATE TABLE IF NOT EXISTS journey_maps (
			"journey_id" TEXT PRIMARY KEY,
			"author_name" TEXT,
			"journey_title" TEXT NOT NULL,
			"context" TEXT NOT NULL DEFAULT '',
			"goal" TEXT NOT NULL DEFAULT '',
			"created_at" TEXT NOT NULL,
			"step1_trigger" TEXT NOT NULL,
			"step2_interaction" TEXT NOT NULL,
			"step3_trust" TEXT NOT NULL,
			"step4_turning" TEXT NOT NULL,
			"step5_conclusion" TEXT NOT NULL,
			"step6_aftermath" TEXT NOT NULL
	);`

const createJourneyMapsIndex = `
	CREATE INDEX IF NOT EXISTS idx_journey_maps_created_at ON journey_maps(created_at DESC);`

// OpenSQLite opens (or creates) the database at path and creates the
// journey_maps table if it is missing.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		path = "./journey_maps.db"
	}
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("OpenSQLite(): failed to open database: %w", err)
	}
	if strings.Contains(path, ":memory:") {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenSQLite(): failed to connect to database: %w", err)
	}

	for _, stmt := range []string{createJourneyMapsTable, createJourneyMapsIndex} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("OpenSQLite(): failed to create journey_maps table: %w", err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") || strings.Contains(path, ":memory:") {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
