// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: store.go — SQLite results store
//
// Purpose:
//   - Persists profiling runs keyed by scenario fingerprint so repeated
//     invocations can skip configurations that are already measured.
//
// Notes:
//   - Single-writer usage; the store holds the database exclusively for
//     the duration of a profiling session.
// ─────────────────────────────────────────────────────────────────────────────

package profiler

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"gainbucket/constants"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	fingerprint    INTEGER NOT NULL,
	created_at     INTEGER NOT NULL,
	scenario       TEXT NOT NULL,
	pattern        TEXT NOT NULL,
	nodes          INTEGER NOT NULL,
	key_low        INTEGER NOT NULL,
	key_high       INTEGER NOT NULL,
	ops            INTEGER NOT NULL,
	seed           INTEGER NOT NULL,
	samples        INTEGER NOT NULL,
	p50_ns         INTEGER NOT NULL,
	p99_ns         INTEGER NOT NULL,
	max_ns         INTEGER NOT NULL,
	schema_version INTEGER NOT NULL,
	PRIMARY KEY (fingerprint, created_at)
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS run_buckets (
	fingerprint INTEGER NOT NULL,
	created_at  INTEGER NOT NULL,
	bucket      INTEGER NOT NULL,
	count       INTEGER NOT NULL,
	PRIMARY KEY (fingerprint, created_at, bucket)
) WITHOUT ROWID;
`

// Store persists run results in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the results database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("profiler: open store: %w", err)
	}
	if err := configureDatabase(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("profiler: initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

func configureDatabase(db *sql.DB) error {
	// Single-writer session; journaling and sync overhead buy nothing here.
	pragmas := []string{
		"PRAGMA journal_mode = OFF",
		"PRAGMA synchronous = OFF",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA locking_mode = EXCLUSIVE",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("profiler: %s: %w", pragma, err)
		}
	}
	return nil
}

// HasRun reports whether any run with the given fingerprint is stored.
func (s *Store) HasRun(fingerprint uint64) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM runs WHERE fingerprint = ?", int64(fingerprint),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("profiler: query runs: %w", err)
	}
	return n > 0, nil
}

// SaveResult stores one run with its full bucket breakdown.
func (s *Store) SaveResult(res *Result) error {
	fp := int64(res.Scenario.Fingerprint())
	createdAt := res.When.UnixNano()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("profiler: begin save: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO runs
		(fingerprint, created_at, scenario, pattern, nodes, key_low, key_high,
		 ops, seed, samples, p50_ns, p99_ns, max_ns, schema_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fp, createdAt,
		res.Scenario.Name, res.Scenario.Pattern, res.Scenario.Nodes,
		res.Scenario.KeyLow, res.Scenario.KeyHigh, res.Scenario.Ops,
		res.Scenario.Seed,
		int64(res.Hist.Count()), res.Hist.Percentile(0.50),
		res.Hist.Percentile(0.99), res.Hist.Max(),
		constants.SchemaVersion)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("profiler: insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO run_buckets (fingerprint, created_at, bucket, count) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("profiler: prepare bucket insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < constants.HistBuckets; i++ {
		if res.Hist.Bucket(i) == 0 {
			continue
		}
		if _, err := stmt.Exec(fp, createdAt, i, int64(res.Hist.Bucket(i))); err != nil {
			tx.Rollback()
			return fmt.Errorf("profiler: insert bucket %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("profiler: commit save: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
