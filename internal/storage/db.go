package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"catalogo/internal"
	"catalogo/internal/util"
)

const (
	metaLastExport = "catalog.last_export"
	metaLastTotal  = "catalog.last_total"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId TEXT NOT NULL UNIQUE,
  startedAt TEXT NOT NULL,
  durationMs INTEGER NOT NULL,
  outputPath TEXT NOT NULL,
  total INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS run_files (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId TEXT NOT NULL,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  state TEXT NOT NULL,
  records INTEGER NOT NULL,
  error TEXT,
  UNIQUE(runId, position),
  FOREIGN KEY(runId) REFERENCES runs(runId)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// InsertRun stores a run with its per-file outcomes and updates the
// last-export metadata in one transaction.
func (d *DB) InsertRun(summary internal.RunSummary) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	startedAt := summary.StartedAt.UTC().Format(time.RFC3339)
	if _, err := tx.Exec(`
INSERT INTO runs (runId, startedAt, durationMs, outputPath, total)
VALUES (?, ?, ?, ?, ?)
`, summary.RunID, startedAt, summary.Duration.Milliseconds(), summary.OutputPath, summary.Total); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO run_files (runId, position, name, category, state, records, error)
VALUES (?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, f := range summary.Files {
		var errText *string
		if f.Err != nil {
			errText = util.StringPtr(f.Err.Error())
		}
		if _, err := stmt.Exec(summary.RunID, i, f.Source.Name, string(f.Source.Category), string(f.State), f.Records, errText); err != nil {
			return err
		}
	}

	if err := setMetadata(tx, metaLastExport, startedAt); err != nil {
		return err
	}
	if err := setMetadata(tx, metaLastTotal, strconv.Itoa(summary.Total)); err != nil {
		return err
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs first, each with its files in
// declared order.
func (d *DB) ListRuns(limit int) ([]internal.RunRow, error) {
	rows, err := d.conn.Query(`
SELECT id, runId, startedAt, durationMs, outputPath, total
FROM runs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}

	var out []internal.RunRow
	for rows.Next() {
		var r internal.RunRow
		if err := rows.Scan(&r.ID, &r.RunID, &r.StartedAt, &r.DurationMs, &r.OutputPath, &r.Total); err != nil {
			_ = rows.Close()
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for i := range out {
		files, err := d.listRunFiles(out[i].RunID)
		if err != nil {
			return nil, err
		}
		out[i].Files = files
	}
	return out, nil
}

func (d *DB) listRunFiles(runID string) ([]internal.RunFileRow, error) {
	rows, err := d.conn.Query(`
SELECT name, category, state, records, error
FROM run_files WHERE runId = ? ORDER BY position ASC
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunFileRow
	for rows.Next() {
		var f internal.RunFileRow
		if err := rows.Scan(&f.Name, &f.Category, &f.State, &f.Records, &f.Error); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// LastExport returns when the last run started and how many records it
// wrote, or nil when no run was recorded.
func (d *DB) LastExport() (*string, *string, error) {
	at, err := d.GetMetadata(metaLastExport)
	if err != nil || at == nil {
		return nil, nil, err
	}
	total, err := d.GetMetadata(metaLastTotal)
	if err != nil {
		return nil, nil, err
	}
	return at, total, nil
}

func setMetadata(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}
