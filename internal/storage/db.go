package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"iactidy/internal"
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
  traceId TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'running',
  startedAt TEXT NOT NULL,
  finishedAt TEXT,
  countsJson TEXT NOT NULL DEFAULT '{}',
  timingsJson TEXT NOT NULL DEFAULT '{}',
  error TEXT
);

CREATE TABLE IF NOT EXISTS outputs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  name TEXT NOT NULL,
  path TEXT NOT NULL,
  rows INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(runId, name),
  FOREIGN KEY(runId) REFERENCES runs(id)
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

func (d *DB) StartRun(traceID, startedAt string) (int64, error) {
	result, err := d.conn.Exec(`INSERT INTO runs (traceId, status, startedAt) VALUES (?, ?, ?)`, traceID, internal.RunRunning, startedAt)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (d *DB) FinishRun(runID int64, status, finishedAt string, counts map[string]int, timings map[string]float64, runErr error) error {
	countsJSON, _ := json.Marshal(counts)
	timingsJSON, _ := json.Marshal(timings)
	var errText *string
	if runErr != nil {
		msg := runErr.Error()
		errText = &msg
	}
	_, err := d.conn.Exec(`
UPDATE runs SET status = ?, finishedAt = ?, countsJson = ?, timingsJson = ?, error = ?
WHERE id = ?
`, status, finishedAt, string(countsJSON), string(timingsJSON), errText, runID)
	return err
}

func (d *DB) InsertOutputs(runID int64, outputs []internal.OutputRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO outputs (runId, name, path, rows) VALUES (?, ?, ?, ?)
ON CONFLICT(runId, name) DO UPDATE SET path = excluded.path, rows = excluded.rows
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range outputs {
		if _, err := stmt.Exec(runID, o.Name, o.Path, o.Rows); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (d *DB) ListRuns(limit int) ([]internal.RunRecord, error) {
	rows, err := d.conn.Query(`
SELECT id, traceId, status, startedAt, finishedAt, countsJson, timingsJson, error
FROM runs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRecord
	for rows.Next() {
		var r internal.RunRecord
		var countsJSON, timingsJSON string
		if err := rows.Scan(&r.ID, &r.TraceID, &r.Status, &r.StartedAt, &r.FinishedAt, &countsJSON, &timingsJSON, &r.Error); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(countsJSON), &r.Counts)
		_ = json.Unmarshal([]byte(timingsJSON), &r.TimingsMs)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) ListOutputs(runID int64) ([]internal.OutputRecord, error) {
	rows, err := d.conn.Query(`SELECT name, path, rows FROM outputs WHERE runId = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.OutputRecord
	for rows.Next() {
		var o internal.OutputRecord
		if err := rows.Scan(&o.Name, &o.Path, &o.Rows); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
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
