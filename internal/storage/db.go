package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	_ "modernc.org/sqlite"

	"kcdex/internal"
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
CREATE TABLE IF NOT EXISTS file_hashes (
  name TEXT PRIMARY KEY,
  hash TEXT NOT NULL,
  source TEXT,
  extractedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  version TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_version ON runs(version);

CREATE TABLE IF NOT EXISTS diagnostics (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  kind TEXT NOT NULL,
  category TEXT NOT NULL,
  itemId TEXT,
  itemName TEXT,
  displayName TEXT,
  detail TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_diagnostics_run ON diagnostics(runId);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// FileHash and SetFileHash implement the extractor's change-detection store.

func (d *DB) FileHash(name string) (string, bool, error) {
	var hash string
	err := d.conn.QueryRow(`SELECT hash FROM file_hashes WHERE name = ?`, name).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return hash, true, nil
}

func (d *DB) SetFileHash(name, hash, source string) error {
	_, err := d.conn.Exec(`
INSERT INTO file_hashes (name, hash, source) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
  hash = excluded.hash,
  source = excluded.source,
  extractedAt = CURRENT_TIMESTAMP
`, name, hash, source)
	return err
}

// RunRow is one recorded pipeline run.
type RunRow struct {
	ID        int64
	Version   string
	Counts    map[string]int
	CreatedAt string
}

func (d *DB) InsertRun(version string, counts map[string]int) (int64, error) {
	countsJSON, _ := sonic.Marshal(counts)
	result, err := d.conn.Exec(`INSERT INTO runs (version, countsJson) VALUES (?, ?)`, version, string(countsJSON))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (d *DB) LatestRun(version string) (*RunRow, error) {
	var row RunRow
	var countsJSON string
	err := d.conn.QueryRow(`
SELECT id, version, countsJson, createdAt
FROM runs WHERE version = ? ORDER BY id DESC LIMIT 1
`, version).Scan(&row.ID, &row.Version, &countsJSON, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	_ = sonic.Unmarshal([]byte(countsJSON), &row.Counts)
	return &row, nil
}

func (d *DB) InsertDiagnostics(runID int64, diags []internal.Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO diagnostics (runId, kind, category, itemId, itemName, displayName, detail)
VALUES (?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, diag := range diags {
		if _, err := stmt.Exec(runID, diag.Kind, diag.Category, diag.ItemID, diag.ItemName, diag.DisplayName, diag.Detail); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListDiagnostics(runID int64) ([]internal.Diagnostic, error) {
	rows, err := d.conn.Query(`
SELECT kind, category, itemId, itemName, displayName, detail
FROM diagnostics WHERE runId = ? ORDER BY id ASC
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Diagnostic
	for rows.Next() {
		var diag internal.Diagnostic
		if err := rows.Scan(&diag.Kind, &diag.Category, &diag.ItemID, &diag.ItemName, &diag.DisplayName, &diag.Detail); err != nil {
			return nil, err
		}
		out = append(out, diag)
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
