package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/modelkit-io/go-modelkit/suite"
)

const schema = `
CREATE TABLE IF NOT EXISTS units (
    path     TEXT PRIMARY KEY,
    model    TEXT NOT NULL,
    payload  TEXT NOT NULL,
    saved_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS projects (
    path     TEXT PRIMARY KEY,
    payload  TEXT NOT NULL,
    saved_at TIMESTAMP NOT NULL
);`

// SQLiteStore persists all units and projects of a workspace in one
// SQLite database, keyed by file path.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSQLiteStore opens or creates the database at path.
func NewSQLiteStore(path string, log zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: schema: %w", err)
	}
	return &SQLiteStore{db: db, log: log}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveUnit upserts the unit's JSON document.
func (s *SQLiteStore) SaveUnit(unit *suite.StorageUnit) error {
	doc := encodeUnit(unit)
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", unit.FileName, err)
	}
	_, err = s.db.Exec(`
INSERT INTO units (path, model, payload, saved_at) VALUES (?, ?, ?, ?)
ON CONFLICT (path) DO UPDATE SET
    model = excluded.model,
    payload = excluded.payload,
    saved_at = excluded.saved_at`,
		unit.FileName, doc.Model, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("storage: save %s: %w", unit.FileName, err)
	}
	s.log.Debug().
		Str("unit", unit.FileName).
		Int("elements", len(unit.Elements)).
		Msg("unit saved")
	return nil
}

// SaveProject upserts the project's JSON document.
func (s *SQLiteStore) SaveProject(p *suite.Project) error {
	payload, err := json.Marshal(encodeProject(p))
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", p.PathName, err)
	}
	_, err = s.db.Exec(`
INSERT INTO projects (path, payload, saved_at) VALUES (?, ?, ?)
ON CONFLICT (path) DO UPDATE SET
    payload = excluded.payload,
    saved_at = excluded.saved_at`,
		p.PathName, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("storage: save %s: %w", p.PathName, err)
	}
	s.log.Debug().Str("project", p.PathName).Msg("project saved")
	return nil
}

// ListUnits returns the paths of the units stored in the database.
func (s *SQLiteStore) ListUnits() ([]string, error) {
	rows, err := s.db.Query(`SELECT path FROM units ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("storage: list units: %w", err)
	}
	defer rows.Close()
	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: list units: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
