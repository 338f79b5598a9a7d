// Package store keeps thermochemical data and solve history in a SQLite
// database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/f3rmion/chemcalc/internal/thermo"
)

// DefaultFile is the database file name inside the config directory.
const DefaultFile = "chemcalc.db"

const schema = `
CREATE TABLE IF NOT EXISTS thermo (
	formula TEXT NOT NULL,
	phase   TEXT NOT NULL,
	hf      REAL,
	gf      REAL,
	s       REAL,
	PRIMARY KEY (formula, phase)
);
CREATE INDEX IF NOT EXISTS thermo_formula_nocase ON thermo (formula COLLATE NOCASE);
CREATE TABLE IF NOT EXISTS history (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	at       INTEGER NOT NULL,
	equation TEXT NOT NULL,
	target   TEXT NOT NULL,
	value    REAL NOT NULL,
	inputs   TEXT NOT NULL
);
`

// Store is an open database. It satisfies thermo.Source.
type Store struct {
	path string
	db   *sql.DB
}

var _ thermo.Source = (*Store)(nil)

// Open opens or creates the database at path. A new database is seeded
// with the built-in thermo table.
func Open(path string) (*Store, error) {
	// Make sure the parent directory exists
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps writes serialized
	db.SetMaxOpenConns(1)

	s := &Store{path: path, db: db}
	if _, err := db.Exec(schema); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	n, err := s.Count()
	if err != nil {
		s.Close()
		return nil, err
	}
	if n == 0 {
		if _, err := s.Upsert(thermo.Seed()...); err != nil {
			s.Close()
			return nil, fmt.Errorf("seeding thermo table: %w", err)
		}
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
