package store

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/f3rmion/chemcalc/internal/thermo"
)

func nullable(e thermo.Entry, f thermo.Field) sql.NullFloat64 {
	v, ok := e.Value(f)
	return sql.NullFloat64{Float64: v, Valid: ok}
}

func scanEntry(sc interface{ Scan(...any) error }) (thermo.Entry, error) {
	var e thermo.Entry
	var hf, gf, st sql.NullFloat64
	if err := sc.Scan(&e.Formula, &e.Phase, &hf, &gf, &st); err != nil {
		return e, err
	}
	if hf.Valid {
		e.Hf, e.Has = hf.Float64, e.Has|thermo.HasHf
	}
	if gf.Valid {
		e.Gf, e.Has = gf.Float64, e.Has|thermo.HasGf
	}
	if st.Valid {
		e.S, e.Has = st.Float64, e.Has|thermo.HasS
	}
	return e, nil
}

// Count returns the number of thermo rows.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM thermo").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting thermo rows: %w", err)
	}
	return n, nil
}

// Upsert inserts or replaces entries in one transaction and returns how
// many were written.
func (s *Store) Upsert(entries ...thermo.Entry) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO thermo (formula, phase, hf, gf, s) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, e := range entries {
		f := thermo.Canonical(e.Formula)
		if f == "" || !thermo.ValidPhase(e.Phase) || e.Has == 0 {
			continue
		}
		_, err := stmt.Exec(f, e.Phase,
			nullable(e, thermo.HasHf), nullable(e, thermo.HasGf), nullable(e, thermo.HasS))
		if err != nil {
			return n, fmt.Errorf("writing %s(%s): %w", f, e.Phase, err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return n, nil
}

// Lookup finds formula in phase, exact match first, then ignoring case.
func (s *Store) Lookup(formula, phase string) (thermo.Entry, bool) {
	f := thermo.Canonical(formula)
	row := s.db.QueryRow(`
		SELECT formula, phase, hf, gf, s FROM thermo
		WHERE phase = ? AND formula = ? COLLATE NOCASE
		ORDER BY formula = ? DESC, rowid
		LIMIT 1
	`, phase, f, f)
	e, err := scanEntry(row)
	if err != nil {
		return thermo.Entry{}, false
	}
	return e, true
}

// Phases lists the phases on record for formula, sorted.
func (s *Store) Phases(formula string) []string {
	rows, err := s.db.Query(`
		SELECT DISTINCT phase FROM thermo
		WHERE formula = ? COLLATE NOCASE
		ORDER BY phase
	`, thermo.Canonical(formula))
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return out
		}
		out = append(out, p)
	}
	return out
}

// Entries returns every row ordered by formula and phase.
func (s *Store) Entries() ([]thermo.Entry, error) {
	rows, err := s.db.Query(`SELECT formula, phase, hf, gf, s FROM thermo ORDER BY formula, phase`)
	if err != nil {
		return nil, fmt.Errorf("querying thermo: %w", err)
	}
	defer rows.Close()

	var out []thermo.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning thermo row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Table loads every row into an in-memory table, for searching.
func (s *Store) Table() (*thermo.Table, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	return thermo.NewTable(entries...), nil
}

// ImportCSV merges rows in the formula,phase,Hf,Gf,S format.
func (s *Store) ImportCSV(r io.Reader) (int, error) {
	entries, err := thermo.ReadCSV(r)
	if err != nil {
		return 0, err
	}
	return s.Upsert(entries...)
}

// ExportCSV writes every row as CSV.
func (s *Store) ExportCSV(w io.Writer) error {
	entries, err := s.Entries()
	if err != nil {
		return err
	}
	return thermo.WriteCSV(w, entries)
}

func compressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".zst")
}

// ImportCSVFile imports a CSV file, zstd-compressed when it ends in .zst.
func (s *Store) ImportCSVFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed(path) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return 0, fmt.Errorf("reading zstd stream: %w", err)
		}
		defer dec.Close()
		r = dec
	}
	n, err := s.ImportCSV(r)
	if err != nil {
		return n, fmt.Errorf("importing %s: %w", path, err)
	}
	return n, nil
}

// ExportCSVFile writes the table to path, zstd-compressed when it ends in
// .zst.
func (s *Store) ExportCSVFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if !compressed(path) {
		return s.ExportCSV(f)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("starting zstd stream: %w", err)
	}
	if err := s.ExportCSV(enc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
