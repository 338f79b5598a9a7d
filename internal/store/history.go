package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/f3rmion/chemcalc/internal/equations"
)

// SolveRecord is one solved equation kept in the history table.
type SolveRecord struct {
	ID       int64
	At       time.Time
	Equation string
	Target   string
	Value    float64
	Inputs   equations.Values
}

// RecordSolve appends a solve to the history and returns its id.
func (s *Store) RecordSolve(rec SolveRecord) (int64, error) {
	if rec.At.IsZero() {
		rec.At = time.Now()
	}
	inputs, err := json.Marshal(rec.Inputs)
	if err != nil {
		return 0, fmt.Errorf("marshaling inputs: %w", err)
	}
	res, err := s.db.Exec(`
		INSERT INTO history (at, equation, target, value, inputs)
		VALUES (?, ?, ?, ?, ?)
	`, rec.At.Unix(), rec.Equation, rec.Target, rec.Value, string(inputs))
	if err != nil {
		return 0, fmt.Errorf("recording solve: %w", err)
	}
	return res.LastInsertId()
}

// History returns the most recent solves, newest first. A limit of zero
// or less returns everything.
func (s *Store) History(limit int) ([]SolveRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`
		SELECT id, at, equation, target, value, inputs FROM history
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []SolveRecord
	for rows.Next() {
		var rec SolveRecord
		var at int64
		var inputs string
		if err := rows.Scan(&rec.ID, &at, &rec.Equation, &rec.Target, &rec.Value, &inputs); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		rec.At = time.Unix(at, 0)
		if err := json.Unmarshal([]byte(inputs), &rec.Inputs); err != nil {
			return nil, fmt.Errorf("decoding inputs of solve %d: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ClearHistory deletes every history row.
func (s *Store) ClearHistory() error {
	if _, err := s.db.Exec("DELETE FROM history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
