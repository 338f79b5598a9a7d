// Package thermo holds standard thermochemical data (ΔH°f, ΔG°f, S° at
// 298.15 K and 1 bar) keyed by formula and phase, and sums it over
// reactions.
package thermo

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
)

//go:embed seed.csv
var seedCSV []byte

// Field marks which values of an Entry are present. Aqueous ions often
// have no S° and a few gases lack ΔG°f.
type Field uint8

const (
	HasHf Field = 1 << iota
	HasGf
	HasS

	HasAll = HasHf | HasGf | HasS
)

// Entry is one row of the table. Hf and Gf are in kJ/mol, S in J/(mol·K).
type Entry struct {
	Formula string
	Phase   string
	Hf      float64
	Gf      float64
	S       float64
	Has     Field
}

// Value returns the field's value and whether it is present.
func (e Entry) Value(f Field) (float64, bool) {
	if e.Has&f == 0 {
		return 0, false
	}
	switch f {
	case HasHf:
		return e.Hf, true
	case HasGf:
		return e.Gf, true
	case HasS:
		return e.S, true
	}
	return 0, false
}

// Phases in display order.
var Phases = []string{"g", "l", "s", "aq"}

// ValidPhase reports whether p is one of g, l, s, aq.
func ValidPhase(p string) bool {
	return slices.Contains(Phases, p)
}

// Source is anything that can look entries up, the in-memory Table or the
// SQLite store.
type Source interface {
	Lookup(formula, phase string) (Entry, bool)
	Phases(formula string) []string
}

type key struct {
	formula string
	phase   string
}

// Table is an in-memory thermo table. It is not safe for concurrent
// mutation.
type Table struct {
	entries map[key]Entry
	order   []key
	fold    map[key]string
}

// NewTable builds a table; later entries replace earlier ones.
func NewTable(entries ...Entry) *Table {
	t := &Table{
		entries: make(map[key]Entry),
		fold:    make(map[key]string),
	}
	for _, e := range entries {
		t.Add(e)
	}
	return t
}

var seed = sync.OnceValues(func() ([]Entry, error) {
	return ReadCSV(bytes.NewReader(seedCSV))
})

// Seed returns the built-in entries.
func Seed() []Entry {
	entries, err := seed()
	if err != nil {
		panic(fmt.Sprintf("thermo: bad seed table: %v", err))
	}
	return slices.Clone(entries)
}

// Default returns a fresh table holding the built-in entries.
func Default() *Table {
	return NewTable(Seed()...)
}

// Add inserts or replaces an entry. The formula is canonicalized first.
func (t *Table) Add(e Entry) {
	e.Formula = Canonical(e.Formula)
	k := key{e.Formula, e.Phase}
	if _, ok := t.entries[k]; !ok {
		t.order = append(t.order, k)
	}
	t.entries[k] = e
	fk := key{strings.ToLower(e.Formula), e.Phase}
	if _, ok := t.fold[fk]; !ok {
		t.fold[fk] = e.Formula
	}
}

// Lookup finds formula in phase, falling back to a case-insensitive match.
func (t *Table) Lookup(formula, phase string) (Entry, bool) {
	c := Canonical(formula)
	if e, ok := t.entries[key{c, phase}]; ok {
		return e, true
	}
	if f, ok := t.fold[key{strings.ToLower(c), phase}]; ok {
		e, ok := t.entries[key{f, phase}]
		return e, ok
	}
	return Entry{}, false
}

// Phases lists the phases on record for formula, sorted.
func (t *Table) Phases(formula string) []string {
	c := Canonical(formula)
	lc := strings.ToLower(c)
	var out []string
	for _, k := range t.order {
		if k.formula == c || strings.ToLower(k.formula) == lc {
			if !slices.Contains(out, k.phase) {
				out = append(out, k.phase)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Entries returns every entry in insertion order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.order))
	for i, k := range t.order {
		out[i] = t.entries[k]
	}
	return out
}

func (t *Table) Len() int { return len(t.order) }

var (
	ErrBadHeader = errors.New("thermo csv: missing formula or phase column")
	ErrBadRow    = errors.New("thermo csv: bad row")
)

// ReadCSV reads rows with the columns formula,phase,Hf,Gf,S in any order.
// Blank numeric cells are allowed. Rows with no formula, an unknown phase
// or no numbers at all are skipped; an unparsable number is an error.
func ReadCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("thermo csv: reading header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	if _, ok := col["formula"]; !ok {
		return nil, ErrBadHeader
	}
	if _, ok := col["phase"]; !ok {
		return nil, ErrBadHeader
	}
	cell := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []Entry
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("thermo csv: line %d: %w", line, err)
		}
		e := Entry{Formula: cell(rec, "formula"), Phase: cell(rec, "phase")}
		if e.Formula == "" || !ValidPhase(e.Phase) {
			continue
		}
		for _, f := range []struct {
			name string
			bit  Field
			dst  *float64
		}{
			{"Hf", HasHf, &e.Hf},
			{"Gf", HasGf, &e.Gf},
			{"S", HasS, &e.S},
		} {
			s := cell(rec, f.name)
			if s == "" {
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s=%q", ErrBadRow, line, f.name, s)
			}
			*f.dst = v
			e.Has |= f.bit
		}
		if e.Has == 0 {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// WriteCSV writes entries in the format ReadCSV accepts.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"formula", "phase", "Hf", "Gf", "S"}); err != nil {
		return err
	}
	num := func(e Entry, f Field) string {
		v, ok := e.Value(f)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	for _, e := range entries {
		rec := []string{e.Formula, e.Phase, num(e, HasHf), num(e, HasGf), num(e, HasS)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
