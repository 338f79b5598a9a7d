package equations

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Match is one equation that overlaps the known values.
type Match struct {
	Equation *Equation
	// Missing lists variables neither known nor supplied by a constant, in
	// declaration order.
	Missing []string
	// Overlap counts variables known directly or through a constant.
	Overlap int
	// Target is the single solvable unknown, empty when not solvable.
	Target string
}

// Solvable reports whether the match has exactly one unknown with a solver.
func (m Match) Solvable() bool { return m.Target != "" }

// Matcher ranks and solves the equations of a bank against known values.
type Matcher struct {
	bank      *Bank
	constants Constants
}

// NewMatcher returns a matcher over bank using constants as implicit knowns.
func NewMatcher(bank *Bank, constants Constants) *Matcher {
	return &Matcher{bank: bank, constants: constants}
}

// Bank returns the matcher's equation bank.
func (m *Matcher) Bank() *Bank { return m.bank }

// Constants returns the matcher's constants table.
func (m *Matcher) Constants() Constants { return m.constants }

// FindApplicable lists the equations sharing at least minOverlap variables
// with known (constants count as known). Solvable equations come first,
// then larger overlap, then name in case-insensitive order.
func (m *Matcher) FindApplicable(known Values, minOverlap int) []Match {
	var out []Match
	for _, eq := range m.bank.eqs {
		overlap := 0
		var missing []string
		for _, v := range eq.Variables {
			switch {
			case known.Has(v):
				overlap++
			case m.constants.Has(v):
				overlap++
			default:
				missing = append(missing, v)
			}
		}
		if overlap < minOverlap {
			continue
		}

		match := Match{Equation: eq, Missing: missing, Overlap: overlap}
		if len(missing) == 1 {
			if _, ok := eq.Solvers[missing[0]]; ok {
				match.Target = missing[0]
			}
		}
		out = append(out, match)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Solvable() != b.Solvable() {
			return a.Solvable()
		}
		if a.Overlap != b.Overlap {
			return a.Overlap > b.Overlap
		}
		return strings.ToLower(a.Equation.Name) < strings.ToLower(b.Equation.Name)
	})
	return out
}

// CanSolve returns the single unknown of eq when it has a solver.
// It fails with ErrNoUniqueUnknown when zero or several variables are
// unknown, and with ErrMissingSolver when the one unknown has no solver.
func (m *Matcher) CanSolve(eq *Equation, known Values) (string, error) {
	var unknowns []string
	for _, v := range eq.Variables {
		if !known.Has(v) && !m.constants.Has(v) {
			unknowns = append(unknowns, v)
		}
	}
	if len(unknowns) != 1 {
		return "", &SolveError{
			Kind:     ErrNoUniqueUnknown,
			Equation: eq.Name,
			Msg:      fmt.Sprintf("%d unknowns", len(unknowns)),
		}
	}
	if _, ok := eq.Solvers[unknowns[0]]; !ok {
		return "", &SolveError{Kind: ErrMissingSolver, Equation: eq.Name, Target: unknowns[0]}
	}
	return unknowns[0], nil
}

// SolveFor evaluates eq for target. Constants are merged under values, and
// only the equation's own variables reach the solver.
func (m *Matcher) SolveFor(eq *Equation, target string, values Values) (float64, error) {
	s, ok := eq.Solvers[target]
	if !ok {
		return 0, &SolveError{Kind: ErrMissingSolver, Equation: eq.Name, Target: target}
	}

	merged := m.constants.Merge(values)
	scoped := make(Values, len(eq.Variables))
	for _, v := range eq.Variables {
		if x, ok := merged[v]; ok {
			scoped[v] = x
		}
	}

	for _, in := range eq.inputsFor(target, s) {
		if !scoped.Has(in) {
			return 0, &SolveError{Kind: ErrMissingInput, Equation: eq.Name, Target: target, Msg: in}
		}
	}

	x, err := s.Fn(scoped)
	if err != nil {
		kind := ErrNumericDomain
		if errors.Is(err, ErrMissingInput) {
			kind = ErrMissingInput
		}
		return 0, &SolveError{Kind: kind, Equation: eq.Name, Target: target, Msg: err.Error()}
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, &SolveError{Kind: ErrNumericDomain, Equation: eq.Name, Target: target, Msg: fmt.Sprint(x)}
	}
	return x, nil
}

// ConstantNotes returns the notes of constants used by eq.
func (m *Matcher) ConstantNotes(eq *Equation) []string {
	var notes []string
	for _, v := range eq.Variables {
		if n := m.constants.Note(v); n != "" {
			notes = append(notes, n)
		}
	}
	return notes
}
