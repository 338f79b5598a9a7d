// Package session drives the solve workflow shared by the REPL, the solve
// command and the TUI: collect known values, list the equations they fit
// and evaluate the one the user picks.
package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/f3rmion/chemcalc/internal/equations"
	"github.com/f3rmion/chemcalc/internal/report"
	"github.com/f3rmion/chemcalc/internal/store"
	"github.com/f3rmion/chemcalc/internal/units"
)

// ErrNotSolvable means the chosen equation has no single solvable unknown.
var ErrNotSolvable = errors.New("equation is not solvable with the known values")

// Recorder stores solved equations. *store.Store satisfies it.
type Recorder interface {
	RecordSolve(rec store.SolveRecord) (int64, error)
}

var _ Recorder = (*store.Store)(nil)

// Session holds the known values of one solve workflow.
type Session struct {
	reg     *units.Registry
	matcher *equations.Matcher
	knowns  *equations.Knowns
	display func(key string) string
	rec     Recorder
}

// Option configures a Session.
type Option func(*Session)

// WithDisplayUnits sets how a variable's display unit is chosen. The
// registry's preferred unit is used otherwise.
func WithDisplayUnits(f func(key string) string) Option {
	return func(s *Session) { s.display = f }
}

// WithRecorder records every successful solve.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.rec = r }
}

// New creates an empty session.
func New(reg *units.Registry, matcher *equations.Matcher, opts ...Option) *Session {
	s := &Session{
		reg:     reg,
		matcher: matcher,
		knowns:  equations.NewKnowns(),
		display: reg.PreferredUnit,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Registry returns the session's unit registry.
func (s *Session) Registry() *units.Registry { return s.reg }

// Assign parses "name = value unit" and stores the base-unit value.
func (s *Session) Assign(text string) (units.Assignment, error) {
	a, err := s.reg.ParseAssignment(text)
	if err != nil {
		return a, err
	}
	s.knowns.Set(a.Key, a.Base)
	return a, nil
}

// Set stores a base-unit value directly.
func (s *Session) Set(key string, base float64) { s.knowns.Set(key, base) }

// Forget removes a known value by name or alias and returns its key.
func (s *Session) Forget(name string) (string, bool) {
	key := s.reg.Normalize(name)
	if _, ok := s.knowns.Get(key); !ok {
		return key, false
	}
	s.knowns.Delete(key)
	return key, true
}

// Reset clears every known value.
func (s *Session) Reset() { s.knowns.Clear() }

// Len returns the number of known values.
func (s *Session) Len() int { return s.knowns.Len() }

// Known is one known value in its display unit.
type Known struct {
	Key   string
	Label string
	Value float64
	Unit  string
}

// Knowns lists the known values sorted by key.
func (s *Session) Knowns() []Known {
	var out []Known
	for _, k := range s.knowns.Keys() {
		v, _ := s.knowns.Get(k)
		out = append(out, s.known(k, v))
	}
	return out
}

func (s *Session) known(key string, base float64) Known {
	k := Known{Key: key, Label: key, Value: base}
	if !s.reg.Has(key) {
		return k
	}
	k.Unit = s.display(key)
	k.Value = s.reg.ConvertFromBase(key, base, k.Unit)
	return k
}

// Matches lists the equations sharing at least one variable with the known
// values, solvable ones first.
func (s *Session) Matches() []equations.Match {
	if s.knowns.Len() == 0 {
		return nil
	}
	return s.matcher.FindApplicable(s.knowns.Snapshot(), 1)
}

// Result is one evaluated equation.
type Result struct {
	Equation *equations.Equation
	Target   Known
	Base     float64
	Inputs   []Known
	Notes    []string
}

// Report converts r into report data.
func (r Result) Report() report.SolveData {
	d := report.SolveData{
		Equation: r.Equation.Name,
		Formula:  r.Equation.Formula,
		Result:   report.Quantity{Label: r.Target.Label, Value: r.Target.Value, Unit: r.Target.Unit},
		Notes:    r.Notes,
	}
	for _, in := range r.Inputs {
		d.Inputs = append(d.Inputs, report.Quantity{Label: in.Label, Value: in.Value, Unit: in.Unit})
	}
	return d
}

// Solve evaluates the equation for its single unknown, stores the result
// as a new known value and records it when a recorder is set.
func (s *Session) Solve(eq *equations.Equation) (*Result, error) {
	known := s.knowns.Snapshot()
	target, err := s.matcher.CanSolve(eq, known)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotSolvable, err)
	}
	x, err := s.matcher.SolveFor(eq, target, known)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Equation: eq,
		Target:   s.known(target, x),
		Base:     x,
	}
	if eq.Notes != "" {
		res.Notes = append(res.Notes, eq.Notes)
	}
	res.Notes = append(res.Notes, s.matcher.ConstantNotes(eq)...)

	inputs := make(equations.Values)
	for _, v := range eq.Variables {
		if v == target {
			continue
		}
		if b, ok := known[v]; ok {
			res.Inputs = append(res.Inputs, s.known(v, b))
			inputs[v] = b
		} else if b, ok := s.matcher.Constants().Value(v); ok {
			res.Inputs = append(res.Inputs, s.known(v, b))
		}
	}

	s.knowns.Set(target, x)
	if s.rec != nil {
		if _, err := s.rec.RecordSolve(store.SolveRecord{
			Equation: eq.Key,
			Target:   target,
			Value:    x,
			Inputs:   inputs,
		}); err != nil {
			return res, fmt.Errorf("recording solve: %w", err)
		}
	}
	return res, nil
}

// SolveIndex solves the i-th (1-based) entry of Matches.
func (s *Session) SolveIndex(i int) (*Result, error) {
	ms := s.Matches()
	if i < 1 || i > len(ms) {
		return nil, fmt.Errorf("no equation %d (have %d)", i, len(ms))
	}
	return s.Solve(ms[i-1].Equation)
}

// SolveAll repeatedly solves the first solvable match until nothing new can
// be derived. Equations are used at most once.
func (s *Session) SolveAll() ([]*Result, error) {
	var out []*Result
	var used []string
	for {
		var next *equations.Equation
		for _, m := range s.Matches() {
			if m.Solvable() && !slices.Contains(used, m.Equation.Key) {
				next = m.Equation
				break
			}
		}
		if next == nil {
			return out, nil
		}
		used = append(used, next.Key)
		res, err := s.Solve(next)
		if err != nil {
			if res != nil {
				out = append(out, res)
			}
			return out, err
		}
		out = append(out, res)
	}
}
