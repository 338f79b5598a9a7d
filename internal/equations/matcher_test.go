package equations

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/f3rmion/chemcalc/internal/units"
)

func mustBank(t *testing.T, eqs ...*Equation) *Bank {
	t.Helper()
	b, err := NewBank(eqs...)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	return b
}

func sum(keys ...string) Solver {
	return fn(func(v Values) float64 {
		total := 0.0
		for _, k := range keys {
			total += v[k]
		}
		return total
	})
}

func TestFindApplicableOrdering(t *testing.T) {
	a := &Equation{Key: "a", Name: "A", Variables: []string{"x", "y", "a"},
		Solvers: map[string]Solver{"a": sum("x", "y")}}
	b := &Equation{Key: "b", Name: "B", Variables: []string{"x", "y", "z", "b1", "b2"},
		Solvers: map[string]Solver{"b1": sum("x")}}
	c := &Equation{Key: "c", Name: "C", Variables: []string{"x", "y", "z", "c"},
		Solvers: map[string]Solver{"c": sum("x", "y", "z")}}

	m := NewMatcher(mustBank(t, a, b, c), NewConstants(nil, nil))
	got := m.FindApplicable(Values{"x": 1, "y": 2, "z": 3}, 1)

	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got), len(want))
	}
	for i, key := range want {
		if got[i].Equation.Key != key {
			t.Fatalf("position %d: got %s, want %s", i, got[i].Equation.Key, key)
		}
	}
	if got[0].Target != "c" || got[0].Overlap != 3 {
		t.Fatalf("unexpected first match: %+v", got[0])
	}
	if got[2].Solvable() || len(got[2].Missing) != 2 {
		t.Fatalf("B should be unsolvable with two missing, got %+v", got[2])
	}
}

func TestFindApplicableNameTieBreak(t *testing.T) {
	beta := &Equation{Key: "beta", Name: "beta", Variables: []string{"x", "y"},
		Solvers: map[string]Solver{"y": sum("x")}}
	alpha := &Equation{Key: "alpha", Name: "Alpha", Variables: []string{"x", "z"},
		Solvers: map[string]Solver{"z": sum("x")}}

	m := NewMatcher(mustBank(t, beta, alpha), NewConstants(nil, nil))
	got := m.FindApplicable(Values{"x": 1}, 1)
	if len(got) != 2 || got[0].Equation.Key != "alpha" || got[1].Equation.Key != "beta" {
		t.Fatalf("expected case-insensitive name order, got %v, %v", got[0].Equation.Key, got[1].Equation.Key)
	}
}

func TestFindApplicableCountsConstants(t *testing.T) {
	gas := &Equation{Key: "gas", Name: "Gas", Variables: []string{"p", "n", "R"},
		Solvers: map[string]Solver{"p": sum("n", "R")}}
	m := NewMatcher(mustBank(t, gas), NewConstants(map[string]float64{"R": 8.3}, nil))

	got := m.FindApplicable(Values{"n": 1}, 2)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].Overlap != 2 || got[0].Target != "p" {
		t.Fatalf("constant should count towards overlap: %+v", got[0])
	}
	for _, miss := range got[0].Missing {
		if miss == "R" {
			t.Fatal("constants must not be listed as missing")
		}
	}
	if none := m.FindApplicable(Values{}, 2); len(none) != 0 {
		t.Fatalf("min overlap not honored: %d matches", len(none))
	}
}

func TestSpecificHeatEndToEnd(t *testing.T) {
	m := NewMatcher(DefaultBank(), DefaultConstants())
	known := Values{"m": 2.5, "ΔT": 30, "c": 4184}

	matches := m.FindApplicable(known, 1)
	if len(matches) == 0 {
		t.Fatal("no matches")
	}
	first := matches[0]
	if first.Equation.Name != "Specific Heat Capacity" || first.Target != "Q" {
		t.Fatalf("first match = %s (target %q), want Specific Heat Capacity for Q", first.Equation.Name, first.Target)
	}

	target, err := m.CanSolve(first.Equation, known)
	if err != nil || target != "Q" {
		t.Fatalf("CanSolve = %q, %v", target, err)
	}
	q, err := m.SolveFor(first.Equation, target, known)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q != 313800.0 {
		t.Fatalf("Q = %v, want 313800", q)
	}
}

func TestSolveForDeterministic(t *testing.T) {
	m := NewMatcher(DefaultBank(), DefaultConstants())
	eq, _ := m.Bank().Get("particle_count_from_radius")
	vals := Values{"ρ": 19300, "r_part": 2.5e-9, "M_molar": 0.19697}

	a, err := m.SolveFor(eq, "N", vals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := m.SolveFor(eq, "N", vals)
	if math.Float64bits(a) != math.Float64bits(b) {
		t.Fatalf("results differ: %v vs %v", a, b)
	}
}

func TestSolveForUserOverridesConstant(t *testing.T) {
	m := NewMatcher(DefaultBank(), DefaultConstants())
	eq, _ := m.Bank().Get("ideal_gas_law")

	p, err := m.SolveFor(eq, "p", Values{"n": 1, "T": 273.15, "V": 22.414, "R": 0.082057})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p-1.0) > 1e-3 {
		t.Fatalf("p = %v, want ~1 atm with user R", p)
	}
}

func TestSolveForIgnoresForeignKeys(t *testing.T) {
	m := NewMatcher(DefaultBank(), DefaultConstants())
	eq, _ := m.Bank().Get("density")
	got, err := m.SolveFor(eq, "ρ", Values{"m": 2, "V": 4, "Q": 99, "unrelated": 1})
	if err != nil || got != 0.5 {
		t.Fatalf("SolveFor = %v, %v", got, err)
	}
}

func TestSolveForErrors(t *testing.T) {
	m := NewMatcher(DefaultBank(), DefaultConstants())
	bank := m.Bank()
	specific, _ := bank.Get("specific_heat")
	density, _ := bank.Get("density")
	dg, _ := bank.Get("equilibrium_dg")

	tests := []struct {
		name   string
		eq     *Equation
		target string
		vals   Values
		kind   error
	}{
		{"no solver", dg, "T", Values{"ΔG°rxn": -1000, "K": 2}, ErrMissingSolver},
		{"missing input", specific, "Q", Values{"m": 1}, ErrMissingInput},
		{"divide by zero", density, "ρ", Values{"m": 1, "V": 0}, ErrNumericDomain},
		{"log of negative", dg, "ΔG°rxn", Values{"K": -1, "T": 298}, ErrNumericDomain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.SolveFor(tt.eq, tt.target, tt.vals)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			var se *SolveError
			if !errors.As(err, &se) || se.Equation != tt.eq.Name {
				t.Fatalf("expected *SolveError for %s, got %#v", tt.eq.Name, err)
			}
		})
	}
}

func TestCanSolve(t *testing.T) {
	m := NewMatcher(DefaultBank(), DefaultConstants())
	bank := m.Bank()
	dg, _ := bank.Get("equilibrium_dg")
	gas, _ := bank.Get("ideal_gas_law")
	links, _ := bank.Get("q_s_d_links")

	if target, err := m.CanSolve(gas, Values{"p": 1, "V": 1, "n": 1}); err != nil || target != "T" {
		t.Fatalf("ideal gas: got %q, %v; want T", target, err)
	}
	if _, err := m.CanSolve(dg, Values{"ΔG°rxn": 1, "K": 1}); !errors.Is(err, ErrMissingSolver) {
		t.Fatalf("expected ErrMissingSolver for T, got %v", err)
	}
	if _, err := m.CanSolve(dg, Values{"ΔG°rxn": 1, "K": 1, "T": 300}); !errors.Is(err, ErrNoUniqueUnknown) {
		t.Fatalf("expected ErrNoUniqueUnknown with nothing unknown, got %v", err)
	}
	// Only d is known: two unknowns even though either could be derived.
	if _, err := m.CanSolve(links, Values{"d_spacing": 2}); !errors.Is(err, ErrNoUniqueUnknown) {
		t.Fatalf("expected ErrNoUniqueUnknown, got %v", err)
	}
}

func TestEitherInputSolver(t *testing.T) {
	m := NewMatcher(DefaultBank(), DefaultConstants())
	links, _ := m.Bank().Get("q_s_d_links")

	s, err := m.SolveFor(links, "s_recip", Values{"d_spacing": 2})
	if err != nil || s != 0.5 {
		t.Fatalf("s from d = %v, %v", s, err)
	}
	s, err = m.SolveFor(links, "s_recip", Values{"q_scat": 4 * math.Pi})
	if err != nil || math.Abs(s-2) > 1e-12 {
		t.Fatalf("s from q = %v, %v", s, err)
	}
	if _, err := m.SolveFor(links, "s_recip", Values{}); !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
}

func TestBohrUsesConstant(t *testing.T) {
	m := NewMatcher(DefaultBank(), DefaultConstants())
	eq, _ := m.Bank().Get("bohr_transition")
	e, err := m.SolveFor(eq, "ΔE", Values{"Z": 1, "n1": 2, "n2": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ev := e / 1.602176634e-19
	if math.Abs(ev-1.8897) > 1e-3 {
		t.Fatalf("Balmer alpha = %v eV, want ~1.89", ev)
	}
}

func TestNewBankValidation(t *testing.T) {
	bad := &Equation{Key: "bad", Name: "Bad", Variables: []string{"x"},
		Solvers: map[string]Solver{"y": sum("x")}}
	if _, err := NewBank(bad); err == nil {
		t.Fatal("expected error for solver target outside variables")
	}
	badInput := &Equation{Key: "bad", Name: "Bad", Variables: []string{"x", "y"},
		Solvers: map[string]Solver{"y": fnFrom([]string{"w"}, func(Values) float64 { return 0 })}}
	if _, err := NewBank(badInput); err == nil {
		t.Fatal("expected error for unknown solver input")
	}
	dupe := &Equation{Key: "d", Name: "D", Variables: []string{"x"}}
	if _, err := NewBank(dupe, dupe); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestBankVariablesAreRegistered(t *testing.T) {
	reg := units.Default()
	for _, eq := range DefaultBank().Equations() {
		for _, v := range eq.Variables {
			if !reg.Has(v) {
				t.Errorf("%s: variable %q missing from unit registry", eq.Key, v)
			}
		}
	}
}

func TestConstantNotes(t *testing.T) {
	m := NewMatcher(DefaultBank(), DefaultConstants())
	gas, _ := m.Bank().Get("ideal_gas_law")
	notes := m.ConstantNotes(gas)
	if len(notes) != 1 {
		t.Fatalf("expected one note for R, got %v", notes)
	}
	density, _ := m.Bank().Get("density")
	if len(m.ConstantNotes(density)) != 0 {
		t.Fatal("density uses no constants")
	}
}

func TestKnownsConcurrentUse(t *testing.T) {
	k := NewKnowns()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k.Set("x", float64(i))
			_ = k.Snapshot()
		}(i)
	}
	wg.Wait()
	if k.Len() != 1 {
		t.Fatalf("expected one key, got %d", k.Len())
	}
	snap := k.Snapshot()
	snap["y"] = 1
	if _, ok := k.Get("y"); ok {
		t.Fatal("snapshot must not alias internal state")
	}
	k.Delete("x")
	k.Set("b", 1)
	k.Set("a", 2)
	if keys := k.Keys(); len(keys) != 2 || keys[0] != "a" {
		t.Fatalf("Keys = %v", keys)
	}
	k.Clear()
	if k.Len() != 0 {
		t.Fatal("Clear left values behind")
	}
}
