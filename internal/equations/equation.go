// Package equations holds the bank of textbook equations, the physical
// constants they draw on, and the matcher that decides which equations a set
// of known values can solve.
package equations

import (
	"fmt"
	"strings"
)

// Values maps canonical variable keys to values in base units.
type Values map[string]float64

// Clone returns a copy of v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, x := range v {
		out[k] = x
	}
	return out
}

// Has reports whether key has a value.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// Solver computes one variable of an equation from the others.
type Solver struct {
	// Inputs lists the keys Fn reads. Nil means every other variable of the
	// equation. An empty, non-nil slice means Fn checks its own inputs.
	Inputs []string
	Fn     func(Values) (float64, error)
}

// Equation is an immutable record: its variables, a display formula and a
// solver per target variable.
type Equation struct {
	Key       string
	Name      string
	Variables []string
	Formula   string
	Notes     string
	Solvers   map[string]Solver
}

// HasVariable reports whether key is one of the equation's variables.
func (e *Equation) HasVariable(key string) bool {
	for _, v := range e.Variables {
		if v == key {
			return true
		}
	}
	return false
}

// Targets returns the variables the equation can be solved for, in
// declaration order.
func (e *Equation) Targets() []string {
	var out []string
	for _, v := range e.Variables {
		if _, ok := e.Solvers[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

func (e *Equation) inputsFor(target string, s Solver) []string {
	if s.Inputs != nil {
		return s.Inputs
	}
	out := make([]string, 0, len(e.Variables)-1)
	for _, v := range e.Variables {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}

// Bank is an ordered, read-only collection of equations.
type Bank struct {
	eqs   []*Equation
	byKey map[string]*Equation
}

// NewBank validates the equations and collects them into a bank. Every
// solver target and declared input must be one of its equation's variables.
func NewBank(eqs ...*Equation) (*Bank, error) {
	b := &Bank{byKey: make(map[string]*Equation, len(eqs))}
	for _, eq := range eqs {
		if eq.Key == "" {
			return nil, fmt.Errorf("equation %q has no key", eq.Name)
		}
		if _, dup := b.byKey[eq.Key]; dup {
			return nil, fmt.Errorf("duplicate equation key %q", eq.Key)
		}
		for target, s := range eq.Solvers {
			if !eq.HasVariable(target) {
				return nil, fmt.Errorf("equation %s: solver target %q is not a variable", eq.Key, target)
			}
			if s.Fn == nil {
				return nil, fmt.Errorf("equation %s: solver for %q has no function", eq.Key, target)
			}
			for _, in := range s.Inputs {
				if !eq.HasVariable(in) {
					return nil, fmt.Errorf("equation %s: solver for %q reads unknown variable %q", eq.Key, target, in)
				}
			}
		}
		b.byKey[eq.Key] = eq
		b.eqs = append(b.eqs, eq)
	}
	return b, nil
}

// Equations returns the equations in bank order.
func (b *Bank) Equations() []*Equation {
	out := make([]*Equation, len(b.eqs))
	copy(out, b.eqs)
	return out
}

// Get returns the equation with the given key.
func (b *Bank) Get(key string) (*Equation, bool) {
	eq, ok := b.byKey[key]
	return eq, ok
}

// Find looks an equation up by key or by case-insensitive name.
func (b *Bank) Find(name string) (*Equation, bool) {
	if eq, ok := b.byKey[name]; ok {
		return eq, true
	}
	for _, eq := range b.eqs {
		if strings.EqualFold(eq.Name, name) {
			return eq, true
		}
	}
	return nil, false
}

// Len returns the number of equations.
func (b *Bank) Len() int { return len(b.eqs) }
