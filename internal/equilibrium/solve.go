// Package equilibrium solves ICE tables: given initial concentrations and
// an equilibrium constant it finds the reaction extent x at which the
// reaction quotient equals K.
package equilibrium

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/f3rmion/chemcalc/internal/reaction"
)

const (
	// GridPoints is the number of samples taken across the feasible interval.
	GridPoints = 201
	// MaxBisections bounds the refinement of a bracketed root.
	MaxBisections = 100
	// Tolerance on |ln Q - ln K| that stops bisection early.
	Tolerance = 1e-12
)

var (
	ErrInfeasible  = errors.New("initial concentrations admit no non-negative extent")
	ErrBadConstant = errors.New("equilibrium constant must be positive and finite")
	ErrNoSpecies   = errors.New("no species")
	ErrNegative    = errors.New("negative initial concentration")
)

// Error carries the failing interval for infeasible systems.
type Error struct {
	Kind   error
	Lo, Hi float64
	Msg    string
}

func (e *Error) Error() string {
	if errors.Is(e.Kind, ErrInfeasible) {
		return fmt.Sprintf("%v (lo=%g, hi=%g)", e.Kind, e.Lo, e.Hi)
	}
	if e.Msg != "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

// Species is one participant: its signed stoichiometric coefficient and
// initial concentration.
type Species struct {
	Name string
	Nu   float64
	C0   float64
}

// Direction is where the system moves from its initial state.
type Direction int

const (
	AtEquilibrium Direction = iota
	TowardProducts
	TowardReactants
)

func (d Direction) String() string {
	switch d {
	case TowardProducts:
		return "shifts toward products"
	case TowardReactants:
		return "shifts toward reactants"
	}
	return "already at equilibrium"
}

// Row is one line of the ICE table.
type Row struct {
	Species     string
	Nu          float64
	Initial     float64
	Change      float64
	Equilibrium float64
}

// Result is a solved ICE table.
type Result struct {
	Extent    float64
	Lo, Hi    float64
	K         float64
	Q0        float64
	Q         float64
	Direction Direction
	// Bracketed is false when no sign change was found and Extent is the
	// grid point closest to K.
	Bracketed bool
	Rows      []Row
}

// FromStoichiometry builds species from signed coefficients, reactants
// first then products, each group sorted by name. Missing initial
// concentrations are zero.
func FromStoichiometry(st reaction.Stoichiometry, c0 map[string]float64) []Species {
	out := make([]Species, 0, len(st))
	for name, nu := range st {
		out = append(out, Species{Name: name, Nu: float64(nu), C0: c0[name]})
	}
	slices.SortFunc(out, func(a, b Species) int {
		if (a.Nu < 0) != (b.Nu < 0) {
			if a.Nu < 0 {
				return -1
			}
			return 1
		}
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out
}

// feasible returns the extent interval keeping every concentration
// non-negative.
func feasible(sp []Species) (float64, float64) {
	lo, hi := math.Inf(-1), math.Inf(1)
	for _, s := range sp {
		switch {
		case s.Nu > 0:
			// 0 - C0/ν keeps an absent product's bound at +0.
			lo = math.Max(lo, 0-s.C0/s.Nu)
		case s.Nu < 0:
			hi = math.Min(hi, s.C0/-s.Nu)
		}
	}
	return lo, hi
}

// logQ is ln Q(x); NaN when any concentration is not positive.
func logQ(sp []Species, x float64) float64 {
	var sum float64
	for _, s := range sp {
		if s.Nu == 0 {
			continue
		}
		c := s.C0 + s.Nu*x
		if c <= 0 {
			return math.NaN()
		}
		sum += s.Nu * math.Log(c)
	}
	return sum
}

// initialQuotient is Q at x=0, 0 or +Inf when a product or reactant is
// absent.
func initialQuotient(sp []Species) float64 {
	for _, s := range sp {
		if s.Nu > 0 && s.C0 == 0 {
			return 0
		}
	}
	for _, s := range sp {
		if s.Nu < 0 && s.C0 == 0 {
			return math.Inf(1)
		}
	}
	return math.Exp(logQ(sp, 0))
}

func direction(q0, k float64) Direction {
	switch {
	case math.Abs(q0-k) <= 1e-12*k:
		return AtEquilibrium
	case q0 < k:
		return TowardProducts
	}
	return TowardReactants
}

// Solve finds x with Q(x) = K inside the feasible interval. Q is compared
// on a log scale, which has the same sign as Q - K and stays finite over
// many orders of magnitude. The interval ends are undefined (some
// concentration is zero there) and are scanned as Q=0 at the product end
// and Q=+Inf at the reactant end.
func Solve(sp []Species, k float64) (*Result, error) {
	if len(sp) == 0 {
		return nil, &Error{Kind: ErrNoSpecies}
	}
	if !(k > 0) || math.IsInf(k, 1) {
		return nil, &Error{Kind: ErrBadConstant, Msg: fmt.Sprint(k)}
	}
	for _, s := range sp {
		if s.C0 < 0 {
			return nil, &Error{Kind: ErrNegative, Msg: s.Name}
		}
	}
	lo, hi := feasible(sp)
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo >= hi {
		return nil, &Error{Kind: ErrInfeasible, Lo: lo, Hi: hi}
	}

	lnK := math.Log(k)
	f := func(x float64) float64 { return logQ(sp, x) - lnK }

	xs := floats.Span(make([]float64, GridPoints), lo, hi)
	fs := make([]float64, len(xs))
	for i, x := range xs {
		fs[i] = f(x)
	}
	sign := func(i int) float64 {
		switch {
		case i == 0 && math.IsNaN(fs[i]):
			return -1
		case i == len(fs)-1 && math.IsNaN(fs[i]):
			return 1
		}
		return fs[i]
	}

	res := &Result{Lo: lo, Hi: hi, K: k, Q0: initialQuotient(sp)}
	res.Direction = direction(res.Q0, k)

	for i := 0; i+1 < len(xs); i++ {
		a, b := sign(i), sign(i+1)
		if math.IsNaN(a) || math.IsNaN(b) {
			continue
		}
		if a == 0 {
			res.Extent, res.Bracketed = xs[i], true
			break
		}
		if a*b < 0 {
			res.Extent, res.Bracketed = bisect(f, xs[i], xs[i+1], a), true
			break
		}
	}
	if !res.Bracketed {
		res.Extent = closest(xs, fs)
	}

	res.Q = math.Exp(logQ(sp, res.Extent))
	for _, s := range sp {
		change := s.Nu * res.Extent
		res.Rows = append(res.Rows, Row{
			Species:     s.Name,
			Nu:          s.Nu,
			Initial:     s.C0,
			Change:      change,
			Equilibrium: s.C0 + change,
		})
	}
	return res, nil
}

func bisect(f func(float64) float64, a, b, fa float64) float64 {
	mid := (a + b) / 2
	for range MaxBisections {
		mid = (a + b) / 2
		fm := f(mid)
		if math.Abs(fm) < Tolerance {
			break
		}
		if (fm < 0) == (fa < 0) {
			a, fa = mid, fm
		} else {
			b = mid
		}
	}
	return mid
}

// closest picks the defined grid point with the smallest |f|.
func closest(xs, fs []float64) float64 {
	abs := make([]float64, len(fs))
	for i, v := range fs {
		if math.IsNaN(v) {
			abs[i] = math.Inf(1)
			continue
		}
		abs[i] = math.Abs(v)
	}
	return xs[floats.MinIdx(abs)]
}

// SolveReaction parses an equation and solves its ICE table. Species are
// listed in the order written.
func SolveReaction(text string, c0 map[string]float64, k float64) (*Result, error) {
	st, err := reaction.ParseReaction(text)
	if err != nil {
		return nil, err
	}
	rx, err := reaction.Parse(text)
	if err != nil {
		return nil, err
	}
	var sp []Species
	for _, name := range rx.Species() {
		if nu, ok := st[name]; ok {
			sp = append(sp, Species{Name: name, Nu: float64(nu), C0: c0[name]})
		}
	}
	return Solve(sp, k)
}
