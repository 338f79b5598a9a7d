package equilibrium

import (
	"errors"
	"math"
	"testing"

	"github.com/f3rmion/chemcalc/internal/reaction"
)

func TestSolveAmmonia(t *testing.T) {
	c0 := map[string]float64{"N2": 1.0, "H2": 3.0, "NH3": 0.5}
	const k = 0.5
	res, err := SolveReaction("N2 + 3H2 ⇌ 2NH3", c0, k)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Bracketed {
		t.Fatal("expected a bracketed root")
	}
	for _, row := range res.Rows {
		if row.Equilibrium < -1e-9 {
			t.Errorf("%s at equilibrium = %g, want >= 0", row.Species, row.Equilibrium)
		}
	}
	if rel := math.Abs(res.Q-k) / k; rel > 1e-6 {
		t.Errorf("Q = %g, want %g (rel err %g)", res.Q, k, rel)
	}
	if res.Direction != TowardProducts {
		t.Errorf("direction = %v, want toward products", res.Direction)
	}
	if res.Extent <= 0 {
		t.Errorf("extent = %g, want > 0", res.Extent)
	}
	names := []string{res.Rows[0].Species, res.Rows[1].Species, res.Rows[2].Species}
	if names[0] != "N2" || names[1] != "H2" || names[2] != "NH3" {
		t.Errorf("row order = %v", names)
	}
}

func TestSolveSimpleIsomerization(t *testing.T) {
	// A -> B with K = 2 from pure A: x/(1-x) = 2.
	sp := []Species{{Name: "A", Nu: -1, C0: 1}, {Name: "B", Nu: 1, C0: 0}}
	res, err := Solve(sp, 2)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Extent-2.0/3.0) > 1e-9 {
		t.Errorf("extent = %.12f, want 2/3", res.Extent)
	}
	if res.Q0 != 0 || res.Direction != TowardProducts {
		t.Errorf("Q0 = %g direction %v", res.Q0, res.Direction)
	}
	if res.Lo != 0 || res.Hi != 1 {
		t.Errorf("interval = [%g, %g], want [0, 1]", res.Lo, res.Hi)
	}
}

func TestFeasibleBoundIsPositiveZero(t *testing.T) {
	lo, hi := feasible([]Species{{Name: "A", Nu: -1, C0: 1}, {Name: "B", Nu: 1, C0: 0}})
	if lo != 0 || math.Signbit(lo) {
		t.Errorf("lo = %g (signbit %v), want +0", lo, math.Signbit(lo))
	}
	if hi != 1 {
		t.Errorf("hi = %g, want 1", hi)
	}
	res, err := Solve([]Species{{Name: "A", Nu: -1, C0: 1}, {Name: "B", Nu: 1, C0: 0}}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if math.Signbit(res.Lo) {
		t.Errorf("Result.Lo = %g, want +0", res.Lo)
	}
}

func TestSolveTowardReactants(t *testing.T) {
	sp := []Species{
		{Name: "H2", Nu: -1, C0: 0.1},
		{Name: "I2", Nu: -1, C0: 0.1},
		{Name: "HI", Nu: 2, C0: 1.0},
	}
	res, err := Solve(sp, 50)
	if err != nil {
		t.Fatal(err)
	}
	if res.Direction != TowardReactants {
		t.Errorf("direction = %v, want toward reactants", res.Direction)
	}
	if res.Extent >= 0 {
		t.Errorf("extent = %g, want negative", res.Extent)
	}
	if math.Abs(res.Q-50)/50 > 1e-6 {
		t.Errorf("Q = %g, want 50", res.Q)
	}
}

func TestSolveAtEquilibrium(t *testing.T) {
	sp := []Species{{Name: "A", Nu: -1, C0: 1}, {Name: "B", Nu: 1, C0: 2}}
	res, err := Solve(sp, 2)
	if err != nil {
		t.Fatal(err)
	}
	if res.Direction != AtEquilibrium {
		t.Errorf("direction = %v", res.Direction)
	}
	if math.Abs(res.Extent) > 1e-9 {
		t.Errorf("extent = %g, want 0", res.Extent)
	}
}

func TestSolveReactionParseError(t *testing.T) {
	if _, err := SolveReaction("N2 + H2", nil, 1); !errors.Is(err, reaction.ErrNoArrow) {
		t.Errorf("error = %v, want ErrNoArrow", err)
	}
}

func TestSolveErrors(t *testing.T) {
	tests := []struct {
		name string
		sp   []Species
		k    float64
		kind error
	}{
		{"empty", nil, 1, ErrNoSpecies},
		{"zero K", []Species{{"A", -1, 1}, {"B", 1, 0}}, 0, ErrBadConstant},
		{"NaN K", []Species{{"A", -1, 1}, {"B", 1, 0}}, math.NaN(), ErrBadConstant},
		{"negative", []Species{{"A", -1, -1}, {"B", 1, 0}}, 1, ErrNegative},
		{"all zero", []Species{{"A", -1, 0}, {"B", 1, 0}}, 1, ErrInfeasible},
	}
	for _, tt := range tests {
		_, err := Solve(tt.sp, tt.k)
		if !errors.Is(err, tt.kind) {
			t.Errorf("%s: error = %v, want %v", tt.name, err, tt.kind)
		}
	}
}

func TestFromStoichiometry(t *testing.T) {
	st := reaction.Stoichiometry{"NH3": 2, "N2": -1, "H2": -3}
	sp := FromStoichiometry(st, map[string]float64{"N2": 1})
	want := []string{"H2", "N2", "NH3"}
	for i, s := range sp {
		if s.Name != want[i] {
			t.Errorf("species[%d] = %s, want %s", i, s.Name, want[i])
		}
	}
	if sp[1].C0 != 1 || sp[0].C0 != 0 {
		t.Errorf("initial concentrations = %v", sp)
	}
}
