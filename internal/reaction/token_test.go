package reaction

import (
	"errors"
	"testing"

	"github.com/f3rmion/chemcalc/internal/formula"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		in     string
		coef   int
		core   string
		charge int
		phase  Phase
	}{
		{"3H2", 3, "H2", 0, PhaseNone},
		{"2 Pt(NO3)2(aq)", 2, "Pt(NO3)2", 0, PhaseAqueous},
		{"H2O(l)", 1, "H2O", 0, PhaseLiquid},
		{"AgCl(s)", 1, "AgCl", 0, PhaseSolid},
		{"CO2(g)", 1, "CO2", 0, PhaseGas},
		{"Fe^3+(aq)", 1, "Fe", 3, PhaseAqueous},
		{"Fe3+", 1, "Fe", 3, PhaseNone},
		{"S2-", 1, "S", -2, PhaseNone},
		{"NO3-", 1, "NO3", -1, PhaseNone},
		{"NH4+", 1, "NH4", 1, PhaseNone},
		{"SO4^2-", 1, "SO4", -2, PhaseNone},
		{"SO4 2-", 1, "SO4", -2, PhaseNone},
		{"Ca++", 1, "Ca", 2, PhaseNone},
		{"Cu(2+)", 1, "Cu", 2, PhaseNone},
		{"Fe³⁺", 1, "Fe", 3, PhaseNone},
		{"2 Ag+(aq)", 2, "Ag", 1, PhaseAqueous},
	}
	for _, tt := range tests {
		got, err := ParseToken(tt.in)
		if err != nil {
			t.Errorf("ParseToken(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got.Coefficient != tt.coef || got.Core != tt.core || got.Charge != tt.charge || got.Phase != tt.phase {
			t.Errorf("ParseToken(%q) = {%d %q %d %v}, want {%d %q %d %v}",
				tt.in, got.Coefficient, got.Core, got.Charge, got.Phase,
				tt.coef, tt.core, tt.charge, tt.phase)
		}
	}
}

func TestParseTokenElectron(t *testing.T) {
	got, err := ParseToken("2e-")
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if !got.Electron || got.Coefficient != 2 || got.Charge != -1 || len(got.Atoms) != 0 {
		t.Errorf("ParseToken(2e-) = %+v", got)
	}
	if got.Key() != "e-" {
		t.Errorf("Key() = %q, want e-", got.Key())
	}
}

func TestParseTokenErrors(t *testing.T) {
	_, err := ParseToken("h2o")
	if !errors.Is(err, ErrBadSpecies) {
		t.Fatalf("ParseToken(h2o) error = %v, want ErrBadSpecies", err)
	}
	if !errors.Is(err, formula.ErrUnexpectedToken) {
		t.Errorf("error %v does not wrap the formula error", err)
	}
	if _, err := ParseToken("  "); !errors.Is(err, ErrBadSpecies) {
		t.Errorf("ParseToken(blank) error = %v, want ErrBadSpecies", err)
	}
}

func TestTokenKeyAndLabel(t *testing.T) {
	tests := []struct {
		in    string
		key   string
		label string
		str   string
	}{
		{"NaCl(s)", "NaCl(s)", "NaCl", "NaCl(s)"},
		{"N2", "N2", "N2", "N2"},
		{"Pt^2+(aq)", "Pt^2+", "Pt^2+", "Pt^2+(aq)"},
		{"3 SO4^2-", "SO4^2-", "SO4^2-", "3 SO4^2-"},
		{"Ag+", "Ag+", "Ag+", "Ag+"},
	}
	for _, tt := range tests {
		tok, err := ParseToken(tt.in)
		if err != nil {
			t.Fatalf("ParseToken(%q): %v", tt.in, err)
		}
		if tok.Key() != tt.key || tok.Label() != tt.label || tok.String() != tt.str {
			t.Errorf("%q: key %q label %q string %q, want %q %q %q",
				tt.in, tok.Key(), tok.Label(), tok.String(), tt.key, tt.label, tt.str)
		}
	}
}
