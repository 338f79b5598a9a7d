package units

import (
	"errors"
	"math"
	"testing"
)

func TestParseAssignment(t *testing.T) {
	reg := Default()
	tests := []struct {
		in    string
		key   string
		unit  string
		base  float64
		known bool
	}{
		{"m=2.5kg", "m", "kg", 2.5, true},
		{"mass = 250 g", "m", "g", 0.25, true},
		{"dT=30", "ΔT", "K", 30, true},
		{"c: 4.184 J/(g·K)", "c", "J/(g·K)", 4184, true},
		{"V = 2 l", "V", "L", 0.002, true},
		{"p=1 atm", "p", "atm", 101325, true},
		{"qwxz=3", "qwxz", "", 3, false},
	}
	for _, tt := range tests {
		a, err := reg.ParseAssignment(tt.in)
		if err != nil {
			t.Errorf("ParseAssignment(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if a.Key != tt.key || a.Unit != tt.unit || a.Known != tt.known {
			t.Errorf("ParseAssignment(%q) = %+v, want key %q unit %q known %v", tt.in, a, tt.key, tt.unit, tt.known)
		}
		if math.Abs(a.Base-tt.base) > 1e-9*math.Max(1, math.Abs(tt.base)) {
			t.Errorf("ParseAssignment(%q) base = %g, want %g", tt.in, a.Base, tt.base)
		}
	}
}

func TestParseAssignmentErrors(t *testing.T) {
	reg := Default()
	for _, in := range []string{"2.5", "=3", "m=", "m=abc"} {
		if _, err := reg.ParseAssignment(in); err == nil {
			t.Errorf("ParseAssignment(%q): expected error", in)
		}
	}
	if _, err := reg.ParseAssignment("m=3 furlong"); !errors.Is(err, ErrBadUnit) {
		t.Errorf("ParseAssignment with bad unit: error = %v, want ErrBadUnit", err)
	}
}
