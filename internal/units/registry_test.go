package units

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultRegistryRoundTrip(t *testing.T) {
	reg := Default()
	values := []float64{-40, 0, 1e-9, 2.5, 298.15, 101325, 6.02e23}

	for _, key := range reg.Keys() {
		for _, unit := range reg.UnitsFor(key) {
			for _, v := range values {
				got := reg.ConvertFromBase(key, reg.ConvertToBase(key, v, unit), unit)
				tol := 1e-9 * math.Max(1, math.Abs(v))
				if math.Abs(got-v) > tol {
					t.Errorf("%s [%s]: round trip of %g gave %g", key, unit, v, got)
				}
			}
		}
	}
}

func TestConvertToBase(t *testing.T) {
	reg := Default()
	tests := []struct {
		key  string
		val  float64
		unit string
		want float64
	}{
		{"T", 25, "°C", 298.15},
		{"T", 300, "K", 300},
		{"m", 500, "g", 0.5},
		{"p", 1, "atm", 101325},
		{"V", 2, "L", 0.002},
		{"Q", 1, "kcal", 4184},
		{"m", 7, "furlong", 7},
		{"nope", 3, "kg", 3},
		{"m", 7, "", 7},
	}
	for _, tt := range tests {
		got := reg.ConvertToBase(tt.key, tt.val, tt.unit)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ConvertToBase(%q, %g, %q) = %g, want %g", tt.key, tt.val, tt.unit, got, tt.want)
		}
	}
}

func TestEveryBaseUnitIsAChoice(t *testing.T) {
	reg := Default()
	for _, key := range reg.Keys() {
		base := reg.BaseUnit(key)
		found := false
		for _, u := range reg.UnitsFor(key) {
			if u == base {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: base unit %q missing from choices", key, base)
		}
	}
}

func TestNewRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		vars []Variable
	}{
		{"missing key", []Variable{{Name: "x", Base: "", Units: []UnitChoice{{Unit: "", Factor: 1}}}}},
		{"base not a choice", []Variable{{Key: "x", Base: "kg", Units: []UnitChoice{{Unit: "g", Factor: 1e-3}}}}},
		{"zero factor", []Variable{{Key: "x", Base: "kg", Units: []UnitChoice{{Unit: "kg", Factor: 0}}}}},
		{"duplicate", []Variable{
			{Key: "x", Base: "", Units: []UnitChoice{{Unit: "", Factor: 1}}},
			{Key: "x", Base: "", Units: []UnitChoice{{Unit: "", Factor: 1}}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.vars)
			if !errors.Is(err, ErrInvalidRegistry) {
				t.Fatalf("expected ErrInvalidRegistry, got %v", err)
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	src := `
variables:
  - key: "x"
    name: "distance"
    desc: "How far."
    aliases: ["dist", "length"]
    base: "m"
    units:
      - {unit: "m", factor: 1.0, offset: 0.0}
      - {unit: "km", factor: 1000.0, offset: 0.0}
`
	reg, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := reg.Normalize("dist"); got != "x" {
		t.Fatalf("Normalize(dist) = %q, want x", got)
	}
	if got := reg.ConvertToBase("x", 2, "km"); got != 2000 {
		t.Fatalf("ConvertToBase = %g, want 2000", got)
	}
}

func TestPreferredUnit(t *testing.T) {
	reg := Default()
	tests := map[string]string{
		"V":       "L",
		"p":       "kPa",
		"λ":       "nm",
		"E_ph":    "eV",
		"ΔH°rxn":  reg.BaseUnit("ΔH°rxn"),
		"missing": "",
	}
	for key, want := range tests {
		if got := reg.PreferredUnit(key); got != want {
			t.Errorf("PreferredUnit(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		value   float64
		unit    string
		wantErr bool
	}{
		{"2.5 kg", 2.5, "kg", false},
		{"1,5L", 1.5, "L", false},
		{"  30 °C ", 30, "°C", false},
		{"-4e3 J", -4000, "J", false},
		{"42", 42, "", false},
		{".5 mol", 0.5, "mol", false},
		{"kg", 0, "", true},
		{"", 0, "", true},
	}
	for _, tt := range tests {
		v, u, err := ParseQuantity(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseQuantity(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseQuantity(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if v != tt.value || u != tt.unit {
			t.Errorf("ParseQuantity(%q) = %g %q, want %g %q", tt.in, v, u, tt.value, tt.unit)
		}
	}
}

func TestLabel(t *testing.T) {
	reg := Default()
	if got := reg.Label("p"); got != "p — pressure" {
		t.Fatalf("Label(p) = %q", got)
	}
	if got := reg.Name("unknown"); got != "unknown" {
		t.Fatalf("Name(unknown) = %q", got)
	}
	if !reflect.DeepEqual(reg.UnitsFor("m"), []string{"kg", "g"}) {
		t.Fatalf("UnitsFor(m) = %v", reg.UnitsFor("m"))
	}
}
