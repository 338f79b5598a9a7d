package units

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	reg := Default()
	tests := []struct {
		in   string
		want string
	}{
		{"m", "m"},
		{"M", "m"},
		{"  mass ", "m"},
		{"n", "n"},
		{"N", "N"},
		{"c", "c"},
		{"dt", "ΔT"},
		{"deltaT", "ΔT"},
		{"Δt", "ΔT"},
		{"delta temperature", "ΔT"},
		{"tem", "T"},
		{"rho", "ρ"},
		{"molarity", "c_m"},
		{"vol", "V"},
		{"presure", "p"},
		{"specifc heat", "c"},
		{"half life", "t_half"},
		{"zzz", "zzz"},
		{"  xyzzy qq ", "xyzzy qq"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := reg.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	reg := Default()
	inputs := []string{"m", "dt", "temp", "presure", "zzz", "", "Gibbs", "wavelength", "K", "ξ", "  rho  "}
	inputs = append(inputs, reg.Keys()...)
	for _, in := range inputs {
		once := reg.Normalize(in)
		if twice := reg.Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestResolveSignalsUnresolved(t *testing.T) {
	reg := Default()
	if key, ok := reg.Resolve("dt"); !ok || key != "ΔT" {
		t.Fatalf("Resolve(dt) = %q, %v", key, ok)
	}
	if key, ok := reg.Resolve("zzz"); ok || key != "zzz" {
		t.Fatalf("Resolve(zzz) = %q, %v; want unresolved", key, ok)
	}
}

func keysOf(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.Key
	}
	return out
}

func TestSuggestions(t *testing.T) {
	reg := Default()
	tests := []struct {
		query string
		limit int
		want  []string
	}{
		{"", 7, []string{"p", "V", "n", "T", "R", "m", "c"}},
		{"", 20, []string{"p", "V", "n", "T", "R", "m", "c", "ΔT", "ρ", "c_m"}},
		{"pre", 7, []string{"p", "p1", "p2", "p_total", "pA", "pB", "pC"}},
		{"temp", 7, []string{"ΔT", "T", "T1", "T2"}},
		{"presure", 7, []string{"p"}},
		{"zz", 7, nil},
	}
	for _, tt := range tests {
		got := keysOf(reg.Suggestions(tt.query, tt.limit))
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Suggestions(%q, %d) = %v, want %v", tt.query, tt.limit, got, tt.want)
		}
	}
}

func TestSuggestionLabels(t *testing.T) {
	reg := Default()
	s := reg.Suggestions("dens", 3)
	if len(s) == 0 || s[0].Key != "ρ" || s[0].Label != "ρ — density" {
		t.Fatalf("Suggestions(dens) = %+v", s)
	}
	if got := reg.Suggestions("p", 0); len(got) != DefaultSuggestionLimit {
		t.Fatalf("non-positive limit should fall back to %d, got %d", DefaultSuggestionLimit, len(got))
	}
}

func TestCloseMatchesOrdering(t *testing.T) {
	got := closeMatches("abcd", []string{"abce", "abcf", "xyz", "abcd"}, 3, 0.6)
	want := []string{"abcd", "abcf", "abce"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("closeMatches = %v, want %v", got, want)
	}
}
