package reaction

import (
	"errors"
	"testing"
)

type termWant struct {
	key   string
	count int
}

func checkTerms(t *testing.T, name string, got []Term, want []termWant) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: got %d terms %v, want %v", name, len(got), got, want)
		return
	}
	for i := range want {
		if got[i].Key != want[i].key || got[i].Count != want[i].count {
			t.Errorf("%s[%d] = (%s, %d), want (%s, %d)",
				name, i, got[i].Key, got[i].Count, want[i].key, want[i].count)
		}
	}
}

func TestDissociate(t *testing.T) {
	tests := []struct {
		in    string
		split bool
		want  []termWant
	}{
		{"NaCl(aq)", true, []termWant{{"Na+", 1}, {"Cl-", 1}}},
		{"CH3COOH(aq)", false, []termWant{{"CH3COOH(aq)", 1}}},
		{"2 H2SO4(aq)", true, []termWant{{"H+", 4}, {"SO4^2-", 2}}},
		{"Ba(OH)2(aq)", true, []termWant{{"Ba^2+", 1}, {"OH-", 2}}},
		{"Mg(OH)2(aq)", false, []termWant{{"Mg(OH)2(aq)", 1}}},
		{"Pt(NO3)2(aq)", true, []termWant{{"Pt^2+", 1}, {"NO3-", 2}}},
		{"(NH4)2SO4(aq)", true, []termWant{{"NH4+", 2}, {"SO4^2-", 1}}},
		{"Fe2(SO4)3(aq)", true, []termWant{{"Fe^3+", 2}, {"SO4^2-", 3}}},
		{"NaHCO3(aq)", true, []termWant{{"Na+", 1}, {"HCO3-", 1}}},
		{"K2Cr2O7(aq)", true, []termWant{{"K+", 2}, {"Cr2O7^2-", 1}}},
		{"FeCl3(aq)", true, []termWant{{"Fe^3+", 1}, {"Cl-", 3}}},
		{"3 CuBr2(aq)", true, []termWant{{"Cu^2+", 3}, {"Br-", 6}}},
		{"NH4Cl(aq)", true, []termWant{{"NH4+", 1}, {"Cl-", 1}}},
		{"H3PO4(aq)", false, []termWant{{"H3PO4(aq)", 1}}},
		{"HF(aq)", false, []termWant{{"HF(aq)", 1}}},
		{"NH3(aq)", false, []termWant{{"NH3(aq)", 1}}},
		{"AgCl(s)", false, []termWant{{"AgCl(s)", 1}}},
		{"NaCl", false, []termWant{{"NaCl", 1}}},
		{"Ag+(aq)", false, []termWant{{"Ag+", 1}}},
	}
	for _, tt := range tests {
		got, split, err := DissociateText(tt.in)
		if err != nil {
			t.Errorf("DissociateText(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if split != tt.split {
			t.Errorf("DissociateText(%q) split = %v, want %v", tt.in, split, tt.split)
		}
		checkTerms(t, tt.in, got, tt.want)
	}
}

func TestDissociateIonCharges(t *testing.T) {
	got, _, err := DissociateText("Al2(SO4)3(aq)")
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for _, term := range got {
		total += term.Charge * term.Count
	}
	if total != 0 {
		t.Errorf("ions of Al2(SO4)3 carry net charge %d", total)
	}
	if got[1].Atoms["O"] != 4 || got[1].Atoms["S"] != 1 {
		t.Errorf("sulfate atoms = %v", got[1].Atoms)
	}
}

func TestNetIonicDisplacement(t *testing.T) {
	res, err := NetIonic("Ag(s) + Pt(NO3)2(aq) -> AgNO3(aq) + Pt(s)")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := res.TotalIonic.String(), "Ag(s) + Pt^2+ + 2 NO3- -> Ag+ + NO3- + Pt(s)"; got != want {
		t.Errorf("total ionic = %q, want %q", got, want)
	}
	checkTerms(t, "spectators", res.Spectators, []termWant{{"NO3-", 1}})
	if got, want := res.String(), "2 Ag(s) + Pt^2+ -> 2 Ag+ + Pt(s)"; got != want {
		t.Errorf("net ionic = %q, want %q", got, want)
	}
	if !res.Balanced || !res.Dissociated || res.NoReaction {
		t.Errorf("flags = balanced %v dissociated %v none %v", res.Balanced, res.Dissociated, res.NoReaction)
	}
}

func TestNetIonic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"NaCl(aq) + AgNO3(aq) -> AgCl(s) + NaNO3(aq)", "Cl- + Ag+ -> AgCl(s)"},
		{"HCl(aq) + NaOH(aq) -> NaCl(aq) + H2O(l)", "H+ + OH- -> H2O(l)"},
		{"Zn(s) + Cu(NO3)2(aq) -> Zn(NO3)2(aq) + Cu(s)", "Zn(s) + Cu^2+ -> Zn^2+ + Cu(s)"},
		{"Al(s) + CuCl2(aq) -> AlCl3(aq) + Cu(s)", "2 Al(s) + 3 Cu^2+ -> 2 Al^3+ + 3 Cu(s)"},
	}
	for _, tt := range tests {
		res, err := NetIonic(tt.in)
		if err != nil {
			t.Errorf("NetIonic(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got := res.String(); got != tt.want {
			t.Errorf("NetIonic(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNetIonicNoReaction(t *testing.T) {
	res, err := NetIonic("NaCl(aq) + KNO3(aq) -> NaNO3(aq) + KCl(aq)")
	if err != nil {
		t.Fatal(err)
	}
	if !res.NoReaction {
		t.Fatalf("NoReaction = false, net %q", res.Net)
	}
	if len(res.Spectators) != 4 {
		t.Errorf("spectators = %v, want 4", res.Spectators)
	}
}

func TestNetIonicWithoutDissociation(t *testing.T) {
	res, err := NetIonic("N2(g) + 3 H2(g) -> 2 NH3(g)")
	if err != nil {
		t.Fatal(err)
	}
	if res.Dissociated || res.Balanced {
		t.Errorf("dissociated %v balanced %v, want both false", res.Dissociated, res.Balanced)
	}
	if got, want := res.String(), "N2(g) + 3 H2(g) -> 2 NH3(g)"; got != want {
		t.Errorf("net = %q, want %q", got, want)
	}
}

func TestNetIonicFallback(t *testing.T) {
	res, err := NetIonic("KCl(aq) -> KBr(aq)")
	if err != nil {
		t.Fatal(err)
	}
	if res.Balanced {
		t.Error("Balanced = true for an unbalanceable residue")
	}
	if got, want := res.String(), "Cl- -> Br-"; got != want {
		t.Errorf("net = %q, want %q", got, want)
	}
}

func TestNetIonicParseError(t *testing.T) {
	if _, err := NetIonic("NaCl(aq)"); !errors.Is(err, ErrNoArrow) {
		t.Errorf("error = %v, want ErrNoArrow", err)
	}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"H2 + O2 -> H2O", "2 H2 + O2 -> 2 H2O"},
		{"CH4 + O2 -> CO2 + H2O", "CH4 + 2 O2 -> CO2 + 2 H2O"},
		{"Fe + O2 -> Fe2O3", "4 Fe + 3 O2 -> 2 Fe2O3"},
		{"N2 + H2 -> NH3", "N2 + 3 H2 -> 2 NH3"},
		{"MnO4- + Fe^2+ + H+ -> Mn^2+ + Fe^3+ + H2O", "MnO4- + 5 Fe^2+ + 8 H+ -> Mn^2+ + 5 Fe^3+ + 4 H2O"},
	}
	for _, tt := range tests {
		got, err := Balance(tt.in)
		if err != nil {
			t.Errorf("Balance(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("Balance(%q) = %q, want %q", tt.in, got.String(), tt.want)
		}
	}
}

func TestBalanceErrors(t *testing.T) {
	for _, in := range []string{"H2 -> O2", "H2 + O2 + H2O2 -> H2O"} {
		if _, err := Balance(in); !errors.Is(err, ErrNotBalanceable) {
			t.Errorf("Balance(%q) error = %v, want ErrNotBalanceable", in, err)
		}
	}
}
