package views

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/chemcalc/internal/catalog"
	"github.com/f3rmion/chemcalc/internal/equations"
	"github.com/f3rmion/chemcalc/internal/formula"
	"github.com/f3rmion/chemcalc/internal/report"
	"github.com/f3rmion/chemcalc/internal/session"
	"github.com/f3rmion/chemcalc/internal/thermo"
	"github.com/f3rmion/chemcalc/internal/units"
)

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func plain() *report.Generator { return report.NewGenerator(report.Plain, 6) }

type tableSource struct{ t *thermo.Table }

func (s tableSource) Lookup(f, phase string) (thermo.Entry, bool) { return s.t.Lookup(f, phase) }
func (s tableSource) Phases(f string) []string                    { return s.t.Phases(f) }
func (s tableSource) Table() (*thermo.Table, error)               { return s.t, nil }

func TestSolverView(t *testing.T) {
	sess := session.New(units.Default(), equations.NewMatcher(equations.DefaultBank(), equations.DefaultConstants()))
	m := NewSolverModel(sess, plain())

	m.input.SetValue("m=2.5kg, dT=30, c=4184")
	m, _ = m.Update(enter)
	if m.err != nil {
		t.Fatalf("assign error: %v", m.err)
	}
	if sess.Len() != 3 {
		t.Fatalf("known values = %d, want 3", sess.Len())
	}
	if len(m.matches) == 0 || m.matches[0].Equation.Key != "specific_heat" {
		t.Fatalf("first match = %+v", m.matches)
	}

	// Empty input solves the selected row.
	m, _ = m.Update(enter)
	if m.err != nil {
		t.Fatalf("solve error: %v", m.err)
	}
	if !strings.Contains(m.output, "= 313800 J") {
		t.Errorf("output = %q", m.output)
	}
	if !strings.Contains(m.View(), "Known values") {
		t.Error("view should list known values")
	}

	m.input.SetValue("-Q")
	m, _ = m.Update(enter)
	if _, ok := sess.Forget("Q"); ok {
		t.Error("Q should already be forgotten")
	}
	m.input.SetValue("clear")
	m, _ = m.Update(enter)
	if sess.Len() != 0 || len(m.matches) != 0 {
		t.Errorf("clear left %d values, %d matches", sess.Len(), len(m.matches))
	}

	m.input.SetValue("m=3 furlong")
	m, _ = m.Update(enter)
	if m.err == nil {
		t.Error("bad unit should surface an error")
	}
}

func TestReactionView(t *testing.T) {
	m := NewReactionModel(plain())
	m.input.SetValue("NaCl(aq) + AgNO3(aq) -> AgCl(s) + NaNO3(aq)")
	m, _ = m.Update(enter)
	if m.err != nil {
		t.Fatalf("error: %v", m.err)
	}
	if !strings.Contains(m.output, "Net ionic:   Cl- + Ag+ -> AgCl(s)") {
		t.Errorf("output = %q", m.output)
	}
	if m.balanced == "" {
		t.Error("balanced equation missing")
	}

	m.input.SetValue("NaCl(aq)")
	m, _ = m.Update(enter)
	if m.err == nil || m.output != "" {
		t.Errorf("equation without arrow: err = %v, output = %q", m.err, m.output)
	}
}

func TestParseInitial(t *testing.T) {
	got, err := ParseInitial("N2=1, H2=3 NH3=0")
	if err != nil {
		t.Fatalf("ParseInitial: %v", err)
	}
	if len(got) != 3 || got["H2"] != 3 || got["NH3"] != 0 {
		t.Errorf("ParseInitial = %v", got)
	}
	for _, in := range []string{"N2", "=1", "N2=x"} {
		if _, err := ParseInitial(in); err == nil {
			t.Errorf("ParseInitial(%q): expected error", in)
		}
	}
}

func TestICEView(t *testing.T) {
	m := NewICEModel(plain())
	m.inputs[iceEquation].SetValue("N2 + 3 H2 <=> 2 NH3")
	m.inputs[iceInitial].SetValue("N2=1 H2=3 NH3=0")
	m.inputs[iceK].SetValue("0.5")

	m, _ = m.Update(enter)
	if m.focus != iceInitial || m.result != nil {
		t.Fatalf("enter on first field should advance focus, got focus %d", m.focus)
	}
	m.setFocus(iceK)
	m, _ = m.Update(enter)
	if m.err != nil {
		t.Fatalf("solve error: %v", m.err)
	}
	if m.result == nil || len(m.result.Rows) != 3 || len(m.table.Rows()) != 3 {
		t.Fatalf("result = %+v", m.result)
	}
	if math.Abs(m.result.Q-0.5)/0.5 > 1e-6 {
		t.Errorf("Q = %g, want 0.5", m.result.Q)
	}

	m.inputs[iceK].SetValue("-1")
	m, _ = m.Update(enter)
	if m.err == nil {
		t.Error("negative K should fail")
	}
}

func TestMassView(t *testing.T) {
	m := NewMassModel(formula.DefaultDictionary(), plain(), 5)
	if len(m.suggestions) == 0 {
		t.Error("empty query should offer common substances")
	}
	m.input.SetValue("water")
	m, _ = m.Update(enter)
	if m.err != nil {
		t.Fatalf("error: %v", m.err)
	}
	if !strings.Contains(m.output, "H2O (water): 18.0153 g/mol") {
		t.Errorf("output = %q", m.output)
	}

	m.input.SetValue("Xx2")
	m, _ = m.Update(enter)
	if m.err == nil {
		t.Error("unknown element should fail")
	}
}

func TestThermoView(t *testing.T) {
	m := NewThermoModel(tableSource{thermo.Default()}, plain(), 5)

	m.input.SetValue("nitrate")
	m, cmd := m.Update(enter)
	if cmd == nil || !m.loading {
		t.Fatal("search should run asynchronously")
	}
	m, _ = m.Update(cmd())
	if m.err != nil {
		t.Fatalf("find error: %v", m.err)
	}
	if len(m.entries) == 0 || m.entries[0].Formula != "NO3-" {
		t.Errorf("entries = %+v", m.entries)
	}

	m.input.SetValue("CH4(g) + 2 O2(g) -> CO2(g) + 2 H2O(l)")
	m, cmd = m.Update(enter)
	m, _ = m.Update(cmd())
	if !strings.Contains(m.output, "ΔH°rxn = -890.36 kJ/mol") {
		t.Errorf("output = %q", m.output)
	}
}

func TestPhaseView(t *testing.T) {
	m := NewPhaseModel(catalog.Defaults(), plain(), t.TempDir())
	for i, v := range []string{"water", "1000 g", "-10", "110 °C"} {
		m.inputs[i].SetValue(v)
	}
	m.setFocus(phaseEnd)
	m, _ = m.Update(enter)
	if m.err != nil {
		t.Fatalf("error: %v", m.err)
	}
	if m.curve == nil || math.Abs(m.curve.Total-3_048_810) > 1e-3 {
		t.Fatalf("curve = %+v", m.curve)
	}
	if math.Abs(m.mass-1) > 1e-12 {
		t.Errorf("mass = %g kg, want 1", m.mass)
	}

	m.inputs[phaseSubstance].SetValue("unobtainium")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.err == nil {
		t.Error("unknown substance should fail")
	}
}
