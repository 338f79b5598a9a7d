package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/chemcalc/internal/catalog"
	"github.com/f3rmion/chemcalc/internal/config"
	"github.com/f3rmion/chemcalc/internal/equations"
	"github.com/f3rmion/chemcalc/internal/formula"
	"github.com/f3rmion/chemcalc/internal/report"
	"github.com/f3rmion/chemcalc/internal/session"
	"github.com/f3rmion/chemcalc/internal/store"
	"github.com/f3rmion/chemcalc/internal/units"
)

func newTestApp(t *testing.T) AppModel {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(dir + "/test.db")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	constants := equations.DefaultConstants()
	app := NewApp(Deps{
		Config:    config.Default(),
		ConfigDir: dir,
		Session:   session.New(units.Default(), equations.NewMatcher(equations.DefaultBank(), constants), session.WithRecorder(st)),
		Constants: constants,
		Dict:      formula.DefaultDictionary(),
		Catalog:   catalog.Defaults(),
		Thermo:    st,
		History:   st,
		Generator: report.NewGenerator(report.Plain, 6),
	})
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(AppModel)
}

func press(m AppModel, keys ...string) AppModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		model, _ := m.Update(msg)
		m = model.(AppModel)
	}
	return m
}

func TestSidebarNavigation(t *testing.T) {
	m := newTestApp(t)
	if m.currentView != ViewSolver {
		t.Fatalf("start view = %d", m.currentView)
	}

	m = press(m, "tab", "3")
	if m.currentView != ViewICE || m.sidebarActive {
		t.Errorf("after tab 3: view %d, sidebar %v", m.currentView, m.sidebarActive)
	}

	m = press(m, "esc", "j", "enter")
	if m.currentView != ViewMass {
		t.Errorf("after esc j enter: view %d, want %d", m.currentView, ViewMass)
	}
	if !strings.Contains(m.View(), "Molar Mass") {
		t.Error("mass view not rendered")
	}
}

func TestDigitsReachFocusedView(t *testing.T) {
	m := newTestApp(t)
	m = press(m, "m", "=", "2")
	if m.currentView != ViewSolver {
		t.Fatalf("typing switched view to %d", m.currentView)
	}
	if !strings.Contains(m.View(), "m=2") {
		t.Error("typed text should reach the solver input")
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestApp(t)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyF1})
	m = model.(AppModel)
	if !m.showHelp || !strings.Contains(m.View(), "Global Keys") {
		t.Fatal("F1 should open help")
	}
	m = press(m, "x")
	if m.showHelp {
		t.Error("any key should close help")
	}
}

func TestQuitFromSidebar(t *testing.T) {
	m := newTestApp(t)
	m = press(m, "tab")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q in sidebar should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
