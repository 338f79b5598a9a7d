package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/chemcalc/internal/formula"
	"github.com/f3rmion/chemcalc/internal/report"
)

// MassModel computes molar masses of formulas and named substances.
type MassModel struct {
	dict      *formula.Dictionary
	generator *report.Generator
	limit     int

	input       textinput.Model
	suggestions []formula.Species
	selected    int

	output string
	err    error
	copier copier

	width  int
	height int
}

// NewMassModel creates the molar mass view.
func NewMassModel(dict *formula.Dictionary, gen *report.Generator, limit int) MassModel {
	ti := newInput("H2O, Ca(OH)2, glucose …", 40)
	ti.Focus()
	m := MassModel{dict: dict, generator: gen, limit: limit, input: ti, selected: -1}
	m.suggestions = dict.Suggest("", limit)
	return m
}

// SetSize updates the view dimensions.
func (m *MassModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m MassModel) Update(msg tea.Msg) (MassModel, tea.Cmd) {
	if m.copier.update(msg) {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			query := m.input.Value()
			if m.selected >= 0 && m.selected < len(m.suggestions) {
				query = m.suggestions[m.selected].Name
				m.input.SetValue(query)
				m.selected = -1
			}
			m.compute(query)
			return m, nil
		case "down":
			if m.selected < len(m.suggestions)-1 {
				m.selected++
			}
			return m, nil
		case "up":
			if m.selected >= 0 {
				m.selected--
			}
			return m, nil
		case "ctrl+y":
			return m, m.copier.copy(m.output)
		}
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.suggestions = m.dict.Suggest(m.input.Value(), m.limit)
		m.selected = -1
	}
	return m, cmd
}

func (m *MassModel) compute(query string) {
	query = strings.TrimSpace(query)
	m.output, m.err = "", nil
	if query == "" {
		return
	}
	text := m.dict.NameToFormula(query)
	comp, total, err := formula.MassComposition(text)
	if err != nil {
		m.err = err
		return
	}
	m.output, m.err = m.generator.Mass(query, text, comp, total)
}

// View renders the molar mass view.
func (m MassModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Molar Mass"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if len(m.suggestions) > 0 {
		b.WriteString("\n")
		for i, s := range m.suggestions {
			line := "  " + s.Label()
			if i == m.selected {
				b.WriteString(resultStyle.Render("▸ " + s.Label()))
			} else {
				b.WriteString(mutedStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(renderError(m.err))
		b.WriteString("\n")
	}
	if m.output != "" {
		b.WriteString(reportStyle.Render(strings.TrimRight(m.output, "\n")))
		b.WriteString("\n")
	}
	if c := m.copier.view(); c != "" {
		b.WriteString(c)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(help("enter: compute", "↑/↓: pick suggestion", "ctrl+y: copy"))
	return b.String()
}
