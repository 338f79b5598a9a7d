package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/chemcalc/internal/reaction"
	"github.com/f3rmion/chemcalc/internal/report"
	"github.com/f3rmion/chemcalc/internal/thermo"
)

// ThermoSource is a thermo data source that can also be loaded whole for
// searching. *store.Store satisfies it.
type ThermoSource interface {
	thermo.Source
	Table() (*thermo.Table, error)
}

type thermoFindMsg struct {
	query   string
	entries []thermo.Entry
	table   *thermo.Table
	err     error
}

type thermoSumsMsg struct {
	equation string
	sums     *thermo.Sums
	err      error
}

// ThermoModel searches formation data and sums it over reactions.
type ThermoModel struct {
	src       ThermoSource
	generator *report.Generator
	limit     int

	input   textinput.Model
	table   table.Model
	cached  *thermo.Table
	entries []thermo.Entry
	loading bool

	output string
	err    error
	copier copier

	width  int
	height int
}

// NewThermoModel creates the thermo view.
func NewThermoModel(src ThermoSource, gen *report.Generator, limit int) ThermoModel {
	ti := newInput("nitrate, CO2, or CH4(g) + 2 O2(g) -> CO2(g) + 2 H2O(l)", 60)
	ti.Focus()
	return ThermoModel{
		src:       src,
		generator: gen,
		limit:     limit,
		input:     ti,
		table: newTable([]table.Column{
			{Title: "Formula", Width: 14},
			{Title: "Phase", Width: 6},
			{Title: "ΔH°f kJ/mol", Width: 13},
			{Title: "ΔG°f kJ/mol", Width: 13},
			{Title: "S° J/(mol·K)", Width: 13},
		}, 8),
	}
}

// SetSize updates the view dimensions.
func (m *ThermoModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(20, width-8)
	m.table.SetHeight(max(4, height-14))
}

func isReaction(text string) bool {
	for _, a := range reaction.Arrows {
		if strings.Contains(text, a) {
			return true
		}
	}
	return false
}

// Update handles messages.
func (m ThermoModel) Update(msg tea.Msg) (ThermoModel, tea.Cmd) {
	if m.copier.update(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			query := strings.TrimSpace(m.input.Value())
			if query == "" || m.loading {
				return m, nil
			}
			m.loading = true
			m.err = nil
			if isReaction(query) {
				return m, m.sumReaction(query)
			}
			return m, m.find(query)
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		case "ctrl+y":
			return m, m.copier.copy(m.output)
		}

	case thermoFindMsg:
		m.loading = false
		m.output = ""
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.cached = msg.table
		m.entries = msg.entries
		m.table.SetRows(m.rows())
		m.table.SetCursor(0)
		return m, nil

	case thermoSumsMsg:
		m.loading = false
		m.entries = nil
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.output, m.err = m.generator.Thermo(msg.equation, msg.sums)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// find loads the table on first use, then searches it.
func (m ThermoModel) find(query string) tea.Cmd {
	cached, src, limit := m.cached, m.src, m.limit
	return func() tea.Msg {
		t := cached
		if t == nil {
			var err error
			if t, err = src.Table(); err != nil {
				return thermoFindMsg{query: query, err: err}
			}
		}
		return thermoFindMsg{query: query, entries: t.Find(query, limit), table: t}
	}
}

func (m ThermoModel) sumReaction(equation string) tea.Cmd {
	src := m.src
	return func() tea.Msg {
		s, err := thermo.ReactionSumsText(equation, src)
		return thermoSumsMsg{equation: equation, sums: s, err: err}
	}
}

func (m ThermoModel) cell(e thermo.Entry, f thermo.Field) string {
	v, ok := e.Value(f)
	if !ok {
		return "—"
	}
	return m.generator.Number(v)
}

func (m ThermoModel) rows() []table.Row {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{e.Formula, e.Phase, m.cell(e, thermo.HasHf), m.cell(e, thermo.HasGf), m.cell(e, thermo.HasS)}
	}
	return rows
}

// View renders the thermo view.
func (m ThermoModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Thermochemistry"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString("\n")
		b.WriteString(loadingStyle.Render("Looking up…"))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString("\n")
		b.WriteString(renderError(m.err))
		b.WriteString("\n")
	case m.output != "":
		b.WriteString(reportStyle.Render(strings.TrimRight(m.output, "\n")))
		b.WriteString("\n")
	case len(m.entries) > 0:
		b.WriteString("\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
	case m.cached != nil:
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("No matching entries"))
		b.WriteString("\n")
	}
	if c := m.copier.view(); c != "" {
		b.WriteString(c)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(help("enter: search or sum a reaction", "↑/↓: scroll", "ctrl+y: copy sums"))
	return b.String()
}
