package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/chemcalc/internal/equilibrium"
	"github.com/f3rmion/chemcalc/internal/report"
	"github.com/f3rmion/chemcalc/internal/units"
)

const (
	iceEquation = iota
	iceInitial
	iceK
)

// ICEModel solves equilibrium ICE tables.
type ICEModel struct {
	generator *report.Generator
	inputs    []textinput.Model
	focus     int

	table  table.Model
	result *equilibrium.Result
	output string
	err    error
	copier copier

	width  int
	height int
}

// NewICEModel creates the ICE view.
func NewICEModel(gen *report.Generator) ICEModel {
	eq := newInput("N2 + 3 H2 <=> 2 NH3", 50)
	eq.Prompt = "Reaction  > "
	eq.Focus()
	c0 := newInput("N2=1 H2=3 NH3=0", 50)
	c0.Prompt = "Initial   > "
	k := newInput("0.5", 20)
	k.Prompt = "K         > "

	return ICEModel{
		generator: gen,
		inputs:    []textinput.Model{eq, c0, k},
		table: newTable([]table.Column{
			{Title: "Species", Width: 14},
			{Title: "ν", Width: 4},
			{Title: "Initial", Width: 14},
			{Title: "Change", Width: 14},
			{Title: "Equilibrium", Width: 14},
		}, 6),
	}
}

// SetSize updates the view dimensions.
func (m *ICEModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m ICEModel) Update(msg tea.Msg) (ICEModel, tea.Cmd) {
	if m.copier.update(msg) {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "shift+up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "down", "shift+down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "enter":
			if m.focus < iceK {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			m.solve()
			return m, nil
		case "ctrl+s":
			m.solve()
			return m, nil
		case "ctrl+y":
			return m, m.copier.copy(m.output)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *ICEModel) setFocus(i int) {
	n := len(m.inputs)
	i = (i%n + n) % n
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	m.focus = i
}

// ParseInitial reads "A=1 B=0.5" or "A=1, B=0.5" into initial concentrations.
func ParseInitial(text string) (map[string]float64, error) {
	c0 := make(map[string]float64)
	fields := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ' ' || r == ';' })
	for _, f := range fields {
		name, val, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("parsing %q: want species=concentration", f)
		}
		v, _, err := units.ParseQuantity(val)
		if err != nil {
			return nil, err
		}
		c0[name] = v
	}
	return c0, nil
}

func (m *ICEModel) solve() {
	m.result, m.output, m.err = nil, "", nil

	eq := strings.TrimSpace(m.inputs[iceEquation].Value())
	c0, err := ParseInitial(m.inputs[iceInitial].Value())
	if err != nil {
		m.err = err
		return
	}
	k, _, err := units.ParseQuantity(m.inputs[iceK].Value())
	if err != nil {
		m.err = fmt.Errorf("K: %w", err)
		return
	}

	res, err := equilibrium.SolveReaction(eq, c0, k)
	if err != nil {
		m.err = err
		return
	}
	m.result = res

	rows := make([]table.Row, len(res.Rows))
	for i, r := range res.Rows {
		rows[i] = table.Row{
			r.Species,
			m.generator.Number(r.Nu),
			m.generator.Number(r.Initial),
			m.generator.Number(r.Change),
			m.generator.Number(r.Equilibrium),
		}
	}
	m.table.SetRows(rows)
	m.table.SetHeight(len(rows) + 1)
	m.output, m.err = m.generator.ICE(eq, res)
}

// View renders the ICE view.
func (m ICEModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ICE Table"))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(renderError(m.err))
		b.WriteString("\n")
	}
	if m.result != nil {
		b.WriteString("\n")
		b.WriteString(m.table.View())
		b.WriteString("\n\n")
		r := m.result
		b.WriteString(labelStyle.Render("Extent x"))
		b.WriteString(resultStyle.Render(m.generator.Number(r.Extent)))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  in [%s, %s]", m.generator.Number(r.Lo), m.generator.Number(r.Hi))))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Q₀ → Q"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s → %s (K = %s)", m.generator.Number(r.Q0), m.generator.Number(r.Q), m.generator.Number(r.K))))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Direction"))
		b.WriteString(valueStyle.Render(r.Direction.String()))
		b.WriteString("\n")
		if !r.Bracketed {
			b.WriteString(mutedStyle.Render("no exact root found; closest grid point shown"))
			b.WriteString("\n")
		}
	}
	if c := m.copier.view(); c != "" {
		b.WriteString(c)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(help("↑/↓: field", "enter: next / solve", "ctrl+s: solve", "ctrl+y: copy"))
	return b.String()
}
