package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/chemcalc/internal/equations"
	"github.com/f3rmion/chemcalc/internal/report"
	"github.com/f3rmion/chemcalc/internal/session"
)

// SolverModel collects known values and solves matching equations.
type SolverModel struct {
	sess      *session.Session
	generator *report.Generator

	input   textinput.Model
	table   table.Model
	matches []equations.Match

	status string
	output string
	err    error
	copier copier

	width  int
	height int
}

// NewSolverModel creates the solver view.
func NewSolverModel(sess *session.Session, gen *report.Generator) SolverModel {
	ti := newInput("m = 2.5 kg, dT = 30, c = 4184 …", 50)
	ti.Focus()

	return SolverModel{
		sess:      sess,
		generator: gen,
		input:     ti,
		table: newTable([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Equation", Width: 28},
			{Title: "Formula", Width: 30},
			{Title: "Status", Width: 24},
		}, 8),
	}
}

// SetSize updates the view dimensions.
func (m *SolverModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(4, height-18))
}

// Update handles messages.
func (m SolverModel) Update(msg tea.Msg) (SolverModel, tea.Cmd) {
	if m.copier.update(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				m.solveSelected()
				return m, nil
			}
			m.input.SetValue("")
			m.apply(text)
			return m, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		case "ctrl+a":
			m.solveAll()
			return m, nil
		case "ctrl+y":
			return m, m.copier.copy(m.output)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply runs one line of input: an assignment, "-name" to forget a value,
// "clear" to start over or a match number to solve.
func (m *SolverModel) apply(text string) {
	m.err = nil
	m.status = ""
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
			continue
		case part == "clear" || part == "reset":
			m.sess.Reset()
			m.output = ""
			m.status = "cleared all known values"
		case strings.HasPrefix(part, "-"):
			key, ok := m.sess.Forget(part[1:])
			if !ok {
				m.err = fmt.Errorf("%s is not known", key)
				return
			}
			m.status = "forgot " + key
		default:
			if n, err := strconv.Atoi(part); err == nil {
				m.refresh()
				res, err := m.sess.SolveIndex(n)
				m.show(res, err)
				continue
			}
			a, err := m.sess.Assign(part)
			if err != nil {
				m.err = err
				m.refresh()
				return
			}
			if !a.Known {
				m.status = fmt.Sprintf("%s is not a known variable; stored as entered", a.Key)
			}
		}
	}
	m.refresh()
}

func (m *SolverModel) solveSelected() {
	if len(m.matches) == 0 {
		return
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.matches) {
		return
	}
	res, err := m.sess.Solve(m.matches[i].Equation)
	m.show(res, err)
	m.refresh()
}

func (m *SolverModel) solveAll() {
	results, err := m.sess.SolveAll()
	m.err = err
	var parts []string
	for _, res := range results {
		out, rerr := m.generator.Solve(res.Report())
		if rerr != nil {
			m.err = rerr
			break
		}
		parts = append(parts, out)
	}
	if len(parts) > 0 {
		m.output = strings.Join(parts, "\n")
	}
	m.status = fmt.Sprintf("derived %d value(s)", len(results))
	m.refresh()
}

func (m *SolverModel) show(res *session.Result, err error) {
	if res != nil {
		out, rerr := m.generator.Solve(res.Report())
		if rerr == nil {
			m.output = out
		} else if err == nil {
			err = rerr
		}
	}
	m.err = err
}

func (m *SolverModel) refresh() {
	m.matches = m.sess.Matches()
	rows := make([]table.Row, len(m.matches))
	for i, mt := range m.matches {
		status := "missing: " + strings.Join(mt.Missing, ", ")
		if mt.Solvable() {
			status = "solve for " + mt.Target
		}
		rows[i] = table.Row{strconv.Itoa(i + 1), mt.Equation.Name, mt.Equation.Formula, status}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

// View renders the solver view.
func (m SolverModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Equation Solver"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	knowns := m.sess.Knowns()
	if len(knowns) == 0 {
		b.WriteString(mutedStyle.Render("No known values yet"))
		b.WriteString("\n")
	} else {
		width := 0
		for _, k := range knowns {
			width = max(width, runewidth.StringWidth(k.Label))
		}
		b.WriteString(subtitleStyle.Render("Known values"))
		b.WriteString("\n")
		for _, k := range knowns {
			line := fmt.Sprintf("  %s = %s %s", runewidth.FillRight(k.Label, width), m.generator.Number(k.Value), k.Unit)
			b.WriteString(valueStyle.Render(line))
			b.WriteString("\n")
		}
	}

	if len(m.matches) > 0 {
		b.WriteString("\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(renderError(m.err))
		b.WriteString("\n")
	}
	if m.output != "" {
		b.WriteString(reportStyle.Render(m.output))
		b.WriteString("\n")
	}
	if c := m.copier.view(); c != "" {
		b.WriteString(c)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(help("enter: add value / solve selected", "↑/↓: select", "-name: forget", "ctrl+a: solve all", "ctrl+y: copy"))
	return b.String()
}
