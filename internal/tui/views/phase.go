package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/chemcalc/internal/catalog"
	"github.com/f3rmion/chemcalc/internal/report"
	"github.com/f3rmion/chemcalc/internal/units"
)

const (
	phaseSubstance = iota
	phaseMass
	phaseStart
	phaseEnd
)

type plotSavedMsg struct {
	path string
	err  error
}

// PhaseModel computes heating and cooling curves from the phase catalog.
type PhaseModel struct {
	cat       catalog.Catalog
	generator *report.Generator
	plotDir   string

	inputs []textinput.Model
	focus  int

	name   string
	mass   float64
	curve  *catalog.Curve
	output string
	status string
	err    error
	copier copier

	width  int
	height int
}

// NewPhaseModel creates the phase change view. Plots are written to plotDir.
func NewPhaseModel(cat catalog.Catalog, gen *report.Generator, plotDir string) PhaseModel {
	labels := []string{"Substance", "Mass", "From", "To"}
	placeholders := []string{"water", "1 kg", "-10 °C", "110 °C"}
	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		inputs[i] = newInput(placeholders[i], 30)
		inputs[i].Prompt = fmt.Sprintf("%-10s> ", labels[i])
	}
	inputs[0].Focus()

	return PhaseModel{cat: cat, generator: gen, plotDir: plotDir, inputs: inputs}
}

// SetSize updates the view dimensions.
func (m *PhaseModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m PhaseModel) Update(msg tea.Msg) (PhaseModel, tea.Cmd) {
	if m.copier.update(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "enter":
			if m.focus < phaseEnd {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			m.compute()
			return m, nil
		case "ctrl+s":
			m.compute()
			return m, nil
		case "ctrl+p":
			if m.curve == nil {
				return m, nil
			}
			return m, m.savePlot()
		case "ctrl+y":
			return m, m.copier.copy(m.output)
		}

	case plotSavedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = "plot saved to " + msg.path
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *PhaseModel) setFocus(i int) {
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

// quantity parses a value, converting it to base units of key when a unit
// is given.
func quantity(reg *units.Registry, key, text string) (float64, error) {
	v, unit, err := units.ParseQuantity(text)
	if err != nil {
		return 0, err
	}
	if unit == "" {
		return v, nil
	}
	a, err := reg.ParseAssignment(key + "=" + text)
	if err != nil {
		return 0, err
	}
	return a.Base, nil
}

func (m *PhaseModel) compute() {
	m.curve, m.output, m.status, m.err = nil, "", "", nil

	name, sub, ok := m.cat.Find(m.inputs[phaseSubstance].Value())
	if !ok {
		m.err = fmt.Errorf("no catalog substance matches %q", strings.TrimSpace(m.inputs[phaseSubstance].Value()))
		return
	}
	reg := units.Default()
	mass, err := quantity(reg, "m", m.inputs[phaseMass].Value())
	if err != nil {
		m.err = fmt.Errorf("mass: %w", err)
		return
	}
	// Temperatures are read in °C; a "K" suffix is converted.
	t1, err := catalog.ParseCelsius(m.inputs[phaseStart].Value())
	if err != nil {
		m.err = fmt.Errorf("from: %w", err)
		return
	}
	t2, err := catalog.ParseCelsius(m.inputs[phaseEnd].Value())
	if err != nil {
		m.err = fmt.Errorf("to: %w", err)
		return
	}

	c, err := catalog.HeatingCurve(sub, mass, t1, t2)
	if err != nil {
		m.err = err
		return
	}
	m.name, m.mass, m.curve = name, mass, c
	m.output, m.err = m.generator.Heating(name, mass, c)
}

func (m PhaseModel) savePlot() tea.Cmd {
	c, name, dir := m.curve, m.name, m.plotDir
	return func() tea.Msg {
		path := catalog.PlotPath(dir, name)
		err := catalog.PlotHeatingCurve(c, name, path)
		return plotSavedMsg{path: path, err: err}
	}
}

// View renders the phase change view.
func (m PhaseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Heating Curve"))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Catalog"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Join(m.cat.Names(), " · ")))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(renderError(m.err))
		b.WriteString("\n")
	}
	if m.output != "" {
		b.WriteString(reportStyle.Render(strings.TrimRight(m.output, "\n")))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status))
		b.WriteString("\n")
	}
	if c := m.copier.view(); c != "" {
		b.WriteString(c)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(help("↑/↓: field", "enter: next / compute", "ctrl+p: save plot", "ctrl+y: copy"))
	return b.String()
}
