package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/chemcalc/internal/reaction"
	"github.com/f3rmion/chemcalc/internal/report"
)

// ReactionModel reduces molecular equations to net ionic form and balances
// them.
type ReactionModel struct {
	generator *report.Generator
	input     textinput.Model

	output   string
	balanced string
	err      error
	copier   copier

	width  int
	height int
}

// NewReactionModel creates the net ionic view.
func NewReactionModel(gen *report.Generator) ReactionModel {
	ti := newInput("AgNO3(aq) + NaCl(aq) -> AgCl(s) + NaNO3(aq)", 60)
	ti.Focus()
	return ReactionModel{generator: gen, input: ti}
}

// SetSize updates the view dimensions.
func (m *ReactionModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(20, width-8)
}

// Update handles messages.
func (m ReactionModel) Update(msg tea.Msg) (ReactionModel, tea.Cmd) {
	if m.copier.update(msg) {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			m.analyze()
			return m, nil
		case "ctrl+y":
			return m, m.copier.copy(m.output)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ReactionModel) analyze() {
	text := strings.TrimSpace(m.input.Value())
	m.output, m.balanced, m.err = "", "", nil
	if text == "" {
		return
	}

	res, err := reaction.NetIonic(text)
	if err != nil {
		m.err = err
		return
	}
	m.output, m.err = m.generator.NetIonic(res)

	// Balancing is a separate question; a failure there is informational.
	if rx, err := reaction.Balance(text); err == nil {
		m.balanced = rx.String()
	}
}

// View renders the net ionic view.
func (m ReactionModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Net Ionic Equation"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
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
	if m.balanced != "" {
		b.WriteString(labelStyle.Render("Balanced"))
		b.WriteString(valueStyle.Render(m.balanced))
		b.WriteString("\n")
	}
	if c := m.copier.view(); c != "" {
		b.WriteString(c)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.output == "" {
		b.WriteString(help("Type a molecular equation with phases and press Enter"))
	} else {
		b.WriteString(help("enter: analyze", "ctrl+y: copy"))
	}
	return b.String()
}
