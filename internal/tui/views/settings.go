package views

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/chemcalc/internal/config"
	"github.com/f3rmion/chemcalc/internal/equations"
	"github.com/f3rmion/chemcalc/internal/store"
)

// Settings view styles
var (
	settingsPathStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true).
				MarginBottom(1)

	settingsTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 2)

	settingsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 2)

	settingsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#a8dadc"))

	settingsRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1faee"))
)

// HistorySource lists recorded solves. *store.Store satisfies it.
type HistorySource interface {
	History(limit int) ([]store.SolveRecord, error)
}

type historyMsg struct {
	records []store.SolveRecord
	err     error
}

// SettingsModel shows the configuration, constants and solve history.
type SettingsModel struct {
	config    *config.Config
	configDir string
	constants equations.Constants
	history   HistorySource
	records   []store.SolveRecord
	err       error

	// Tabs: 0=Config, 1=Constants, 2=History
	tab     int
	scrollY int

	width  int
	height int
}

// NewSettingsModel creates a new settings model.
func NewSettingsModel(cfg *config.Config, configDir string, constants equations.Constants, history HistorySource) SettingsModel {
	return SettingsModel{
		config:    cfg,
		configDir: configDir,
		constants: constants,
		history:   history,
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// LoadHistory fetches recent solves.
func (m SettingsModel) LoadHistory() tea.Cmd {
	if m.history == nil {
		return nil
	}
	h := m.history
	return func() tea.Msg {
		recs, err := h.History(50)
		return historyMsg{records: recs, err: err}
	}
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "right", "l":
			m.tab = (m.tab + 1) % 3
			m.scrollY = 0
			if m.tab == 2 {
				return m, m.LoadHistory()
			}
			return m, nil
		case "left", "h":
			m.tab--
			if m.tab < 0 {
				m.tab = 2
			}
			m.scrollY = 0
			if m.tab == 2 {
				return m, m.LoadHistory()
			}
			return m, nil
		case "j", "down":
			m.scrollY++
			return m, nil
		case "k", "up":
			if m.scrollY > 0 {
				m.scrollY--
			}
			return m, nil
		case "g":
			m.scrollY = 0
			return m, nil
		case "r":
			return m, m.LoadHistory()
		}

	case historyMsg:
		m.records, m.err = msg.records, msg.err
		return m, nil
	}
	return m, nil
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("chemcalc Configuration"))
	b.WriteString("\n")
	b.WriteString(settingsPathStyle.Render("Config: " + m.configDir))
	b.WriteString("\n\n")

	tabs := []string{"Config", "Constants", "History"}
	var tabViews []string
	for i, t := range tabs {
		style := settingsTabStyle
		if i == m.tab {
			style = settingsTabActiveStyle
		}
		tabViews = append(tabViews, style.Render(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabViews...))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80")).Render(strings.Repeat("─", max(10, min(m.width-4, 60)))))
	b.WriteString("\n\n")

	var lines []string
	switch m.tab {
	case 0:
		lines = m.configLines()
	case 1:
		lines = m.constantLines()
	case 2:
		lines = m.historyLines()
	}
	b.WriteString(m.scrolled(lines))

	b.WriteString("\n")
	b.WriteString(help("←/→: switch tabs", "j/k: scroll", "r: reload history"))
	return b.String()
}

func (m SettingsModel) scrolled(lines []string) string {
	visible := max(5, m.height-12)
	start := min(m.scrollY, max(0, len(lines)-1))
	end := min(start+visible, len(lines))

	var b strings.Builder
	for _, l := range lines[start:end] {
		b.WriteString(l)
		b.WriteString("\n")
	}
	if len(lines) > visible {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(lines))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m SettingsModel) configLines() []string {
	if m.config == nil {
		return []string{mutedStyle.Render("No configuration loaded; run 'chemcalc init'")}
	}
	c := m.config
	row := func(k, v string) string { return labelStyle.Render(k) + settingsRowStyle.Render(v) }
	lines := []string{
		row("Precision", fmt.Sprint(c.Precision)),
		row("Suggestions", fmt.Sprint(c.SuggestionLimit)),
		row("History", fmt.Sprint(c.RecordHistory)),
		row("Catalog", c.CatalogPath(m.configDir)),
		row("Database", c.DatabasePath(m.configDir)),
	}
	if c.Species != "" {
		lines = append(lines, row("Species", c.SpeciesPath(m.configDir)))
	}
	if len(c.DisplayUnits) > 0 {
		lines = append(lines, "", settingsHeaderStyle.Render("Display units"))
		keys := make([]string, 0, len(c.DisplayUnits))
		for k := range c.DisplayUnits {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, row("  "+k, c.DisplayUnits[k]))
		}
	}
	return lines
}

func (m SettingsModel) constantLines() []string {
	keys := m.constants.Keys()
	lines := []string{settingsHeaderStyle.Render(fmt.Sprintf("Constants (%d)", len(keys))), ""}
	for _, k := range keys {
		v, _ := m.constants.Value(k)
		line := fmt.Sprintf("%-10s %-14g", k, v)
		if n := m.constants.Note(k); n != "" {
			line += "  " + mutedStyle.Render(n)
		}
		lines = append(lines, settingsRowStyle.Render(line))
	}
	return lines
}

func (m SettingsModel) historyLines() []string {
	switch {
	case m.err != nil:
		return []string{renderError(m.err)}
	case m.history == nil:
		return []string{mutedStyle.Render("History is disabled")}
	case len(m.records) == 0:
		return []string{mutedStyle.Render("No solves recorded yet")}
	}
	lines := []string{settingsHeaderStyle.Render(fmt.Sprintf("%-17s %-28s %-8s %s", "When", "Equation", "Target", "Value")), ""}
	for _, r := range m.records {
		line := fmt.Sprintf("%-17s %-28s %-8s %g", r.At.Format("2006-01-02 15:04"), r.Equation, r.Target, r.Value)
		lines = append(lines, settingsRowStyle.Render(line))
	}
	return lines
}
