package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/chemcalc/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewSolver ViewType = iota
	ViewReaction
	ViewICE
	ViewMass
	ViewThermo
	ViewPhase
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// ViewSwitchMsg requests a view change
type ViewSwitchMsg struct {
	View ViewType
}

// AppModel is the main unified TUI model
type AppModel struct {
	deps Deps

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	solverView   views.SolverModel
	reactionView views.ReactionModel
	iceView      views.ICEModel
	massView     views.MassModel
	thermoView   views.ThermoModel
	phaseView    views.PhaseModel
	settingsView views.SettingsModel

	// Help overlay
	showHelp bool
}

// NewApp creates a new unified TUI application
func NewApp(d Deps) AppModel {
	limit := 7
	if d.Config != nil && d.Config.SuggestionLimit > 0 {
		limit = d.Config.SuggestionLimit
	}

	menuItems := []MenuItem{
		{Label: "Solver", View: ViewSolver, Shortcut: "1"},
		{Label: "Net Ionic", View: ViewReaction, Shortcut: "2"},
		{Label: "ICE Table", View: ViewICE, Shortcut: "3"},
		{Label: "Molar Mass", View: ViewMass, Shortcut: "4"},
		{Label: "Thermo", View: ViewThermo, Shortcut: "5"},
		{Label: "Heating", View: ViewPhase, Shortcut: "6"},
		{Label: "Settings", View: ViewSettings, Shortcut: "7"},
	}

	return AppModel{
		deps:         d,
		sidebarWidth: 18,
		currentView:  ViewSolver,
		menuItems:    menuItems,

		solverView:   views.NewSolverModel(d.Session, d.Generator),
		reactionView: views.NewReactionModel(d.Generator),
		iceView:      views.NewICEModel(d.Generator),
		massView:     views.NewMassModel(d.Dict, d.Generator, limit),
		thermoView:   views.NewThermoModel(d.Thermo, d.Generator, limit),
		phaseView:    views.NewPhaseModel(d.Catalog, d.Generator, d.ConfigDir),
		settingsView: views.NewSettingsModel(d.Config, d.ConfigDir, d.Constants, d.History),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m AppModel) switchTo(v ViewType) (AppModel, tea.Cmd) {
	m.currentView = v
	m.sidebarActive = false
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
	if v == ViewSettings {
		return m, m.settingsView.LoadHistory()
	}
	return m, nil
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// Global keys; the views own every other key while they have focus
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "f1":
			m.showHelp = true
			return m, nil
		case "esc":
			if m.sidebarActive {
				return m, tea.Quit
			}
			m.sidebarActive = true
			return m, nil
		case "tab":
			m.sidebarActive = !m.sidebarActive
			return m, nil
		}

		// Sidebar navigation when active
		if m.sidebarActive {
			switch key := msg.String(); key {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
				return m, nil
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
				return m, nil
			case "enter", "l", "right":
				return m.switchTo(m.menuItems[m.selectedMenu].View)
			default:
				for _, item := range m.menuItems {
					if item.Shortcut == key {
						return m.switchTo(item.View)
					}
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Update view sizes
		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.solverView.SetSize(contentWidth, contentHeight)
		m.reactionView.SetSize(contentWidth, contentHeight)
		m.iceView.SetSize(contentWidth, contentHeight)
		m.massView.SetSize(contentWidth, contentHeight)
		m.thermoView.SetSize(contentWidth, contentHeight)
		m.phaseView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)

		return m, nil

	case ViewSwitchMsg:
		return m.switchTo(msg.View)
	}

	// Key presses go to the active view only; other messages (async
	// results, timers) may belong to any view.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		return m.updateView(m.currentView, msg)
	}
	var cmds []tea.Cmd
	for _, item := range m.menuItems {
		var cmd tea.Cmd
		var model tea.Model
		model, cmd = m.updateView(item.View, msg)
		m = model.(AppModel)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m AppModel) updateView(v ViewType, msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch v {
	case ViewSolver:
		m.solverView, cmd = m.solverView.Update(msg)
	case ViewReaction:
		m.reactionView, cmd = m.reactionView.Update(msg)
	case ViewICE:
		m.iceView, cmd = m.iceView.Update(msg)
	case ViewMass:
		m.massView, cmd = m.massView.Update(msg)
	case ViewThermo:
		m.thermoView, cmd = m.thermoView.Update(msg)
	case ViewPhase:
		m.phaseView, cmd = m.phaseView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}
	return m, cmd
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewSolver:
		content = m.solverView.View()
	case ViewReaction:
		content = m.reactionView.View()
	case ViewICE:
		content = m.iceView.View()
	case ViewMass:
		content = m.massView.View()
	case ViewThermo:
		content = m.thermoView.View()
	case ViewPhase:
		content = m.phaseView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render(" ⚗ chemcalc "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				style = SidebarItemCurrentStyle
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	usedHeight := len(items) + 4 // borders and help
	for i := 0; i < m.height-usedHeight-2; i++ {
		items = append(items, "")
	}

	items = append(items, SidebarHelpStyle.Render("F1 Help  tab Menu"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	box := SidebarStyle
	if m.sidebarActive {
		box = SidebarFocusedStyle
	}
	return box.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

type helpEntry struct{ key, desc string }

var helpSections = []struct {
	title   string
	entries []helpEntry
}{
	{"Global Keys", []helpEntry{
		{"tab / esc", "Toggle sidebar focus"},
		{"1-7", "Switch views (sidebar)"},
		{"F1 / ?", "Show this help"},
		{"ctrl+c / q", "Quit (q from sidebar)"},
		{"ctrl+y", "Copy result to clipboard"},
	}},
	{"Solver", []helpEntry{
		{"enter", "Add m=2.5kg, or solve selected"},
		{"-name", "Forget a known value"},
		{"ctrl+a", "Solve everything derivable"},
	}},
	{"Net Ionic / Mass / Thermo", []helpEntry{
		{"enter", "Analyze the input"},
		{"↑/↓", "Pick suggestion or row"},
	}},
	{"ICE / Heating", []helpEntry{
		{"↑/↓", "Move between fields"},
		{"ctrl+s", "Solve"},
		{"ctrl+p", "Save heating curve plot"},
	}},
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	helpText := HelpTitleStyle.Render("chemcalc - chemistry calculator") + "\n"
	for _, s := range helpSections {
		helpText += HelpSectionStyle.Render(s.title) + "\n"
		for _, e := range s.entries {
			helpText += HelpKeyStyle.Render(e.key) + HelpDescStyle.Render(e.desc) + "\n"
		}
	}
	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorAsh).
		Italic(true).
		Render("Press any key to close")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(helpText))
}
