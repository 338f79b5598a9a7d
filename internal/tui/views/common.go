// Package views provides the individual views for the unified TUI.
package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/chemcalc/internal/clipboard"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(1, 2)

	reportStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ecdc4")).
			Padding(0, 2).
			Margin(1, 0)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true).
			Italic(true)

	copiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)
)

// Message types
type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// copier tracks the "copied" flash shown after a clipboard write.
type copier struct {
	copied bool
	err    error
}

func (c *copier) copy(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	if err := clipboard.Write(text); err != nil {
		c.err = err
		return nil
	}
	c.copied = true
	c.err = nil
	return clearCopiedAfter(2 * time.Second)
}

func (c *copier) update(msg tea.Msg) bool {
	if _, ok := msg.(clearCopiedMsg); ok {
		c.copied = false
		return true
	}
	return false
}

func (c copier) view() string {
	switch {
	case c.copied:
		return copiedStyle.Render("✓ copied to clipboard")
	case c.err != nil:
		return errorStyle.Render(c.err.Error())
	}
	return ""
}

func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = width
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))
	return ti
}

func newTable(cols []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithHeight(height),
		table.WithFocused(true),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#3d5a80")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("#a8dadc"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#ffe66d")).
		Background(lipgloss.Color("#2d3436")).
		Bold(true)
	t.SetStyles(s)
	return t
}

func help(parts ...string) string {
	return helpStyle.Render(strings.Join(parts, " • "))
}

func renderError(err error) string {
	if err == nil {
		return ""
	}
	return errorStyle.Render(err.Error())
}
