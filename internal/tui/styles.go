package tui

import "github.com/charmbracelet/lipgloss"

// Palette, loosely after indicator colours.
var (
	ColorFlame   = lipgloss.Color("#E76F51") // titles
	ColorCopper  = lipgloss.Color("#2A9D8F") // sections, current view
	ColorSulfur  = lipgloss.Color("#E9C46A") // selection, keys
	ColorAsh     = lipgloss.Color("#6C757D")
	ColorPaper   = lipgloss.Color("#F8F9FA")
	ColorBench   = lipgloss.Color("#264653")
	ColorGlass   = lipgloss.Color("#457B9D")
	ColorGlassHi = lipgloss.Color("#A8DADC")
)

var (
	SidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(ColorGlass).
			Padding(1, 1)

	// SidebarFocusedStyle marks the sidebar as the key receiver.
	SidebarFocusedStyle = SidebarStyle.BorderForeground(ColorGlassHi)

	SidebarTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPaper).
				Background(ColorFlame).
				Padding(0, 1).
				MarginBottom(1)

	SidebarItemStyle = lipgloss.NewStyle().
				Foreground(ColorAsh).
				PaddingLeft(1)

	SidebarItemCurrentStyle = SidebarItemStyle.
				Bold(true).
				Foreground(ColorCopper)

	SidebarItemActiveStyle = SidebarItemStyle.
				Bold(true).
				Foreground(ColorBench).
				Background(ColorSulfur)

	SidebarHelpStyle = lipgloss.NewStyle().
				Foreground(ColorAsh).
				Italic(true).
				PaddingLeft(1)
)

var (
	HelpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorFlame).
			MarginBottom(1)

	HelpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(ColorCopper).
				MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorSulfur).
			Width(14)

	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorPaper)

	HelpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorCopper).
			Padding(1, 3).
			Width(60)
)

var ContentStyle = lipgloss.NewStyle().Padding(1, 2)
