package tui

import "github.com/charmbracelet/lipgloss"

// lectern palette; adaptive so the tab bar stays readable on light terminals
var (
	colorAccent = lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "245", Dark: "243"}
	colorNotice = lipgloss.AdaptiveColor{Light: "130", Dark: "179"}
	colorAlert  = lipgloss.AdaptiveColor{Light: "124", Dark: "203"}
)

var (
	tabCurrentStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorAccent)

	tabIdleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 2).
			Border(lipgloss.HiddenBorder(), false, false, true, false)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorNotice).
			PaddingLeft(2)

	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAlert).
			Padding(1, 4)

	alertStyle = lipgloss.NewStyle().
			Foreground(colorAlert).
			Bold(true)

	keyHintStyle = lipgloss.NewStyle().Foreground(colorMuted)

	paneStyle = lipgloss.NewStyle().Padding(1, 2)
)
