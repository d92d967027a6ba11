package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle uses ANSI 6 (Cyan), readable on light and dark terminals.
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

	// ReplyStyle is the assistant's voice.
	ReplyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

	// SkillStyle ANSI 3 (Yellow) marks which skill answered.
	SkillStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// MutedStyle ANSI 8 (Bright Black) for hints and secondary lines.
	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// ErrorStyle ANSI 1 (Red).
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)
