package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	draggedStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	columnStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))
	focusedColumn  = columnStyle.BorderForeground(lipgloss.Color("12"))
	acceptingStyle = columnStyle.BorderStyle(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("10"))
	rejectingStyle = columnStyle.BorderStyle(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("9"))
)
