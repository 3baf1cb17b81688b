package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("99")
	accentColor  = lipgloss.Color("39")
	mutedColor   = lipgloss.Color("245")
	errorColor   = lipgloss.Color("196")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)

	fieldLabelStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)

	inputBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	focusedInputBoxStyle = inputBoxStyle.BorderForeground(primaryColor)

	placeholderLabelStyle = lipgloss.NewStyle().Foreground(mutedColor).PaddingLeft(2)
	jdSelectedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).PaddingLeft(2)
	candidatesSelected    = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).PaddingLeft(2)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("62")).
			Padding(0, 3).
			MarginTop(1)

	focusedButtonStyle  = buttonStyle.Background(lipgloss.Color("99")).Underline(true)
	disabledButtonStyle = buttonStyle.Background(lipgloss.Color("238")).Foreground(mutedColor)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(mutedColor)

	dialogStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(errorColor).
			Padding(1, 3)

	dialogTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("224")).Bold(true)

	spinnerStyle = lipgloss.NewStyle().Foreground(accentColor)
)
