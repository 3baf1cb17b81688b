package results

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/rankview/internal/evaluation"
)

var (
	accentColor = lipgloss.Color("39")
	mutedColor  = lipgloss.Color("245")
	textColor   = lipgloss.Color("252")

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor)

	rankStyle     = lipgloss.NewStyle().Foreground(mutedColor)
	filenameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	scoreStyle    = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)

	badgeStyle          = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	excellentBadgeStyle = badgeStyle.Background(lipgloss.Color("22")).Foreground(lipgloss.Color("157"))
	potentialBadgeStyle = badgeStyle.Background(lipgloss.Color("58")).Foreground(lipgloss.Color("229"))
	lowBadgeStyle       = badgeStyle.Background(lipgloss.Color("52")).Foreground(lipgloss.Color("217"))

	detailStyle      = lipgloss.NewStyle().Foreground(textColor).PaddingLeft(4).PaddingBottom(1)
	analysisLabel    = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	spotlightStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.ThickBorder()).BorderLeft(true).BorderForeground(lipgloss.Color("33")).PaddingLeft(1).MarginTop(1)
	spotlightTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("117"))
	spotlightQuote   = lipgloss.NewStyle().Italic(true).Foreground(textColor)
	skillsHeaderText = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
	skillTagStyle    = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("17")).Foreground(lipgloss.Color("153"))

	emptyStyle = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
)

// BadgeStyle returns the style for a classification.
func BadgeStyle(c evaluation.Classification) lipgloss.Style {
	switch c {
	case evaluation.ExcellentMatch:
		return excellentBadgeStyle
	case evaluation.Potential:
		return potentialBadgeStyle
	default:
		return lowBadgeStyle
	}
}
