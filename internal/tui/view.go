package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/rankview/internal/results"
	"github.com/alexisbeaulieu97/rankview/internal/selection"
	"github.com/alexisbeaulieu97/rankview/internal/submission"
)

// screen is the rendered body plus the coordinates mouse handling needs.
type screen struct {
	lines      []string
	offset     int
	buttonLine int
	resultsTop int
	layout     results.Layout
}

// View renders the UI
func (m Model) View() string {
	if m.controller.Phase() == submission.PhaseError {
		return m.renderDialog()
	}

	scr := m.render()
	body := scr.lines[scr.offset:]
	if limit := m.bodyHeight(); limit > 0 && len(body) > limit {
		body = body[:limit]
	}
	return strings.Join(body, "\n") + "\n" + m.renderFooter()
}

func (m Model) render() screen {
	var (
		scr   screen
		lines []string
	)
	push := func(block string) {
		lines = append(lines, strings.Split(block, "\n")...)
	}

	push(titleStyle.Render("rankview"))
	if m.endpoint != "" {
		push(subtitleStyle.Render("Evaluating against " + m.endpoint))
	}

	push(m.renderField("Job Description", m.jdInput.View(), m.tracker.State(selection.JobDescription), m.focus == focusJobDescription))
	push(m.renderField("Candidate Resumes", m.candidatesInput.View(), m.tracker.State(selection.CandidateSet), m.focus == focusCandidates))

	push(m.renderButton())
	scr.buttonLine = len(lines) - 1

	scr.resultsTop = -1
	if m.table.Visible() {
		push("")
		scr.resultsTop = len(lines)
		scr.layout = m.table.View(results.ViewOptions{
			Width:   m.width,
			Cursor:  m.cursor,
			Focused: m.focus == focusResults,
		})
		push(scr.layout.Content)
	}

	scr.lines = lines
	scr.offset = m.scrollOffset(scr)
	return scr
}

// scrollOffset keeps the row under the cursor on screen.
func (m Model) scrollOffset(scr screen) int {
	limit := m.bodyHeight()
	if limit <= 0 || len(scr.lines) <= limit || m.focus != focusResults || scr.resultsTop < 0 {
		return 0
	}
	if m.cursor >= len(scr.layout.SummaryLines) || scr.layout.SummaryLines[m.cursor] < 0 {
		return 0
	}

	target := scr.resultsTop + scr.layout.SummaryLines[m.cursor]
	if row, ok := m.table.Row(m.cursor); ok && row.Expanded {
		// Keep as much of the detail as fits below the summary.
		next := len(scr.lines) - 1
		for _, at := range scr.layout.SummaryLines[m.cursor+1:] {
			if at >= 0 {
				next = scr.resultsTop + at - 1
				break
			}
		}
		if next-target < limit {
			target = next
		}
	}

	offset := target - limit + 1
	if offset < 0 {
		return 0
	}
	if last := len(scr.lines) - limit; offset > last {
		return last
	}
	return offset
}

func (m Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	h := m.height - lipgloss.Height(m.renderFooter()) - 1
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) renderField(title, input string, state selection.State, focused bool) string {
	box := inputBoxStyle
	if focused {
		box = focusedInputBoxStyle
	}

	labelStyle := placeholderLabelStyle
	if state.Selected {
		labelStyle = jdSelectedStyle
		if state.Kind == selection.CandidateSet {
			labelStyle = candidatesSelected
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		fieldLabelStyle.Render(title),
		box.Render(input),
		labelStyle.Render(state.Label),
	)
}

func (m Model) renderButton() string {
	label := m.controller.ButtonLabel()

	style := buttonStyle
	switch {
	case !m.controller.SubmitEnabled():
		style = disabledButtonStyle
	case m.focus == focusSubmit:
		style = focusedButtonStyle
	}

	button := style.Render(label)
	if m.controller.Loading() {
		return lipgloss.JoinHorizontal(lipgloss.Bottom, button, " ", m.spinner.View())
	}
	return button
}

func (m Model) renderDialog() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		dialogTextStyle.Render(m.controller.Message()),
		"",
		subtitleStyle.Render("press enter to dismiss"),
	)
	dialog := dialogStyle.Render(content)

	if m.width <= 0 || m.height <= 0 {
		return dialog
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

func (m Model) renderFooter() string {
	var hints []string
	switch m.focus {
	case focusJobDescription, focusCandidates:
		hints = []string{"tab: next field", "enter: evaluate", "ctrl+c: quit"}
	case focusSubmit:
		hints = []string{"tab: next field", "enter: evaluate", "q: quit"}
	case focusResults:
		hints = []string{"↑/↓: select", "enter: details", "click: details", "q: quit"}
	}
	return footerStyle.Render(strings.Join(hints, " • "))
}
