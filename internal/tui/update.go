package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/rankview/internal/results"
	"github.com/alexisbeaulieu97/rankview/internal/selection"
	"github.com/alexisbeaulieu97/rankview/internal/submission"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputWidth := msg.Width - 10
		if inputWidth < 20 {
			inputWidth = 20
		}
		m.jdInput.Width = inputWidth
		m.candidatesInput.Width = inputWidth
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if !m.controller.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EvaluationDoneMsg:
		return m.handleEvaluationDone(msg)

	case RevealMsg:
		revealed, more := m.table.Reveal(msg.Generation, msg.Index)
		if !revealed || !more {
			return m, nil
		}
		return m, revealCmd(msg.Generation, msg.Index+1, results.RevealStagger)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// The error dialog swallows everything until it is dismissed.
	if m.controller.Phase() == submission.PhaseError {
		if key.Matches(msg, m.keys.Dismiss) && m.controller.Acknowledge() {
			m.log.Debug("error notification dismissed")
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		return m, m.cycleFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.cycleFocus(-1)
	}

	switch m.focus {
	case focusJobDescription, focusCandidates:
		if msg.Type == tea.KeyEnter {
			return m.submit()
		}
		return m.updateFocusedInput(msg)

	case focusSubmit:
		switch {
		case key.Matches(msg, m.keys.Activate):
			return m.submit()
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}

	case focusResults:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.table.Revealed()-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Activate):
			m.table.Toggle(m.cursor)
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
	}

	return m, nil
}

// updateFocusedInput forwards msg to the focused text input and reports a
// selection change whenever its value moves.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		input *textinput.Model
		kind  selection.Kind
	)
	switch m.focus {
	case focusJobDescription:
		input, kind = &m.jdInput, selection.JobDescription
	case focusCandidates:
		input, kind = &m.candidatesInput, selection.CandidateSet
	default:
		return m, nil
	}

	before := input.Value()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	if value := input.Value(); value != before {
		state := m.tracker.ChangeRaw(kind, value)
		m.log.WithFields(map[string]any{
			"input": kind.String(),
			"count": state.Count,
		}).Debug("selection changed")
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.controller.Phase() == submission.PhaseError {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	scr := m.render()
	line := msg.Y + scr.offset

	if line == scr.buttonLine {
		return m.submit()
	}
	if line < scr.resultsTop {
		return m, nil
	}
	if idx, ok := scr.layout.RowAt(line - scr.resultsTop); ok {
		m.cursor = idx
		cmd := m.setFocus(focusResults)
		m.table.Toggle(idx)
		return m, cmd
	}
	return m, nil
}

// submit starts an attempt unless one is already running.
func (m Model) submit() (tea.Model, tea.Cmd) {
	attempt, ok := m.controller.Begin()
	if !ok {
		return m, nil
	}

	m.table.Clear()
	m.cursor = 0
	if m.focus == focusResults {
		m.setFocus(focusSubmit)
	}

	form := m.form()
	log := m.log.WithFields(map[string]any{
		"attempt":    attempt.ID,
		"candidates": len(form.Candidates),
	})
	log.Info("submitting evaluation")

	return m, tea.Batch(m.spinner.Tick, evaluateCmd(m.evaluator, attempt, form, log))
}

func (m Model) handleEvaluationDone(msg EvaluationDoneMsg) (tea.Model, tea.Cmd) {
	log := m.log.With("attempt", msg.Attempt.ID)

	if msg.Err != nil {
		if m.controller.Fail(msg.Attempt, msg.Err) {
			log.Error(msg.Err, "evaluation failed")
		}
		return m, nil
	}

	if !m.controller.Succeed(msg.Attempt) {
		log.Debug("ignoring stale completion")
		return m, nil
	}

	generation := m.table.Replace(msg.Results)
	m.cursor = 0
	log.With("results", len(msg.Results)).Info("evaluation complete")

	if len(msg.Results) == 0 {
		return m, nil
	}
	return m, revealCmd(generation, 0, results.RevealDelay(0))
}
