package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/rankview/internal/client"
	"github.com/alexisbeaulieu97/rankview/internal/evaluation"
	"github.com/alexisbeaulieu97/rankview/internal/logger"
	"github.com/alexisbeaulieu97/rankview/internal/selection"
	"github.com/alexisbeaulieu97/rankview/internal/submission"
)

type fakeEvaluator struct {
	forms   []client.Form
	set     evaluation.ResultSet
	err     error
	explode bool
}

func (f *fakeEvaluator) Evaluate(_ context.Context, form client.Form) (evaluation.ResultSet, error) {
	f.forms = append(f.forms, form)
	if f.explode {
		panic("boom")
	}
	return f.set, f.err
}

func sampleSet() evaluation.ResultSet {
	return evaluation.ResultSet{
		{
			Rank:      1,
			Filename:  "alice.pdf",
			Score:     84.2,
			Reason:    "Excellent Match! Strong overlap.",
			Highlight: evaluation.Some("Built distributed systems in Go."),
			Skills:    evaluation.Some([]string{"go", "kubernetes"}),
		},
		{Rank: 2, Filename: "bob.docx", Score: 41, Reason: "Potential."},
		{Rank: 3, Filename: "carol.txt", Score: 12.5, Reason: "Low Match."},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func press(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func writeFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("content"), 0o644))
		paths = append(paths, p)
	}
	return paths
}

// submitted returns a model with one attempt in flight.
func submitted(t *testing.T, ev Evaluator) (Model, submission.Attempt) {
	t.Helper()
	m := NewModel(Options{Evaluator: ev, Logger: logger.Discard()})
	m, cmd := update(t, m, press(tea.KeyEnter))
	require.NotNil(t, cmd)
	require.Equal(t, submission.PhaseSubmitting, m.Phase())
	return m, m.controller.Current()
}

// revealed drives a successful completion and every reveal tick.
func revealed(t *testing.T, set evaluation.ResultSet) Model {
	t.Helper()
	m, attempt := submitted(t, &fakeEvaluator{})
	m, _ = update(t, m, EvaluationDoneMsg{Attempt: attempt, Results: set})
	gen := m.Table().Generation()
	for i := range set {
		m, _ = update(t, m, RevealMsg{Generation: gen, Index: i})
	}
	require.Equal(t, len(set), m.Table().Revealed())
	return m
}

func TestNewModel_InitialState(t *testing.T) {
	m := NewModel(Options{})

	assert.Equal(t, submission.PhaseIdle, m.Phase())
	assert.Equal(t, focusJobDescription, m.focus)
	assert.Equal(t, selection.JobDescriptionPlaceholder, m.Selection(selection.JobDescription).Label)
	assert.Equal(t, selection.CandidateSetPlaceholder, m.Selection(selection.CandidateSet).Label)
	assert.False(t, m.Table().Visible())

	view := m.View()
	assert.Contains(t, view, submission.IdleLabel)
	assert.Contains(t, view, "PDF, DOCX, TXT")
	assert.Contains(t, view, "Upload multiple files")
}

func TestNewModel_Prefill(t *testing.T) {
	dir := t.TempDir()
	jd := writeFiles(t, dir, "job.pdf")[0]
	writeFiles(t, dir, "a.txt", "b.txt")

	m := NewModel(Options{JobDescription: jd, Candidates: filepath.Join(dir, "*.txt")})

	assert.Equal(t, "job.pdf", m.Selection(selection.JobDescription).Label)
	assert.Equal(t, "2 files selected", m.Selection(selection.CandidateSet).Label)
}

func TestUpdate_TypingTracksSelection(t *testing.T) {
	dir := t.TempDir()
	jd := writeFiles(t, dir, "senior-engineer.docx")[0]
	writeFiles(t, dir, "r1.pdf", "r2.pdf", "r3.pdf")

	m := NewModel(Options{})
	m = typeText(t, m, jd)

	state := m.Selection(selection.JobDescription)
	assert.True(t, state.Selected)
	assert.Equal(t, "senior-engineer.docx", state.Label)

	m, _ = update(t, m, press(tea.KeyTab))
	assert.Equal(t, focusCandidates, m.focus)

	m = typeText(t, m, filepath.Join(dir, "r*.pdf"))
	state = m.Selection(selection.CandidateSet)
	assert.True(t, state.Selected)
	assert.Equal(t, 3, state.Count)
	assert.Equal(t, "3 files selected", state.Label)

	// Clearing the input reverts to the placeholder.
	for range []rune(filepath.Join(dir, "r*.pdf")) {
		m, _ = update(t, m, press(tea.KeyBackspace))
	}
	state = m.Selection(selection.CandidateSet)
	assert.False(t, state.Selected)
	assert.Equal(t, selection.CandidateSetPlaceholder, state.Label)
}

func TestUpdate_FocusCycle(t *testing.T) {
	m := NewModel(Options{})

	m, _ = update(t, m, press(tea.KeyTab))
	assert.Equal(t, focusCandidates, m.focus)
	m, _ = update(t, m, press(tea.KeyTab))
	assert.Equal(t, focusSubmit, m.focus)
	// No results yet, so focus wraps back to the first input.
	m, _ = update(t, m, press(tea.KeyTab))
	assert.Equal(t, focusJobDescription, m.focus)
	m, _ = update(t, m, press(tea.KeyShiftTab))
	assert.Equal(t, focusSubmit, m.focus)
}

func TestUpdate_SubmitDisablesControl(t *testing.T) {
	m, _ := submitted(t, &fakeEvaluator{})

	assert.False(t, m.controller.SubmitEnabled())
	assert.True(t, m.controller.Loading())
	assert.Contains(t, m.View(), submission.SubmittingLabel)

	// A second submit while in flight is a no-op.
	again, cmd := update(t, m, press(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, m.controller.Current(), again.controller.Current())
}

func TestUpdate_SubmitSendsCurrentSelection(t *testing.T) {
	dir := t.TempDir()
	jd := writeFiles(t, dir, "job.txt")[0]
	candidates := writeFiles(t, dir, "a.pdf", "b.pdf")

	ev := &fakeEvaluator{}
	m := NewModel(Options{
		Evaluator:      ev,
		Logger:         logger.Discard(),
		Fields:         map[string]string{"team": "platform"},
		JobDescription: jd,
		Candidates:     filepath.Join(dir, "*.pdf"),
	})

	m, _ = update(t, m, press(tea.KeyEnter))
	msg := evaluateCmd(ev, m.controller.Current(), m.form(), logger.Discard())()

	done, ok := msg.(EvaluationDoneMsg)
	require.True(t, ok)
	assert.Equal(t, m.controller.Current(), done.Attempt)
	require.Len(t, ev.forms, 1)
	assert.Equal(t, jd, ev.forms[0].JobDescription)
	assert.Equal(t, candidates, ev.forms[0].Candidates)
	assert.Equal(t, "platform", ev.forms[0].Fields["team"])
}

func TestEvaluateCmd_PanicStillCompletes(t *testing.T) {
	attempt := submission.Attempt{Seq: 1, ID: "x"}
	msg := evaluateCmd(&fakeEvaluator{explode: true}, attempt, client.Form{}, logger.Discard())()

	done, ok := msg.(EvaluationDoneMsg)
	require.True(t, ok)
	assert.Equal(t, attempt, done.Attempt)
	require.Error(t, done.Err)
	assert.Contains(t, done.Err.Error(), "boom")
}

func TestEvaluateCmd_NoEvaluator(t *testing.T) {
	msg := evaluateCmd(nil, submission.Attempt{Seq: 1}, client.Form{}, logger.Discard())()

	done, ok := msg.(EvaluationDoneMsg)
	require.True(t, ok)
	assert.Error(t, done.Err)
}

func TestUpdate_SuccessRevealsInOrder(t *testing.T) {
	m, attempt := submitted(t, &fakeEvaluator{})

	m, cmd := update(t, m, EvaluationDoneMsg{Attempt: attempt, Results: sampleSet()})
	require.NotNil(t, cmd)
	assert.Equal(t, submission.PhaseIdle, m.Phase())
	assert.Contains(t, m.View(), submission.IdleLabel)
	assert.True(t, m.Table().Visible())
	assert.Equal(t, 0, m.Table().Revealed())

	gen := m.Table().Generation()

	// Out-of-order ticks are ignored.
	m, cmd = update(t, m, RevealMsg{Generation: gen, Index: 1})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Table().Revealed())

	m, cmd = update(t, m, RevealMsg{Generation: gen, Index: 0})
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.Table().Revealed())

	m, cmd = update(t, m, RevealMsg{Generation: gen, Index: 1})
	assert.NotNil(t, cmd)
	m, cmd = update(t, m, RevealMsg{Generation: gen, Index: 2})
	assert.Nil(t, cmd, "last row schedules nothing further")
	assert.Equal(t, 3, m.Table().Revealed())

	view := m.View()
	assert.Contains(t, view, "alice.pdf")
	assert.Contains(t, view, "carol.txt")
	assert.Contains(t, view, "Excellent Match")
	assert.Contains(t, view, "Low Match")
}

func TestUpdate_EmptyResultSet(t *testing.T) {
	m, attempt := submitted(t, &fakeEvaluator{})

	m, cmd := update(t, m, EvaluationDoneMsg{Attempt: attempt, Results: evaluation.ResultSet{}})
	assert.Nil(t, cmd)
	assert.True(t, m.Table().Visible())
	assert.Equal(t, 0, m.Table().Len())
	assert.Contains(t, m.View(), "Evaluation Results")
}

func TestUpdate_NewSubmissionClearsPreviousRows(t *testing.T) {
	m := revealed(t, sampleSet())
	m, _ = update(t, m, press(tea.KeyEnter))

	assert.Equal(t, submission.PhaseSubmitting, m.Phase())
	assert.False(t, m.Table().Visible())
	assert.Equal(t, 0, m.Table().Len())
	assert.NotContains(t, m.View(), "alice.pdf")
}

func TestUpdate_StaleRevealAfterResubmit(t *testing.T) {
	m, attempt := submitted(t, &fakeEvaluator{})
	m, _ = update(t, m, EvaluationDoneMsg{Attempt: attempt, Results: sampleSet()})
	oldGen := m.Table().Generation()

	m, _ = update(t, m, press(tea.KeyEnter))
	m, _ = update(t, m, EvaluationDoneMsg{Attempt: m.controller.Current(), Results: sampleSet()[:1]})

	m, cmd := update(t, m, RevealMsg{Generation: oldGen, Index: 0})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Table().Revealed())
}

func TestUpdate_FailureShowsBlockingDialog(t *testing.T) {
	m, attempt := submitted(t, &fakeEvaluator{})

	m, _ = update(t, m, EvaluationDoneMsg{Attempt: attempt, Err: errors.New("No valid resumes processed")})
	assert.Equal(t, submission.PhaseError, m.Phase())
	assert.Equal(t, "Error: No valid resumes processed", m.Notification())
	assert.Contains(t, m.View(), "Error: No valid resumes processed")
	assert.False(t, m.Table().Visible())

	// Input is captured by the dialog.
	m, _ = update(t, m, press(tea.KeyTab))
	assert.Equal(t, focusJobDescription, m.focus)
	assert.Equal(t, submission.PhaseError, m.Phase())

	m, _ = update(t, m, press(tea.KeyEnter))
	assert.Equal(t, submission.PhaseIdle, m.Phase())
	assert.True(t, m.controller.SubmitEnabled())
	assert.Contains(t, m.View(), submission.IdleLabel)
}

func TestUpdate_StaleCompletionIgnored(t *testing.T) {
	m, attempt := submitted(t, &fakeEvaluator{})
	m, _ = update(t, m, EvaluationDoneMsg{Attempt: attempt, Results: sampleSet()})

	m, cmd := update(t, m, EvaluationDoneMsg{Attempt: attempt, Err: errors.New("late")})
	assert.Nil(t, cmd)
	assert.Equal(t, submission.PhaseIdle, m.Phase())
	assert.Empty(t, m.Notification())
}

func TestUpdate_KeyboardToggle(t *testing.T) {
	m := revealed(t, sampleSet())

	m, _ = update(t, m, press(tea.KeyShiftTab))
	require.Equal(t, focusResults, m.focus)

	m, _ = update(t, m, press(tea.KeyEnter))
	row, _ := m.Table().Row(0)
	assert.True(t, row.Expanded)
	assert.Contains(t, m.View(), "Built distributed systems in Go.")

	m, _ = update(t, m, press(tea.KeyDown))
	m, _ = update(t, m, press(tea.KeySpace))
	row, _ = m.Table().Row(1)
	assert.True(t, row.Expanded)

	// Rows toggle independently.
	m, _ = update(t, m, press(tea.KeyUp))
	m, _ = update(t, m, press(tea.KeyEnter))
	row, _ = m.Table().Row(0)
	assert.False(t, row.Expanded)
	row, _ = m.Table().Row(1)
	assert.True(t, row.Expanded)
}

func TestUpdate_CursorStaysInBounds(t *testing.T) {
	m := revealed(t, sampleSet())
	m, _ = update(t, m, press(tea.KeyShiftTab))

	for i := 0; i < 5; i++ {
		m, _ = update(t, m, press(tea.KeyDown))
	}
	assert.Equal(t, 2, m.cursor)

	for i := 0; i < 5; i++ {
		m, _ = update(t, m, press(tea.KeyUp))
	}
	assert.Equal(t, 0, m.cursor)
}

func TestUpdate_MouseClickTogglesRow(t *testing.T) {
	m := revealed(t, sampleSet())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100})

	scr := m.render()
	y := scr.resultsTop + scr.layout.SummaryLines[1]

	click := tea.MouseMsg{X: 4, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = update(t, m, click)

	row, _ := m.Table().Row(1)
	assert.True(t, row.Expanded)
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, focusResults, m.focus)

	row, _ = m.Table().Row(0)
	assert.False(t, row.Expanded)
}

func TestUpdate_MouseClickOnButtonSubmits(t *testing.T) {
	m := NewModel(Options{Evaluator: &fakeEvaluator{}})
	scr := m.render()

	click := tea.MouseMsg{Y: scr.buttonLine, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, cmd := update(t, m, click)
	assert.NotNil(t, cmd)
	assert.Equal(t, submission.PhaseSubmitting, m.Phase())
}

func TestUpdate_MouseIgnoredWhileDialogOpen(t *testing.T) {
	m, attempt := submitted(t, &fakeEvaluator{})
	m, _ = update(t, m, EvaluationDoneMsg{Attempt: attempt, Err: errors.New("down")})

	click := tea.MouseMsg{Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, cmd := update(t, m, click)
	assert.Nil(t, cmd)
	assert.Equal(t, submission.PhaseError, m.Phase())
}

func TestUpdate_SpinnerStopsWhenIdle(t *testing.T) {
	m := NewModel(Options{})
	_, cmd := update(t, m, spinner.TickMsg{})
	assert.Nil(t, cmd)
}

func TestUpdate_QuitKeys(t *testing.T) {
	m := NewModel(Options{})

	// q is text inside an input.
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Equal(t, "q", m.jdInput.Value())
	if cmd != nil {
		_, isQuit := cmd().(tea.QuitMsg)
		assert.False(t, isQuit)
	}

	_, cmd = update(t, m, press(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_ScrollsToCursor(t *testing.T) {
	set := make(evaluation.ResultSet, 0, 30)
	for i := 1; i <= 30; i++ {
		set = append(set, evaluation.Result{Rank: i, Filename: filepath.Join("cv", string(rune('a'+i%26))+".pdf"), Score: float64(100 - i)})
	}
	m := revealed(t, set)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	m, _ = update(t, m, press(tea.KeyShiftTab))
	for i := 0; i < 29; i++ {
		m, _ = update(t, m, press(tea.KeyDown))
	}

	scr := m.render()
	assert.Greater(t, scr.offset, 0)
	assert.Contains(t, m.View(), "#30")
}
