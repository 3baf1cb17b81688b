package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/rankview/internal/client"
	"github.com/alexisbeaulieu97/rankview/internal/logger"
	"github.com/alexisbeaulieu97/rankview/internal/results"
	"github.com/alexisbeaulieu97/rankview/internal/selection"
	"github.com/alexisbeaulieu97/rankview/internal/submission"
)

type focusTarget int

const (
	focusJobDescription focusTarget = iota
	focusCandidates
	focusSubmit
	focusResults
)

// Options configures a new Model.
type Options struct {
	Evaluator Evaluator
	Logger    *logger.Logger
	// Fields are extra form fields sent with every submission.
	Fields map[string]string
	// Endpoint is shown in the header.
	Endpoint string
	// JobDescription and Candidates prefill the inputs.
	JobDescription string
	Candidates     string
}

// Model is the Bubble Tea model of the evaluation screen.
type Model struct {
	evaluator Evaluator
	log       *logger.Logger
	fields    map[string]string
	endpoint  string

	jdInput         textinput.Model
	candidatesInput textinput.Model
	spinner         spinner.Model
	keys            keyMap

	tracker    selection.Tracker
	controller submission.Controller
	table      results.Table

	focus  focusTarget
	cursor int
	width  int
	height int
}

// NewModel constructs the evaluation screen.
func NewModel(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := Model{
		evaluator:       opts.Evaluator,
		log:             log,
		fields:          opts.Fields,
		endpoint:        opts.Endpoint,
		jdInput:         newInput("path/to/job-description.pdf"),
		candidatesInput: newInput("resumes/*.pdf, other.docx"),
		spinner:         s,
		keys:            defaultKeyMap(),
		tracker:         selection.NewTracker(),
		width:           80,
	}

	if opts.JobDescription != "" {
		m.jdInput.SetValue(opts.JobDescription)
		m.tracker.ChangeRaw(selection.JobDescription, opts.JobDescription)
	}
	if opts.Candidates != "" {
		m.candidatesInput.SetValue(opts.Candidates)
		m.tracker.ChangeRaw(selection.CandidateSet, opts.Candidates)
	}

	m.jdInput.Focus()
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.Width = 60
	return ti
}

// Init starts the cursor blink of the focused input.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Selection returns the tracked state of one input.
func (m Model) Selection(kind selection.Kind) selection.State {
	return m.tracker.State(kind)
}

// Phase returns the submission phase.
func (m Model) Phase() submission.Phase {
	return m.controller.Phase()
}

// Notification returns the pending error notification text, if any.
func (m Model) Notification() string {
	return m.controller.Message()
}

// Table returns the results table.
func (m Model) Table() results.Table {
	return m.table
}

// form snapshots the current selections into a request form.
func (m Model) form() client.Form {
	form := client.Form{
		Candidates: m.tracker.State(selection.CandidateSet).Files,
		Fields:     m.fields,
	}
	if jd := m.tracker.State(selection.JobDescription).Files; len(jd) > 0 {
		form.JobDescription = jd[0]
	}
	return form
}

func (m *Model) setFocus(target focusTarget) tea.Cmd {
	m.focus = target
	m.jdInput.Blur()
	m.candidatesInput.Blur()

	switch target {
	case focusJobDescription:
		return m.jdInput.Focus()
	case focusCandidates:
		return m.candidatesInput.Focus()
	}
	return nil
}

// focusOrder lists the focusable targets. The results table only takes
// focus once a row is visible.
func (m Model) focusOrder() []focusTarget {
	order := []focusTarget{focusJobDescription, focusCandidates, focusSubmit}
	if m.table.Revealed() > 0 {
		order = append(order, focusResults)
	}
	return order
}

func (m *Model) cycleFocus(step int) tea.Cmd {
	order := m.focusOrder()
	idx := 0
	for i, target := range order {
		if target == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + step + len(order)) % len(order)
	return m.setFocus(order[idx])
}
