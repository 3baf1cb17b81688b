package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/rankview/internal/client"
	"github.com/alexisbeaulieu97/rankview/internal/evaluation"
	"github.com/alexisbeaulieu97/rankview/internal/logger"
	"github.com/alexisbeaulieu97/rankview/internal/submission"
)

// Evaluator is the evaluation service as seen by the TUI.
type Evaluator interface {
	Evaluate(ctx context.Context, form client.Form) (evaluation.ResultSet, error)
}

// evaluateCmd issues the request off the event loop. A panic inside the
// evaluator still yields a completion so the submit control is released.
func evaluateCmd(ev Evaluator, attempt submission.Attempt, form client.Form, log *logger.Logger) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("evaluation aborted: %v", r)
				log.Error(err, "evaluator panicked")
				msg = EvaluationDoneMsg{Attempt: attempt, Err: err}
			}
		}()

		if ev == nil {
			return EvaluationDoneMsg{Attempt: attempt, Err: fmt.Errorf("no evaluation service configured")}
		}

		set, err := ev.Evaluate(context.Background(), form)
		return EvaluationDoneMsg{Attempt: attempt, Results: set, Err: err}
	}
}

// revealCmd schedules the reveal of one row.
func revealCmd(generation uint64, index int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return RevealMsg{Generation: generation, Index: index}
	})
}
