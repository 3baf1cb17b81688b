package tui

import (
	"github.com/alexisbeaulieu97/rankview/internal/evaluation"
	"github.com/alexisbeaulieu97/rankview/internal/submission"
)

// EvaluationDoneMsg carries the outcome of one submission attempt. Exactly
// one is produced per attempt.
type EvaluationDoneMsg struct {
	Attempt submission.Attempt
	Results evaluation.ResultSet
	Err     error
}

// RevealMsg makes the next row of a result set visible.
type RevealMsg struct {
	Generation uint64
	Index      int
}
