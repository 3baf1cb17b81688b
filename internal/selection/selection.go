// Package selection tracks what the user picked in the two file inputs and
// derives the label shown next to each one.
package selection

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind identifies one of the two file inputs.
type Kind int

const (
	JobDescription Kind = iota
	CandidateSet
)

// Placeholders shown while an input has no selection.
const (
	JobDescriptionPlaceholder = "PDF, DOCX, TXT"
	CandidateSetPlaceholder   = "Upload multiple files"
)

func (k Kind) String() string {
	switch k {
	case JobDescription:
		return "job_description"
	case CandidateSet:
		return "candidate_set"
	default:
		return "unknown"
	}
}

// Placeholder returns the label used when nothing is selected.
func (k Kind) Placeholder() string {
	if k == JobDescription {
		return JobDescriptionPlaceholder
	}
	return CandidateSetPlaceholder
}

// State is the display state of one input.
type State struct {
	Kind  Kind
	Files []string
	Count int
	Label string
	// Selected is the has-selection marker.
	Selected bool
}

// Track computes the state for the given selection. The job description
// input only ever uses the first file.
func Track(kind Kind, files []string) State {
	state := State{Kind: kind, Count: len(files), Label: kind.Placeholder()}
	if state.Count == 0 {
		return state
	}

	state.Selected = true
	state.Files = append([]string(nil), files...)
	switch kind {
	case JobDescription:
		state.Files = state.Files[:1]
		state.Label = filepath.Base(files[0])
	default:
		state.Label = fmt.Sprintf("%d files selected", state.Count)
	}
	return state
}

// Resolve turns the raw text of a terminal file input into a file list.
// Entries are separated by commas or whitespace and may be glob patterns.
// Only existing regular files are kept, in input order, without duplicates.
// Text naming a single existing file is taken whole, so paths containing
// spaces still resolve.
func Resolve(raw string) []string {
	whole := expandHome(strings.TrimSpace(raw))
	if info, err := os.Stat(whole); err == nil && info.Mode().IsRegular() {
		return []string{whole}
	}

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return
		}
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, field := range fields {
		path := expandHome(field)
		if strings.ContainsAny(path, "*?[") {
			matches, err := filepath.Glob(path)
			if err != nil {
				continue
			}
			for _, match := range matches {
				add(match)
			}
			continue
		}
		add(path)
	}
	return files
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Tracker holds the state of both inputs.
type Tracker struct {
	states [2]State
}

// NewTracker returns a tracker with both inputs empty.
func NewTracker() Tracker {
	return Tracker{states: [2]State{Track(JobDescription, nil), Track(CandidateSet, nil)}}
}

// Change records a selection-change event for one input and returns the
// new state.
func (t *Tracker) Change(kind Kind, files []string) State {
	state := Track(kind, files)
	t.states[kind] = state
	return state
}

// ChangeRaw resolves raw input text and records the result.
func (t *Tracker) ChangeRaw(kind Kind, raw string) State {
	return t.Change(kind, Resolve(raw))
}

// State returns the current state of one input.
func (t Tracker) State(kind Kind) State {
	return t.states[kind]
}
