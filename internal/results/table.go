// Package results renders an evaluation ResultSet as a ranked table of
// summary rows, each followed by a collapsible detail row.
package results

import (
	"time"

	"github.com/alexisbeaulieu97/rankview/internal/evaluation"
)

// Fixed rendering constants.
const (
	MaxSkillTags  = 10
	RevealStagger = 100 * time.Millisecond
)

// BarPercent is the filled share of the score bar, in percent. Boosted
// scores above 100 fill the bar without overflowing it.
func BarPercent(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

// Detail is the content of a detail row.
type Detail struct {
	Reason       string
	Highlight    string
	HasHighlight bool
	Skills       []string
}

// DetailFor builds the detail content of a result. Skills beyond
// MaxSkillTags are dropped.
func DetailFor(r evaluation.Result) Detail {
	d := Detail{Reason: r.Reason}
	d.Highlight, d.HasHighlight = r.Spotlight()
	if skills, ok := r.SkillTags(); ok {
		if len(skills) > MaxSkillTags {
			skills = skills[:MaxSkillTags]
		}
		d.Skills = append([]string(nil), skills...)
	}
	return d
}

// RevealDelay is when the row at index becomes visible, measured from the
// moment its result set was rendered.
func RevealDelay(index int) time.Duration {
	return time.Duration(index) * RevealStagger
}

// Row is one summary/detail pair.
type Row struct {
	Result   evaluation.Result
	Expanded bool
}

// Table holds the rows of the currently displayed result set.
type Table struct {
	rows       []Row
	visible    bool
	revealed   int
	generation uint64
}

// Replace discards every existing row and loads set in order, collapsed and
// not yet revealed. It returns the new generation for reveal scheduling.
func (t *Table) Replace(set evaluation.ResultSet) uint64 {
	t.rows = make([]Row, len(set))
	for i, r := range set {
		t.rows[i] = Row{Result: r}
	}
	t.visible = true
	t.revealed = 0
	t.generation++
	return t.generation
}

// Clear hides the section and drops all rows. Pending reveals become stale.
func (t *Table) Clear() {
	t.rows = nil
	t.visible = false
	t.revealed = 0
	t.generation++
}

// Visible reports whether the results section is shown.
func (t Table) Visible() bool {
	return t.visible
}

// Len returns the number of row pairs.
func (t Table) Len() int {
	return len(t.rows)
}

// Row returns the pair at index i.
func (t Table) Row(i int) (Row, bool) {
	if i < 0 || i >= len(t.rows) {
		return Row{}, false
	}
	return t.rows[i], true
}

// Generation identifies the current result set.
func (t Table) Generation() uint64 {
	return t.generation
}

// Revealed returns how many leading rows are visible.
func (t Table) Revealed() int {
	return t.revealed
}

// Toggle flips the detail row at index i. Only revealed rows respond.
func (t *Table) Toggle(i int) bool {
	if i < 0 || i >= t.revealed {
		return false
	}
	t.rows[i].Expanded = !t.rows[i].Expanded
	return true
}

// Reveal makes row index visible. It only succeeds for the current
// generation and the next row in order, so rows appear strictly one after
// another. The second result reports whether rows remain hidden.
func (t *Table) Reveal(generation uint64, index int) (revealed bool, more bool) {
	if generation != t.generation || index != t.revealed || index >= len(t.rows) {
		return false, t.generation == generation && t.revealed < len(t.rows)
	}
	t.revealed++
	return true, t.revealed < len(t.rows)
}

// RevealAll shows every row immediately.
func (t *Table) RevealAll() {
	t.revealed = len(t.rows)
}
