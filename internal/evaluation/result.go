// Package evaluation defines the contract between rankview and the
// evaluation service: the per-candidate result shape and the strict decoding
// of success and error bodies.
package evaluation

import "strings"

// Result is one scored candidate document.
type Result struct {
	Rank      int                `json:"rank" validate:"gte=1"`
	Filename  string             `json:"filename" validate:"required"`
	Score     float64            `json:"score" validate:"gte=0"`
	Reason    string             `json:"reason"`
	Highlight Optional[string]   `json:"highlight"`
	Skills    Optional[[]string] `json:"skills"`
}

// ResultSet is the ordered response of one successful evaluation. Order is
// the display order.
type ResultSet []Result

// Spotlight returns the highlight quote when the service supplied a
// non-blank one.
func (r Result) Spotlight() (string, bool) {
	h, ok := r.Highlight.Get()
	if !ok || strings.TrimSpace(h) == "" {
		return "", false
	}
	return h, true
}

// SkillTags returns the detected skills when present and non-empty.
func (r Result) SkillTags() ([]string, bool) {
	s, ok := r.Skills.Get()
	if !ok || len(s) == 0 {
		return nil, false
	}
	return s, true
}
