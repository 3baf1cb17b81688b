package service

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/alexisbeaulieu97/rankview/internal/evaluation"
)

const (
	// scoreFloor is the raw similarity that maps to 0%.
	scoreFloor = 0.25
	// highlightMinLength excludes headers and short bullets.
	highlightMinLength = 20
	// highlightMinSimilarity is the weakest sentence worth quoting.
	highlightMinSimilarity = 0.25
	// highlightQueryLimit caps how much of the job description is compared
	// against each sentence.
	highlightQueryLimit = 2000
	reasonTermLimit     = 5
)

// Document is one extracted candidate.
type Document struct {
	Filename string
	Text     string
}

// Evaluate scores every document against the job description and returns
// them ranked by score, best first.
func Evaluate(jd string, docs []Document) evaluation.ResultSet {
	jdTerms := terms(jd)
	jdVector := vectorize(jdTerms)
	jdSkills := ExtractSkills(jd)

	set := make(evaluation.ResultSet, 0, len(docs))
	for _, doc := range docs {
		docTerms := terms(doc.Text)
		score := NormalizeScore(cosine(jdVector, vectorize(docTerms)))
		skills := ExtractSkills(doc.Text)

		set = append(set, evaluation.Result{
			Filename:  doc.Filename,
			Score:     score,
			Reason:    Reason(score, jdSkills, skills, jdTerms, docTerms),
			Highlight: evaluation.Some(Highlight(jd, doc.Text)),
			Skills:    evaluation.Some(skills),
		})
	}

	slices.SortStableFunc(set, func(a, b evaluation.Result) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	for i := range set {
		set[i].Rank = i + 1
	}
	return set
}

// NormalizeScore maps a raw similarity onto 0..100 with two decimals.
func NormalizeScore(raw float64) float64 {
	scaled := (raw - scoreFloor) / (1 - scoreFloor)
	scaled = math.Max(0, math.Min(1, scaled))
	return math.Round(scaled*100*100) / 100
}

// Highlight returns the resume sentence closest to the job description, or
// "" when nothing is similar enough.
func Highlight(jd, resume string) string {
	if len(jd) > highlightQueryLimit {
		jd = jd[:highlightQueryLimit]
	}
	query := vectorize(terms(jd))

	best, bestScore := "", 0.0
	for _, sentence := range sentences(resume) {
		if len(sentence) <= highlightMinLength {
			continue
		}
		if s := cosine(query, vectorize(terms(sentence))); s > bestScore {
			best, bestScore = sentence, s
		}
	}
	if bestScore > highlightMinSimilarity {
		return best
	}
	return ""
}

// Reason explains a score in recruiter terms. Skill overlap drives the
// wording; plain vocabulary overlap is used when skills are too sparse.
func Reason(score float64, jdSkills, resumeSkills, jdTerms, resumeTerms []string) string {
	common := intersect(jdSkills, resumeSkills)
	missing := subtract(jdSkills, resumeSkills)
	unique := limit(subtract(resumeSkills, jdSkills), reasonTermLimit)

	if len(common) < 2 && len(missing) < 2 {
		common = longWords(intersect(jdTerms, resumeTerms))
		missing = longWords(subtract(jdTerms, resumeTerms))
	}
	common = limit(common, reasonTermLimit)
	missing = limit(missing, reasonTermLimit)

	var b strings.Builder
	switch evaluation.Classify(score) {
	case evaluation.ExcellentMatch:
		b.WriteString("Excellent Match! We recommend interviewing them because ")
		if len(common) > 0 {
			fmt.Fprintf(&b, "they demonstrate solid experience in key areas like %s. ", list(common))
		} else {
			b.WriteString("their profile strongly aligns with the job description. ")
		}
		if len(unique) > 0 {
			fmt.Fprintf(&b, "Plus, they bring additional expertise in %s.", list(unique))
		}

	case evaluation.Potential:
		b.WriteString("Potential Match. This profile is worth considering because ")
		if len(common) > 0 {
			fmt.Fprintf(&b, "they have relevant skills like %s, ", list(common))
		} else {
			b.WriteString("there is some overlap with the requirements, ")
		}
		if len(missing) > 0 {
			fmt.Fprintf(&b, "although they might lack specific tools like %s. ", list(missing))
		}
		if len(unique) > 0 {
			fmt.Fprintf(&b, "They also have skills in %s, which could be useful.", list(unique))
		}

	default:
		b.WriteString("Low Match. This candidate may not be suitable for this specific role because ")
		if len(missing) > 0 {
			fmt.Fprintf(&b, "they appear to be missing core requirements such as %s. ", list(missing))
		} else {
			b.WriteString("there is minimal overlap with the job description. ")
		}
		if len(unique) > 0 {
			fmt.Fprintf(&b, "However, they have strong skills in %s, so they might be a better fit for a different position.", list(unique))
		}
	}
	return strings.TrimSpace(b.String())
}

var sentenceBreak = regexp.MustCompile(`[.!?]+\s+|\n+`)

func sentences(text string) []string {
	parts := sentenceBreak.Split(text, -1)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// terms lowercases text, strips punctuation and drops stop words. Order of
// first appearance is kept.
func terms(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := words[:0]
	for _, w := range words {
		if !stopWords[w] {
			out = append(out, w)
		}
	}
	return out
}

func vectorize(words []string) map[string]float64 {
	v := make(map[string]float64, len(words))
	for _, w := range words {
		v[w]++
	}
	return v
}

func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, na, nb float64
	for w, x := range a {
		na += x * x
		if y, ok := b[w]; ok {
			dot += x * y
		}
	}
	for _, y := range b {
		nb += y * y
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func lowerSet(words []string) map[string]bool {
	s := make(map[string]bool, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = true
	}
	return s
}

// intersect keeps the distinct elements of a that appear in b, in a's order.
func intersect(a, b []string) []string {
	in := lowerSet(b)
	return distinct(a, func(w string) bool { return in[strings.ToLower(w)] })
}

// subtract keeps the distinct elements of a missing from b, in a's order.
func subtract(a, b []string) []string {
	in := lowerSet(b)
	return distinct(a, func(w string) bool { return !in[strings.ToLower(w)] })
}

func distinct(words []string, keep func(string) bool) []string {
	seen := make(map[string]bool, len(words))
	var out []string
	for _, w := range words {
		key := strings.ToLower(w)
		if seen[key] || !keep(w) {
			continue
		}
		seen[key] = true
		out = append(out, w)
	}
	return out
}

func longWords(words []string) []string {
	var out []string
	for _, w := range words {
		if len(w) > 3 {
			out = append(out, capitalize(w))
		}
	}
	return out
}

func capitalize(w string) string {
	r := []rune(w)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func limit(words []string, n int) []string {
	if len(words) > n {
		return words[:n]
	}
	return words
}

func list(words []string) string {
	return strings.Join(words, ", ")
}
