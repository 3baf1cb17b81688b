package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const backendJD = `Senior Backend Engineer. We are looking for an engineer with Kubernetes,
PostgreSQL and Kafka experience to build distributed payment services in Golang.`

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{raw: 0, want: 0},
		{raw: 0.25, want: 0},
		{raw: 0.625, want: 50},
		{raw: 0.5, want: 33.33},
		{raw: 1, want: 100},
		{raw: 1.2, want: 100},
		{raw: -0.4, want: 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeScore(tt.raw), 1e-9, "raw=%v", tt.raw)
	}
}

func TestEvaluate_RanksByScore(t *testing.T) {
	docs := []Document{
		{Filename: "chef.txt", Text: "Head chef with pastry background and menu design experience."},
		{Filename: "backend.txt", Text: "Backend engineer building distributed payment services in Golang with Kubernetes, PostgreSQL and Kafka."},
		{Filename: "mixed.txt", Text: "Engineer who has used Kubernetes for personal projects."},
	}

	set := Evaluate(backendJD, docs)
	require.Len(t, set, 3)

	assert.Equal(t, "backend.txt", set[0].Filename)
	assert.Equal(t, "chef.txt", set[2].Filename)
	for i, r := range set {
		assert.Equal(t, i+1, r.Rank)
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 100.0)
		assert.NotEmpty(t, r.Reason)
		assert.True(t, r.Highlight.IsSet())
		assert.True(t, r.Skills.IsSet())
		if i > 0 {
			assert.GreaterOrEqual(t, set[i-1].Score, r.Score)
		}
	}

	skills, _ := set[0].Skills.Get()
	assert.Equal(t, []string{"Go", "Kubernetes", "PostgreSQL", "Kafka"}, skills)
}

func TestEvaluate_TiesKeepUploadOrder(t *testing.T) {
	docs := []Document{
		{Filename: "first.txt", Text: "gardening"},
		{Filename: "second.txt", Text: "knitting"},
	}

	set := Evaluate(backendJD, docs)
	require.Len(t, set, 2)
	assert.Equal(t, "first.txt", set[0].Filename)
	assert.Equal(t, "second.txt", set[1].Filename)
}

func TestHighlight(t *testing.T) {
	resume := "Jane Doe\nSkills\nI built distributed payment services in Golang on Kubernetes. I enjoy hiking on weekends with friends."

	assert.Equal(t, "I built distributed payment services in Golang on Kubernetes", Highlight(backendJD, resume))
	assert.Empty(t, Highlight(backendJD, "Short line.\nAnother one."))
	assert.Empty(t, Highlight(backendJD, "I enjoy hiking and baking bread on weekends."))
}

func TestReason_Phrasing(t *testing.T) {
	jdSkills := []string{"Go", "Kubernetes", "Kafka"}
	resumeSkills := []string{"Go", "Kubernetes", "Rust"}

	excellent := Reason(85, jdSkills, resumeSkills, nil, nil)
	assert.True(t, strings.HasPrefix(excellent, "Excellent Match!"))
	assert.Contains(t, excellent, "key areas like Go, Kubernetes.")
	assert.Contains(t, excellent, "additional expertise in Rust.")

	potential := Reason(45, jdSkills, resumeSkills, nil, nil)
	assert.True(t, strings.HasPrefix(potential, "Potential Match."))
	assert.Contains(t, potential, "lack specific tools like Kafka.")

	low := Reason(10, jdSkills, []string{"Figma"}, nil, nil)
	assert.True(t, strings.HasPrefix(low, "Low Match."))
	assert.Contains(t, low, "missing core requirements such as Go, Kubernetes, Kafka.")
	assert.Contains(t, low, "strong skills in Figma")
}

func TestReason_FallsBackToVocabulary(t *testing.T) {
	jdTerms := terms("Experienced sommelier managing wine cellar inventory")
	resumeTerms := terms("Sommelier responsible for cellar tastings")

	reason := Reason(50, nil, nil, jdTerms, resumeTerms)
	assert.Contains(t, reason, "relevant skills like Sommelier, Cellar")
	assert.Contains(t, reason, "Experienced")
}

func TestTerms_DropsStopWordsAndPunctuation(t *testing.T) {
	assert.Equal(t, []string{"building", "apis", "go", "kubernetes"}, terms("Building APIs, in Go, with Kubernetes!"))
}

func TestExtractSkills(t *testing.T) {
	text := "We use Kubernetes, Golang and kubernetes again with C++ and Node.js. Machine learning is a plus; CI/CD too."

	assert.Equal(t,
		[]string{"Kubernetes", "Go", "C++", "Node.js", "Machine Learning", "CI/CD"},
		ExtractSkills(text),
	)
	assert.Empty(t, ExtractSkills("nothing relevant here"))
	assert.NotNil(t, ExtractSkills(""))
}
