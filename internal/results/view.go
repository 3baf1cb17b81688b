package results

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/rankview/internal/evaluation"
)

// Column widths of the summary row.
const (
	gutterWidth = 2
	rankWidth   = 6
	scoreWidth  = 9
	barWidth    = 14
	badgeWidth  = 17
	minFileCol  = 12
)

// Headings shown in the detail row.
const (
	AnalysisHeading  = "Analysis:"
	SpotlightHeading = "AI SPOTLIGHT"
	SkillsHeading    = "TECHNICAL SKILLS DETECTED"
)

// ViewOptions controls table rendering.
type ViewOptions struct {
	Width   int
	Cursor  int
	Focused bool
}

// Layout is rendered table output. SummaryLines[i] is the line of row i's
// summary within Content, or -1 while the row is hidden.
type Layout struct {
	Content      string
	SummaryLines []int
}

// RowAt maps a line of Content to the row whose summary occupies it.
func (l Layout) RowAt(line int) (int, bool) {
	for i, at := range l.SummaryLines {
		if at >= 0 && at == line {
			return i, true
		}
	}
	return 0, false
}

// View renders the results section. A hidden section renders nothing.
func (t Table) View(opts ViewOptions) Layout {
	layout := Layout{SummaryLines: make([]int, len(t.rows))}
	for i := range layout.SummaryLines {
		layout.SummaryLines[i] = -1
	}
	if !t.visible {
		return layout
	}

	width := opts.Width
	if width <= 0 {
		width = 80
	}
	fileWidth := width - gutterWidth - rankWidth - scoreWidth - barWidth - badgeWidth - 4
	if fileWidth < minFileCol {
		fileWidth = minFileCol
	}

	var blocks []string
	line := 0
	push := func(block string) {
		blocks = append(blocks, block)
		line += lipgloss.Height(block)
	}

	push(sectionStyle.Render("Evaluation Results"))
	push(headerStyle.Render(joinColumns(
		strings.Repeat(" ", gutterWidth),
		pad("RANK", rankWidth),
		pad("CANDIDATE", fileWidth),
		pad("SCORE", scoreWidth+barWidth+1),
		pad("STATUS", badgeWidth),
	)))

	if len(t.rows) == 0 {
		push(emptyStyle.Render("  No candidates were returned."))
	}

	bar := progress.New(
		progress.WithSolidFill("#3B82F6"),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth),
	)

	for i := 0; i < t.revealed && i < len(t.rows); i++ {
		row := t.rows[i]
		layout.SummaryLines[i] = line
		push(renderSummary(row, bar, fileWidth, opts.Focused && opts.Cursor == i))
		if row.Expanded {
			push(renderDetail(DetailFor(row.Result), width))
		}
	}

	layout.Content = strings.Join(blocks, "\n")
	return layout
}

func renderSummary(row Row, bar progress.Model, fileWidth int, selected bool) string {
	r := row.Result

	gutter := strings.Repeat(" ", gutterWidth)
	if selected {
		gutter = cursorStyle.Render("›") + " "
	}

	marker := "▸"
	if row.Expanded {
		marker = "▾"
	}

	class := evaluation.Classify(r.Score)
	return joinColumns(
		gutter,
		rankStyle.Render(pad(fmt.Sprintf("#%d", r.Rank), rankWidth)),
		filenameStyle.Render(pad(truncate(marker+" "+r.Filename, fileWidth), fileWidth)),
		scoreStyle.Render(pad(FormatScore(r.Score), scoreWidth)),
		bar.ViewAs(BarPercent(r.Score)/100),
		" ",
		BadgeStyle(class).Render(class.String()),
	)
}

func renderDetail(d Detail, width int) string {
	inner := width - detailStyle.GetHorizontalPadding()
	if inner < 20 {
		inner = 20
	}

	parts := []string{
		lipgloss.NewStyle().Width(inner).Render(analysisLabel.Render(AnalysisHeading) + " " + d.Reason),
	}

	if d.HasHighlight {
		quote := lipgloss.NewStyle().Width(inner - 2).Render(spotlightQuote.Render(`"` + d.Highlight + `"`))
		parts = append(parts, spotlightStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			spotlightTitle.Render("⚡ "+SpotlightHeading),
			quote,
		)))
	}

	if len(d.Skills) > 0 {
		parts = append(parts,
			skillsHeaderText.Render(SkillsHeading),
			wrapTags(d.Skills, inner),
		)
	}

	return detailStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// wrapTags lays out skill tags left to right, starting a new line when the
// next tag would overflow width.
func wrapTags(skills []string, width int) string {
	var lines []string
	var current []string
	used := 0
	for _, skill := range skills {
		tag := skillTagStyle.Render(skill)
		w := lipgloss.Width(tag)
		if used > 0 && used+1+w > width {
			lines = append(lines, strings.Join(current, " "))
			current, used = nil, 0
		}
		if used > 0 {
			used++
		}
		current = append(current, tag)
		used += w
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return strings.Join(lines, "\n")
}

// FormatScore prints a score the way the service sent it, as a percentage.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64) + "%"
}

func joinColumns(cols ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func pad(s string, width int) string {
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(s)
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
