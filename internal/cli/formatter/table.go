package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// columnWidths computes the visible width of each column across headers and
// rows, using lipgloss.Width so ANSI sequences do not inflate the measure.
func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func padCell(b *strings.Builder, cell string, width int, last bool) {
	b.WriteString(cell)
	if last {
		return
	}
	pad := width - lipgloss.Width(cell)
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad+colGap))
}

// RenderTable renders an aligned table with a header separator line. Headers
// use the Header style, cells are emitted as given so callers may pre-style
// them.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	widths := columnWidths(headers, rows)
	last := len(headers) - 1

	var b strings.Builder
	for i, h := range headers {
		padCell(&b, StyleHeader.Render(h), widths[i], i == last)
	}
	b.WriteString("\n")
	for i, w := range widths {
		padCell(&b, StyleDim.Render(strings.Repeat("─", w)), w, i == last)
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			padCell(&b, cell, widths[i], i == last)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}
