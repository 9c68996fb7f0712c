package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// table lays out rows in aligned columns. The first column is left aligned,
// the rest are right aligned.
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func newTable(title string, headers ...string) *table {
	return &table{title: title, headers: headers}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) view(st Styles) string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(st.Title.Render(t.title))
		sb.WriteString("\n")
	}
	sb.WriteString(t.line(st.Header, t.headers, widths))
	sb.WriteString("\n")
	for _, row := range t.rows {
		sb.WriteString(t.line(st.Cell, row, widths))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *table) line(style lipgloss.Style, cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		align := lipgloss.Right
		if i == 0 {
			align = lipgloss.Left
		}
		parts[i] = style.Width(w).Align(align).Render(cell)
	}
	return strings.Join(parts, "  ")
}
