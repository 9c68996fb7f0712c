package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-engine/internal/engine"
	"budget-engine/internal/model"
	"budget-engine/internal/narrative"
	"budget-engine/internal/rag"
)

func derive(t *testing.T) (model.Snapshot, model.Derivation) {
	t.Helper()
	s := model.DefaultSnapshot()
	return s, engine.Derive(s, model.CalculationOptions{})
}

func TestTextContainsEverySection(t *testing.T) {
	s, d := derive(t)

	out := Text(s, d, narrative.DefaultFormatter, DefaultStyles())

	for _, want := range []string{
		"Headline", "RAG status", "Projection", "Recovery scenarios",
		"Section 114 early warning", "Board messages",
		"£8.8m", "4.6", "24/25", "27/28", "Total",
	} {
		assert.Contains(t, out, want)
	}
	for _, family := range rag.Families() {
		assert.Contains(t, out, family)
	}
}

func TestTextWithoutPeriods(t *testing.T) {
	s := model.DefaultSnapshot()
	d := engine.Derive(s, model.CalculationOptions{Periods: -1})

	out := Text(s, d, narrative.DefaultFormatter, DefaultStyles())
	assert.NotContains(t, out, "Total")
}

func TestBadgeUnknownLabel(t *testing.T) {
	assert.Contains(t, DefaultStyles().Badge(""), "n/a")
	assert.Contains(t, DefaultStyles().Badge(model.Amber), "Amber")
}

func TestTableAlignsColumns(t *testing.T) {
	tb := newTable("", "Name", "Value")
	tb.addRow("a", "1")
	tb.addRow("longer", "12345")

	lines := strings.Split(strings.TrimRight(tb.view(DefaultStyles()), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, len(lines[1]), len(lines[2]))
	assert.True(t, strings.HasSuffix(lines[1], "    1"))
}

func TestMarkdownSummary(t *testing.T) {
	s, d := derive(t)
	s.RefreshDate = "2025-01-31"

	md := Markdown(s, d, narrative.DefaultFormatter)

	assert.True(t, strings.HasPrefix(md, "# Children's services budget position"))
	assert.Contains(t, md, "_Data as at 2025-01-31._")
	assert.Contains(t, md, "| reserves | 4.6 | 6 | 12 | **Red** |")
	assert.Contains(t, md, "| Current path |")
	assert.Contains(t, md, d.Narrative.Insights[narrative.InsightExecutive])
	assert.Contains(t, md, "1. "+d.Narrative.TopRisks[0])
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Title\n\nSome **bold** text.", "notty", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
}

func TestRenderMarkdownUnknownStyle(t *testing.T) {
	_, err := RenderMarkdown("# Title", "no-such-style", 80)
	assert.Error(t, err)
}
