package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"budget-engine/internal/model"
	"budget-engine/internal/narrative"
)

// Markdown renders the governance summary: insights, RAG table, scenario
// comparison, early warning and board messages.
func Markdown(s model.Snapshot, d model.Derivation, f narrative.Formatter) string {
	var sb strings.Builder

	sb.WriteString("# Children's services budget position\n\n")
	if s.RefreshDate != "" {
		fmt.Fprintf(&sb, "_Data as at %s._\n\n", s.RefreshDate)
	}

	sb.WriteString("## Executive summary\n\n")
	for _, key := range insightOrder {
		if text, ok := d.Narrative.Insights[key]; ok {
			sb.WriteString(text + "\n\n")
		}
	}

	sb.WriteString("## RAG status\n\n")
	sb.WriteString("| Family | Value | Red | Amber | Status |\n|---|---:|---:|---:|---|\n")
	for _, family := range sortedFamilies(d.Rag) {
		st := d.Rag[family]
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | **%s** |\n", family,
			narrative.Number(st.Value), narrative.Plain(st.Thresholds.Red),
			narrative.Plain(st.Thresholds.Amber), st.Label)
	}
	sb.WriteString("\n")

	sb.WriteString("## Recovery scenarios\n\n")
	sb.WriteString("| Scenario | In-year | Cumulative | Reserve months |\n|---|---:|---:|---:|\n")
	for _, sc := range d.Recovery.Scenarios {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", scenarioLabel(sc.Name),
			f.Currency(sc.InYearDeficit), f.Currency(sc.CumulativeDeficit), narrative.Number(sc.ReserveMonths))
	}
	sb.WriteString("\n")

	sb.WriteString("## Section 114 early warning\n\n")
	if d.EarlyWarning.Section114Risk {
		fmt.Fprintf(&sb, "**At risk.** Conditions met: %s.\n\n", strings.Join(d.EarlyWarning.Triggers, ", "))
	} else {
		sb.WriteString("No trip conditions met.\n\n")
	}

	if len(d.Narrative.BoardMessages) > 0 {
		sb.WriteString("## Board messages\n\n")
		for _, msg := range d.Narrative.BoardMessages {
			sb.WriteString("- " + msg + "\n")
		}
		sb.WriteString("\n")
	}

	if len(d.Narrative.TopRisks) > 0 {
		sb.WriteString("## Top risks\n\n")
		for i, risk := range d.Narrative.TopRisks {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, risk)
		}
	}

	return sb.String()
}

var insightOrder = []string{
	narrative.InsightExecutive,
	narrative.InsightPlacements,
	narrative.InsightWorkforce,
	narrative.InsightTransformation,
	narrative.InsightUasc,
	narrative.InsightRecovery,
	narrative.InsightDemand,
}

// RenderMarkdown draws md for a terminal. style is a glamour standard style
// name such as "dark", "light" or "notty".
func RenderMarkdown(md, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
