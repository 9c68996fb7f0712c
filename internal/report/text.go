package report

import (
	"fmt"
	"sort"
	"strings"

	"budget-engine/internal/model"
	"budget-engine/internal/narrative"
	"budget-engine/internal/recovery"
)

// Text renders the derivation as a terminal report.
func Text(s model.Snapshot, d model.Derivation, f narrative.Formatter, st Styles) string {
	var sb strings.Builder

	m := d.Metrics
	head := newTable("Headline", "Metric", "Value")
	head.addRow("In-year deficit", f.Currency(s.Finance.InYearDeficit))
	head.addRow("Reserve support", f.CurrencyPlaces(s.Finance.ReserveSupport, 2))
	head.addRow("Months to exhaustion", narrative.Number(m.MonthsToExhaustion))
	head.addRow("Demand growth", narrative.Percent(d.DemandGrowth))
	head.addRow("Modelled placement pressure", f.Currency(m.ModelledPressure))
	head.addRow("Effective agency rate", narrative.Percent(m.EffectiveAgencyRate))
	head.addRow("Net UASC pressure", f.CurrencyPlaces(m.NetUascPressure, 2))
	sb.WriteString(head.view(st))
	sb.WriteString("\n")

	ragTable := newTable("RAG status", "Family", "Value", "Status")
	for _, family := range sortedFamilies(d.Rag) {
		status := d.Rag[family]
		ragTable.addRow(family, narrative.Number(status.Value), st.Badge(status.Label))
	}
	sb.WriteString(ragTable.view(st))
	sb.WriteString("\n")

	proj := newTable("Projection", "Period", "Baseline", "Current", "Delivered", "Optimised", "Reserves")
	for i, row := range d.Projection {
		reserves := ""
		if i < len(d.ReservesTimeline) {
			reserves = f.Currency(d.ReservesTimeline[i].Reserves)
		}
		proj.addRow(row.Period, f.Currency(row.Baseline), f.Currency(row.Current),
			f.Currency(row.Delivered), f.Currency(row.Optimised), reserves)
	}
	if len(d.Projection) > 0 {
		t := d.CumulativeTotals
		proj.addRow("Total", "", f.Currency(t.Current), f.Currency(t.Delivered), f.Currency(t.Optimised), "")
	}
	sb.WriteString(proj.view(st))
	sb.WriteString("\n")

	rec := newTable("Recovery scenarios", "Scenario", "In-year", "Cumulative", "Reserve months")
	for _, sc := range d.Recovery.Scenarios {
		rec.addRow(sc.Name, f.Currency(sc.InYearDeficit), f.Currency(sc.CumulativeDeficit), narrative.Number(sc.ReserveMonths))
	}
	sb.WriteString(rec.view(st))
	sb.WriteString(st.Muted.Render(fmt.Sprintf("Recovery savings %s against %s after levers",
		f.Currency(d.Recovery.Savings), f.Currency(d.Recovery.Deficit))))
	sb.WriteString("\n\n")

	sb.WriteString(st.Title.Render("Section 114 early warning"))
	sb.WriteString("\n")
	if d.EarlyWarning.Section114Risk {
		sb.WriteString(st.Badge(model.Red))
		sb.WriteString(" " + strings.Join(d.EarlyWarning.Triggers, ", "))
	} else {
		sb.WriteString(st.Badge(model.Green))
		sb.WriteString(" no trip conditions met")
	}
	sb.WriteString("\n\n")

	sb.WriteString(st.Title.Render("Board messages"))
	sb.WriteString("\n")
	for _, msg := range d.Narrative.BoardMessages {
		sb.WriteString("- " + msg + "\n")
	}

	return sb.String()
}

func sortedFamilies(statuses map[string]model.RagStatus) []string {
	names := make([]string, 0, len(statuses))
	for k := range statuses {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// scenarioLabel is the short name used in the markdown summary.
func scenarioLabel(name string) string {
	switch name {
	case recovery.ScenarioCurrentPath:
		return "Current path"
	case recovery.ScenarioDelivered:
		return "Delivered"
	case recovery.ScenarioOptimised:
		return "Optimised"
	}
	return name
}
