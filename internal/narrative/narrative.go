package narrative

import (
	"fmt"
	"strings"

	"budget-engine/internal/model"
	"budget-engine/internal/rag"
)

// Insight keys.
const (
	InsightExecutive      = "executive"
	InsightPlacements     = "placements"
	InsightWorkforce      = "workforce"
	InsightTransformation = "transformation"
	InsightUasc           = "uasc"
	InsightRecovery       = "recovery"
	InsightDemand         = "demand"
)

var topRisks = []string{
	"Insufficient reserve cover leading to statutory intervention risk.",
	"Market inflation in residential placements outpacing mitigation.",
	"Agency reliance sustaining a structural cost premium.",
	"Transformation benefits slipping beyond 24/25 delivery windows.",
	"UASC supported accommodation pressures not offset by grant.",
}

// Generate builds the governance narrative from s and an otherwise complete d.
func (f Formatter) Generate(s model.Snapshot, d model.Derivation) model.Narrative {
	m := d.Metrics
	periods := len(d.Projection)

	reserveLabel := strings.ToLower(string(d.Rag[rag.FamilyReserves].Label))
	if reserveLabel == "" {
		reserveLabel = "unclassified"
	}

	insights := map[string]string{
		InsightExecutive: fmt.Sprintf(
			"At the current burn rate reserves will be depleted in %s months, triggering a %s statutory risk profile.",
			Number(m.MonthsToExhaustion), reserveLabel),
		InsightPlacements: fmt.Sprintf(
			"Residential placement volatility is contributing %s to the in-year deficit. A %s%% unit-cost improvement reduces modelled pressure by %s.",
			f.Currency(s.Placements.CostPressure), Plain(s.Levers.UnitCostImprovement), f.Currency(m.UnitCostSaving)),
		InsightWorkforce: fmt.Sprintf(
			"Agency premiums are estimated at %s. Conversion activity reduces the agency rate to %s.",
			f.Currency(m.AgencyPremium), Percent(m.EffectiveAgencyRate)),
		InsightTransformation: fmt.Sprintf(
			"Transformation delivery confidence is %s%%. Improving delivery to %s%% would reduce the in-year gap by %s.",
			Plain(m.DeliveryConfidence), Plain(s.Levers.EfficiencyDeliveryRate), f.CurrencyPlaces(m.EfficiencyUplift, 2)),
		InsightUasc: fmt.Sprintf(
			"UASC pressures total %s with %s grant offset, leaving a net pressure of %s.",
			f.Currency(s.Uasc.Pressure), f.Currency(m.UpliftedGrant), f.Currency(m.NetUascPressure)),
		InsightRecovery: fmt.Sprintf(
			"Scenario actions reduce the in-year deficit to %s and reduce the %d-year cumulative deficit to %s. Commissioning actions contribute %s.",
			f.Currency(d.Recovery.Deficit), periods, f.Currency(d.Recovery.CumulativeDeficit), f.Currency(s.Levers.CommissioningSavings)),
		InsightDemand: fmt.Sprintf(
			"Demand-driven growth assumption is %s. Delivered transformation would reduce the %d-year cumulative deficit to %s.",
			Percent(d.DemandGrowth), periods, f.Currency(d.CumulativeTotals.Delivered)),
	}

	board := []string{
		fmt.Sprintf("The Trust is forecasting a %s in-year deficit with a year-to-date cumulative position of %s.",
			f.Currency(s.Finance.InYearDeficit), f.Currency(s.Finance.CumulativeDeficit)),
		fmt.Sprintf("Opening reserves of %s provide %s months of cover at current burn.",
			f.Currency(s.Finance.OpeningReserves), Number(m.MonthsToExhaustion)),
		fmt.Sprintf("Residential placement volatility remains the single largest pressure at %s.",
			f.Currency(s.Placements.CostPressure)),
		fmt.Sprintf("Transformation delivery confidence is mixed: %s%% is undelivered.",
			Plain(s.Efficiencies.Delivery.Undelivered)),
		fmt.Sprintf("%s cumulative deficits reach %s under the current path.",
			horizon(periods), f.Currency(d.CumulativeTotals.Current)),
	}

	return model.Narrative{
		Insights:      insights,
		BoardMessages: board,
		TopRisks:      append([]string(nil), topRisks...),
	}
}

func horizon(periods int) string {
	words := []string{"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten"}
	if periods >= 0 && periods < len(words) {
		return words[periods] + "-year"
	}
	return fmt.Sprintf("%d-year", periods)
}
