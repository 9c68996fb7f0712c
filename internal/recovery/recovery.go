// Package recovery quantifies the mitigation levers and assembles the
// named scenario comparison.
package recovery

import (
	"math"

	"budget-engine/internal/metrics"
	"budget-engine/internal/model"
	"budget-engine/internal/projection"
)

const (
	ScenarioCurrentPath = "Current Path"
	ScenarioDelivered   = "Delivered Transformation"
	ScenarioOptimised   = "Optimised Recovery"

	// reserveDivisorFloor stops reserve months blowing up when a scenario
	// clears the deficit entirely.
	reserveDivisorFloor = 0.1
)

// Savings is the in-year saving from all mitigation levers combined.
func Savings(s model.Snapshot, agencyPremium float64) float64 {
	l := s.Levers
	return s.Placements.CostPressure*(l.ReducePlacements/100) +
		agencyPremium*(l.ReduceAgency/100) +
		metrics.EfficiencyUplift(l.EfficiencyDeliveryRate, s.Efficiencies.TargetNext) +
		l.CommissioningSavings
}

// CumulativeDeficit spreads savings evenly over the projection periods.
func CumulativeDeficit(rows []model.ProjectionRow, savings float64) float64 {
	if len(rows) == 0 {
		return 0
	}
	perPeriod := savings / float64(len(rows))
	var total float64
	for _, r := range rows {
		total += math.Max(0, r.Current-perPeriod)
	}
	return total
}

// Evaluate applies the levers to the derived metrics and projection and
// returns the three-row comparison table.
func Evaluate(s model.Snapshot, m model.DerivedMetrics, rows []model.ProjectionRow) model.RecoveryOutcome {
	savings := math.Max(0, Savings(s, m.AgencyPremium))
	deficit := math.Max(0, s.Finance.InYearDeficit-savings)
	cumulative := CumulativeDeficit(rows, savings)
	totals := projection.Totals(rows)

	firstDelivered := 1.0
	if len(rows) > 0 {
		firstDelivered = rows[0].Delivered
	}

	return model.RecoveryOutcome{
		Savings:           savings,
		Deficit:           deficit,
		CumulativeDeficit: cumulative,
		Scenarios: []model.ScenarioSummary{
			{
				Name:              ScenarioCurrentPath,
				InYearDeficit:     s.Finance.InYearDeficit,
				CumulativeDeficit: totals.Current,
				ReserveMonths:     m.MonthsToExhaustion,
			},
			{
				Name:              ScenarioDelivered,
				InYearDeficit:     math.Max(0, s.Finance.InYearDeficit-s.Efficiencies.TargetNext*projection.DeliveredMultiplier),
				CumulativeDeficit: totals.Delivered,
				ReserveMonths:     reserveMonths(s.Finance.OpeningReserves, firstDelivered),
			},
			{
				Name:              ScenarioOptimised,
				InYearDeficit:     deficit,
				CumulativeDeficit: cumulative,
				ReserveMonths:     reserveMonths(s.Finance.OpeningReserves, deficit),
			},
		},
	}
}

func reserveMonths(reserves, deficit float64) float64 {
	return reserves / math.Max(reserveDivisorFloor, deficit) * 12
}
