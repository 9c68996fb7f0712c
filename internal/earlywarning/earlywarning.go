// Package earlywarning evaluates the statutory (section 114) risk flag.
package earlywarning

import "budget-engine/internal/model"

// MinimumRunwayMonths is the reserve runway below which the flag trips regardless of balances.
const MinimumRunwayMonths = 3

// Trip condition names reported in EarlyWarning.Triggers.
const (
	TriggerReservesAfterFirstPeriod = "reserves_after_first_period_below_minimum"
	TriggerShortRunway              = "runway_below_three_months"
	TriggerUsableReserves           = "usable_reserves_below_minimum"
)

// Evaluate trips when any one of the three conditions holds. There is no
// graded state; Triggers only records which conditions fired.
func Evaluate(f model.FinancePosition, monthsToExhaustion float64, rows []model.ProjectionRow) model.EarlyWarning {
	var firstCurrent float64
	if len(rows) > 0 {
		firstCurrent = rows[0].Current
	}

	w := model.EarlyWarning{
		ReservesAfterFirstPeriod: f.OpeningReserves - firstCurrent,
		UsableReserves:           f.OpeningReserves - f.EarmarkedReserves,
		Triggers:                 []string{},
	}

	if w.ReservesAfterFirstPeriod < f.MinimumReserves {
		w.Triggers = append(w.Triggers, TriggerReservesAfterFirstPeriod)
	}
	if monthsToExhaustion < MinimumRunwayMonths {
		w.Triggers = append(w.Triggers, TriggerShortRunway)
	}
	if w.UsableReserves < f.MinimumReserves {
		w.Triggers = append(w.Triggers, TriggerUsableReserves)
	}

	w.Section114Risk = len(w.Triggers) > 0
	return w
}
