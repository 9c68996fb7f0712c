package edits

import (
	"fmt"

	"budget-engine/internal/model"
)

// Range checks only warn. The engine computes whatever it is given; these
// messages exist so the presentation layer can flag implausible input.
type checker struct {
	msgs []model.CalculationMessage
}

func (c *checker) percent(field string, v float64) {
	if v < 0 || v > 100 {
		c.msgs = append(c.msgs, model.Warning("PERCENT_OUT_OF_RANGE",
			fmt.Sprintf("%s is %g%%, expected 0-100", field, v)))
	}
}

func (c *checker) nonNegative(field string, v float64) {
	if v < 0 {
		c.msgs = append(c.msgs, model.Warning("NEGATIVE_VALUE",
			fmt.Sprintf("%s is negative (%g)", field, v)))
	}
}

func checkFinance(f *model.FinancePosition) []model.CalculationMessage {
	var c checker
	c.nonNegative("income", f.Income)
	c.nonNegative("expenditure", f.Expenditure)
	c.nonNegative("in_year_deficit", f.InYearDeficit)
	c.nonNegative("cumulative_deficit", f.CumulativeDeficit)
	c.nonNegative("reserve_support", f.ReserveSupport)
	c.nonNegative("opening_reserves", f.OpeningReserves)
	c.nonNegative("earmarked_reserves", f.EarmarkedReserves)
	c.nonNegative("minimum_reserves", f.MinimumReserves)
	return c.msgs
}

func checkPlacements(p *model.PlacementPosition) []model.CalculationMessage {
	var c checker
	c.nonNegative("budgeted", float64(p.Budgeted))
	c.nonNegative("actual", float64(p.Actual))
	c.nonNegative("cost_pressure", p.CostPressure)
	c.nonNegative("avg_weekly_cost", p.AvgWeeklyCost)
	c.nonNegative("benchmark_weekly_cost", p.BenchmarkWeeklyCost)
	return c.msgs
}

func checkUasc(u *model.UascPosition) []model.CalculationMessage {
	var c checker
	c.nonNegative("pressure", u.Pressure)
	c.nonNegative("grant", u.Grant)
	c.nonNegative("arrivals", float64(u.Arrivals))
	return c.msgs
}

func checkWorkforce(w *model.WorkforcePosition) []model.CalculationMessage {
	var c checker
	c.percent("vacancy_rate", w.VacancyRate)
	c.percent("agency_rate", w.AgencyRate)
	c.nonNegative("asye", float64(w.Asye))
	c.nonNegative("wte_required", w.WteRequired)
	c.nonNegative("wte_funded", w.WteFunded)
	c.nonNegative("wte_in_post", w.WteInPost)
	c.nonNegative("time_to_fill", w.TimeToFill)
	return c.msgs
}

func checkEfficiencies(e *model.EfficiencyProgramme) []model.CalculationMessage {
	var c checker
	c.percent("delivery.ongoing", e.Delivery.Ongoing)
	c.percent("delivery.one_off", e.Delivery.OneOff)
	c.percent("delivery.undelivered", e.Delivery.Undelivered)
	if sum := e.Delivery.Ongoing + e.Delivery.OneOff + e.Delivery.Undelivered; sum > 100 {
		c.msgs = append(c.msgs, model.Warning("DELIVERY_EXCEEDS_100",
			fmt.Sprintf("Delivery breakdown sums to %g%%", sum)))
	}
	c.nonNegative("carried_forward", e.CarriedForward)
	c.nonNegative("target_next", e.TargetNext)
	c.percent("cashable_share", e.CashableShare)
	c.percent("recurring_share", e.RecurringShare)
	return c.msgs
}

func checkLevers(l *model.ScenarioLevers) []model.CalculationMessage {
	var c checker
	c.percent("localities_reduction", l.LocalitiesReduction)
	c.percent("step_down_rate", l.StepDownRate)
	c.nonNegative("market_inflation_rate", l.MarketInflationRate)
	c.percent("unit_cost_improvement", l.UnitCostImprovement)
	c.percent("agency_conversion_gain", l.AgencyConversionGain)
	c.percent("reduce_agency", l.ReduceAgency)
	c.percent("reduce_placements", l.ReducePlacements)
	c.percent("efficiency_delivery_rate", l.EfficiencyDeliveryRate)
	c.nonNegative("commissioning_savings", l.CommissioningSavings)
	c.nonNegative("uasc_grant_uplift", l.UascGrantUplift)
	return c.msgs
}
