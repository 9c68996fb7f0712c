// Package metrics derives the point-in-time indicators from one snapshot.
package metrics

import (
	"math"

	"budget-engine/internal/model"
)

const (
	// AgencyLoading is the premium an agency worker costs over a permanent one.
	AgencyLoading = 0.3
	// BreakEvenShare is the share of expenditure the agency premium is measured against.
	BreakEvenShare = 0.1
	// DeliveryReference is the ongoing delivery percentage already in the base
	// position; an improved delivery rate only saves money above it.
	DeliveryReference = 77.0

	// DeficitFloor keeps reserve runway finite when the deficit is driven to zero.
	DeficitFloor = 0.1

	forecastDeficitShare = 0.25
	uascResidualShare    = 0.4
	daysPerMonth         = 30
)

// Calculate computes every single-period indicator. It reads only s and
// returns a fresh value on every call.
func Calculate(s model.Snapshot) model.DerivedMetrics {
	var m model.DerivedMetrics

	m.ReserveCoverage = ReserveCoverage(s.Finance)
	m.MonthsToExhaustion = m.ReserveCoverage * 12

	m.PlacementDelta = s.Placements.Actual - s.Placements.Budgeted
	m.PressurePerPlacement = PressurePerPlacement(s.Placements)
	m.ModelledPlacementBase = ModelledPlacementBase(s.Placements, s.Levers)
	m.ModelledPressure = math.Max(0, (m.ModelledPlacementBase-float64(s.Placements.Budgeted))*m.PressurePerPlacement)
	m.UnitCostSaving = s.Placements.CostPressure * (s.Levers.UnitCostImprovement / 100)

	m.EffectiveAgencyRate = EffectiveAgencyRate(s.Workforce, s.Levers)
	m.PermanentShare = 100 - m.EffectiveAgencyRate
	m.AgencyPremium = AgencyPremium(s.Finance, m.EffectiveAgencyRate)
	m.BreakEven = m.AgencyPremium / math.Max(DeficitFloor, s.Finance.Expenditure*BreakEvenShare)

	m.UpliftedGrant = s.Uasc.Grant * (1 + s.Levers.UascGrantUplift/100)
	m.NetUascPressure = s.Uasc.Pressure - m.UpliftedGrant
	m.UascResidual = m.NetUascPressure * uascResidualShare
	m.CostDriverExposure = s.Placements.CostPressure + m.NetUascPressure

	m.DeliveryConfidence = 100 - s.Efficiencies.Delivery.Undelivered
	m.EfficiencyUplift = EfficiencyUplift(s.Levers.EfficiencyDeliveryRate, s.Efficiencies.TargetNext)

	m.ForecastOutturn = s.Finance.Expenditure + s.Finance.InYearDeficit*forecastDeficitShare
	m.WorstCaseOutturn = s.Finance.Expenditure + s.Placements.CostPressure + m.NetUascPressure

	m.WteGap = s.Workforce.WteRequired - s.Workforce.WteInPost
	m.FundedGap = s.Workforce.WteRequired - s.Workforce.WteFunded
	m.TimeToFillMonths = s.Workforce.TimeToFill / daysPerMonth

	return m
}

// ReserveCoverage is reserve support as a multiple of the in-year deficit.
func ReserveCoverage(f model.FinancePosition) float64 {
	return f.ReserveSupport / math.Max(DeficitFloor, f.InYearDeficit)
}

// DeficitFloored reports whether ReserveCoverage had to floor the deficit.
func DeficitFloored(f model.FinancePosition) bool {
	return f.InYearDeficit < DeficitFloor
}

// PressurePerPlacement spreads the cost pressure over the placements above
// budget, with at least one placement in the divisor.
func PressurePerPlacement(p model.PlacementPosition) float64 {
	return p.CostPressure / math.Max(1, float64(p.Actual-p.Budgeted))
}

// ModelledPlacementBase applies the placement levers to the actual count in
// a fixed order. A disabled lever contributes a factor of one.
func ModelledPlacementBase(p model.PlacementPosition, l model.ScenarioLevers) float64 {
	base := float64(p.Actual)
	if l.LocalitiesImpact {
		base *= 1 - l.LocalitiesReduction/100
	}
	if l.StepDown {
		base *= 1 - l.StepDownRate/100
	}
	if l.MarketInflation {
		base *= 1 + l.MarketInflationRate/100
	}
	return base * (1 - l.UnitCostImprovement/100)
}

func EffectiveAgencyRate(w model.WorkforcePosition, l model.ScenarioLevers) float64 {
	return math.Max(0, w.AgencyRate-l.AgencyConversionGain)
}

func AgencyPremium(f model.FinancePosition, effectiveAgencyRate float64) float64 {
	return f.Expenditure * (effectiveAgencyRate / 100) * AgencyLoading
}

// EfficiencyUplift is the extra saving from delivering above DeliveryReference.
func EfficiencyUplift(deliveryRate, targetNext float64) float64 {
	return math.Max(0, (deliveryRate-DeliveryReference)/100) * targetNext
}
