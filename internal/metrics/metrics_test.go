package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"budget-engine/internal/model"
)

func baseline() model.Snapshot {
	s := model.DefaultSnapshot()
	s.Levers = model.ScenarioLevers{}
	return s
}

func TestMonthsToExhaustion(t *testing.T) {
	s := baseline()
	m := Calculate(s)

	assert.InDelta(t, 0.3818, m.ReserveCoverage, 1e-4)
	assert.InDelta(t, 4.58, m.MonthsToExhaustion, 0.01)
}

func TestMonthsToExhaustionScalesLinearly(t *testing.T) {
	s := baseline()
	before := Calculate(s).MonthsToExhaustion

	s.Finance.ReserveSupport *= 2
	assert.InDelta(t, before*2, Calculate(s).MonthsToExhaustion, 1e-9)

	s = baseline()
	s.Finance.InYearDeficit *= 2
	assert.InDelta(t, before/2, Calculate(s).MonthsToExhaustion, 1e-9)
}

func TestZeroDeficitIsFloored(t *testing.T) {
	s := baseline()
	s.Finance.InYearDeficit = 0

	m := Calculate(s)
	assert.True(t, DeficitFloored(s.Finance))
	assert.InDelta(t, 3.36/DeficitFloor*12, m.MonthsToExhaustion, 1e-9)
}

func TestModelledPlacementPressureTogglesOff(t *testing.T) {
	m := Calculate(baseline())

	assert.Equal(t, 17, m.PlacementDelta)
	assert.InDelta(t, 79, m.ModelledPlacementBase, 1e-9)
	assert.InDelta(t, 0.3706, m.PressurePerPlacement, 1e-4)
	assert.InDelta(t, 6.3, m.ModelledPressure, 1e-9)
}

func TestModelledPlacementBaseAppliesLevers(t *testing.T) {
	s := baseline()
	s.Levers = model.ScenarioLevers{
		LocalitiesImpact:    true,
		LocalitiesReduction: 5,
		StepDown:            true,
		StepDownRate:        8,
		MarketInflation:     true,
		MarketInflationRate: 6,
		UnitCostImprovement: 4,
	}

	want := 79 * 0.95 * 0.92 * 1.06 * 0.96
	assert.InDelta(t, want, ModelledPlacementBase(s.Placements, s.Levers), 1e-9)

	// magnitudes are ignored while their toggles are off
	s.Levers.LocalitiesImpact = false
	s.Levers.StepDown = false
	s.Levers.MarketInflation = false
	assert.InDelta(t, 79*0.96, ModelledPlacementBase(s.Placements, s.Levers), 1e-9)
}

func TestModelledPressureClampedAtZero(t *testing.T) {
	s := baseline()
	s.Placements.Actual = 50

	m := Calculate(s)
	assert.Equal(t, 6.3, m.PressurePerPlacement, "delta below one uses a divisor of one")
	assert.Equal(t, 0.0, m.ModelledPressure)
}

func TestAgencyPremium(t *testing.T) {
	s := baseline()
	s.Levers.AgencyConversionGain = 6

	m := Calculate(s)
	assert.InDelta(t, 14.7, m.EffectiveAgencyRate, 1e-9)
	assert.InDelta(t, 4.374, m.AgencyPremium, 1e-3)
	assert.InDelta(t, 4.374/9.92, m.BreakEven, 1e-3)
	assert.InDelta(t, 85.3, m.PermanentShare, 1e-9)

	s.Levers.AgencyConversionGain = 30
	assert.Equal(t, 0.0, Calculate(s).EffectiveAgencyRate)
}

func TestBreakEvenWithZeroExpenditure(t *testing.T) {
	s := baseline()
	s.Finance.Expenditure = 0

	m := Calculate(s)
	assert.Equal(t, 0.0, m.BreakEven)
}

func TestUascNetPressure(t *testing.T) {
	s := baseline()
	s.Levers.UascGrantUplift = 10

	m := Calculate(s)
	assert.InDelta(t, 1.54, m.UpliftedGrant, 1e-9)
	assert.InDelta(t, 1.16, m.NetUascPressure, 1e-9)
	assert.InDelta(t, 6.3+1.16, m.CostDriverExposure, 1e-9)
}

func TestWorkforceAndOutturn(t *testing.T) {
	m := Calculate(baseline())

	assert.Equal(t, 100.0, m.WteGap)
	assert.Equal(t, 25.0, m.FundedGap)
	assert.Equal(t, 4.0, m.TimeToFillMonths)
	assert.Equal(t, 85.0, m.DeliveryConfidence)
	assert.InDelta(t, 99.2+2.2, m.ForecastOutturn, 1e-9)
}

func TestEfficiencyUplift(t *testing.T) {
	assert.Equal(t, 0.0, EfficiencyUplift(70, 2.34))
	assert.Equal(t, 0.0, EfficiencyUplift(77, 2.34))
	assert.InDelta(t, 0.08*2.34, EfficiencyUplift(85, 2.34), 1e-9)
}
