// Package projection builds the medium-term financial plan: the per-period
// deficit under three delivery trajectories, the risk envelope around the
// current trajectory and the reserves drawdown it implies.
package projection

import (
	"fmt"
	"math"

	"budget-engine/internal/model"
)

const (
	// MinDemandGrowth keeps compounding positive whatever the drivers say.
	MinDemandGrowth = 0.5

	lacWeight        = 0.4
	uascWeight       = 0.25
	edgeOfCareWeight = 0.3
	inflationWeight  = 0.15

	// DeliveredMultiplier and OptimisedMultiplier scale next year's efficiency
	// target for the likely and best-case trajectories.
	DeliveredMultiplier = 0.9
	OptimisedMultiplier = 1.05

	RiskBandLow  = 0.85
	RiskBandHigh = 1.2
)

// DemandGrowth blends the demand drivers into one annual growth percentage.
func DemandGrowth(d model.DemandDrivers, l model.ScenarioLevers) float64 {
	g := l.PressureRate +
		d.LacGrowth*lacWeight +
		d.UascGrowth*uascWeight -
		d.EdgeOfCareImprovement*edgeOfCareWeight +
		l.InflationIndex*inflationWeight
	if l.DemandShock {
		g += l.DemandShockRate
	}
	return math.Max(MinDemandGrowth, g)
}

// PeriodLabels returns n financial-year labels such as "24/25", starting at firstYear.
func PeriodLabels(firstYear, n int) []string {
	labels := make([]string, n)
	for i := range labels {
		y := firstYear + i
		labels[i] = fmt.Sprintf("%02d/%02d", y%100, (y+1)%100)
	}
	return labels
}

// Project returns one row per label. Every row compounds from the in-year
// deficit directly, never from the previous row.
func Project(f model.FinancePosition, e model.EfficiencyProgramme, growthPct float64, labels []string) []model.ProjectionRow {
	growth := growthPct / 100
	cashableShare := e.CashableShare / 100
	recurringShare := e.RecurringShare / 100

	currentTotal := e.TargetNext * (e.Delivery.Ongoing / 100)
	deliveredTotal := e.TargetNext * DeliveredMultiplier
	optimisedTotal := e.TargetNext * OptimisedMultiplier

	recurring := currentTotal * recurringShare
	oneOff := currentTotal * (1 - recurringShare)
	cashable := currentTotal * cashableShare

	rows := make([]model.ProjectionRow, len(labels))
	for i, label := range labels {
		inflated := f.InYearDeficit * math.Pow(1+growth, float64(i))
		rows[i] = model.ProjectionRow{
			Period:      label,
			Index:       i,
			Baseline:    inflated,
			Current:     math.Max(0, inflated-(recurring+oneOff)),
			Delivered:   math.Max(0, inflated-deliveredTotal),
			Optimised:   math.Max(0, inflated-optimisedTotal),
			Recurring:   recurring,
			OneOff:      oneOff,
			Cashable:    cashable,
			NonCashable: currentTotal - cashable,
		}
	}
	return rows
}

// RiskBands wraps the current trajectory in a fixed low/high envelope.
func RiskBands(rows []model.ProjectionRow) []model.RiskBand {
	bands := make([]model.RiskBand, len(rows))
	for i, r := range rows {
		bands[i] = model.RiskBand{
			Period:  r.Period,
			Low:     math.Max(0, r.Current*RiskBandLow),
			Central: r.Current,
			High:    r.Current * RiskBandHigh,
		}
	}
	return bands
}

// ReservesTimeline draws the current-trajectory deficit down from the
// opening balance. Reserves stop at zero: exhaustion, not overdraft.
func ReservesTimeline(openingReserves float64, rows []model.ProjectionRow) []model.ReservePoint {
	points := make([]model.ReservePoint, len(rows))
	reserves := openingReserves
	for i, r := range rows {
		reserves = math.Max(0, reserves-r.Current)
		points[i] = model.ReservePoint{Period: r.Period, Reserves: reserves}
	}
	return points
}

func Totals(rows []model.ProjectionRow) model.CumulativeTotals {
	var t model.CumulativeTotals
	for _, r := range rows {
		t.Current += r.Current
		t.Delivered += r.Delivered
		t.Optimised += r.Optimised
	}
	return t
}
