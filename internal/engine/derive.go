package engine

import (
	"strings"

	"budget-engine/internal/earlywarning"
	"budget-engine/internal/metrics"
	"budget-engine/internal/model"
	"budget-engine/internal/narrative"
	"budget-engine/internal/projection"
	"budget-engine/internal/rag"
	"budget-engine/internal/recovery"
)

// Derive runs the whole derivation graph over s. It is a pure function:
// no I/O, no state kept between calls, the same input always gives the
// same output.
func Derive(s model.Snapshot, opts model.CalculationOptions) model.Derivation {
	return DeriveWith(s, opts, narrative.DefaultFormatter)
}

// DeriveWith is Derive with a caller-chosen narrative formatter.
func DeriveWith(s model.Snapshot, opts model.CalculationOptions, f narrative.Formatter) model.Derivation {
	opts = opts.WithDefaults()

	var d model.Derivation
	d.Metrics = metrics.Calculate(s)
	d.DemandGrowth = projection.DemandGrowth(s.DemandDrivers, s.Levers)

	labels := projection.PeriodLabels(opts.FirstFinancialYear, opts.Periods)
	d.Projection = projection.Project(s.Finance, s.Efficiencies, d.DemandGrowth, labels)
	d.RiskBands = projection.RiskBands(d.Projection)
	d.ReservesTimeline = projection.ReservesTimeline(s.Finance.OpeningReserves, d.Projection)
	d.CumulativeTotals = projection.Totals(d.Projection)

	d.Recovery = recovery.Evaluate(s, d.Metrics, d.Projection)
	d.EarlyWarning = earlywarning.Evaluate(s.Finance, d.Metrics.MonthsToExhaustion, d.Projection)
	d.Rag = classify(s, d, rag.DefaultPolicy().Merge(s.Thresholds))
	d.Narrative = f.Generate(s, d)

	return d
}

func classify(s model.Snapshot, d model.Derivation, p rag.Policy) map[string]model.RagStatus {
	m := d.Metrics
	values := map[string]float64{
		rag.FamilyReserves:       m.MonthsToExhaustion,
		rag.FamilyDeficit:        s.Finance.InYearDeficit,
		rag.FamilyCostDrivers:    m.CostDriverExposure,
		rag.FamilyWorkforce:      m.EffectiveAgencyRate,
		rag.FamilyTransformation: s.Efficiencies.Delivery.Undelivered,
		rag.FamilyPlacements:     m.ModelledPressure,
		rag.FamilyAgencyPremium:  m.AgencyPremium,
		rag.FamilyUasc:           m.NetUascPressure,
		rag.FamilyRecovery:       d.Recovery.Deficit,
	}

	out := make(map[string]model.RagStatus, len(values))
	for family, v := range values {
		out[family] = rag.Status(v, p.Lookup(family))
	}
	return out
}

// derivationMessages reports where a guard or trip condition shaped the result.
func derivationMessages(s model.Snapshot, d model.Derivation) []model.CalculationMessage {
	var msgs []model.CalculationMessage
	if metrics.DeficitFloored(s.Finance) {
		msgs = append(msgs, model.Warning("DEFICIT_FLOORED",
			"In-year deficit is below the reserve-runway floor; runway is computed against the floor"))
	}
	if d.EarlyWarning.Section114Risk {
		msgs = append(msgs, model.Warning("SECTION_114_RISK",
			"Statutory early-warning tripped: "+strings.Join(d.EarlyWarning.Triggers, ", ")))
	}
	return msgs
}
