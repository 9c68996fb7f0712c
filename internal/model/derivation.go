package model

// Derivation is everything the engine computes from one snapshot.
type Derivation struct {
	Metrics          DerivedMetrics       `json:"metrics"`
	DemandGrowth     float64              `json:"demand_growth"`
	Projection       []ProjectionRow      `json:"projection"`
	RiskBands        []RiskBand           `json:"risk_bands"`
	ReservesTimeline []ReservePoint       `json:"reserves_timeline"`
	CumulativeTotals CumulativeTotals     `json:"cumulative_totals"`
	Recovery         RecoveryOutcome      `json:"recovery"`
	EarlyWarning     EarlyWarning         `json:"early_warning"`
	Rag              map[string]RagStatus `json:"rag"`
	Narrative        Narrative            `json:"narrative"`
}

type DerivedMetrics struct {
	ReserveCoverage    float64 `json:"reserve_coverage"`
	MonthsToExhaustion float64 `json:"months_to_exhaustion"`

	PlacementDelta        int     `json:"placement_delta"`
	PressurePerPlacement  float64 `json:"pressure_per_placement"`
	ModelledPlacementBase float64 `json:"modelled_placement_base"`
	ModelledPressure      float64 `json:"modelled_pressure"`
	UnitCostSaving        float64 `json:"unit_cost_saving"`

	EffectiveAgencyRate float64 `json:"effective_agency_rate"`
	PermanentShare      float64 `json:"permanent_share"`
	AgencyPremium       float64 `json:"agency_premium"`
	BreakEven           float64 `json:"break_even"`

	UpliftedGrant      float64 `json:"uplifted_grant"`
	NetUascPressure    float64 `json:"net_uasc_pressure"`
	UascResidual       float64 `json:"uasc_residual"`
	CostDriverExposure float64 `json:"cost_driver_exposure"`

	DeliveryConfidence float64 `json:"delivery_confidence"`
	EfficiencyUplift   float64 `json:"efficiency_uplift"`

	ForecastOutturn  float64 `json:"forecast_outturn"`
	WorstCaseOutturn float64 `json:"worst_case_outturn"`

	WteGap           float64 `json:"wte_gap"`
	FundedGap        float64 `json:"funded_gap"`
	TimeToFillMonths float64 `json:"time_to_fill_months"`
}

// ProjectionRow is one period of the medium-term financial plan.
type ProjectionRow struct {
	Period      string  `json:"period"`
	Index       int     `json:"index"`
	Baseline    float64 `json:"baseline"`
	Current     float64 `json:"current"`
	Delivered   float64 `json:"delivered"`
	Optimised   float64 `json:"optimised"`
	Recurring   float64 `json:"recurring"`
	OneOff      float64 `json:"one_off"`
	Cashable    float64 `json:"cashable"`
	NonCashable float64 `json:"non_cashable"`
}

type RiskBand struct {
	Period  string  `json:"period"`
	Low     float64 `json:"low"`
	Central float64 `json:"central"`
	High    float64 `json:"high"`
}

type ReservePoint struct {
	Period   string  `json:"period"`
	Reserves float64 `json:"reserves"`
}

type CumulativeTotals struct {
	Current   float64 `json:"current"`
	Delivered float64 `json:"delivered"`
	Optimised float64 `json:"optimised"`
}

type ScenarioSummary struct {
	Name              string  `json:"name"`
	InYearDeficit     float64 `json:"in_year_deficit"`
	CumulativeDeficit float64 `json:"cumulative_deficit"`
	ReserveMonths     float64 `json:"reserve_months"`
}

type RecoveryOutcome struct {
	Savings           float64           `json:"savings"`
	Deficit           float64           `json:"deficit"`
	CumulativeDeficit float64           `json:"cumulative_deficit"`
	Scenarios         []ScenarioSummary `json:"scenarios"`
}

type EarlyWarning struct {
	Section114Risk           bool     `json:"section_114_risk"`
	ReservesAfterFirstPeriod float64  `json:"reserves_after_first_period"`
	UsableReserves           float64  `json:"usable_reserves"`
	Triggers                 []string `json:"triggers"`
}

type Narrative struct {
	Insights      map[string]string `json:"insights"`
	BoardMessages []string          `json:"board_messages"`
	TopRisks      []string          `json:"top_risks"`
}
