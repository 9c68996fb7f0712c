package model

// Snapshot is the full assumption set for one recompute. Hosts build a new
// snapshot for every edit; the engine only ever reads it.
type Snapshot struct {
	RefreshDate   string                   `json:"refresh_date,omitempty" yaml:"refresh_date"`
	Finance       FinancePosition          `json:"finance" yaml:"finance"`
	Placements    PlacementPosition        `json:"placements" yaml:"placements"`
	Uasc          UascPosition             `json:"uasc" yaml:"uasc"`
	Workforce     WorkforcePosition        `json:"workforce" yaml:"workforce"`
	Efficiencies  EfficiencyProgramme      `json:"efficiencies" yaml:"efficiencies"`
	DemandDrivers DemandDrivers            `json:"demand_drivers" yaml:"demand_drivers"`
	Levers        ScenarioLevers           `json:"levers" yaml:"levers"`
	Thresholds    map[string]RagThresholds `json:"thresholds,omitempty" yaml:"thresholds"`
}

// FinancePosition amounts share one currency unit (the dashboard uses £m).
type FinancePosition struct {
	Income            float64 `json:"income" yaml:"income"`
	Expenditure       float64 `json:"expenditure" yaml:"expenditure"`
	InYearDeficit     float64 `json:"in_year_deficit" yaml:"in_year_deficit"`
	CumulativeDeficit float64 `json:"cumulative_deficit" yaml:"cumulative_deficit"`
	ReserveSupport    float64 `json:"reserve_support" yaml:"reserve_support"`
	OpeningReserves   float64 `json:"opening_reserves" yaml:"opening_reserves"`
	EarmarkedReserves float64 `json:"earmarked_reserves" yaml:"earmarked_reserves"`
	MinimumReserves   float64 `json:"minimum_reserves" yaml:"minimum_reserves"`
}

type PlacementPosition struct {
	Budgeted            int     `json:"budgeted" yaml:"budgeted"`
	Actual              int     `json:"actual" yaml:"actual"`
	CostPressure        float64 `json:"cost_pressure" yaml:"cost_pressure"`
	AvgWeeklyCost       float64 `json:"avg_weekly_cost" yaml:"avg_weekly_cost"`
	BenchmarkWeeklyCost float64 `json:"benchmark_weekly_cost" yaml:"benchmark_weekly_cost"`
}

// UascPosition covers unaccompanied asylum-seeking children.
type UascPosition struct {
	Pressure float64 `json:"pressure" yaml:"pressure"`
	Grant    float64 `json:"grant" yaml:"grant"`
	Arrivals int     `json:"arrivals" yaml:"arrivals"`
}

type WorkforcePosition struct {
	VacancyRate float64 `json:"vacancy_rate" yaml:"vacancy_rate"`
	AgencyRate  float64 `json:"agency_rate" yaml:"agency_rate"`
	Asye        int     `json:"asye" yaml:"asye"`
	WteRequired float64 `json:"wte_required" yaml:"wte_required"`
	WteFunded   float64 `json:"wte_funded" yaml:"wte_funded"`
	WteInPost   float64 `json:"wte_in_post" yaml:"wte_in_post"`
	TimeToFill  float64 `json:"time_to_fill" yaml:"time_to_fill"`
}

type DeliveryBreakdown struct {
	Ongoing     float64 `json:"ongoing" yaml:"ongoing"`
	OneOff      float64 `json:"one_off" yaml:"one_off"`
	Undelivered float64 `json:"undelivered" yaml:"undelivered"`
}

type EfficiencyProgramme struct {
	Delivery       DeliveryBreakdown `json:"delivery" yaml:"delivery"`
	CarriedForward float64           `json:"carried_forward" yaml:"carried_forward"`
	TargetNext     float64           `json:"target_next" yaml:"target_next"`
	CashableShare  float64           `json:"cashable_share" yaml:"cashable_share"`
	RecurringShare float64           `json:"recurring_share" yaml:"recurring_share"`
}

type DemandDrivers struct {
	LacGrowth             float64 `json:"lac_growth" yaml:"lac_growth"`
	UascGrowth            float64 `json:"uasc_growth" yaml:"uasc_growth"`
	EdgeOfCareImprovement float64 `json:"edge_of_care_improvement" yaml:"edge_of_care_improvement"`
}

// ScenarioLevers are the what-if controls. The zero value of every field is
// the identity, so a host that exposes fewer levers simply leaves them unset.
type ScenarioLevers struct {
	LocalitiesImpact       bool    `json:"localities_impact" yaml:"localities_impact"`
	LocalitiesReduction    float64 `json:"localities_reduction" yaml:"localities_reduction"`
	StepDown               bool    `json:"step_down" yaml:"step_down"`
	StepDownRate           float64 `json:"step_down_rate" yaml:"step_down_rate"`
	MarketInflation        bool    `json:"market_inflation" yaml:"market_inflation"`
	MarketInflationRate    float64 `json:"market_inflation_rate" yaml:"market_inflation_rate"`
	UnitCostImprovement    float64 `json:"unit_cost_improvement" yaml:"unit_cost_improvement"`
	AgencyConversionGain   float64 `json:"agency_conversion_gain" yaml:"agency_conversion_gain"`
	ReduceAgency           float64 `json:"reduce_agency" yaml:"reduce_agency"`
	ReducePlacements       float64 `json:"reduce_placements" yaml:"reduce_placements"`
	EfficiencyDeliveryRate float64 `json:"efficiency_delivery_rate" yaml:"efficiency_delivery_rate"`
	DemandShock            bool    `json:"demand_shock" yaml:"demand_shock"`
	DemandShockRate        float64 `json:"demand_shock_rate" yaml:"demand_shock_rate"`
	CommissioningSavings   float64 `json:"commissioning_savings" yaml:"commissioning_savings"`
	UascGrantUplift        float64 `json:"uasc_grant_uplift" yaml:"uasc_grant_uplift"`
	PressureRate           float64 `json:"pressure_rate" yaml:"pressure_rate"`
	InflationIndex         float64 `json:"inflation_index" yaml:"inflation_index"`
}

// Clone returns a copy that shares no mutable state with s.
func (s Snapshot) Clone() Snapshot {
	if s.Thresholds != nil {
		t := make(map[string]RagThresholds, len(s.Thresholds))
		for k, v := range s.Thresholds {
			t[k] = v
		}
		s.Thresholds = t
	}
	return s
}

// DefaultSnapshot is the assumption set the dashboard opens with.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		RefreshDate: "2026-02-24",
		Finance: FinancePosition{
			Income:            90.4,
			Expenditure:       99.2,
			InYearDeficit:     8.8,
			CumulativeDeficit: 19.7,
			ReserveSupport:    3.36,
			OpeningReserves:   6.0,
			EarmarkedReserves: 1.5,
			MinimumReserves:   2.0,
		},
		Placements: PlacementPosition{
			Budgeted:            62,
			Actual:              79,
			CostPressure:        6.3,
			AvgWeeklyCost:       4.2,
			BenchmarkWeeklyCost: 3.6,
		},
		Uasc: UascPosition{Pressure: 2.7, Grant: 1.4, Arrivals: 28},
		Workforce: WorkforcePosition{
			VacancyRate: 23.94,
			AgencyRate:  20.7,
			Asye:        32,
			WteRequired: 520,
			WteFunded:   495,
			WteInPost:   420,
			TimeToFill:  120,
		},
		Efficiencies: EfficiencyProgramme{
			Delivery:       DeliveryBreakdown{Ongoing: 77, OneOff: 8, Undelivered: 15},
			CarriedForward: 1.742,
			TargetNext:     2.34,
			CashableShare:  70,
			RecurringShare: 80,
		},
		DemandDrivers: DemandDrivers{LacGrowth: 4.0, UascGrowth: 3.0, EdgeOfCareImprovement: 2.0},
		Levers: ScenarioLevers{
			LocalitiesImpact:       true,
			LocalitiesReduction:    5,
			StepDownRate:           8,
			MarketInflation:        true,
			MarketInflationRate:    6,
			UnitCostImprovement:    4,
			AgencyConversionGain:   6,
			ReduceAgency:           10,
			ReducePlacements:       8,
			EfficiencyDeliveryRate: 85,
			DemandShockRate:        1.5,
			CommissioningSavings:   1.2,
			UascGrantUplift:        10,
			PressureRate:           5,
			InflationIndex:         3.4,
		},
	}
}
