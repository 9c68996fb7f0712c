package edits

import "budget-engine/internal/model"

var registry = map[string]EditHandler{
	"update_finance": &sectionHandler[model.FinancePosition]{
		section: func(s *model.Snapshot) *model.FinancePosition { return &s.Finance },
		check:   checkFinance,
	},
	"update_placements": &sectionHandler[model.PlacementPosition]{
		section: func(s *model.Snapshot) *model.PlacementPosition { return &s.Placements },
		check:   checkPlacements,
	},
	"update_uasc": &sectionHandler[model.UascPosition]{
		section: func(s *model.Snapshot) *model.UascPosition { return &s.Uasc },
		check:   checkUasc,
	},
	"update_workforce": &sectionHandler[model.WorkforcePosition]{
		section: func(s *model.Snapshot) *model.WorkforcePosition { return &s.Workforce },
		check:   checkWorkforce,
	},
	"update_efficiencies": &sectionHandler[model.EfficiencyProgramme]{
		section: func(s *model.Snapshot) *model.EfficiencyProgramme { return &s.Efficiencies },
		check:   checkEfficiencies,
	},
	"update_demand_drivers": &sectionHandler[model.DemandDrivers]{
		section: func(s *model.Snapshot) *model.DemandDrivers { return &s.DemandDrivers },
		check:   func(*model.DemandDrivers) []model.CalculationMessage { return nil },
	},
	"update_levers": &sectionHandler[model.ScenarioLevers]{
		section: func(s *model.Snapshot) *model.ScenarioLevers { return &s.Levers },
		check:   checkLevers,
	},
	"set_refresh_date": &RefreshDateHandler{},
	"set_thresholds":   &SetThresholdsHandler{},
}

func Get(name string) (EditHandler, bool) {
	h, ok := registry[name]
	return h, ok
}
