package edits

import "budget-engine/internal/model"

// EditHandler defines the contract for all edit implementations.
// Validate inspects the edit against the current snapshot without changing
// it; Apply changes the snapshot in place.
type EditHandler interface {
	Validate(state *model.Snapshot, edit *model.Edit) []model.CalculationMessage
	Apply(state *model.Snapshot, edit *model.Edit) []model.CalculationMessage
}
