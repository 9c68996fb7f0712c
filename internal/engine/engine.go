package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"budget-engine/internal/edits"
	"budget-engine/internal/jsonpatch"
	"budget-engine/internal/model"
	"budget-engine/internal/narrative"
)

// Engine carries presentation settings only; it holds no calculation state.
type Engine struct {
	Formatter narrative.Formatter
}

func New(f narrative.Formatter) *Engine {
	return &Engine{Formatter: f}
}

// Process applies the request's edits to its snapshot in order, then derives
// the edited snapshot. A critical message stops the edit sequence; the result
// is then derived from the last snapshot every edit up to that point accepted.
func Process(req *model.CalculationRequest) *model.CalculationResponse {
	return New(narrative.DefaultFormatter).Process(req)
}

func (e *Engine) Process(req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()

	baseline := req.Snapshot.Clone()
	state := baseline.Clone()

	var allMessages []model.CalculationMessage
	processedEdits := []model.ProcessedEdit{}
	outcome := model.OutcomeSuccess
	hasCritical := false
	appliedAny := false

	for i := range req.Edits {
		ed := req.Edits[i]
		handler, ok := edits.Get(ed.EditName)
		if !ok {
			msg := model.Critical("UNKNOWN_EDIT", fmt.Sprintf("Unknown edit: %s", ed.EditName))
			msg.ID = len(allMessages)
			allMessages = append(allMessages, msg)
			processedEdits = append(processedEdits, model.ProcessedEdit{
				Edit:                      ed,
				CalculationMessageIndexes: []int{msg.ID},
			})
			hasCritical = true
			break
		}

		var msgIndexes []int
		for _, vm := range handler.Validate(&state, &ed) {
			vm.ID = len(allMessages)
			allMessages = append(allMessages, vm)
			msgIndexes = append(msgIndexes, vm.ID)
			if vm.Level == model.LevelCritical {
				hasCritical = true
			}
		}

		if hasCritical {
			processedEdits = append(processedEdits, model.ProcessedEdit{
				Edit:                      ed,
				CalculationMessageIndexes: msgIndexes,
			})
			break
		}

		// Apply to a copy so a failed edit leaves state untouched
		next := state.Clone()
		for _, am := range handler.Apply(&next, &ed) {
			am.ID = len(allMessages)
			allMessages = append(allMessages, am)
			msgIndexes = append(msgIndexes, am.ID)
			if am.Level == model.LevelCritical {
				hasCritical = true
			}
		}

		processedEdits = append(processedEdits, model.ProcessedEdit{
			Edit:                      ed,
			Applied:                   !hasCritical,
			CalculationMessageIndexes: msgIndexes,
		})

		if hasCritical {
			break
		}

		state = next
		appliedAny = true
	}

	if hasCritical {
		outcome = model.OutcomeFailure
	}

	derivation := DeriveWith(state, req.Options, e.Formatter)
	for _, dm := range derivationMessages(state, derivation) {
		dm.ID = len(allMessages)
		allMessages = append(allMessages, dm)
	}

	changes := []model.PatchOp{}
	if appliedAny {
		before := DeriveWith(baseline, req.Options, e.Formatter)
		ops, err := jsonpatch.Between(before, derivation)
		if err != nil {
			msg := model.Warning("CHANGES_UNAVAILABLE", err.Error())
			msg.ID = len(allMessages)
			allMessages = append(allMessages, msg)
		} else {
			changes = ops
		}
	}

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			TenantID:               req.TenantID,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:   allMessages,
			Edits:      processedEdits,
			Snapshot:   state,
			Derivation: derivation,
			Changes:    changes,
		},
	}
}
