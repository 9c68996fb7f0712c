package edits

import (
	"fmt"
	"time"

	"budget-engine/internal/model"
	"budget-engine/internal/rag"
)

// SetThresholdsHandler overrides the RAG policy for one or more metric families.
type SetThresholdsHandler struct{}

func (h *SetThresholdsHandler) Validate(state *model.Snapshot, edit *model.Edit) []model.CalculationMessage {
	var props map[string]model.RagThresholds
	if err := decodeStrict(edit.Properties, &props); err != nil {
		return []model.CalculationMessage{model.Critical("INVALID_PROPERTIES",
			fmt.Sprintf("Edit %s has invalid properties: %v", edit.EditName, err))}
	}

	var msgs []model.CalculationMessage
	for family, t := range props {
		switch t.Polarity {
		case model.Ascending, model.Descending, "":
		default:
			return []model.CalculationMessage{model.Critical("INVALID_POLARITY",
				fmt.Sprintf("Family %s has unknown polarity %q", family, t.Polarity))}
		}
		if (t.Polarity == model.Descending && t.Red > t.Amber) ||
			(t.Polarity != model.Descending && t.Red < t.Amber) {
			msgs = append(msgs, model.Warning("THRESHOLDS_INVERTED",
				fmt.Sprintf("Family %s has red less severe than amber; the amber band is unreachable", family)))
		}
	}
	return msgs
}

func (h *SetThresholdsHandler) Apply(state *model.Snapshot, edit *model.Edit) []model.CalculationMessage {
	var props map[string]model.RagThresholds
	if err := decodeStrict(edit.Properties, &props); err != nil {
		return []model.CalculationMessage{model.Critical("INVALID_PROPERTIES", err.Error())}
	}

	// never write through to a map the caller may still hold
	merged := make(map[string]model.RagThresholds, len(state.Thresholds)+len(props))
	for k, v := range state.Thresholds {
		merged[k] = v
	}
	base := rag.Policy(state.Thresholds)
	for k, v := range props {
		merged[k] = base.Inherit(k, v)
	}
	state.Thresholds = merged
	return nil
}

type refreshDateProps struct {
	RefreshDate string `json:"refresh_date"`
}

// RefreshDateHandler records when the assumptions were last refreshed.
type RefreshDateHandler struct{}

func (h *RefreshDateHandler) Validate(state *model.Snapshot, edit *model.Edit) []model.CalculationMessage {
	var props refreshDateProps
	if err := decodeStrict(edit.Properties, &props); err != nil {
		return []model.CalculationMessage{model.Critical("INVALID_PROPERTIES",
			fmt.Sprintf("Edit %s has invalid properties: %v", edit.EditName, err))}
	}
	if _, err := time.Parse("2006-01-02", props.RefreshDate); err != nil {
		return []model.CalculationMessage{model.Critical("INVALID_REFRESH_DATE",
			fmt.Sprintf("Refresh date %q is not a YYYY-MM-DD date", props.RefreshDate))}
	}
	return nil
}

func (h *RefreshDateHandler) Apply(state *model.Snapshot, edit *model.Edit) []model.CalculationMessage {
	var props refreshDateProps
	if err := decodeStrict(edit.Properties, &props); err != nil {
		return []model.CalculationMessage{model.Critical("INVALID_PROPERTIES", err.Error())}
	}
	state.RefreshDate = props.RefreshDate
	return nil
}
