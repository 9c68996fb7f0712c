package edits

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"budget-engine/internal/model"
)

var errNoProperties = errors.New("properties are required")

// sectionHandler merges a partial JSON object into one section of the
// snapshot. Fields absent from the properties keep their current value.
type sectionHandler[T any] struct {
	section func(*model.Snapshot) *T
	check   func(*T) []model.CalculationMessage
}

func (h *sectionHandler[T]) Validate(state *model.Snapshot, edit *model.Edit) []model.CalculationMessage {
	probe := *h.section(state)
	if err := decodeStrict(edit.Properties, &probe); err != nil {
		return []model.CalculationMessage{model.Critical("INVALID_PROPERTIES",
			fmt.Sprintf("Edit %s has invalid properties: %v", edit.EditName, err))}
	}
	return h.check(&probe)
}

func (h *sectionHandler[T]) Apply(state *model.Snapshot, edit *model.Edit) []model.CalculationMessage {
	if err := decodeStrict(edit.Properties, h.section(state)); err != nil {
		return []model.CalculationMessage{model.Critical("INVALID_PROPERTIES", err.Error())}
	}
	return nil
}

// decodeStrict rejects unknown fields and mistyped values; it is the only
// place a malformed edit can fail.
func decodeStrict(raw json.RawMessage, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errNoProperties
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
