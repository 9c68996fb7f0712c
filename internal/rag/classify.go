// Package rag maps metric values onto Red/Amber/Green bands.
package rag

import "budget-engine/internal/model"

// Classify returns the band for value. Thresholds are not validated: a red
// breakpoint that is less severe than amber simply shadows the amber band.
func Classify(value float64, t model.RagThresholds) model.RagLabel {
	if t.Polarity == model.Descending {
		switch {
		case value <= t.Red:
			return model.Red
		case value <= t.Amber:
			return model.Amber
		}
		return model.Green
	}

	switch {
	case value >= t.Red:
		return model.Red
	case value >= t.Amber:
		return model.Amber
	}
	return model.Green
}

// Status classifies value and keeps the thresholds used alongside the label.
func Status(value float64, t model.RagThresholds) model.RagStatus {
	return model.RagStatus{Value: value, Label: Classify(value, t), Thresholds: t}
}
