package model

import json "github.com/goccy/go-json"

type CalculationRequest struct {
	TenantID string             `json:"tenant_id"`
	Snapshot Snapshot           `json:"snapshot"`
	Edits    []Edit             `json:"edits,omitempty"`
	Options  CalculationOptions `json:"options"`
}

// Edit is a single user change forwarded by the presentation layer.
// Properties is a partial object merged into the section the edit names.
type Edit struct {
	EditID     string          `json:"edit_id"`
	EditName   string          `json:"edit_name"`
	Properties json.RawMessage `json:"properties"`
}

type CalculationOptions struct {
	Periods            int `json:"periods,omitempty" yaml:"periods"`
	FirstFinancialYear int `json:"first_financial_year,omitempty" yaml:"first_financial_year"`
}

const (
	DefaultPeriods            = 4
	DefaultFirstFinancialYear = 2024
)

// WithDefaults fills unset options. A negative period count is kept as zero periods.
func (o CalculationOptions) WithDefaults() CalculationOptions {
	if o.Periods == 0 {
		o.Periods = DefaultPeriods
	}
	if o.Periods < 0 {
		o.Periods = 0
	}
	if o.FirstFinancialYear == 0 {
		o.FirstFinancialYear = DefaultFirstFinancialYear
	}
	return o
}
