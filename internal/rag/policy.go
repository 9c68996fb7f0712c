package rag

import (
	"sort"

	"budget-engine/internal/model"
)

// Metric families with their own threshold pair.
const (
	FamilyReserves       = "reserves"
	FamilyDeficit        = "deficit"
	FamilyCostDrivers    = "cost_drivers"
	FamilyWorkforce      = "workforce"
	FamilyTransformation = "transformation"
	FamilyPlacements     = "placements"
	FamilyAgencyPremium  = "agency_premium"
	FamilyUasc           = "uasc"
	FamilyRecovery       = "recovery"
)

// Policy maps a family to its thresholds.
type Policy map[string]model.RagThresholds

// DefaultPolicy is the governance policy as published. Polarities differ per
// family and must not be normalised.
func DefaultPolicy() Policy {
	return Policy{
		FamilyReserves:       {Red: 6, Amber: 12, Polarity: model.Descending},
		FamilyDeficit:        {Red: 8, Amber: 4, Polarity: model.Ascending},
		FamilyCostDrivers:    {Red: 8, Amber: 4, Polarity: model.Ascending},
		FamilyWorkforce:      {Red: 25, Amber: 18, Polarity: model.Ascending},
		FamilyTransformation: {Red: 15, Amber: 8, Polarity: model.Descending},
		FamilyPlacements:     {Red: 6, Amber: 3, Polarity: model.Ascending},
		FamilyAgencyPremium:  {Red: 6, Amber: 3, Polarity: model.Ascending},
		FamilyUasc:           {Red: 2, Amber: 1, Polarity: model.Ascending},
		FamilyRecovery:       {Red: 7, Amber: 4, Polarity: model.Ascending},
	}
}

// Families lists the known family names in a stable order.
func Families() []string {
	p := DefaultPolicy()
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Merge returns p with overrides layered on top. Neither input is modified.
func (p Policy) Merge(overrides map[string]model.RagThresholds) Policy {
	out := make(Policy, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = p.Inherit(k, v)
	}
	return out
}

// Inherit fills an empty polarity in t from the family's entry in p, then
// from the default policy. Families known to neither are ascending.
func (p Policy) Inherit(family string, t model.RagThresholds) model.RagThresholds {
	if t.Polarity != "" {
		return t
	}
	if base, ok := p[family]; ok && base.Polarity != "" {
		t.Polarity = base.Polarity
		return t
	}
	if base, ok := DefaultPolicy()[family]; ok {
		t.Polarity = base.Polarity
		return t
	}
	t.Polarity = model.Ascending
	return t
}

// Lookup returns the thresholds for family, falling back to the default policy.
func (p Policy) Lookup(family string) model.RagThresholds {
	if t, ok := p[family]; ok {
		return t
	}
	return DefaultPolicy()[family]
}
