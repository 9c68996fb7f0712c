package model

type Polarity string

const (
	// Ascending: higher values are worse.
	Ascending Polarity = "ascending"
	// Descending: lower values are worse.
	Descending Polarity = "descending"
)

type RagLabel string

const (
	Red   RagLabel = "Red"
	Amber RagLabel = "Amber"
	Green RagLabel = "Green"
)

type RagThresholds struct {
	Red      float64  `json:"red" yaml:"red"`
	Amber    float64  `json:"amber" yaml:"amber"`
	Polarity Polarity `json:"polarity" yaml:"polarity"`
}

type RagStatus struct {
	Value      float64       `json:"value"`
	Label      RagLabel      `json:"label"`
	Thresholds RagThresholds `json:"thresholds"`
}
