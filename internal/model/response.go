package model

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	TenantID               string `json:"tenant_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationResult struct {
	Messages   []CalculationMessage `json:"messages"`
	Edits      []ProcessedEdit      `json:"edits"`
	Snapshot   Snapshot             `json:"snapshot"`
	Derivation Derivation           `json:"derivation"`
	Changes    []PatchOp            `json:"changes"`
}

type ProcessedEdit struct {
	Edit                      Edit  `json:"edit"`
	Applied                   bool  `json:"applied"`
	CalculationMessageIndexes []int `json:"calculation_message_indexes,omitempty"`
}

// PatchOp is one RFC 6902 operation describing how the derivation moved
// from the unedited snapshot to the edited one.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
