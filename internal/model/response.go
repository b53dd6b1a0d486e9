package model

import "time"

type ProjectionResponse struct {
	CalculationMetadata CalculationMetadata  `json:"calculation_metadata"`
	Messages            []CalculationMessage `json:"messages"`
	Settings            ContributionSetting  `json:"settings"`
	Summary             YtdSummary           `json:"summary"`
	Projection          *Projection          `json:"projection"`
	Display             *ProjectionDisplay   `json:"display,omitempty"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
	SummarySource          string `json:"summary_source,omitempty"`
}

// SettingsChange records one saved edit as RFC 6902 patches between the
// previous and the new setting.
type SettingsChange struct {
	ID            string              `json:"id"`
	ChangedAt     time.Time           `json:"changed_at"`
	Setting       ContributionSetting `json:"setting"`
	ForwardPatch  []PatchOperation    `json:"forward_patch"`
	BackwardPatch []PatchOperation    `json:"backward_patch"`
}

type PatchOperation struct {
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
