package model

// ProjectionRequest previews a projection without saving anything. A nil
// field means "use the stored setting" or "use the current summary".
type ProjectionRequest struct {
	Settings *ContributionSetting `json:"settings,omitempty"`
	Summary  *YtdSummary          `json:"summary,omitempty"`
}
