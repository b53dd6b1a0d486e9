package model

type Projection struct {
	YearsToRetirement            int     `json:"yearsToRetirement"`
	CurrentPercent               float64 `json:"currentPercent"`
	IncreasedPercent             float64 `json:"increasedPercent"`
	CurrentBalanceAtRetirement   float64 `json:"currentBalanceAtRetirement"`
	IncreasedBalanceAtRetirement float64 `json:"increasedBalanceAtRetirement"`
	IncrementalGain              float64 `json:"incrementalGain"`
}

// ProjectionDisplay holds the display strings for a Projection.
type ProjectionDisplay struct {
	CurrentPercent               string `json:"currentPercent"`
	IncreasedPercent             string `json:"increasedPercent"`
	CurrentBalanceAtRetirement   string `json:"currentBalanceAtRetirement"`
	IncreasedBalanceAtRetirement string `json:"increasedBalanceAtRetirement"`
	IncrementalGain              string `json:"incrementalGain"`
}
