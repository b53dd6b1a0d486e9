package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

const (
	CodeRetirementAgeReached    = "RETIREMENT_AGE_REACHED"
	CodeNonPositiveSalary       = "NON_POSITIVE_SALARY"
	CodeNegativeContribution    = "NEGATIVE_CONTRIBUTION"
	CodeNonFiniteContribution   = "NON_FINITE_CONTRIBUTION"
	CodeUnknownContributionType = "UNKNOWN_CONTRIBUTION_TYPE"
	CodeNonFiniteResult         = "NON_FINITE_RESULT"
)
