package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSummary is wrapped by YtdSummary.Validate errors.
var ErrInvalidSummary = errors.New("invalid summary")

type ContributionType string

const (
	ContributionPercent ContributionType = "percent"
	ContributionDollar  ContributionType = "dollar"
)

// Valid reports whether t is one of the known contribution units.
func (t ContributionType) Valid() bool {
	switch t {
	case ContributionPercent, ContributionDollar:
		return true
	}
	return false
}

// ContributionSetting is a per-paycheck contribution. ContributionValue is a
// percent of gross pay or a currency amount depending on ContributionType.
type ContributionSetting struct {
	ContributionType  ContributionType `json:"contributionType"`
	ContributionValue float64          `json:"contributionValue"`
}

type YtdSummary struct {
	SalaryAnnual     float64 `json:"salaryAnnual"`
	YtdContribution  float64 `json:"ytdContribution"`
	PaychecksPerYear int     `json:"paychecksPerYear"`
	Age              int     `json:"age"`
	RetirementAge    int     `json:"retirementAge"`
}

// Validate rejects summaries no projection can be computed from.
func (s YtdSummary) Validate() error {
	if math.IsNaN(s.SalaryAnnual) || math.IsInf(s.SalaryAnnual, 0) || s.SalaryAnnual <= 0 {
		return fmt.Errorf("%w: salary must be a positive number, got %v", ErrInvalidSummary, s.SalaryAnnual)
	}
	if math.IsNaN(s.YtdContribution) || math.IsInf(s.YtdContribution, 0) {
		return fmt.Errorf("%w: ytd contribution must be finite", ErrInvalidSummary)
	}
	if s.PaychecksPerYear <= 0 {
		return fmt.Errorf("%w: paychecks per year must be positive, got %d", ErrInvalidSummary, s.PaychecksPerYear)
	}
	if s.Age < 0 || s.RetirementAge < 0 {
		return fmt.Errorf("%w: ages must be non-negative", ErrInvalidSummary)
	}
	return nil
}

// DefaultSettings is used when no setting has been saved yet.
func DefaultSettings() ContributionSetting {
	return ContributionSetting{
		ContributionType:  ContributionPercent,
		ContributionValue: 6,
	}
}

// DefaultSummary is used when no payroll source is reachable.
func DefaultSummary() YtdSummary {
	return YtdSummary{
		SalaryAnnual:     90000,
		YtdContribution:  5400,
		PaychecksPerYear: 24,
		Age:              30,
		RetirementAge:    65,
	}
}
