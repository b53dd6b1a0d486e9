package engine

import (
	"math"

	"contribution-engine/internal/model"
)

const (
	// AssumedReturn is the fixed annual rate of return used for projections.
	AssumedReturn = 0.06
	// IncreaseStep is the percentage-point bump of the comparison scenario.
	IncreaseStep = 1.0
)

// Project forecasts the balance at retirement for the given setting and the
// balance with IncreaseStep more percentage points of salary contributed.
// It is pure and safe for concurrent use.
func Project(settings model.ContributionSetting, summary model.YtdSummary) (model.Projection, error) {
	value := settings.ContributionValue
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return model.Projection{}, &InvalidInputError{Kind: KindNonFiniteContribution}
	}
	if value < 0 {
		return model.Projection{}, &InvalidInputError{Kind: KindNegativeContribution}
	}

	currentPercent, err := percentOfSalary(settings, summary)
	if err != nil {
		return model.Projection{}, err
	}

	years := summary.RetirementAge - summary.Age
	if years < 0 {
		years = 0
	}

	increasedPercent := currentPercent + IncreaseStep

	current := futureValue(annualContribution(currentPercent, summary.SalaryAnnual), AssumedReturn, years)
	increased := futureValue(annualContribution(increasedPercent, summary.SalaryAnnual), AssumedReturn, years)
	if !finite(currentPercent, increasedPercent, current, increased, increased-current) {
		return model.Projection{}, &InvalidInputError{Kind: KindNonFiniteResult}
	}

	return model.Projection{
		YearsToRetirement:            years,
		CurrentPercent:               currentPercent,
		IncreasedPercent:             increasedPercent,
		CurrentBalanceAtRetirement:   current,
		IncreasedBalanceAtRetirement: increased,
		IncrementalGain:              increased - current,
	}, nil
}

// percentOfSalary normalizes a setting to a percent of annual salary.
func percentOfSalary(settings model.ContributionSetting, summary model.YtdSummary) (float64, error) {
	switch settings.ContributionType {
	case model.ContributionPercent:
		return settings.ContributionValue, nil
	case model.ContributionDollar:
		if summary.SalaryAnnual <= 0 {
			return 0, &InvalidInputError{Kind: KindNonPositiveSalary}
		}
		return settings.ContributionValue * float64(summary.PaychecksPerYear) * 100 / summary.SalaryAnnual, nil
	default:
		return 0, &InvalidInputError{Kind: KindUnknownContributionType}
	}
}

func annualContribution(percent, salary float64) float64 {
	return percent / 100 * salary
}

// futureValue is the value of an ordinary annuity: one payment of annual at
// the end of each year for years years, compounding at rate.
func futureValue(annual, rate float64, years int) float64 {
	if rate <= 0 || years <= 0 {
		return annual * float64(years)
	}
	factor := (math.Pow(1+rate, float64(years)) - 1) / rate
	return annual * factor
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
