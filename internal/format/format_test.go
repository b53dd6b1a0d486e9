package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"contribution-engine/internal/model"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$601,748", Currency(601747.81))
	assert.Equal(t, "$0", Currency(0))
	assert.Equal(t, "$0", Currency(-0.2))
	assert.Equal(t, "$90,000", Currency(90000))
	assert.Equal(t, "-$1,250", Currency(-1250))
	assert.Equal(t, "$1,234,567", Currency(1234567.4))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "6.0%", Percent(6))
	assert.Equal(t, "13.3%", Percent(500.0*24*100/90000))
	assert.Equal(t, "0.0%", Percent(0))
}

func TestSetting(t *testing.T) {
	assert.Equal(t, "6.0% of paycheck", Setting(model.DefaultSettings()))
	assert.Equal(t, "$500 per paycheck", Setting(model.ContributionSetting{ContributionType: model.ContributionDollar, ContributionValue: 500}))
}

func TestDisplay(t *testing.T) {
	d := Display(model.Projection{
		YearsToRetirement:            35,
		CurrentPercent:               6,
		IncreasedPercent:             7,
		CurrentBalanceAtRetirement:   601747.81,
		IncreasedBalanceAtRetirement: 702039.11,
		IncrementalGain:              100291.30,
	})

	assert.Equal(t, model.ProjectionDisplay{
		CurrentPercent:               "6.0%",
		IncreasedPercent:             "7.0%",
		CurrentBalanceAtRetirement:   "$601,748",
		IncreasedBalanceAtRetirement: "$702,039",
		IncrementalGain:              "+$100,291",
	}, d)

	assert.Equal(t, "+$0", Display(model.Projection{}).IncrementalGain)
}
