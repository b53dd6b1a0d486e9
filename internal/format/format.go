// Package format renders projection values for display. It only formats;
// all math happens in the engine.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"contribution-engine/internal/model"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats v as whole US dollars with grouping, e.g. "$601,748".
func Currency(v float64) string {
	r := math.Round(v)
	if r < 0 {
		return "-" + printer.Sprintf("$%.0f", -r)
	}
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return printer.Sprintf("$%.0f", r)
}

// Percent formats v with one decimal, e.g. "6.0%".
func Percent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}

// Setting describes a contribution the way the settings screen does.
func Setting(s model.ContributionSetting) string {
	if s.ContributionType == model.ContributionPercent {
		return Percent(s.ContributionValue) + " of paycheck"
	}
	return Currency(s.ContributionValue) + " per paycheck"
}

// Gain formats an incremental gain with an explicit sign.
func Gain(v float64) string {
	if math.Round(v) < 0 {
		return Currency(v)
	}
	return "+" + Currency(v)
}

// Display formats every field of p.
func Display(p model.Projection) model.ProjectionDisplay {
	return model.ProjectionDisplay{
		CurrentPercent:               Percent(p.CurrentPercent),
		IncreasedPercent:             Percent(p.IncreasedPercent),
		CurrentBalanceAtRetirement:   Currency(p.CurrentBalanceAtRetirement),
		IncreasedBalanceAtRetirement: Currency(p.IncreasedBalanceAtRetirement),
		IncrementalGain:              Gain(p.IncrementalGain),
	}
}
