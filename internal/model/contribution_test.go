package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestYtdSummaryValidate(t *testing.T) {
	require.NoError(t, DefaultSummary().Validate())

	// Retirement age below current age is clamped by the engine, not rejected here.
	past := DefaultSummary()
	past.Age, past.RetirementAge = 70, 65
	require.NoError(t, past.Validate())

	tests := []struct {
		name   string
		mutate func(*YtdSummary)
	}{
		{"zero salary", func(s *YtdSummary) { s.SalaryAnnual = 0 }},
		{"negative salary", func(s *YtdSummary) { s.SalaryAnnual = -1 }},
		{"infinite salary", func(s *YtdSummary) { s.SalaryAnnual = math.Inf(1) }},
		{"nan salary", func(s *YtdSummary) { s.SalaryAnnual = math.NaN() }},
		{"nan ytd", func(s *YtdSummary) { s.YtdContribution = math.NaN() }},
		{"zero paychecks", func(s *YtdSummary) { s.PaychecksPerYear = 0 }},
		{"negative paychecks", func(s *YtdSummary) { s.PaychecksPerYear = -24 }},
		{"negative age", func(s *YtdSummary) { s.Age = -1 }},
		{"negative retirement age", func(s *YtdSummary) { s.RetirementAge = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSummary()
			tt.mutate(&s)
			require.ErrorIs(t, s.Validate(), ErrInvalidSummary)
		})
	}
}
