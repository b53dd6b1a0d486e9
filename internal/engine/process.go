package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contribution-engine/internal/model"
)

var kindCodes = map[InputErrorKind]string{
	KindNonPositiveSalary:       model.CodeNonPositiveSalary,
	KindNegativeContribution:    model.CodeNegativeContribution,
	KindNonFiniteContribution:   model.CodeNonFiniteContribution,
	KindUnknownContributionType: model.CodeUnknownContributionType,
	KindNonFiniteResult:         model.CodeNonFiniteResult,
}

// Process runs Project and wraps the outcome in a calculation envelope.
// Engine errors become a single CRITICAL message and a nil projection.
func Process(settings model.ContributionSetting, summary model.YtdSummary) *model.ProjectionResponse {
	start := time.Now()

	messages := []model.CalculationMessage{}
	outcome := model.OutcomeSuccess

	projection, err := Project(settings, summary)

	var result *model.Projection
	var inputErr *InvalidInputError
	switch {
	case errors.As(err, &inputErr):
		messages = append(messages, model.CalculationMessage{
			ID:      len(messages),
			Level:   model.LevelCritical,
			Code:    kindCodes[inputErr.Kind],
			Message: inputErr.Error(),
		})
		outcome = model.OutcomeFailure
	default:
		result = &projection
		if summary.RetirementAge <= summary.Age {
			messages = append(messages, model.CalculationMessage{
				ID:      len(messages),
				Level:   model.LevelWarning,
				Code:    model.CodeRetirementAgeReached,
				Message: fmt.Sprintf("Age %d is at or past retirement age %d; no years left to contribute", summary.Age, summary.RetirementAge),
			})
		}
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	return &model.ProjectionResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		Messages:   messages,
		Settings:   settings,
		Summary:    summary,
		Projection: result,
	}
}
