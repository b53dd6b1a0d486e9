package engine

import "errors"

// ErrInvalidInput matches every *InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

type InputErrorKind string

const (
	KindNonPositiveSalary       InputErrorKind = "non-positive salary with dollar-denominated contribution"
	KindNegativeContribution    InputErrorKind = "negative contribution value"
	KindNonFiniteContribution   InputErrorKind = "non-finite contribution value"
	KindUnknownContributionType InputErrorKind = "unknown contribution type"
	KindNonFiniteResult         InputErrorKind = "inputs produce a non-finite projection"
)

// InvalidInputError reports inputs the projection cannot be computed from.
type InvalidInputError struct {
	Kind InputErrorKind
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + string(e.Kind)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
