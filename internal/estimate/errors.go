package estimate

import (
	"errors"
	"strings"

	"go.uber.org/multierr"
)

var (
	// ErrInvalidInput means the calculator refused to run.
	ErrInvalidInput = errors.New("invalid estimate input")
	// ErrRoomWithoutTemplate marks a room selection whose id is not in the catalog.
	ErrRoomWithoutTemplate = errors.New("room has no template")
	// ErrUpsellEvaluation marks a failed upsell re-evaluation.
	ErrUpsellEvaluation = errors.New("upsell evaluation failed")
)

// InvalidInputError lists every structural problem found in an input.
type InvalidInputError struct {
	err error
}

// NewInvalidInputError wraps one or more validation failures.
func NewInvalidInputError(errs ...error) *InvalidInputError {
	return &InvalidInputError{err: multierr.Combine(errs...)}
}

// Problems returns the individual validation messages.
func (e *InvalidInputError) Problems() []string {
	errs := multierr.Errors(e.err)
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

func (e *InvalidInputError) Error() string {
	return ErrInvalidInput.Error() + ": " + strings.Join(e.Problems(), "; ")
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// WarningCode classifies a recovered problem surfaced on a result.
type WarningCode string

const (
	WarningMissingConfigEntry  WarningCode = "MISSING_CONFIG_ENTRY"
	WarningUnitMismatch        WarningCode = "UNIT_MISMATCH"
	WarningUnknownLocation     WarningCode = "UNKNOWN_LOCATION"
	WarningRoomWithoutTemplate WarningCode = "ROOM_WITHOUT_TEMPLATE"
	WarningCategoryNotInRoom   WarningCode = "CATEGORY_NOT_IN_ROOM"
	WarningMissingQuantity     WarningCode = "MISSING_QUANTITY"
	WarningUpsellFailed        WarningCode = "UPSELL_EVALUATION_FAILED"
)

// Warning is a contained failure: the calculation went on without it.
type Warning struct {
	Code    WarningCode `json:"code"`
	Subject string      `json:"subject,omitempty"`
	Message string      `json:"message"`
}
