package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrValidation          = goerr.New("validation failed")
	ErrMissingRequired     = goerr.New("required field is missing")
	ErrFieldTooLong        = goerr.New("field exceeds maximum length")
	ErrInvalidImpactType   = goerr.New("impact type is not an active catalog entry")
	ErrInvalidCause        = goerr.New("cause is not active under the impact type")
	ErrInvalidClosureState = goerr.New("actual close date requires closed status")
	ErrMissingCloseDate    = goerr.New("closing an event requires an actual close date")
)

// Context keys for error values
const (
	FieldKey      = "field"
	MaxLenKey     = "max"
	ActualLenKey  = "actual"
	ImpactTypeKey = "impact_type"
	CauseKey      = "cause"
	StatusKey     = "status"
)
