package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for catalog file validation
var (
	ErrMissingLabel    = goerr.New("label is required")
	ErrDuplicateImpact = goerr.New("duplicate impact type")
	ErrDuplicateCause  = goerr.New("duplicate cause")
)

// Context keys for error values
const (
	ImpactKey = "impact_type"
	CauseKey  = "cause"
)
