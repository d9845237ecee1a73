package catalog

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for catalog operations
var (
	ErrNotFound       = goerr.New("catalog entry not found")
	ErrEmptyLabel     = goerr.New("catalog label cannot be empty")
	ErrDuplicateEntry = goerr.New("catalog entry already exists")
)

// Context keys for error values
const (
	ImpactTypeKey = "impact_type"
	CauseKey      = "cause"
	LabelKey      = "label"
)
