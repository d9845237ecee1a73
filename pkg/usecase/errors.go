package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrEventNotFound = goerr.New("event not found")

	// Lifecycle errors
	ErrIllegalTransition = goerr.New("illegal status transition")
	ErrRecordLocked      = goerr.New("record is locked after reaching a terminal status")

	// Storage errors
	ErrStorageUnavailable = goerr.New("record store unavailable")
)

// Context keys for error values
const (
	EventIDKey    = "event_id"
	FromStatusKey = "from"
	ToStatusKey   = "to"
)
