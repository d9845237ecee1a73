package types

import "fmt"

// EventOrigin represents where an operational event originated
type EventOrigin string

const (
	EventOriginInternal EventOrigin = "INTERNAL"
	EventOriginSupplier EventOrigin = "SUPPLIER"
)

// AllEventOrigins returns all valid event origins
func AllEventOrigins() []EventOrigin {
	return []EventOrigin{
		EventOriginInternal,
		EventOriginSupplier,
	}
}

// IsValid checks if the event origin is valid. The empty origin is not a
// valid value; callers treat the field as unset instead.
func (o EventOrigin) IsValid() bool {
	switch o {
	case EventOriginInternal, EventOriginSupplier:
		return true
	default:
		return false
	}
}

// String returns the string representation of the event origin
func (o EventOrigin) String() string {
	return string(o)
}

// ParseEventOrigin parses a string into an EventOrigin
func ParseEventOrigin(s string) (EventOrigin, error) {
	origin := EventOrigin(s)
	if !origin.IsValid() {
		return "", fmt.Errorf("invalid event origin: %s", s)
	}
	return origin, nil
}
