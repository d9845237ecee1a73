package types

import (
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// EventID represents a unique identifier for an event record. IDs are
// assigned by the repository on creation and never change afterwards.
type EventID int64

// Validate checks if the EventID is valid
func (id EventID) Validate() error {
	if id <= 0 {
		return goerr.New("event ID must be positive", goerr.V("id", id))
	}
	return nil
}

// String returns the string representation of EventID
func (id EventID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseEventID parses a string into an EventID
func ParseEventID(s string) (EventID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid event ID", goerr.V("value", s))
	}
	id := EventID(v)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// PersonID identifies a person in the external directory. The core treats
// it as an opaque non-empty string and performs no identity validation.
type PersonID string

// Validate checks if the PersonID is valid
func (p PersonID) Validate() error {
	if p == "" {
		return goerr.New("person ID cannot be empty")
	}
	return nil
}

// String returns the string representation of PersonID
func (p PersonID) String() string {
	return string(p)
}
