package types

import "fmt"

// EventStatus represents the lifecycle status of an operational event
type EventStatus string

const (
	EventStatusOpen      EventStatus = "OPEN"
	EventStatusOnGoing   EventStatus = "ONGOING"
	EventStatusClosed    EventStatus = "CLOSED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

// AllEventStatuses returns all valid event statuses
func AllEventStatuses() []EventStatus {
	return []EventStatus{
		EventStatusOpen,
		EventStatusOnGoing,
		EventStatusClosed,
		EventStatusCancelled,
	}
}

// IsValid checks if the event status is valid
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusOpen,
		EventStatusOnGoing,
		EventStatusClosed,
		EventStatusCancelled:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as EventStatusOpen for backward compatibility.
func (s EventStatus) Normalize() EventStatus {
	if s == "" {
		return EventStatusOpen
	}
	return s
}

// IsTerminal reports whether the status is a terminal state. Terminal
// records accept no further status transitions.
func (s EventStatus) IsTerminal() bool {
	return s == EventStatusClosed || s == EventStatusCancelled
}

// CanTransitionTo reports whether a status change from s to next is allowed.
// Allowed transitions:
//
//	OPEN    -> ONGOING, CLOSED, CANCELLED
//	ONGOING -> OPEN, CLOSED, CANCELLED
//
// CLOSED and CANCELLED are terminal.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	switch s {
	case EventStatusOpen:
		return next == EventStatusOnGoing || next == EventStatusClosed || next == EventStatusCancelled
	case EventStatusOnGoing:
		return next == EventStatusOpen || next == EventStatusClosed || next == EventStatusCancelled
	default:
		return false
	}
}

// String returns the string representation of the event status
func (s EventStatus) String() string {
	return string(s)
}

// ParseEventStatus parses a string into an EventStatus
func ParseEventStatus(s string) (EventStatus, error) {
	status := EventStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid event status: %s", s)
	}
	return status, nil
}
