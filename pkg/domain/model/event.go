package model

import (
	"time"

	"github.com/opsfloor/opevents/pkg/domain/types"
)

// Event represents an operational event captured on the production floor.
// The external record store is the system of record; this model only holds
// the validated in-process representation.
type Event struct {
	ID types.EventID

	// Capture phase fields. DetectedAt is system-assigned at creation and
	// immutable afterwards; DetectedBy is never reassignable.
	DetectedBy    types.PersonID
	ImpactType    string
	Cause         string
	ProjectNumber string
	PartNumber    string
	AssignedTo    types.PersonID
	Comments      string
	DetectedAt    time.Time

	// Management phase fields
	CorrectiveAction string
	PreventiveAction string
	PlannedCloseDate *time.Time
	ActualCloseDate  *time.Time
	Status           types.EventStatus
	Origin           types.EventOrigin

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy of the event.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	copied := *e
	if e.PlannedCloseDate != nil {
		t := *e.PlannedCloseDate
		copied.PlannedCloseDate = &t
	}
	if e.ActualCloseDate != nil {
		t := *e.ActualCloseDate
		copied.ActualCloseDate = &t
	}
	return &copied
}

// EventDraft is the capture-phase input. Status and timestamps are never
// client-controlled: the validator assigns them regardless of caller input.
type EventDraft struct {
	DetectedBy    types.PersonID
	ImpactType    string
	Cause         string
	ProjectNumber string
	PartNumber    string
	AssignedTo    types.PersonID
	Comments      string
}

// EventPatch describes a partial update to an event during the management
// phase. A nil field leaves the stored value unchanged; the Clear* flags
// distinguish "remove the date" from "leave it alone".
type EventPatch struct {
	ImpactType       *string
	Cause            *string
	ProjectNumber    *string
	PartNumber       *string
	AssignedTo       *types.PersonID
	Comments         *string
	CorrectiveAction *string
	PreventiveAction *string

	PlannedCloseDate      *time.Time
	ClearPlannedCloseDate bool
	ActualCloseDate       *time.Time
	ClearActualCloseDate  bool

	Status *types.EventStatus
	Origin *types.EventOrigin
}

// IsEmpty reports whether the patch changes nothing.
func (p *EventPatch) IsEmpty() bool {
	return p.ImpactType == nil &&
		p.Cause == nil &&
		p.ProjectNumber == nil &&
		p.PartNumber == nil &&
		p.AssignedTo == nil &&
		p.Comments == nil &&
		p.CorrectiveAction == nil &&
		p.PreventiveAction == nil &&
		p.PlannedCloseDate == nil &&
		!p.ClearPlannedCloseDate &&
		p.ActualCloseDate == nil &&
		!p.ClearActualCloseDate &&
		p.Status == nil &&
		p.Origin == nil
}

// TouchesNonStatusFields reports whether the patch edits anything besides
// the status/close-date pair. Used by the terminal-record lock policy.
func (p *EventPatch) TouchesNonStatusFields() bool {
	return p.ImpactType != nil ||
		p.Cause != nil ||
		p.ProjectNumber != nil ||
		p.PartNumber != nil ||
		p.AssignedTo != nil ||
		p.Comments != nil ||
		p.CorrectiveAction != nil ||
		p.PreventiveAction != nil ||
		p.PlannedCloseDate != nil ||
		p.ClearPlannedCloseDate ||
		p.Origin != nil
}
