package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/domain/types"
)

// CatalogReader is the validator's view of the impact/cause catalog. The
// validator queries the live catalog on every call; it never caches a
// snapshot, so an edit is visible to the very next validation.
type CatalogReader interface {
	// HasImpactType reports whether the impact type exists at all,
	// active or not.
	HasImpactType(label string) bool

	// IsActiveImpactType reports whether the impact type exists and is
	// active.
	IsActiveImpactType(label string) bool

	// IsActiveCause reports whether the cause is selectable: both the
	// cause and its parent impact type must be active.
	IsActiveCause(impactType, cause string) bool
}

// Field length limits for event capture and management
const (
	MaxProjectNumberLen = 10
	MaxPartNumberLen    = 15
	MaxCommentsLen      = 300
	MaxActionLen        = 300
)

// fieldConstraint is one row of the declarative field rule table. Adding a
// field means adding a row here, not a new check.
type fieldConstraint struct {
	name     string
	maxLen   int // 0 means unlimited
	required bool
}

var draftConstraints = []fieldConstraint{
	{name: "detectedBy", required: true},
	{name: "impactType", required: true},
	{name: "cause", required: true},
	{name: "projectNumber", maxLen: MaxProjectNumberLen, required: true},
	{name: "partNumber", maxLen: MaxPartNumberLen, required: true},
	{name: "assignedTo", required: true},
	{name: "comments", maxLen: MaxCommentsLen},
}

var patchConstraints = map[string]fieldConstraint{
	"impactType":       {name: "impactType", required: true},
	"cause":            {name: "cause", required: true},
	"projectNumber":    {name: "projectNumber", maxLen: MaxProjectNumberLen, required: true},
	"partNumber":       {name: "partNumber", maxLen: MaxPartNumberLen, required: true},
	"assignedTo":       {name: "assignedTo", required: true},
	"comments":         {name: "comments", maxLen: MaxCommentsLen},
	"correctiveAction": {name: "correctiveAction", maxLen: MaxActionLen},
	"preventiveAction": {name: "preventiveAction", maxLen: MaxActionLen},
}

// Validator is the gatekeeper for event creation and update. It is a pure
// function of the input, the current catalog state and the clock; it never
// talks to storage and never mutates its inputs.
type Validator struct {
	catalog CatalogReader
	now     func() time.Time
}

// ValidatorOption is a functional option for Validator configuration
type ValidatorOption func(*Validator)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) {
		v.now = now
	}
}

// NewValidator creates a new Validator bound to the given catalog
func NewValidator(catalog CatalogReader, opts ...ValidatorOption) *Validator {
	v := &Validator{
		catalog: catalog,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func checkField(c fieldConstraint, value string) error {
	if c.required && value == "" {
		return goerr.Wrap(ErrMissingRequired, "required field not provided",
			goerr.V(FieldKey, c.name))
	}
	if c.maxLen > 0 && len([]rune(value)) > c.maxLen {
		return goerr.Wrap(ErrFieldTooLong, "field value is too long",
			goerr.V(FieldKey, c.name),
			goerr.V(MaxLenKey, c.maxLen),
			goerr.V(ActualLenKey, len([]rune(value))))
	}
	return nil
}

// ValidateForCreate checks a capture draft against the field constraint
// table and the current catalog, and returns the normalized record:
// all text fields trimmed, Status set to OPEN and DetectedAt assigned from
// the clock. Caller-supplied status or timestamps are never honored.
func (v *Validator) ValidateForCreate(draft *EventDraft) (*Event, error) {
	if draft == nil {
		return nil, goerr.Wrap(ErrValidation, "draft is required")
	}

	trimmed := EventDraft{
		DetectedBy:    types.PersonID(strings.TrimSpace(draft.DetectedBy.String())),
		ImpactType:    strings.TrimSpace(draft.ImpactType),
		Cause:         strings.TrimSpace(draft.Cause),
		ProjectNumber: strings.TrimSpace(draft.ProjectNumber),
		PartNumber:    strings.TrimSpace(draft.PartNumber),
		AssignedTo:    types.PersonID(strings.TrimSpace(draft.AssignedTo.String())),
		Comments:      strings.TrimSpace(draft.Comments),
	}

	values := map[string]string{
		"detectedBy":    trimmed.DetectedBy.String(),
		"impactType":    trimmed.ImpactType,
		"cause":         trimmed.Cause,
		"projectNumber": trimmed.ProjectNumber,
		"partNumber":    trimmed.PartNumber,
		"assignedTo":    trimmed.AssignedTo.String(),
		"comments":      trimmed.Comments,
	}

	for _, c := range draftConstraints {
		if err := checkField(c, values[c.name]); err != nil {
			return nil, err
		}
	}

	if err := v.checkCatalogPair(trimmed.ImpactType, trimmed.Cause); err != nil {
		return nil, err
	}

	now := v.now()
	return &Event{
		DetectedBy:    trimmed.DetectedBy,
		ImpactType:    trimmed.ImpactType,
		Cause:         trimmed.Cause,
		ProjectNumber: trimmed.ProjectNumber,
		PartNumber:    trimmed.PartNumber,
		AssignedTo:    trimmed.AssignedTo,
		Comments:      trimmed.Comments,
		Status:        types.EventStatusOpen,
		DetectedAt:    now,
	}, nil
}

// ValidateForUpdate applies a patch to an existing record and validates the
// result. It returns a new merged record and never mutates existing, so the
// caller can retry safely and the store can compare for optimistic
// concurrency. An empty patch yields a copy equal to the original.
func (v *Validator) ValidateForUpdate(existing *Event, patch *EventPatch) (*Event, error) {
	if existing == nil {
		return nil, goerr.Wrap(ErrValidation, "existing record is required")
	}
	if patch == nil {
		return existing.Clone(), nil
	}

	merged := existing.Clone()

	applyText := func(field string, dst *string, src *string) error {
		if src == nil {
			return nil
		}
		val := strings.TrimSpace(*src)
		if err := checkField(patchConstraints[field], val); err != nil {
			return err
		}
		*dst = val
		return nil
	}

	if err := applyText("impactType", &merged.ImpactType, patch.ImpactType); err != nil {
		return nil, err
	}
	if err := applyText("cause", &merged.Cause, patch.Cause); err != nil {
		return nil, err
	}
	if err := applyText("projectNumber", &merged.ProjectNumber, patch.ProjectNumber); err != nil {
		return nil, err
	}
	if err := applyText("partNumber", &merged.PartNumber, patch.PartNumber); err != nil {
		return nil, err
	}
	if err := applyText("comments", &merged.Comments, patch.Comments); err != nil {
		return nil, err
	}
	if err := applyText("correctiveAction", &merged.CorrectiveAction, patch.CorrectiveAction); err != nil {
		return nil, err
	}
	if err := applyText("preventiveAction", &merged.PreventiveAction, patch.PreventiveAction); err != nil {
		return nil, err
	}

	if patch.AssignedTo != nil {
		val := types.PersonID(strings.TrimSpace(patch.AssignedTo.String()))
		if err := checkField(patchConstraints["assignedTo"], val.String()); err != nil {
			return nil, err
		}
		merged.AssignedTo = val
	}

	if patch.Origin != nil {
		if !patch.Origin.IsValid() {
			return nil, goerr.Wrap(ErrValidation, "invalid event origin",
				goerr.V(FieldKey, "origin"),
				goerr.V("value", patch.Origin.String()))
		}
		merged.Origin = *patch.Origin
	}

	if patch.ClearPlannedCloseDate {
		merged.PlannedCloseDate = nil
	} else if patch.PlannedCloseDate != nil {
		t := *patch.PlannedCloseDate
		merged.PlannedCloseDate = &t
	}

	if patch.ClearActualCloseDate {
		merged.ActualCloseDate = nil
	} else if patch.ActualCloseDate != nil {
		t := *patch.ActualCloseDate
		merged.ActualCloseDate = &t
	}

	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, goerr.Wrap(ErrValidation, "invalid event status",
				goerr.V(FieldKey, "status"),
				goerr.V("value", patch.Status.String()))
		}
		merged.Status = *patch.Status
	}

	// Changing either side of the impact/cause pair re-validates the pair
	// jointly against the current catalog.
	if patch.ImpactType != nil || patch.Cause != nil {
		if err := v.checkCatalogPair(merged.ImpactType, merged.Cause); err != nil {
			return nil, err
		}
	}

	// Closure coupling: an actual close date exists exactly when the record
	// is closed.
	if patch.ActualCloseDate != nil && merged.Status != types.EventStatusClosed {
		return nil, goerr.Wrap(ErrInvalidClosureState, "actual close date can only be set on a closed event",
			goerr.V(StatusKey, merged.Status.String()))
	}
	if patch.Status != nil && *patch.Status != types.EventStatusClosed && merged.ActualCloseDate != nil {
		return nil, goerr.Wrap(ErrInvalidClosureState, "leaving closed status requires clearing the actual close date",
			goerr.V(StatusKey, merged.Status.String()))
	}
	if (patch.Status != nil || patch.ClearActualCloseDate) &&
		merged.Status == types.EventStatusClosed && merged.ActualCloseDate == nil {
		return nil, goerr.Wrap(ErrMissingCloseDate, "closed event must have an actual close date")
	}

	return merged, nil
}

func (v *Validator) checkCatalogPair(impactType, cause string) error {
	if !v.catalog.IsActiveImpactType(impactType) {
		return goerr.Wrap(ErrInvalidImpactType, "impact type is not selectable",
			goerr.V(ImpactTypeKey, impactType))
	}
	if !v.catalog.IsActiveCause(impactType, cause) {
		return goerr.Wrap(ErrInvalidCause, "cause is not selectable under the impact type",
			goerr.V(ImpactTypeKey, impactType),
			goerr.V(CauseKey, cause))
	}
	return nil
}
