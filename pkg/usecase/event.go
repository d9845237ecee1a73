package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/catalog"
	"github.com/opsfloor/opevents/pkg/domain/interfaces"
	"github.com/opsfloor/opevents/pkg/domain/model"
	"github.com/opsfloor/opevents/pkg/domain/types"
	"github.com/opsfloor/opevents/pkg/repository/firestore"
	"github.com/opsfloor/opevents/pkg/repository/memory"
	"github.com/opsfloor/opevents/pkg/utils/async"
	"github.com/opsfloor/opevents/pkg/utils/errutil"
	"github.com/opsfloor/opevents/pkg/utils/logging"
)

// EventUseCase drives the capture and management flows. The validator is
// the gatekeeper for every write; the lifecycle guard sequences status
// transitions on top of it. A rejected patch never reaches the store, so an
// invalid update leaves the stored record completely unchanged.
type EventUseCase struct {
	repo      interfaces.Repository
	validator *model.Validator
	notifier  interfaces.Notifier

	// lockTerminal forbids non-status edits once a record reaches CLOSED
	// or CANCELLED. Off by default: follow-up text can still be amended on
	// terminal records.
	lockTerminal bool
}

func NewEventUseCase(repo interfaces.Repository, store *catalog.Store, opts ...model.ValidatorOption) *EventUseCase {
	return &EventUseCase{
		repo:      repo,
		validator: model.NewValidator(store, opts...),
	}
}

// Capture validates a draft against the live catalog, stores it and fires
// the assignment notice. The notice is best-effort: a notification failure
// is logged, never surfaced as a capture failure.
func (uc *EventUseCase) Capture(ctx context.Context, draft *model.EventDraft) (*model.Event, error) {
	validated, err := uc.validator.ValidateForCreate(draft)
	if err != nil {
		return nil, err
	}

	created, err := uc.repo.Event().Create(ctx, validated)
	if err != nil {
		return nil, goerr.Wrap(ErrStorageUnavailable, "failed to create event",
			goerr.V("cause", err.Error()))
	}

	logging.From(ctx).Info("event captured",
		"event_id", created.ID,
		"impact_type", created.ImpactType,
		"cause", created.Cause,
		"assigned_to", created.AssignedTo,
	)

	if uc.notifier != nil {
		notice := created.Clone()
		async.Dispatch(ctx, func(ctx context.Context) error {
			if err := uc.notifier.NotifyAssignment(ctx, notice); err != nil {
				return errutil.Handle(ctx, err, "failed to send assignment notice")
			}
			return nil
		})
	}

	return created, nil
}

// getEvent maps backend failures: a missing record is ErrEventNotFound, any
// other failure is a storage outage and must surface as such.
func (uc *EventUseCase) getEvent(ctx context.Context, id types.EventID) (*model.Event, error) {
	e, err := uc.repo.Event().Get(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound) {
			return nil, goerr.Wrap(ErrEventNotFound, "event not found", goerr.V(EventIDKey, id))
		}
		return nil, goerr.Wrap(ErrStorageUnavailable, "failed to get event",
			goerr.V(EventIDKey, id), goerr.V("cause", err.Error()))
	}
	return e, nil
}

// Get retrieves an event by ID
func (uc *EventUseCase) Get(ctx context.Context, id types.EventID) (*model.Event, error) {
	return uc.getEvent(ctx, id)
}

// List retrieves all events
func (uc *EventUseCase) List(ctx context.Context) ([]*model.Event, error) {
	events, err := uc.repo.Event().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(ErrStorageUnavailable, "failed to list events",
			goerr.V("cause", err.Error()))
	}
	return events, nil
}

// Update applies a management-phase patch to an existing record. Status
// changes in the patch go through the lifecycle guard before the validator
// merges and checks the result.
func (uc *EventUseCase) Update(ctx context.Context, id types.EventID, patch *model.EventPatch) (*model.Event, error) {
	existing, err := uc.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.guard(existing, patch); err != nil {
		return nil, err
	}

	merged, err := uc.validator.ValidateForUpdate(existing, patch)
	if err != nil {
		return nil, err
	}

	updated, err := uc.repo.Event().Update(ctx, merged)
	if err != nil {
		return nil, goerr.Wrap(ErrStorageUnavailable, "failed to update event",
			goerr.V(EventIDKey, id), goerr.V("cause", err.Error()))
	}

	return updated, nil
}

// ChangeStatus transitions a record to the given status. Closing requires a
// close date (supplied here or already present); any transition away from
// CLOSED-adjacent state clears a stale close date as part of the same
// patch, so no record is left with an open status and a close date.
func (uc *EventUseCase) ChangeStatus(ctx context.Context, id types.EventID, next types.EventStatus, actualCloseDate *time.Time) (*model.Event, error) {
	existing, err := uc.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := &model.EventPatch{Status: &next}
	if next == types.EventStatusClosed {
		if actualCloseDate != nil {
			t := *actualCloseDate
			patch.ActualCloseDate = &t
		}
	} else if existing.ActualCloseDate != nil {
		patch.ClearActualCloseDate = true
	}

	return uc.Update(ctx, id, patch)
}

// guard enforces the status state machine and the terminal-record policy
func (uc *EventUseCase) guard(existing *model.Event, patch *model.EventPatch) error {
	if patch == nil {
		return nil
	}

	from := existing.Status.Normalize()

	if patch.Status != nil && *patch.Status != from {
		if !from.CanTransitionTo(*patch.Status) {
			return goerr.Wrap(ErrIllegalTransition, "status transition is not allowed",
				goerr.V(FromStatusKey, from.String()),
				goerr.V(ToStatusKey, patch.Status.String()),
				goerr.V(EventIDKey, existing.ID))
		}
	}

	if uc.lockTerminal && from.IsTerminal() && patch.TouchesNonStatusFields() {
		return goerr.Wrap(ErrRecordLocked, "terminal record does not accept edits",
			goerr.V(EventIDKey, existing.ID),
			goerr.V(FromStatusKey, from.String()))
	}

	return nil
}
