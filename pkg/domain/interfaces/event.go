package interfaces

import (
	"context"

	"github.com/opsfloor/opevents/pkg/domain/model"
	"github.com/opsfloor/opevents/pkg/domain/types"
)

// EventRepository defines the interface for event record data access. The
// backing store assigns IDs on creation and is the system of record; the
// core only hands it fully validated records.
type EventRepository interface {
	// Create stores a new event with auto-generated ID
	Create(ctx context.Context, e *model.Event) (*model.Event, error)

	// Get retrieves an event by ID
	Get(ctx context.Context, id types.EventID) (*model.Event, error)

	// List retrieves all events
	List(ctx context.Context) ([]*model.Event, error)

	// Update replaces an existing event. The record must already have been
	// validated; no partial application happens at this layer.
	Update(ctx context.Context, e *model.Event) (*model.Event, error)
}
