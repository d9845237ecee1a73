package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/domain/model"
	"github.com/opsfloor/opevents/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type eventRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEventRepository(client *firestore.Client) *eventRepository {
	return &eventRepository{
		client:           client,
		collectionPrefix: "",
	}
}

// eventDoc is the Firestore document shape for an event record
type eventDoc struct {
	ID               int64      `firestore:"id"`
	DetectedBy       string     `firestore:"detected_by"`
	ImpactType       string     `firestore:"impact_type"`
	Cause            string     `firestore:"cause"`
	ProjectNumber    string     `firestore:"project_number"`
	PartNumber       string     `firestore:"part_number"`
	AssignedTo       string     `firestore:"assigned_to"`
	Comments         string     `firestore:"comments"`
	CorrectiveAction string     `firestore:"corrective_action"`
	PreventiveAction string     `firestore:"preventive_action"`
	PlannedCloseDate *time.Time `firestore:"planned_close_date"`
	ActualCloseDate  *time.Time `firestore:"actual_close_date"`
	Status           string     `firestore:"status"`
	Origin           string     `firestore:"origin"`
	DetectedAt       time.Time  `firestore:"detected_at"`
	CreatedAt        time.Time  `firestore:"created_at"`
	UpdatedAt        time.Time  `firestore:"updated_at"`
}

func toDoc(e *model.Event) *eventDoc {
	return &eventDoc{
		ID:               int64(e.ID),
		DetectedBy:       e.DetectedBy.String(),
		ImpactType:       e.ImpactType,
		Cause:            e.Cause,
		ProjectNumber:    e.ProjectNumber,
		PartNumber:       e.PartNumber,
		AssignedTo:       e.AssignedTo.String(),
		Comments:         e.Comments,
		CorrectiveAction: e.CorrectiveAction,
		PreventiveAction: e.PreventiveAction,
		PlannedCloseDate: e.PlannedCloseDate,
		ActualCloseDate:  e.ActualCloseDate,
		Status:           e.Status.String(),
		Origin:           e.Origin.String(),
		DetectedAt:       e.DetectedAt,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func (d *eventDoc) toModel() *model.Event {
	return &model.Event{
		ID:               types.EventID(d.ID),
		DetectedBy:       types.PersonID(d.DetectedBy),
		ImpactType:       d.ImpactType,
		Cause:            d.Cause,
		ProjectNumber:    d.ProjectNumber,
		PartNumber:       d.PartNumber,
		AssignedTo:       types.PersonID(d.AssignedTo),
		Comments:         d.Comments,
		CorrectiveAction: d.CorrectiveAction,
		PreventiveAction: d.PreventiveAction,
		PlannedCloseDate: d.PlannedCloseDate,
		ActualCloseDate:  d.ActualCloseDate,
		Status:           types.EventStatus(d.Status).Normalize(),
		Origin:           types.EventOrigin(d.Origin),
		DetectedAt:       d.DetectedAt,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func (r *eventRepository) eventsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_events"
	}
	return "events"
}

func (r *eventRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *eventRepository) eventCounterDoc() string {
	return "event_counter"
}

func (r *eventRepository) getNextID(ctx context.Context) (types.EventID, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc(r.eventCounterDoc())

	var nextID int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		val, ok := currentValue.(int64)
		if !ok {
			return goerr.New("counter value is not of type int64", goerr.V("value", currentValue))
		}
		nextID = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(ErrUnavailable, "failed to get next ID", goerr.V("cause", err.Error()))
	}

	return types.EventID(nextID), nil
}

func (r *eventRepository) Create(ctx context.Context, e *model.Event) (*model.Event, error) {
	nextID, err := r.getNextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := e.Clone()
	created.ID = nextID
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err = r.client.Collection(r.eventsCollection()).Doc(created.ID.String()).Set(ctx, toDoc(created))
	if err != nil {
		return nil, goerr.Wrap(ErrUnavailable, "failed to create event",
			goerr.V("id", created.ID), goerr.V("cause", err.Error()))
	}

	return created, nil
}

func (r *eventRepository) Get(ctx context.Context, id types.EventID) (*model.Event, error) {
	docSnap, err := r.client.Collection(r.eventsCollection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "event not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(ErrUnavailable, "failed to get event",
			goerr.V("id", id), goerr.V("cause", err.Error()))
	}

	var d eventDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode event", goerr.V("id", id))
	}

	return d.toModel(), nil
}

func (r *eventRepository) List(ctx context.Context) ([]*model.Event, error) {
	iter := r.client.Collection(r.eventsCollection()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var events []*model.Event
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(ErrUnavailable, "failed to iterate events",
				goerr.V("cause", err.Error()))
		}

		var d eventDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode event")
		}
		events = append(events, d.toModel())
	}

	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, e *model.Event) (*model.Event, error) {
	docRef := r.client.Collection(r.eventsCollection()).Doc(e.ID.String())

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "event not found", goerr.V("id", e.ID))
		}
		return nil, goerr.Wrap(ErrUnavailable, "failed to get event",
			goerr.V("id", e.ID), goerr.V("cause", err.Error()))
	}

	var existing eventDoc
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode event", goerr.V("id", e.ID))
	}

	updated := e.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toDoc(updated)); err != nil {
		return nil, goerr.Wrap(ErrUnavailable, "failed to update event",
			goerr.V("id", e.ID), goerr.V("cause", err.Error()))
	}

	return updated, nil
}
