package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/domain/model"
	"github.com/opsfloor/opevents/pkg/domain/types"
)

type eventRepository struct {
	mu     sync.RWMutex
	events map[types.EventID]*model.Event
	nextID types.EventID
}

func newEventRepository() *eventRepository {
	return &eventRepository{
		events: make(map[types.EventID]*model.Event),
		nextID: 1,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *model.Event) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := e.Clone()
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.events[created.ID] = created
	return created.Clone(), nil
}

func (r *eventRepository) Get(ctx context.Context, id types.EventID) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.events[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "event not found", goerr.V("id", id))
	}

	return e.Clone(), nil
}

func (r *eventRepository) List(ctx context.Context) ([]*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]*model.Event, 0, len(r.events))
	for _, e := range r.events {
		events = append(events, e.Clone())
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].ID < events[j].ID
	})

	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, e *model.Event) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.events[e.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "event not found", goerr.V("id", e.ID))
	}

	updated := e.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.events[updated.ID] = updated
	return updated.Clone(), nil
}
