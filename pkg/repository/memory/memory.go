package memory

import (
	"github.com/opsfloor/opevents/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory repository backend, used in development and tests
type Memory struct {
	event *eventRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		event: newEventRepository(),
	}
}

func (m *Memory) Event() interfaces.EventRepository {
	return m.event
}

func (m *Memory) Close() error {
	return nil
}
