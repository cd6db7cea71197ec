// Package event publishes reconciliation events, one per successful change
// made on the scheduler. Publishing is best effort, consumers must not rely on
// receiving every event.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type of a reconciliation event
type Type string

const (
	TypeProcessCreated  Type = "process.created"
	TypeTaskCreated     Type = "task.created"
	TypeTaskUpdated     Type = "task.updated"
	TypeProcessReleased Type = "process.released"
	TypeProcessStarted  Type = "process.started"
	TypeScheduleCreated Type = "schedule.created"
	TypeScheduleUpdated Type = "schedule.updated"
)

// Event a change made on the scheduler
type Event struct {
	ID          string                 `json:"id"`
	Type        Type                   `json:"type"`
	ProjectCode int64                  `json:"projectCode"`
	ProcessCode int64                  `json:"processCode,omitempty"`
	ProcessName string                 `json:"processName,omitempty"`
	TaskCode    int64                  `json:"taskCode,omitempty"`
	TaskName    string                 `json:"taskName,omitempty"`
	CatalogueID int                    `json:"catalogueId,omitempty"`
	OccurredOn  time.Time              `json:"occurredOn"`
	Detail      map[string]interface{} `json:"detail,omitempty"`
}

// New returns a new event of the type with a new id
func New(t Type, projectCode int64) *Event {
	return &Event{
		ID:          uuid.NewString(),
		Type:        t,
		ProjectCode: projectCode,
		OccurredOn:  time.Now().UTC(),
	}
}

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, ev *Event) error
	Close() error
}

// NopPublisher discards events, used when events are disabled
type NopPublisher struct{}

// Publish does nothing
func (NopPublisher) Publish(ctx context.Context, ev *Event) error {
	return nil
}

// Close does nothing
func (NopPublisher) Close() error {
	return nil
}
