package event

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	OrderPlacedEventName        EventType = "order.placed"
	OrderStatusChangedEventName EventType = "order.status_changed"
)

type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	CreatedAt   time.Time `json:"created_at"`
	EventType   EventType `json:"event_type"`
}

func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		EventID:     uuid.NewString(),
		AggregateID: aggregateID,
		CreatedAt:   time.Now().UTC(),
		EventType:   eventType,
	}
}

func (e *BaseEvent) GetID() string {
	return e.EventID
}

func (e *BaseEvent) Key() string {
	return e.AggregateID
}

type Event interface {
	Type() EventType
	GetID() string
	Key() string
}
