package events

import "time"

// Event codes the notification engine reacts to. The post/comment
// pipeline publishes them; anything else on the bus is ignored.
const (
	PostCommented  = "POST_COMMENTED"
	CommentReplied = "COMMENT_REPLIED"
)

// Event is the contract for everything the post/comment pipeline puts on
// the bus.
type Event interface {
	// EventType returns the unique code for this event, e.g. POST_COMMENTED.
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used on both ends of the bus.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

// New builds a BaseEvent stamped with the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
