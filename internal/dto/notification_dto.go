package dto

import (
	"time"

	"postboard-be/pkg/feed"

	"github.com/google/uuid"
)

type FeedResponse struct {
	Data  []feed.Entry `json:"data"`
	Count int          `json:"count"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

// MarkSeenRequest carries the feed-open cutoff. Omitted cutoff means
// "now": only rows existing at the time of the open are swept.
type MarkSeenRequest struct {
	Cutoff *time.Time `json:"cutoff" validate:"omitempty"`
}

// PurgeMessage is the payload on the notifications.purge queue.
type PurgeMessage struct {
	IDs []uuid.UUID `json:"ids"`
}
