// Package feed turns raw per-event notification rows into the compact,
// deduplicated feed the client renders. It is pure computation: no I/O,
// no goroutines, no shared state between calls.
package feed

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of one raw notification row.
type Status string

const (
	StatusUnseen   Status = "UNSEEN"
	StatusSeenOnce Status = "SEEN_ONCE"
	StatusUnread   Status = "UNREAD"
	StatusRead     Status = "READ"
)

// Kind identifies the triggering action. Open for extension; unknown
// kinds render a generic message instead of failing.
type Kind string

const (
	KindComment      Kind = "COMMENT"
	KindCommentReply Kind = "COMMENT_REPLY"
)

// Bucket is one of the three visibility groupings used for grouping and
// sorting. Higher value = more visible, shown first.
type Bucket int

const (
	BucketRead Bucket = iota
	BucketUnread
	BucketUnseen
)

// Record is one raw notification after the caller resolved its actor's
// display name and filtered out purge candidates.
type Record struct {
	ID        uuid.UUID
	PostID    uuid.UUID
	CommentID *uuid.UUID
	ActorName string
	PostTitle string
	Kind      Kind
	Status    Status
	CreatedOn time.Time
}

// Entry is one aggregated, render-ready feed item. ID is freshly
// generated on every call and is a display key only.
type Entry struct {
	ID          uuid.UUID  `json:"id"`
	PostID      uuid.UUID  `json:"post_id"`
	CommentID   *uuid.UUID `json:"comment_id,omitempty"`
	Message     string     `json:"message"`
	TriggeredBy []string   `json:"triggered_by"`
	Status      Status     `json:"status"`
	CreatedOn   time.Time  `json:"created_on"`
}
