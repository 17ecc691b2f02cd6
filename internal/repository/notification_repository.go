package repository

import (
	"context"
	"time"

	"postboard-be/internal/model"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *model.Notification) error

	// ListByUser returns every non-deleted raw row for a user, post titles
	// preloaded, in no guaranteed order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)

	// UpdateStatusBulk moves every row matching (user, status in from,
	// created_at <= cutoff) to the given status. Returns rows affected.
	UpdateStatusBulk(ctx context.Context, userID uuid.UUID, from []string, to string, cutoff time.Time) (int64, error)

	// UpdateStatusForPost is UpdateStatusBulk scoped to one post.
	UpdateStatusForPost(ctx context.Context, userID, postID uuid.UUID, from []string, to string, cutoff time.Time) (int64, error)

	// DeleteByIDs is a best-effort, idempotent hard delete.
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error

	DeleteAllForUser(ctx context.Context, userID uuid.UUID, cutoff time.Time) error
	DeleteForPost(ctx context.Context, userID, postID uuid.UUID, cutoff time.Time) error
}
