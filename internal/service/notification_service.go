package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"postboard-be/internal/model"
	"postboard-be/internal/pkg/logger"
	"postboard-be/internal/repository"
	"postboard-be/internal/repository/memory"
	"postboard-be/pkg/events"
	"postboard-be/pkg/feed"
	pktNats "postboard-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
}

// PurgeSink receives ids of rows that aged out of the retention window.
// Deletion is fire-and-forget: a failed purge is re-identified on the
// next feed fetch.
type PurgeSink interface {
	Enqueue(ids []uuid.UUID) error
}

type NotificationService struct {
	repo       repository.NotificationRepository
	users      repository.UserRepository
	posts      repository.PostRepository
	comments   repository.CommentRepository
	names      *memory.NameCache
	purge      PurgeSink
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	retention  time.Duration
	logger     logger.ILogger
}

func NewNotificationService(
	repo repository.NotificationRepository,
	users repository.UserRepository,
	posts repository.PostRepository,
	comments repository.CommentRepository,
	purge PurgeSink,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	retention time.Duration,
	log logger.ILogger,
) *NotificationService {
	if retention <= 0 {
		retention = feed.DefaultRetention
	}
	return &NotificationService{
		repo:       repo,
		users:      users,
		posts:      posts,
		comments:   comments,
		names:      memory.NewNameCache(),
		purge:      purge,
		subscriber: sub,
		delivery:   delivery,
		retention:  retention,
		logger:     log,
	}
}

// GetFeed computes the display-ready feed for one user: classify each raw
// row, hand purge candidates to the async sink, resolve actor names,
// then group and render. The computation itself is synchronous and pure.
func (s *NotificationService) GetFeed(ctx context.Context, userID uuid.UUID) ([]feed.Entry, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	now := time.Now()
	var purgeIDs []uuid.UUID
	records := make([]feed.Record, 0, len(rows))

	for _, row := range rows {
		if feed.PurgeEligible(feed.Status(row.Status), row.CreatedAt, now, s.retention) {
			purgeIDs = append(purgeIDs, row.ID)
			continue
		}

		label, ok := s.resolveLabel(ctx, row.ActorID)
		if !ok {
			// Cannot render safely without an actor name; skip the row,
			// never abort the rest of the batch.
			s.logger.Warn("NotificationService", "Skipping notification with unresolvable actor", map[string]interface{}{
				"notification_id": row.ID,
				"actor_id":        row.ActorID,
			})
			continue
		}

		records = append(records, feed.Record{
			ID:        row.ID,
			PostID:    row.PostID,
			CommentID: row.CommentID,
			ActorName: label,
			PostTitle: row.Post.Title,
			Kind:      feed.Kind(row.Kind),
			Status:    feed.Status(row.Status),
			CreatedOn: row.CreatedAt,
		})
	}

	if len(purgeIDs) > 0 {
		if err := s.purge.Enqueue(purgeIDs); err != nil {
			s.logger.Error("NotificationService", "Failed to enqueue purge batch", map[string]interface{}{
				"error": err.Error(),
				"count": len(purgeIDs),
			})
		}
	}

	return feed.Aggregate(records), nil
}

// UnreadCount is the number of feed entries the user has not read yet.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	entries, err := s.GetFeed(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if feed.BucketOf(e.Status) != feed.BucketRead {
			count++
		}
	}
	return count, nil
}

// MarkSeen runs the two-phase feed-open sweep: rows that were already
// SEEN_ONCE before this open become UNREAD, then rows that were UNSEEN
// become SEEN_ONCE. The demotion sweep is awaited before the promotion
// sweep is issued so a row is never caught by both in one pass; the
// cutoff keeps rows created during the open untouched.
func (s *NotificationService) MarkSeen(ctx context.Context, userID uuid.UUID, cutoff time.Time) error {
	if _, err := s.repo.UpdateStatusBulk(ctx, userID, []string{string(feed.StatusSeenOnce)}, string(feed.StatusUnread), cutoff); err != nil {
		return fmt.Errorf("failed to sweep SEEN_ONCE rows: %w", err)
	}
	if _, err := s.repo.UpdateStatusBulk(ctx, userID, []string{string(feed.StatusUnseen)}, string(feed.StatusSeenOnce), cutoff); err != nil {
		return fmt.Errorf("failed to sweep UNSEEN rows: %w", err)
	}
	return nil
}

// MarkRead moves every pre-cutoff row for one post to READ, the terminal
// state. Triggered by click-through into the post.
func (s *NotificationService) MarkRead(ctx context.Context, userID, postID uuid.UUID, cutoff time.Time) error {
	from := []string{string(feed.StatusUnseen), string(feed.StatusSeenOnce), string(feed.StatusUnread)}
	if _, err := s.repo.UpdateStatusForPost(ctx, userID, postID, from, string(feed.StatusRead), cutoff); err != nil {
		return fmt.Errorf("failed to mark post notifications read: %w", err)
	}
	return nil
}

// RemoveAll hard-deletes every pre-cutoff row for the user, bypassing the
// READ/purge path.
func (s *NotificationService) RemoveAll(ctx context.Context, userID uuid.UUID, cutoff time.Time) error {
	return s.repo.DeleteAllForUser(ctx, userID, cutoff)
}

// RemoveForPost hard-deletes every pre-cutoff row for one post.
func (s *NotificationService) RemoveForPost(ctx context.Context, userID, postID uuid.UUID, cutoff time.Time) error {
	return s.repo.DeleteForPost(ctx, userID, postID, cutoff)
}

func (s *NotificationService) resolveLabel(ctx context.Context, actorID uuid.UUID) (string, bool) {
	if label, found := s.names.Get(actorID); found {
		return label, true
	}
	user, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return "", false
	}
	label := user.Label()
	s.names.Save(actorID, label)
	return label, true
}

// Start begins listening to the post/comment pipeline's event bus. The
// engine itself never decides when notifications are created; this is
// the landing point for the pipeline that does.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	switch event.EventType() {
	case events.PostCommented:
		return s.handleComment(ctx, event, feed.KindComment)
	case events.CommentReplied:
		return s.handleComment(ctx, event, feed.KindCommentReply)
	default:
		s.logger.Debug("NotificationService", "Ignoring event without notification mapping", map[string]interface{}{"type": event.EventType()})
		return nil
	}
}

// handleComment turns one pipeline event into an UNSEEN raw row and
// pushes it to connected clients. Malformed payloads are acked and
// dropped; only persistence errors are retried.
func (s *NotificationService) handleComment(ctx context.Context, event events.Event, kind feed.Kind) error {
	payload := event.Payload()

	postID, ok := parseUUIDField(payload, "post_id")
	if !ok {
		s.logger.Warn("NotificationService", "Event missing post_id", map[string]interface{}{"type": event.EventType()})
		return nil
	}
	actorID, ok := parseUUIDField(payload, "actor_id")
	if !ok {
		s.logger.Warn("NotificationService", "Event missing actor_id", map[string]interface{}{"type": event.EventType()})
		return nil
	}
	commentID, hasComment := parseUUIDField(payload, "comment_id")

	recipient, err := s.resolveRecipient(ctx, postID, payload, kind)
	if err != nil {
		s.logger.Warn("NotificationService", "Could not resolve notification recipient", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return nil
	}
	if recipient == actorID {
		// Own activity never notifies.
		return nil
	}

	metaJSON, _ := json.Marshal(payload)
	notif := model.Notification{
		ID:        uuid.New(),
		UserID:    recipient,
		PostID:    postID,
		ActorID:   actorID,
		Kind:      string(kind),
		Status:    string(feed.StatusUnseen),
		Metadata:  datatypes.JSON(metaJSON),
		CreatedAt: time.Now(),
	}
	if hasComment {
		notif.CommentID = &commentID
	}

	if err := s.repo.CreateNotification(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", "Failed to persist notification", map[string]interface{}{"error": err.Error()})
		return err // bus will retry
	}

	if s.delivery != nil {
		s.delivery.Send(recipient, notif)
	}
	return nil
}

// resolveRecipient picks who gets notified: the post author for comments,
// the parent comment's author for replies.
func (s *NotificationService) resolveRecipient(ctx context.Context, postID uuid.UUID, payload map[string]interface{}, kind feed.Kind) (uuid.UUID, error) {
	if kind == feed.KindCommentReply {
		if parentID, ok := parseUUIDField(payload, "parent_comment_id"); ok {
			parent, err := s.comments.GetByID(ctx, parentID)
			if err != nil {
				return uuid.Nil, fmt.Errorf("parent comment %s: %w", parentID, err)
			}
			return parent.AuthorId, nil
		}
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("post %s: %w", postID, err)
	}
	return post.AuthorId, nil
}

func parseUUIDField(payload map[string]interface{}, key string) (uuid.UUID, bool) {
	raw, ok := payload[key].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
