package service

import (
	"context"
	"encoding/json"
	"fmt"

	"postboard-be/internal/dto"
	"postboard-be/internal/pkg/logger"
	"postboard-be/internal/repository"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// PurgePublisher hands purge batches to the in-process queue. Publishing
// happens after the feed is computed, so a delayed or lost batch only
// means the same ids are re-identified on the next fetch.
type PurgePublisher struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPurgePublisher(topicName string, pubSub *gochannel.GoChannel) *PurgePublisher {
	return &PurgePublisher{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (p *PurgePublisher) Enqueue(ids []uuid.UUID) error {
	payload, err := json.Marshal(dto.PurgeMessage{IDs: ids})
	if err != nil {
		return fmt.Errorf("failed to marshal purge message: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.pubSub.Publish(p.topicName, msg)
}

type IPurgeService interface {
	Consume(ctx context.Context) error
}

type purgeService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	repo      repository.NotificationRepository
	logger    logger.ILogger
}

func NewPurgeService(
	pubSub *gochannel.GoChannel,
	topicName string,
	repo repository.NotificationRepository,
	log logger.ILogger,
) IPurgeService {
	return &purgeService{
		pubSub:    pubSub,
		topicName: topicName,
		repo:      repo,
		logger:    log,
	}
}

func (ps *purgeService) Consume(ctx context.Context) error {
	messages, err := ps.pubSub.Subscribe(ctx, ps.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ps.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ps *purgeService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PurgeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ps.logger.Error("PurgeService", "Failed to unmarshal purge message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid messages never become valid, don't retry
		return
	}

	if err := ps.repo.DeleteByIDs(ctx, payload.IDs); err != nil {
		// Best effort: the ids stay purge-eligible and come back on the
		// next feed fetch.
		ps.logger.Warn("PurgeService", "Purge delete failed, will self-heal on next fetch", map[string]interface{}{
			"error": err.Error(),
			"count": len(payload.IDs),
		})
		msg.Ack()
		return
	}

	ps.logger.Info("PurgeService", "Purged aged-out notifications", map[string]interface{}{"count": len(payload.IDs)})
	msg.Ack()
}
