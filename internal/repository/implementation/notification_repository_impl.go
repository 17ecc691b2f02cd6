package implementation

import (
	"context"
	"time"

	"postboard-be/internal/model"
	"postboard-be/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) CreateNotification(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *NotificationRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Preload("Post").
		Where("user_id = ?", userID).
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) UpdateStatusBulk(ctx context.Context, userID uuid.UUID, from []string, to string, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND status IN ? AND created_at <= ?", userID, from, cutoff).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) UpdateStatusForPost(ctx context.Context, userID, postID uuid.UUID, from []string, to string, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND post_id = ? AND status IN ? AND created_at <= ?", userID, postID, from, cutoff).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	// Idempotent: already-deleted ids simply match nothing.
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&model.Notification{}).Error
}

func (r *NotificationRepositoryImpl) DeleteAllForUser(ctx context.Context, userID uuid.UUID, cutoff time.Time) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND created_at <= ?", userID, cutoff).
		Delete(&model.Notification{}).Error
}

func (r *NotificationRepositoryImpl) DeleteForPost(ctx context.Context, userID, postID uuid.UUID, cutoff time.Time) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ? AND created_at <= ?", userID, postID, cutoff).
		Delete(&model.Notification{}).Error
}
