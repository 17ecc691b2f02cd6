package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"postboard-be/internal/model"
	"postboard-be/internal/repository/implementation"
	"postboard-be/pkg/database"
	"postboard-be/pkg/feed"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestNotificationLifecycle(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	ctx := context.Background()
	notifRepo := implementation.NewNotificationRepository(gormDB)

	// Seed an owner, an actor and a post directly; the repositories under
	// test only read them back.
	owner := model.User{
		Id:            uuid.New(),
		Email:         "test-owner-" + uuid.New().String() + "@example.com",
		DisplayName:   "Integration Owner",
		Discriminator: "0001",
	}
	actor := model.User{
		Id:            uuid.New(),
		Email:         "test-actor-" + uuid.New().String() + "@example.com",
		DisplayName:   "Integration Actor",
		Discriminator: "0002",
	}
	assert.NoError(t, gormDB.Create(&owner).Error)
	assert.NoError(t, gormDB.Create(&actor).Error)

	post := model.Post{
		Id:       uuid.New(),
		AuthorId: owner.Id,
		Title:    "Integration Post",
		Body:     "body",
	}
	assert.NoError(t, gormDB.Create(&post).Error)

	defer func() {
		gormDB.Where("user_id = ?", owner.Id).Delete(&model.Notification{})
		gormDB.Delete(&post)
		gormDB.Unscoped().Delete(&owner)
		gormDB.Unscoped().Delete(&actor)
	}()

	t.Run("Create And List", func(t *testing.T) {
		notif := model.Notification{
			ID:        uuid.New(),
			UserID:    owner.Id,
			PostID:    post.Id,
			ActorID:   actor.Id,
			Kind:      string(feed.KindComment),
			Status:    string(feed.StatusUnseen),
			CreatedAt: time.Now().Add(-time.Minute),
		}
		err := notifRepo.CreateNotification(ctx, &notif)
		assert.NoError(t, err)

		rows, err := notifRepo.ListByUser(ctx, owner.Id)
		assert.NoError(t, err)
		if assert.Len(t, rows, 1) {
			assert.Equal(t, string(feed.StatusUnseen), rows[0].Status)
			assert.Equal(t, "Integration Post", rows[0].Post.Title, "Post must be preloaded for rendering")
		}
	})

	t.Run("Status Sweep Respects Cutoff", func(t *testing.T) {
		cutoff := time.Now()

		late := model.Notification{
			ID:        uuid.New(),
			UserID:    owner.Id,
			PostID:    post.Id,
			ActorID:   actor.Id,
			Kind:      string(feed.KindComment),
			Status:    string(feed.StatusUnseen),
			CreatedAt: cutoff.Add(time.Minute),
		}
		assert.NoError(t, notifRepo.CreateNotification(ctx, &late))

		affected, err := notifRepo.UpdateStatusBulk(ctx, owner.Id,
			[]string{string(feed.StatusUnseen)}, string(feed.StatusSeenOnce), cutoff)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), affected, "only the pre-cutoff row sweeps")

		rows, err := notifRepo.ListByUser(ctx, owner.Id)
		assert.NoError(t, err)
		statuses := map[uuid.UUID]string{}
		for _, r := range rows {
			statuses[r.ID] = r.Status
		}
		assert.Equal(t, string(feed.StatusUnseen), statuses[late.ID])
	})

	t.Run("Delete By IDs Is Idempotent", func(t *testing.T) {
		rows, err := notifRepo.ListByUser(ctx, owner.Id)
		assert.NoError(t, err)
		assert.NotEmpty(t, rows)

		ids := []uuid.UUID{rows[0].ID, uuid.New()} // one real, one long gone
		assert.NoError(t, notifRepo.DeleteByIDs(ctx, ids))
		assert.NoError(t, notifRepo.DeleteByIDs(ctx, ids), "re-delete must not error")
	})

	t.Run("Remove All For User", func(t *testing.T) {
		assert.NoError(t, notifRepo.DeleteAllForUser(ctx, owner.Id, time.Now().Add(time.Hour)))
		rows, err := notifRepo.ListByUser(ctx, owner.Id)
		assert.NoError(t, err)
		assert.Empty(t, rows)
	})
}
