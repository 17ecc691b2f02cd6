package main

import (
	"context"
	"log"
	"os"
	"time"

	"postboard-be/internal/model"
	"postboard-be/pkg/database"
	"postboard-be/pkg/events"
	"postboard-be/pkg/feed"
	pktNats "postboard-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a demo account with posts, comments and raw notifications in
// every lifecycle state so the feed, the mark-seen sweep and the purge
// path can all be exercised locally.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	owner := seedUser(db, "owner@postboard.dev", "Sam Carter", "0001")
	alice := seedUser(db, "alice@postboard.dev", "Alice Moreau", "0417")
	bob := seedUser(db, "bob@postboard.dev", "Bob Tanaka", "2280")

	post := model.Post{
		Id:       uuid.New(),
		AuthorId: owner.Id,
		Title:    "Weekend hiking photos",
		Body:     "Finally uploaded the shots from the ridge trail.",
	}
	if err := db.Where("author_id = ? AND title = ?", post.AuthorId, post.Title).FirstOrCreate(&post).Error; err != nil {
		log.Fatalf("Error seeding post: %v", err)
	}

	now := time.Now()
	aliceComment := seedComment(db, post.Id, alice.Id, nil, "These are stunning!", now.Add(-3*time.Hour))
	bobComment := seedComment(db, post.Id, bob.Id, nil, "Which trail is this?", now.Add(-2*time.Hour))
	aliceAgain := seedComment(db, post.Id, alice.Id, nil, "The third one is my favorite.", now.Add(-1*time.Hour))

	// Same post, same actor twice: the feed should collapse these to a
	// single entry attributed to Alice and Bob.
	seedNotification(db, owner.Id, post.Id, &aliceComment.Id, alice.Id, feed.KindComment, feed.StatusUnseen, aliceComment.CreatedAt)
	seedNotification(db, owner.Id, post.Id, &bobComment.Id, bob.Id, feed.KindComment, feed.StatusUnseen, bobComment.CreatedAt)
	seedNotification(db, owner.Id, post.Id, &aliceAgain.Id, alice.Id, feed.KindComment, feed.StatusSeenOnce, aliceAgain.CreatedAt)

	// Aged-out READ row: purge candidate on the next feed fetch.
	seedNotification(db, owner.Id, post.Id, nil, bob.Id, feed.KindComment, feed.StatusRead, now.Add(-30*24*time.Hour))

	publishDemoEvent(post, bob)

	log.Println("✅ Seed data created successfully.")
}

// publishDemoEvent drives one notification through the live bus path so
// a running instance picks it up end to end. Best effort: skipped when
// NATS is not configured.
func publishDemoEvent(post model.Post, actor model.User) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		return
	}

	pub, err := pktNats.NewPublisher(natsURL)
	if err != nil {
		log.Printf("Warn: NATS unavailable, skipping demo event: %v", err)
		return
	}
	defer pub.Close()

	evt := events.New(events.PostCommented, map[string]interface{}{
		"post_id":  post.Id.String(),
		"actor_id": actor.Id.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pub.Publish(ctx, evt); err != nil {
		log.Printf("Warn: Failed to publish demo event: %v", err)
		return
	}
	log.Println("Published demo POST_COMMENTED event.")
}

func seedUser(db *gorm.DB, email, name, discriminator string) model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing seed password: %v", err)
	}
	hashStr := string(hash)

	user := model.User{
		Id:            uuid.New(),
		Email:         email,
		PasswordHash:  &hashStr,
		DisplayName:   name,
		Discriminator: discriminator,
	}
	if err := db.Where("email = ?", email).FirstOrCreate(&user).Error; err != nil {
		log.Fatalf("Error seeding user %s: %v", email, err)
	}
	return user
}

func seedComment(db *gorm.DB, postID, authorID uuid.UUID, parentID *uuid.UUID, body string, createdAt time.Time) model.Comment {
	comment := model.Comment{
		Id:        uuid.New(),
		PostId:    postID,
		AuthorId:  authorID,
		ParentId:  parentID,
		Body:      body,
		CreatedAt: createdAt,
	}
	if err := db.Where("post_id = ? AND author_id = ? AND body = ?", postID, authorID, body).FirstOrCreate(&comment).Error; err != nil {
		log.Fatalf("Error seeding comment: %v", err)
	}
	return comment
}

func seedNotification(db *gorm.DB, userID, postID uuid.UUID, commentID *uuid.UUID, actorID uuid.UUID, kind feed.Kind, status feed.Status, createdAt time.Time) {
	notif := model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		PostID:    postID,
		CommentID: commentID,
		ActorID:   actorID,
		Kind:      string(kind),
		Status:    string(status),
		CreatedAt: createdAt,
	}
	if err := db.Create(&notif).Error; err != nil {
		log.Printf("Error seeding notification: %v", err)
	}
}
