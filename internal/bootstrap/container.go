package bootstrap

import (
	"context"
	"log"

	"postboard-be/internal/config"
	"postboard-be/internal/handler"
	"postboard-be/internal/pkg/logger"
	"postboard-be/internal/repository/implementation"
	"postboard-be/internal/service"
	"postboard-be/internal/websocket"

	pktNats "postboard-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// HTTP surface
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	// Background workers (exposed for main.go to run)
	PurgeService service.IPurgeService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. In-process purge queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// NATS: the post/comment pipeline publishes here, we consume.
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis: cross-instance websocket delivery.
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub with its own isolated domain log.
	wsLogger := logger.NewIsolatedLogger(cfg.Notification.LogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Repositories
	notifRepo := implementation.NewNotificationRepository(db)
	userRepo := implementation.NewUserRepository(db)
	postRepo := implementation.NewPostRepository(db)
	commentRepo := implementation.NewCommentRepository(db)

	// 5. Notification domain
	purgePublisher := service.NewPurgePublisher(cfg.Notification.PurgeTopic, pubSub)
	purgeService := service.NewPurgeService(pubSub, cfg.Notification.PurgeTopic, notifRepo, sysLogger)

	notifService := service.NewNotificationService(
		notifRepo,
		userRepo,
		postRepo,
		commentRepo,
		purgePublisher,
		natsSub,
		wsHub, // Hub implements NotificationDelivery
		cfg.Notification.Retention,
		wsLogger,
	)

	// Start the event-bus worker
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		PurgeService:        purgeService,
	}
}
