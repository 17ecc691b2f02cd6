package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"postboard-be/internal/model"
	"postboard-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub pushes freshly created raw notifications to connected clients. It
// is the real-time sink: the feed engine never depends on it, a user who
// missed a push simply sees the entry on the next feed fetch.
type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance delivery
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send implements service.NotificationDelivery: deliver one raw
// notification to every device the user has connected, locally and via
// Redis for other instances.
func (h *Hub) Send(userID uuid.UUID, notification model.Notification) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})

	h.mu.RLock()
	clients, localFound := h.clients[userID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"user_id": userID})
				close(client.Send)
				h.unregister <- client
			}
		}
	}

	// Other instances may hold devices for the same user.
	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_user_id": userID.String(),
			"message":        data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

// subscribeToRedis relays cluster_events messages to locally connected
// clients. Every instance subscribes; each delivers only to users it
// holds.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[uid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					close(client.Send)
					h.unregister <- client
				}
			}
		}
	}
}
