package handler

import (
	"os"
	"time"

	"postboard-be/internal/dto"
	"postboard-be/internal/pkg/logger"
	"postboard-be/internal/pkg/serverutils"
	"postboard-be/internal/service"
	internalWS "postboard-be/internal/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service  *service.NotificationService
	hub      *internalWS.Hub
	validate *validator.Validate
	logger   logger.ILogger
}

func NewNotificationHandler(service *service.NotificationService, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service:  service,
		hub:      hub,
		validate: validator.New(),
		logger:   log,
	}
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		if uid, ok := c.Locals("user_id").(uuid.UUID); ok {
			return uid, nil
		}
		return uuid.Nil, fiber.ErrUnauthorized
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return userID, nil
}

// GetFeed returns the aggregated, status-sorted notification feed.
func (h *NotificationHandler) GetFeed(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	entries, err := h.service.GetFeed(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(dto.FeedResponse{Data: entries, Count: len(entries)})
}

// GetUnreadCount returns the number of not-yet-read feed entries.
func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	count, err := h.service.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(dto.UnreadCountResponse{Count: count})
}

// MarkSeen runs the two-phase feed-open sweep. The cutoff defaults to now
// so rows created mid-request stay untouched.
func (h *NotificationHandler) MarkSeen(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req dto.MarkSeenRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if err := h.validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	cutoff := time.Now()
	if req.Cutoff != nil {
		cutoff = *req.Cutoff
	}

	if err := h.service.MarkSeen(c.UserContext(), userID, cutoff); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true})
}

// MarkPostRead marks every notification for one post as read, triggered
// by click-through into the post.
func (h *NotificationHandler) MarkPostRead(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	if err := h.service.MarkRead(c.UserContext(), userID, postID, time.Now()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true})
}

// RemoveAll hard-deletes the user's notifications.
func (h *NotificationHandler) RemoveAll(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := h.service.RemoveAll(c.UserContext(), userID, time.Now()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true})
}

// RemoveForPost hard-deletes the user's notifications for one post.
func (h *NotificationHandler) RemoveForPost(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	if err := h.service.RemoveForPost(c.UserContext(), userID, postID, time.Now()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true})
}

// ServeWs handles websocket requests from the peer.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	// Priority 1: Query Param (Browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (Tooling/Non-browser standard)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("NotificationHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(c *websocket.Conn) {
			h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, c, userID)
			h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the notification routes.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notif := router.Group("/notifications")
	notif.Use(serverutils.JwtMiddleware)
	notif.Get("/", h.GetFeed)
	notif.Get("/unread-count", h.GetUnreadCount) // specific routes before param routes
	notif.Post("/mark-seen", h.MarkSeen)
	notif.Post("/posts/:postId/read", h.MarkPostRead)
	notif.Delete("/", h.RemoveAll)
	notif.Delete("/posts/:postId", h.RemoveForPost)

	// WebSocket
	router.Get("/ws", h.ServeWs)
}
