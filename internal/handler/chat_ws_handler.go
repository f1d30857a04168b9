package handler

import (
	"os"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/constant"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/logger"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/service"
	internalWS "github.com/sansitamalhotra/ChatBot-sub003/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ChatWsHandler upgrades connections into the fan-out hub. Visitors join
// their own session channel; agents may also join the shared pool channel.
type ChatWsHandler struct {
	sessions service.ISessionService
	hub      *internalWS.Hub
	logger   logger.ILogger
}

func NewChatWsHandler(sessions service.ISessionService, hub *internalWS.Hub, log logger.ILogger) *ChatWsHandler {
	return &ChatWsHandler{
		sessions: sessions,
		hub:      hub,
		logger:   log,
	}
}

func (h *ChatWsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/chat/v1/ws", h.ServeWs)
}

func (h *ChatWsHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on websocket handshakes, so the token
	// rides in the query string, with the header as fallback for tooling.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}

	caller, err := h.parseToken(tokenStr)
	if err != nil {
		h.logger.Warn("ChatWsHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	channel, err := h.resolveChannel(c, caller)
	if err != nil {
		return err
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChatWsHandler", "WebSocket session started", map[string]interface{}{"channel": channel})
			internalWS.ServeWs(h.hub, conn, channel)
			h.logger.Info("ChatWsHandler", "WebSocket session ended", map[string]interface{}{"channel": channel})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *ChatWsHandler) parseToken(tokenStr string) (entity.CallerIdentity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return entity.CallerIdentity{}, fiber.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entity.CallerIdentity{}, fiber.ErrUnauthorized
	}

	idStr, _ := claims["user_id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return entity.CallerIdentity{}, fiber.ErrUnauthorized
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = string(entity.RoleUser)
	}

	return entity.CallerIdentity{Id: id, Role: entity.Role(role)}, nil
}

func (h *ChatWsHandler) resolveChannel(c *fiber.Ctx, caller entity.CallerIdentity) (string, error) {
	if c.Query("channel") == constant.ChannelAgentsPool {
		if caller.Role != entity.RoleAgent && caller.Role != entity.RoleAdmin {
			return "", c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Agent pool is agents only"})
		}
		return constant.ChannelAgentsPool, nil
	}

	sessionId, err := uuid.Parse(c.Query("session_id"))
	if err != nil {
		return "", c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "session_id or channel required"})
	}

	// Show applies the owner/bound-agent/admin access rules; riding on it
	// keeps websocket auth identical to REST auth.
	if _, err := h.sessions.Show(c.Context(), caller, sessionId); err != nil {
		return "", c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No access to this session"})
	}

	return constant.ChannelSessionPrefix + sessionId.String(), nil
}
