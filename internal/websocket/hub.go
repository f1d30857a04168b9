package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Hub fans chat events out to subscribed connections. Channels are either a
// session channel ("session:<id>") or the shared agent pool ("agents:pool").
type Hub struct {
	// Registered clients map: channel -> set of clients
	clients map[string]map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

// redisChannel carries events between instances. Every instance subscribes
// and forwards to whichever clients it holds locally.
const redisChannel = "chat_events"

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]map[*Client]bool),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.Channel] == nil {
				h.clients[client.Channel] = make(map[*Client]bool)
			}
			h.clients[client.Channel][client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"channel": client.Channel})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.Channel]; ok {
				if clients[client] {
					delete(clients, client)
					close(client.Send)
				}
				if len(clients) == 0 {
					delete(h.clients, client.Channel)
					h.logger.Info("Hub", "Channel drained", map[string]interface{}{"channel": client.Channel})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish delivers an event to every subscriber of the channel, on this
// instance and (via Redis) on every other one.
func (h *Hub) Publish(channel string, eventType string, data interface{}) {
	payload, err := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": data,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal event", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(channel, payload)

	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"channel": channel,
			"message": json.RawMessage(payload),
		})
		h.rdb.Publish(context.Background(), redisChannel, envelope)
	}
}

func (h *Hub) deliverLocal(channel string, payload []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients[channel]))
	for client := range h.clients[channel] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer: drop the connection rather than block the hub.
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"channel": channel})
			h.unregister <- client
		}
	}
}

// SubscriberCount reports how many connections listen on a channel.
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[channel])
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var envelope struct {
			Channel string          `json:"channel"`
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.deliverLocal(envelope.Channel, envelope.Message)
	}
}
