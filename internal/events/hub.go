package events

import (
	"context"
	"encoding/json"
	"expvar"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/talx/rooms-api/internal/domain/booking"
)

// eventsChannel is the Redis Pub/Sub channel carrying booking events
// between server instances
const eventsChannel = "rooms:events"

var (
	wsConnectionsGauge   = expvar.NewInt("websocket_connections")
	wsEventsSentTotal    = expvar.NewInt("websocket_events_sent_total")
	wsEventsDroppedTotal = expvar.NewInt("websocket_events_dropped_total")
)

// Event is the wire shape of a booking lifecycle event
type Event struct {
	Type      string            `json:"type"`
	Booking   *booking.Response `json:"booking,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// envelope wraps an event on the Redis channel. SenderID lets an
// instance skip events it published itself, they were already
// broadcast locally.
type envelope struct {
	Event    json.RawMessage `json:"event"`
	SenderID string          `json:"sender_id"`
}

// Hub broadcasts booking lifecycle events to connected WebSocket
// clients. With a Redis client it also fans events out to other server
// instances, without one it degrades to local-only delivery.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	redis  *redis.Client
	pubsub *redis.PubSub

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc

	instanceID string
}

// NewHub creates an event hub. redisClient may be nil.
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		redis:      redisClient,
		ctx:        ctx,
		cancel:     cancel,
		instanceID: uuid.NewString(),
	}

	if redisClient != nil {
		h.pubsub = redisClient.Subscribe(ctx, eventsChannel)
	}

	return h
}

// Run starts the hub loop (call in goroutine)
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runRedisSubscriber()
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			wsConnectionsGauge.Add(1)
			log.Debug().Msg("event stream client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				wsConnectionsGauge.Add(-1)
			}
			h.mu.Unlock()
			log.Debug().Msg("event stream client disconnected")

		case data := <-h.broadcast:
			h.broadcastLocal(data)
		}
	}
}

// Publish implements booking.EventPublisher. The event goes to local
// clients and, when Redis is configured, to every other instance.
func (h *Hub) Publish(eventType string, b *booking.Response) {
	data, err := json.Marshal(&Event{
		Type:      eventType,
		Booking:   b,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal booking event")
		return
	}

	h.send(data)

	if h.redis == nil {
		return
	}

	payload, err := json.Marshal(&envelope{Event: data, SenderID: h.instanceID})
	if err != nil {
		return
	}
	if err := h.redis.Publish(h.ctx, eventsChannel, payload).Err(); err != nil {
		log.Error().Err(err).Str("channel", eventsChannel).Msg("Redis publish failed")
	}
}

func (h *Hub) runRedisSubscriber() {
	ch := h.pubsub.Channel()

	for {
		select {
		case <-h.ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}

			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				continue
			}
			if env.SenderID == h.instanceID {
				continue
			}

			h.send(env.Event)
		}
	}
}

// send hands data to the hub loop without blocking the caller
func (h *Hub) send(data []byte) {
	select {
	case h.broadcast <- data:
	case <-h.ctx.Done():
	}
}

func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- data:
			wsEventsSentTotal.Add(1)
		default:
			// Buffer full, skip this client
			wsEventsDroppedTotal.Add(1)
		}
	}
}

// ClientCount returns the number of locally connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown stops the hub loop and the Redis subscription
func (h *Hub) Shutdown() {
	h.cancel()
	if h.pubsub != nil {
		h.pubsub.Close()
	}
}
