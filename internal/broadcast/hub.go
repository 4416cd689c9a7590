package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"auction-live-api/internal/config"
	"auction-live-api/internal/model"
	"auction-live-api/pkg/uid"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Hub fans auction snapshots out to connected WebSocket clients.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	upgrader websocket.Upgrader
	config   config.WebSocketConfig
	clock    clockwork.Clock

	broadcastCh chan model.Snapshot
}

// Client is one live WebSocket viewer.
type Client struct {
	ID          string
	Conn        *websocket.Conn
	Send        chan []byte
	hub         *Hub
	ConnectedAt time.Time
}

// NewHub creates a hub. Call Run to start delivering snapshots. The clock
// drives keepalive pings; a nil clock means the real clock. Socket deadlines
// always use wall time since the network stack enforces them.
func NewHub(cfg config.WebSocketConfig, clock clockwork.Clock) *Hub {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.SendBufferSize <= 0 {
		cfg.SendBufferSize = 64
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 30 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 60 * time.Second
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = 1024
	}
	return &Hub{
		clients: make(map[*Client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				// CORS is handled by the router; the feed is read-only.
				return true
			},
		},
		config:      cfg,
		clock:       clock,
		broadcastCh: make(chan model.Snapshot, 256),
	}
}

// Run delivers published snapshots until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	log.Info().Msg("broadcast hub started")

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			log.Info().Msg("broadcast hub shutting down")
			return
		case snap := <-h.broadcastCh:
			h.handleBroadcast(snap)
		}
	}
}

// Publish queues a snapshot for delivery. It never blocks; when the queue is
// full the snapshot is dropped and the next one supersedes it.
func (h *Hub) Publish(snap model.Snapshot) {
	select {
	case h.broadcastCh <- snap:
	default:
		log.Warn().Uint64("tick", snap.Tick).Msg("broadcast channel full, dropping snapshot")
	}
}

// ServeWS upgrades the request and sends initial as the first message.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, initial model.Snapshot) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	client := &Client{
		ID:          uid.New(),
		Conn:        conn,
		Send:        make(chan []byte, h.config.SendBufferSize),
		hub:         h,
		ConnectedAt: h.clock.Now(),
	}

	if data, err := json.Marshal(initial); err == nil {
		client.Send <- data
	}
	h.register(client)

	go client.writePump()
	go client.readPump()

	log.Info().Str("connection_id", client.ID).Str("remote", r.RemoteAddr).Msg("websocket client connected")
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
		log.Info().Str("connection_id", c.ID).Msg("websocket client disconnected")
	}
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.unregister(c)
	}
}

func (h *Hub) handleBroadcast(snap model.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal snapshot for broadcast")
		return
	}

	// Sends happen under the read lock so unregister cannot close a Send
	// channel mid-broadcast.
	var slow []*Client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.Send <- data:
		default:
			slow = append(slow, c)
		}
	}
	delivered := len(h.clients) - len(slow)
	h.mu.RUnlock()

	for _, c := range slow {
		log.Warn().Str("connection_id", c.ID).Msg("client send buffer full, closing connection")
		h.unregister(c)
		c.Conn.Close()
	}

	log.Debug().Uint64("tick", snap.Tick).Int("clients", delivered).Msg("snapshot broadcasted")
}

func (c *Client) writePump() {
	ticker := c.hub.clock.NewTicker(c.hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.hub.unregister(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debug().Err(err).Str("connection_id", c.ID).Msg("failed to write snapshot")
				return
			}
		case <-ticker.Chan():
			c.Conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only exists to process control frames and notice disconnects.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.hub.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("connection_id", c.ID).Msg("unexpected websocket close")
			}
			return
		}
	}
}
