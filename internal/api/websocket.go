package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"snake-cast/internal/game"

	"github.com/gorilla/websocket"
)

const (
	// MaxWSConnectionsTotal is the maximum number of WebSocket connections allowed
	MaxWSConnectionsTotal = 500

	// MaxWSConnectionsPerIP is the maximum WebSocket connections per IP
	MaxWSConnectionsPerIP = 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The HTTP API is CORS-open; mirror that for the socket. Spectator
		// data is public and input goes through the same validation path.
		return true
	},
}

// wsClient tracks a WebSocket connection with its source IP
type wsClient struct {
	conn *websocket.Conn
	ip   string
}

// wsInbound is the only message shape clients may send
type wsInbound struct {
	Direction string `json:"direction"`
}

// WebSocketHub manages all WebSocket connections with DoS protection.
// Inbound direction messages feed the engine's input mailbox; outbound
// traffic is snapshot broadcasts driven by the sequence number.
type WebSocketHub struct {
	engine EngineInterface

	clients    map[*websocket.Conn]*wsClient
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *websocket.Conn
	mu         sync.RWMutex

	// Connection limiting per IP
	wsLimiter *WebSocketRateLimiter

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewWebSocketHub creates a new hub with connection limiting
func NewWebSocketHub(engine EngineInterface) *WebSocketHub {
	return &WebSocketHub{
		engine:     engine,
		clients:    make(map[*websocket.Conn]*wsClient),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *websocket.Conn),
		wsLimiter:  NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
		stopChan:   make(chan struct{}),
	}
}

// Run starts the hub loop. Call in a goroutine.
func (h *WebSocketHub) Run() {
	for {
		select {
		case <-h.stopChan:
			h.mu.Lock()
			for conn := range h.clients {
				conn.Close()
			}
			h.clients = make(map[*websocket.Conn]*wsClient)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.conn] = client
			count := len(h.clients)
			h.mu.Unlock()

			log.Printf("📱 Client connected from %s (%d total)", client.ip, count)
			RecordWSConnect()

		case conn := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[conn]; ok {
				// Release the connection slot for this IP
				h.wsLimiter.Release(client.ip)
				delete(h.clients, conn)
				conn.Close()
				RecordWSDisconnect()
			}
			count := len(h.clients)
			h.mu.Unlock()

			log.Printf("📱 Client disconnected (%d remaining)", count)

		case message := <-h.broadcast:
			var dead []*websocket.Conn
			h.mu.RLock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					dead = append(dead, conn)
				}
			}
			h.mu.RUnlock()
			RecordWSMessage()

			for _, conn := range dead {
				h.removeClient(conn)
			}
		}
	}
}

// Stop shuts down the hub loop and closes all clients
func (h *WebSocketHub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopChan)
	})
}

func (h *WebSocketHub) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[conn]; ok {
		h.wsLimiter.Release(client.ip)
		delete(h.clients, conn)
		conn.Close()
		RecordWSDisconnect()
	}
}

// Broadcast sends an event envelope to all connected clients
func (h *WebSocketHub) Broadcast(event string, data interface{}) {
	msg := map[string]interface{}{
		"event": event,
		"data":  data,
	}

	jsonBytes, err := json.Marshal(msg)
	if err != nil {
		return
	}

	select {
	case h.broadcast <- jsonBytes:
	default:
		// Channel full, skip (backpressure)
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// StartBroadcastLoop pushes snapshots to clients as the simulation
// publishes them. The loop polls the published pointer and skips the
// send when the sequence has not advanced, so idle rounds cost nothing.
func (h *WebSocketHub) StartBroadcastLoop(pollInterval time.Duration) {
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		var lastSeq uint64

		for {
			select {
			case <-h.stopChan:
				return
			case <-ticker.C:
				if h.ClientCount() == 0 {
					continue
				}

				snap := h.engine.Snapshot()
				if snap.Sequence == lastSeq {
					continue
				}
				lastSeq = snap.Sequence

				h.Broadcast("game:state", snap)
			}
		}
	}()
}

// ServeWS handles incoming WebSocket connections with DoS protection
func (h *WebSocketHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)

	// Check total connection limit
	if h.ClientCount() >= MaxWSConnectionsTotal {
		log.Printf("⚠️ WebSocket connection rejected: total limit reached")
		RecordConnectionRejected("ws_total_limit")
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}

	// Check per-IP connection limit
	if !h.wsLimiter.Allow(ip) {
		log.Printf("⚠️ WebSocket connection rejected from %s: per-IP limit reached", ip)
		RecordConnectionRejected("ws_ip_limit")
		http.Error(w, "Too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		h.wsLimiter.Release(ip) // Release the slot we reserved
		return
	}

	// Send the current state before registering so new viewers don't wait
	// for the next tick. After registration the hub loop is the only writer
	// on this connection.
	if snap, err := json.Marshal(map[string]interface{}{
		"event": "game:state",
		"data":  h.engine.Snapshot(),
	}); err == nil {
		conn.WriteMessage(websocket.TextMessage, snap)
	}

	client := &wsClient{conn: conn, ip: ip}
	h.register <- client

	go h.readPump(client)
}

// readPump consumes direction messages from one client. Invalid or
// oversized payloads are dropped; the mailbox and the simulation's own
// reversal check decide what actually takes effect.
func (h *WebSocketHub) readPump(client *wsClient) {
	defer func() {
		h.unregister <- client.conn
	}()

	client.conn.SetReadLimit(512)

	for {
		_, message, err := client.conn.ReadMessage()
		if err != nil {
			break
		}

		var msg wsInbound
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		dir, ok := game.ParseDirection(msg.Direction)
		if !ok {
			continue
		}

		h.engine.SetDirection(dir)
	}
}
