package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/openclaw/clawdock/internal/domain/activity"
)

// Hub fans newly logged activity records out to connected websocket clients.
// It implements activity.Broadcaster; delivery is best effort and a slow
// consumer or full queue drops events rather than blocking the write path.
type Hub struct {
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	events     chan activity.Record
	logger     *slog.Logger
}

// NewHub creates a stream hub. Run must be called before clients connect.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		events:     make(chan activity.Record, 64),
		logger:     logger,
	}
}

// Broadcast queues a record for delivery to all connected clients. Never
// blocks; the event is dropped if the queue is full.
func (h *Hub) Broadcast(rec activity.Record) {
	select {
	case h.events <- rec:
	default:
	}
}

// Run owns the client set until ctx is canceled. All connection writes happen
// on this goroutine.
func (h *Hub) Run(ctx context.Context) {
	clients := make(map[*websocket.Conn]struct{})
	defer func() {
		for conn := range clients {
			_ = conn.Close()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case conn := <-h.register:
			clients[conn] = struct{}{}
		case conn := <-h.unregister:
			if _, ok := clients[conn]; ok {
				delete(clients, conn)
				_ = conn.Close()
			}
		case rec := <-h.events:
			for conn := range clients {
				if err := conn.WriteJSON(rec); err != nil {
					if h.logger != nil {
						h.logger.Debug("dropping stream client", "error", err)
					}
					delete(clients, conn)
					_ = conn.Close()
				}
			}
		}
	}
}

// registerTimeout bounds how long a connecting client waits for the run loop
// to accept it.
const registerTimeout = time.Second

// add hands the connection to the run loop. Returns false when the loop does
// not accept within the grace period, which means Run was never started or
// has already exited.
func (h *Hub) add(conn *websocket.Conn) bool {
	timer := time.NewTimer(registerTimeout)
	defer timer.Stop()
	select {
	case h.register <- conn:
		return true
	case <-timer.C:
		return false
	}
}

// remove detaches the connection. When the run loop is gone the connection is
// closed directly instead of blocking.
func (h *Hub) remove(conn *websocket.Conn) {
	select {
	case h.unregister <- conn:
	default:
		_ = conn.Close()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The admin API already allows any origin via CORS; mirror that here.
	CheckOrigin: func(*http.Request) bool { return true },
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		writeError(w, http.StatusNotFound, "streaming disabled")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error response.
		return
	}
	if !s.hub.add(conn) {
		_ = conn.Close()
		return
	}

	// Reader loop: discard inbound frames, detect close.
	go func() {
		defer s.hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
