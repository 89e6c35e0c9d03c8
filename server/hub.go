package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Server -> client message types
const (
	EventSummary = "summary"
	EventDay     = "day"
	EventPlaced  = "placed"
	EventError   = "error"
)

// Client -> server actions
const (
	ActionBuild = "build"
	ActionTaxes = "taxes"
)

// Envelope wraps every websocket message
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client is one websocket connection
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans messages out to every connected client
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	direct     chan directMessage
	log        *slog.Logger
}

type directMessage struct {
	client *Client
	msg    []byte
}

func newHub(l *slog.Logger) *Hub {
	return &Hub{
		clients:    map[*Client]bool{},
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		direct:     make(chan directMessage, 16),
		log:        l,
	}
}

func (h *Hub) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.log.Debug("ws_client_joined", "client", c.id, "clients", len(h.clients))
		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
				h.log.Debug("ws_client_left", "client", c.id, "clients", len(h.clients))
			}
		case d := <-h.direct:
			if h.clients[d.client] {
				select {
				case d.client.send <- d.msg:
				default:
				}
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// slow client
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// publish queues msg for every client without blocking the caller
func (h *Hub) publish(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn("ws_broadcast_dropped", "bytes", len(msg))
	}
}

func encode(eventType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: eventType, Payload: raw})
}

// checkOrigin accepts clients without an Origin header, pages served
// from the same host and the configured origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, allowed := range s.opts.AllowedOrigins {
		if strings.EqualFold(strings.TrimSuffix(allowed, "/"), origin) {
			return true
		}
	}
	s.log.Warn("ws_origin_rejected", "origin", origin, "remote", r.RemoteAddr)
	return false
}

// handleWS upgrades the connection, sends the current summary and then
// streams every broadcast to the client.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws_upgrade_failed", "err", err)
		return
	}

	c := &Client{id: uuid.New().String(), conn: conn, send: make(chan []byte, 128)}
	if msg, err := encode(EventSummary, s.Summary()); err == nil {
		c.send <- msg
	}

	select {
	case s.hub.register <- c:
	case <-r.Context().Done():
		conn.Close()
		return
	}
	go s.writer(c)
	go s.reader(c)
}

func (s *Server) writer(c *Client) {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) reader(c *Client) {
	defer func() {
		select {
		case s.hub.unregister <- c:
		case <-s.done:
		}
		c.conn.Close()
	}()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var env Envelope
		if json.Unmarshal(data, &env) != nil {
			continue
		}
		switch env.Type {
		case ActionBuild:
			var req BuildRequest
			if json.Unmarshal(env.Payload, &req) != nil {
				continue
			}
			if _, err := s.Build(req); err != nil {
				s.sendError(c, err)
			}
		case ActionTaxes:
			var req TaxRequest
			if json.Unmarshal(env.Payload, &req) == nil {
				s.SetTaxes(req)
			}
		}
	}
}

func (s *Server) sendError(c *Client, err error) {
	msg, encErr := encode(EventError, map[string]string{"error": err.Error()})
	if encErr != nil {
		return
	}
	select {
	case s.hub.direct <- directMessage{client: c, msg: msg}:
	default:
	}
}
