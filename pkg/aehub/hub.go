// Package aehub is the websocket hub tabletop clients connect to. It pushes
// token and effect updates out to every client and turns client requests
// into bus events.
package aehub

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/aedb/stor"
	"github.com/alterego-vtt/alterego/pkg/effects"
	"github.com/alterego-vtt/alterego/pkg/events"
	"github.com/apex/log"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var ErrHubStopped = errors.New("hub is not running")

// Hub tracks connected clients. Registration, removal and broadcasts are
// serialized through Run.
type Hub struct {
	clients    map[string]*ClientConnection
	register   chan *ClientConnection
	unregister chan *ClientConnection
	broadcast  chan Message
	done       chan struct{}
	mu         sync.RWMutex
	userStor   stor.UserStor
	bus        events.Bus
	catalog    *effects.Catalog
	log        *log.Entry
}

// NewHub creates a hub. catalog backs EntryExists and may be nil, in which
// case no catalogued effect name is known.
func NewHub(userStor stor.UserStor, bus events.Bus, catalog *effects.Catalog, logger *log.Entry) *Hub {
	if logger == nil {
		logger = log.WithField("ctx", "hub")
	}

	return &Hub{
		clients:    make(map[string]*ClientConnection),
		register:   make(chan *ClientConnection),
		unregister: make(chan *ClientConnection),
		broadcast:  make(chan Message, 64),
		done:       make(chan struct{}),
		userStor:   userStor,
		bus:        bus,
		catalog:    catalog,
		log:        logger,
	}
}

// Run processes registrations and broadcasts until ctx is canceled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for id, client := range h.clients {
			delete(h.clients, id)
			close(client.Send)
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			if existing, ok := h.clients[client.ID]; ok {
				// Same client id reconnecting, drop the stale connection.
				close(existing.Send)
			}
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.log.WithFields(log.Fields{"client": client.ID, "user": client.User.Slug}).Info("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.ID]; ok && current == client {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			h.log.WithField("client", client.ID).Info("client unregistered")

		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

// deliver sends message to its target client, or to every client when it
// has none. Clients that can't keep up are disconnected.
func (h *Hub) deliver(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		if message.ClientID != "" && message.ClientID != id {
			continue
		}

		select {
		case client.Send <- message:
		default:
			h.log.WithField("client", id).Warn("send buffer full, disconnecting client")
			close(client.Send)
			delete(h.clients, id)
		}
	}
}

func (h *Hub) sendTo(c *ClientConnection, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.clients[c.ID] != c {
		return
	}

	select {
	case c.Send <- msg:
	default:
		h.log.WithFields(log.Fields{"client": c.ID, "command": msg.Command}).Warn("send buffer full, dropping message")
	}
}

func (h *Hub) registerClient(c *ClientConnection) error {
	select {
	case h.register <- c:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

func (h *Hub) unregisterClient(c *ClientConnection) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues msg for delivery.
func (h *Hub) Broadcast(ctx context.Context, msg Message) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	if msg.ID == "" {
		msg.ID = "system"
	}

	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}

	select {
	case h.broadcast <- msg:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Available reports whether any client is connected to render effects.
func (h *Hub) Available() bool {
	return h.ClientCount() > 0
}

func (h *Hub) EntryExists(_ context.Context, name string) (bool, error) {
	return h.catalog.EntryExists(name), nil
}

// Play asks every connected client to play req.
func (h *Hub) Play(ctx context.Context, req effects.PlayRequest) error {
	return h.Broadcast(ctx, Message{Command: MsgPlayEffect, Payload: req})
}

// Subscribe forwards token and variant updates on bus to every client.
func (h *Hub) Subscribe(bus events.Bus) (unsubscribe func()) {
	unsubTokens := bus.Subscribe(events.TopicTokenUpdated, func(ctx context.Context, e events.Event) error {
		token, ok := e.Payload.(*aemodel.Token)
		if !ok {
			return errors.New("token.updated payload is not a token")
		}

		return h.Broadcast(ctx, Message{Command: MsgTokenUpdated, Payload: token})
	})

	unsubVariants := bus.Subscribe(events.TopicVariantsSaved, func(ctx context.Context, e events.Event) error {
		return h.Broadcast(ctx, Message{Command: MsgVariantsSaved, Payload: e.Payload})
	})

	return func() {
		unsubTokens()
		unsubVariants()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWS is the echo handler for /ws.
func (h *Hub) HandleWS(c echo.Context) error {
	h.ServeWS(c.Response(), c.Request())
	return nil
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	user, err := h.validateAuthAndGetUser(r)
	if err != nil {
		http.Error(w, "invalid or missing api key", http.StatusUnauthorized)
		return
	}

	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = r.Header.Get("AE-Client-ID")
	}

	if clientID == "" {
		http.Error(w, "Missing AE-Client-ID header or client_id param", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := &ClientConnection{
		ID:   clientID,
		Conn: conn,
		Send: make(chan Message, sendBuffer),
		Hub:  h,
		User: user,
	}

	// Queued before registration so it is the first thing the client reads.
	client.Send <- Message{
		Command:   MsgConnected,
		ID:        "system",
		Timestamp: time.Now(),
		ClientID:  clientID,
		Payload:   map[string]any{"status": "connected", "user": user.Slug},
	}

	if err := h.registerClient(client); err != nil {
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (h *Hub) validateAuthAndGetUser(r *http.Request) (*aemodel.User, error) {
	token := r.URL.Query().Get("apikey")
	if token == "" {
		token = r.Header.Get("apikey")
	}

	if token == "" {
		parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			token = parts[1]
		}
	}

	if token == "" {
		return nil, errors.New("no api key")
	}

	return h.userStor.GetUserByAPIToken(token)
}
