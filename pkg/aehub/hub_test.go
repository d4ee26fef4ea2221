package aehub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/aedb/stor"
	"github.com/alterego-vtt/alterego/pkg/effects"
	"github.com/alterego-vtt/alterego/pkg/events"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, catalog *effects.Catalog) (*Hub, *events.LocalBus) {
	t.Helper()

	bus := events.NewLocalBus(nil)
	userStor := stor.NewFakeUserStor([]aemodel.User{{ID: 1, Slug: "gm", ApiToken: "abc123"}})
	h := NewHub(userStor, bus, catalog, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-h.done
	})

	return h, bus
}

func addClient(t *testing.T, h *Hub, id string) *ClientConnection {
	t.Helper()

	c := &ClientConnection{ID: id, Send: make(chan Message, 8), Hub: h, User: &aemodel.User{ID: 1, Slug: "gm"}}
	require.NoError(t, h.registerClient(c))
	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return h.clients[id] == c
	}, time.Second, 5*time.Millisecond)

	return c
}

func receive(t *testing.T, c *ClientConnection) Message {
	t.Helper()

	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestHubAvailableOnlyWithClients(t *testing.T) {
	h, _ := startHub(t, nil)
	require.False(t, h.Available())

	c := addClient(t, h, "table-1")
	require.True(t, h.Available())

	h.unregisterClient(c)
	require.Eventually(t, func() bool { return !h.Available() }, time.Second, 5*time.Millisecond)

	_, ok := <-c.Send
	require.False(t, ok, "send channel should be closed on unregister")
}

func TestHubPlayBroadcastsToEveryClient(t *testing.T) {
	h, _ := startHub(t, nil)
	c1 := addClient(t, h, "table-1")
	c2 := addClient(t, h, "table-2")

	req := effects.NewPlayRequest("jb2a.explosion.blue", 10, 3, 2)
	require.NoError(t, h.Play(context.Background(), req))

	for _, c := range []*ClientConnection{c1, c2} {
		msg := receive(t, c)
		require.Equal(t, MsgPlayEffect, msg.Command)
		require.Equal(t, req, msg.Payload)
		require.Equal(t, "system", msg.ID)
	}
}

func TestHubBroadcastToSingleClient(t *testing.T) {
	h, _ := startHub(t, nil)
	c1 := addClient(t, h, "table-1")
	c2 := addClient(t, h, "table-2")

	require.NoError(t, h.Broadcast(context.Background(), Message{Command: MsgHeartbeatAck, ClientID: "table-2"}))
	require.Equal(t, MsgHeartbeatAck, receive(t, c2).Command)
	require.Len(t, c1.Send, 0)
}

func TestHubEntryExistsUsesCatalog(t *testing.T) {
	h, _ := startHub(t, effects.NewCatalog([]string{"jb2a.misty_step.01.blue"}))

	ok, err := h.EntryExists(context.Background(), "jb2a.misty_step.01.blue")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.EntryExists(context.Background(), "jb2a.nope")
	require.NoError(t, err)
	require.False(t, ok)

	empty, _ := startHub(t, nil)
	ok, err = empty.EntryExists(context.Background(), "jb2a.misty_step.01.blue")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHubForwardsBusUpdates(t *testing.T) {
	h, bus := startHub(t, nil)
	unsubscribe := h.Subscribe(bus)
	defer unsubscribe()
	c := addClient(t, h, "table-1")

	token := &aemodel.Token{ID: 10, TextureSrc: "b.png", Width: 2, Height: 2}
	bus.Publish(context.Background(), events.Event{Topic: events.TopicTokenUpdated, Payload: token})

	msg := receive(t, c)
	require.Equal(t, MsgTokenUpdated, msg.Command)
	require.Equal(t, token, msg.Payload)

	saved := events.VariantsSaved{ActorID: 1, Count: 2}
	bus.Publish(context.Background(), events.Event{Topic: events.TopicVariantsSaved, Payload: saved})

	msg = receive(t, c)
	require.Equal(t, MsgVariantsSaved, msg.Command)
	require.Equal(t, saved, msg.Payload)
}

func TestHubStoppedRejectsBroadcast(t *testing.T) {
	bus := events.NewLocalBus(nil)
	h := NewHub(stor.NewFakeUserStor(nil), bus, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h.Run(ctx)

	err := h.Play(context.Background(), effects.NewPlayRequest("a.webm", 1, 1, 1))
	require.ErrorIs(t, err, ErrHubStopped)
}

func TestClientConnectionHandleMessage(t *testing.T) {
	h, bus := startHub(t, nil)
	c := addClient(t, h, "table-1")

	var requests []events.CycleRequest
	bus.Subscribe(events.TopicCycleRequested, func(_ context.Context, e events.Event) error {
		requests = append(requests, e.Payload.(events.CycleRequest))
		return nil
	})

	tests := []struct {
		name      string
		data      string
		wantReply string
		wantCycle bool
	}{
		{name: "cycle request", data: `{"command":"CYCLE_REQUESTED","payload":{"token_id":7}}`, wantCycle: true},
		{name: "cycle request without token", data: `{"command":"CYCLE_REQUESTED","payload":{}}`, wantReply: MsgInvalidRequest},
		{name: "cycle request with bad token", data: `{"command":"CYCLE_REQUESTED","payload":{"token_id":-1}}`, wantReply: MsgInvalidRequest},
		{name: "heartbeat", data: `{"command":"HEARTBEAT","id":"hb-1"}`, wantReply: MsgHeartbeatAck},
		{name: "malformed", data: `{"command":`, wantReply: MsgInvalidRequest},
		{name: "unknown command", data: `{"command":"DANCE"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			requests = nil
			c.handleMessage([]byte(test.data))

			if test.wantReply != "" {
				msg := receive(t, c)
				require.Equal(t, test.wantReply, msg.Command)
				require.Equal(t, "table-1", msg.ClientID)
			} else {
				require.Len(t, c.Send, 0)
			}

			if test.wantCycle {
				require.Equal(t, []events.CycleRequest{{TokenID: 7, Source: "ws"}}, requests)
			} else {
				require.Empty(t, requests)
			}
		})
	}
}

func TestServeWS(t *testing.T) {
	h, bus := startHub(t, nil)

	cycled := make(chan events.CycleRequest, 1)
	bus.Subscribe(events.TopicCycleRequested, func(_ context.Context, e events.Event) error {
		cycled <- e.Payload.(events.CycleRequest)
		return nil
	})

	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(wsURL+"?apikey=wrong&client_id=table-1", nil)
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(wsURL+"?apikey=abc123", nil)
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?apikey=abc123&client_id=table-1", nil)
	require.NoError(t, err)
	defer conn.Close()

	var connected Message
	require.NoError(t, conn.ReadJSON(&connected))
	require.Equal(t, MsgConnected, connected.Command)
	require.Equal(t, "table-1", connected.ClientID)

	require.Eventually(t, h.Available, time.Second, 5*time.Millisecond)

	require.NoError(t, h.Play(context.Background(), effects.NewPlayRequest("fx/boom.webm", 10, 3, 1)))
	var played Message
	require.NoError(t, conn.ReadJSON(&played))
	require.Equal(t, MsgPlayEffect, played.Command)

	require.NoError(t, conn.WriteJSON(Message{Command: MsgCycleRequested, Payload: map[string]any{"token_id": 10}}))
	select {
	case req := <-cycled:
		require.Equal(t, events.CycleRequest{TokenID: 10, Source: "ws"}, req)
	case <-time.After(time.Second):
		t.Fatal("cycle request not published")
	}

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return !h.Available() }, time.Second, 5*time.Millisecond)
}
