package aehub

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/events"
	"github.com/apex/log"
	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
)

// Message types
const (
	// Server -> client
	MsgConnected      = "CONNECTED"
	MsgTokenUpdated   = "TOKEN_UPDATED"
	MsgPlayEffect     = "PLAY_EFFECT"
	MsgVariantsSaved  = "VARIANTS_SAVED"
	MsgHeartbeatAck   = "HEARTBEAT_ACK"
	MsgInvalidRequest = "INVALID_REQUEST"

	// Client -> server
	MsgCycleRequested = "CYCLE_REQUESTED"
	MsgHeartbeat      = "HEARTBEAT"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 20 * time.Second
	writeWait  = 10 * time.Second
	sendBuffer = 256
)

type Message struct {
	Command   string    `json:"command"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ClientID  string    `json:"clientId"`
	Payload   any       `json:"payload"`
}

type ClientConnection struct {
	ID   string
	Conn Connection
	Send chan Message
	Hub  *Hub
	User *aemodel.User
}

func (c *ClientConnection) logger() *log.Entry {
	return c.Hub.log.WithField("client", c.ID)
}

func (c *ClientConnection) readPump() {
	defer func() {
		c.Hub.unregisterClient(c)
		_ = c.Conn.Close()
	}()

	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger().WithError(err).Warn("websocket read failed")
			}
			break
		}

		c.handleMessage(data)
	}
}

func (c *ClientConnection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *ClientConnection) handleMessage(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.reply(Message{Command: MsgInvalidRequest, Payload: map[string]any{"error": "malformed message"}})
		return
	}

	c.logger().WithField("command", msg.Command).Debug("received message")

	switch msg.Command {
	case MsgCycleRequested:
		tokenID := gjson.GetBytes(data, "payload.token_id")
		if !tokenID.Exists() || tokenID.Int() <= 0 {
			c.reply(Message{Command: MsgInvalidRequest, ID: msg.ID, Payload: map[string]any{"error": "token_id is required"}})
			return
		}

		c.Hub.bus.Publish(context.Background(), events.Event{
			Topic:   events.TopicCycleRequested,
			Payload: events.CycleRequest{TokenID: int(tokenID.Int()), Source: "ws"},
		})

	case MsgHeartbeat:
		c.reply(Message{Command: MsgHeartbeatAck, ID: msg.ID})

	default:
		c.logger().WithField("command", msg.Command).Debug("ignoring unknown command")
	}
}

// reply queues msg for this client only.
func (c *ClientConnection) reply(msg Message) {
	msg.Timestamp = time.Now()
	msg.ClientID = c.ID
	c.Hub.sendTo(c, msg)
}
