package realtime

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// sendBuffer is the per-connection broadcast buffer. A client that cannot
// drain this many events is considered slow and further events are dropped;
// it re-syncs by re-fetching on its next refresh.
const sendBuffer = 16

// wsConn is the subset of the websocket connection used by a client, split
// out so tests can run the client without a real socket.
type wsConn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

// client adapts one websocket connection to the hub's Subscriber interface.
// All writes go through a single goroutine reading from send, so broadcast
// delivery never races the connection's write side.
type client struct {
	conn wsConn
	send chan Envelope
	done chan struct{}
}

func newClient(conn wsConn) *client {
	return &client{
		conn: conn,
		send: make(chan Envelope, sendBuffer),
		done: make(chan struct{}),
	}
}

// Notify queues an event for delivery. Never blocks: if the buffer is full
// the event is dropped (fire-and-forget delivery).
func (c *client) Notify(env Envelope) {
	select {
	case c.send <- env:
	case <-c.done:
	default:
	}
}

// writeLoop serializes all writes to the connection. It exits when the
// client is closed or a write fails.
func (c *client) writeLoop() {
	for {
		select {
		case env := <-c.send:
			if err := c.conn.WriteJSON(env); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *client) close() {
	close(c.done)
	_ = c.conn.Close()
}

// Upgrade gates the websocket route: non-upgrade requests get 426.
func Upgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// Handler returns the websocket handler for the realtime channel. Each
// connection reads join-document / leave-document envelopes and updates its
// hub membership; when the read side ends, for any reason, the connection is
// removed from all of its rooms.
func Handler(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		c := newClient(conn)
		go c.writeLoop()
		defer func() {
			hub.Disconnect(c)
			c.close()
		}()

		for {
			var env Envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			switch env.Event {
			case EventJoinDocument:
				hub.Join(c, env.DocumentID)
			case EventLeaveDocument:
				hub.Leave(c, env.DocumentID)
			}
			// Unknown events are ignored.
		}
	})
}
