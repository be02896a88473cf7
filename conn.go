package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Conn is the outbound half of a connection as the rooms see it. Sessions and
// rooms never touch the websocket directly, which keeps them testable with
// in-memory fakes.
type Conn interface {
	Send(data []byte) error
	CloseWithStatus(code int, reason string) error
	Close() error
}

// wsConn wraps a websocket connection with a write mutex so the simulation
// tick, the reminder bot, and the session handler never interleave frames.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newWSConn(conn *websocket.Conn) *wsConn {
	return &wsConn{conn: conn}
}

func (c *wsConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// CloseWithStatus sends a close frame carrying an application status code
// before tearing the connection down.
func (c *wsConn) CloseWithStatus(code int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	deadline := time.Now().Add(writeWait)
	message := websocket.FormatCloseMessage(code, reason)
	c.conn.WriteControl(websocket.CloseMessage, message, deadline)
	return c.conn.Close()
}

func (c *wsConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}
