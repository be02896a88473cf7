package server

import (
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

// fakeConn records everything sent so tests can assert on the outbound
// traffic without a network.
type fakeConn struct {
	mu          sync.Mutex
	sent        [][]byte
	closed      bool
	closeCode   int
	closeReason string
	failSends   bool
}

func (c *fakeConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSends {
		return errors.New("peer not ready")
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	c.sent = append(c.sent, buf)
	return nil
}

func (c *fakeConn) CloseWithStatus(code int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.closeCode = code
	c.closeReason = reason
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// messagesOfType decodes every sent frame and keeps those matching the given
// type discriminator.
func (c *fakeConn) messagesOfType(t *testing.T, msgType string) []map[string]any {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []map[string]any
	for _, data := range c.sent {
		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("undecodable frame %q: %v", data, err)
		}
		if decoded["type"] == msgType {
			out = append(out, decoded)
		}
	}
	return out
}

func (c *fakeConn) lastOfType(t *testing.T, msgType string) map[string]any {
	t.Helper()
	msgs := c.messagesOfType(t, msgType)
	if len(msgs) == 0 {
		t.Fatalf("no %q message sent", msgType)
	}
	return msgs[len(msgs)-1]
}

func newTestHub(cfg Config) *Hub {
	return NewHub(cfg, log.New(io.Discard))
}
