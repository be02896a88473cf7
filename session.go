package server

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"sword-arena/server/moderation"
)

const (
	maxTokenLen = 80

	// closeStatusKicked is the application close code sent when a player is
	// removed for repeated chat violations.
	closeStatusKicked = 4001
)

// session ties one connection to its player and room for the lifetime of the
// connection. A new connection is always a new player; only the score token
// survives reconnects.
type session struct {
	hub    *Hub
	room   *Room
	player *playerState
	conn   Conn
	logger *log.Logger

	closeOnce sync.Once
}

// Connect assigns the connection to a room, creates its player, and runs the
// onboarding sequence: welcome, join announcement, immediate state broadcast.
// Returns nil when every room is full; the connection is then already
// notified and closed.
func (h *Hub) Connect(conn Conn) *session {
	room := h.assignRoom()
	if room == nil {
		if data, err := json.Marshal(fullMessage{Type: msgTypeFull}); err == nil {
			conn.Send(data)
		}
		conn.Close()
		return nil
	}

	player := room.addPlayer(conn)
	sess := &session{
		hub:    h,
		room:   room,
		player: player,
		conn:   conn,
		logger: room.logger.With("player", player.Label),
	}

	welcome := welcomeMessage{Type: msgTypeWelcome, ID: player.ID, Room: room.Number}
	if data, err := json.Marshal(welcome); err == nil {
		if err := conn.Send(data); err != nil {
			sess.logger.Debug("welcome not delivered", "err", err)
		}
	}

	room.broadcastChat(serverName, fmt.Sprintf("%s joined (Room %d)", player.Label, room.Number))
	room.broadcastState()
	sess.logger.Info("player joined")
	return sess
}

// HandleMessage dispatches one inbound frame. Unparseable envelopes and
// unknown types are dropped without any reply.
func (s *session) HandleMessage(data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.logger.Debug("dropping malformed message", "err", err)
		return
	}

	switch msg.Type {
	case msgTypeHello:
		s.handleHello(msg)
	case msgTypeMove:
		s.handleMove(msg)
	case msgTypeChat:
		s.handleChat(msg)
	}
}

func (s *session) handleHello(msg clientMessage) {
	token := msg.Token
	if runes := []rune(token); len(runes) > maxTokenLen {
		token = string(runes[:maxTokenLen])
	}
	if token == "" {
		return
	}

	score, ok := s.room.identify(s.player.ID, token)
	if !ok {
		return
	}
	if data, err := json.Marshal(scoreMessage{Type: msgTypeScore, Score: score}); err == nil {
		s.conn.Send(data)
	}
}

func (s *session) handleMove(msg clientMessage) {
	s.room.applyMove(s.player.ID, float64(msg.X), float64(msg.Y), float64(msg.Angle), time.Now())
}

func (s *session) handleChat(msg clientMessage) {
	masked := moderation.Mask(msg.Text)
	if strings.TrimSpace(masked) == "" {
		return
	}

	s.room.broadcastChat(s.player.Label, masked)

	if !moderation.ContainsViolation(msg.Text) {
		return
	}

	warnings, kicked := s.room.recordViolation(s.player.ID)
	if kicked {
		s.room.broadcastChat(botName, fmt.Sprintf("%s was kicked (%d warnings).", s.player.Label, warnings))
		s.logger.Info("kicking player", "warnings", warnings)
		s.conn.CloseWithStatus(closeStatusKicked, "Kicked for swearing")
		return
	}
	s.room.broadcastChat(botName, fmt.Sprintf("%s, please do not swear. Warning %d/%d.", s.player.Label, warnings, s.room.cfg.WarningLimit))
}

// Disconnect removes the player and announces the departure. Idempotent, and
// safe to run while a tick still references the departing player.
func (s *session) Disconnect() {
	s.closeOnce.Do(func() {
		removed := s.room.removePlayer(s.player.ID)
		s.conn.Close()
		if removed {
			s.room.broadcastChat(serverName, fmt.Sprintf("%s left", s.player.Label))
			s.room.broadcastState()
			s.logger.Info("player left")
		}
	})
}
