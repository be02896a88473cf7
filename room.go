package server

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"sword-arena/server/scores"
)

// Room is one independently simulated arena. All mutable state is guarded by
// mu; sends happen outside the lock and are best-effort. Players are scanned
// in join order so collision tie-breaks stay deterministic.
type Room struct {
	Number int

	mu           sync.Mutex
	cfg          Config
	ledger       *scores.Ledger
	logger       *log.Logger
	rng          *rand.Rand
	players      map[string]*playerState
	order        []string
	hazards      []*hazard
	nextHazardID uint64
	lastSpawn    time.Time
}

func newRoom(number int, cfg Config, ledger *scores.Ledger, logger *log.Logger, rng *rand.Rand) *Room {
	return &Room{
		Number:  number,
		cfg:     cfg,
		ledger:  ledger,
		logger:  logger,
		rng:     rng,
		players: make(map[string]*playerState),
	}
}

func (r *Room) playerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

func (r *Room) hazardCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hazards)
}

// addPlayer registers a new player at board center with a color and label
// derived from the current occupancy index.
func (r *Room) addPlayer(conn Conn) *playerState {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := len(r.players)
	p := &playerState{
		ID:    uuid.NewString(),
		X:     r.cfg.BoardWidth / 2,
		Y:     r.cfg.BoardHeight / 2,
		Color: playerColors[index%len(playerColors)],
		Label: fmt.Sprintf("Player%d", index+1),
		conn:  conn,
	}
	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
	return p
}

// removePlayer drops a player from the room. It is safe to call while a tick
// is in flight and safe to call twice; the second call is a no-op.
func (r *Room) removePlayer(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return false
	}
	delete(r.players, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// identify attaches a score token to the player and seeds its in-memory
// score from the ledger. Last write wins.
func (r *Room) identify(id, token string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return 0, false
	}
	p.Token = token
	p.Score = r.ledger.Get(token)
	return p.Score, true
}

// applyMove clamps the submitted position onto the board and stores it along
// with the facing angle. Moves are dropped entirely while knocked out.
func (r *Room) applyMove(id string, x, y, angle float64, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok || p.knockedOut(now) {
		return false
	}
	p.X = clampFloat(x, 0, r.cfg.BoardWidth)
	p.Y = clampFloat(y, 0, r.cfg.BoardHeight)
	p.Angle = angle
	return true
}

// recordViolation bumps the warning counter and reports whether the player
// reached the kick threshold.
func (r *Room) recordViolation(id string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return 0, false
	}
	p.Warnings++
	return p.Warnings, p.Warnings >= r.cfg.WarningLimit
}

// conns copies the outbound connections in join order.
func (r *Room) conns() []Conn {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Conn, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id].conn)
	}
	return out
}

// broadcast fans a payload out to every connected peer. Sends are best
// effort: a peer that is not ready is skipped, never retried, and never
// stalls the room.
func (r *Room) broadcast(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("marshaling broadcast payload", "err", err)
		return
	}
	for _, conn := range r.conns() {
		if err := conn.Send(data); err != nil {
			r.logger.Debug("skipping unreachable peer", "err", err)
		}
	}
}

func (r *Room) broadcastChat(from, text string) {
	r.broadcast(chatMessage{Type: msgTypeChat, From: from, Text: text})
}

func (r *Room) broadcastState() {
	r.broadcast(r.stateSnapshot())
}

// stateSnapshot serializes the full room state: every player, every hazard,
// and the capped global leaderboard.
func (r *Room) stateSnapshot() stateMessage {
	r.mu.Lock()
	players := make([]playerSnapshot, 0, len(r.order))
	for _, id := range r.order {
		players = append(players, r.players[id].snapshot())
	}
	hazards := make([]hazardSnapshot, 0, len(r.hazards))
	for _, h := range r.hazards {
		hazards = append(hazards, h.snapshot())
	}
	r.mu.Unlock()

	return stateMessage{
		Type:        msgTypeState,
		Players:     players,
		Hazards:     hazards,
		Leaderboard: r.ledger.Leaderboard(r.cfg.LeaderboardSize),
	}
}
