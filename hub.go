package server

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"sword-arena/server/scores"
)

// Hub owns the room registry, the shared score ledger, and the periodic
// tasks. Rooms are created on demand and never removed; empty rooms idle.
type Hub struct {
	cfg    Config
	logger *log.Logger
	ledger *scores.Ledger

	mu    sync.Mutex
	rooms []*Room
	rng   *rand.Rand
}

func NewHub(cfg Config, logger *log.Logger) *Hub {
	return &Hub{
		cfg:    cfg,
		logger: logger,
		ledger: scores.NewLedger(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// assignRoom returns the first room in creation order with a free slot,
// creating a new one when every existing room is full. Returns nil only when
// a max_rooms cap is configured and exhausted.
func (h *Hub) assignRoom() *Room {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, room := range h.rooms {
		if room.playerCount() < h.cfg.MaxPlayers {
			return room
		}
	}
	if h.cfg.MaxRooms > 0 && len(h.rooms) >= h.cfg.MaxRooms {
		return nil
	}

	number := len(h.rooms) + 1
	room := newRoom(
		number,
		h.cfg,
		h.ledger,
		h.logger.With("room", number),
		rand.New(rand.NewSource(h.rng.Int63())),
	)
	h.rooms = append(h.rooms, room)
	h.logger.Info("created room", "room", number)
	return room
}

// roomList copies the registry for lock-free iteration by the timers.
func (h *Hub) roomList() []*Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Room, len(h.rooms))
	copy(out, h.rooms)
	return out
}

// Ledger exposes the shared score table.
func (h *Hub) Ledger() *scores.Ledger {
	return h.ledger
}
