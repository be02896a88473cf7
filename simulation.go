package server

import (
	"fmt"
	"time"
)

const (
	serverName = "Server"
	botName    = "ServerBot"
)

// advance runs one simulation step for the room: spawn, move, cull, resolve
// sword kills, resolve knockouts. It returns the chat announcements produced
// by the step; the caller broadcasts them together with the fresh state.
//
// Kills resolve before knockouts on purpose: an active player can be credited
// with a kill and still be knocked out by a different hazard later in the
// same tick.
func (r *Room) advance(now time.Time) []chatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	var announcements []chatMessage

	// Spawn one hazard per interval while under the cap.
	if len(r.hazards) < r.cfg.MaxHazards && now.Sub(r.lastSpawn) >= r.cfg.SpawnInterval() {
		r.spawnHazardLocked(now)
	}

	for _, h := range r.hazards {
		h.X += h.VX
		h.Y += h.VY
	}

	// Hazards may fly outside the board within the cull margin.
	kept := r.hazards[:0]
	for _, h := range r.hazards {
		if h.X > -r.cfg.CullMargin && h.X < r.cfg.BoardWidth+r.cfg.CullMargin &&
			h.Y > -r.cfg.CullMargin && h.Y < r.cfg.BoardHeight+r.cfg.CullMargin {
			kept = append(kept, h)
		}
	}
	r.hazards = kept

	// Sword kills. Players are scanned in join order; the first whose sword
	// tip reaches the hazard gets the credit, one credit per hazard per tick.
	remaining := make([]*hazard, 0, len(r.hazards))
	for _, h := range r.hazards {
		var killer *playerState
		for _, id := range r.order {
			p := r.players[id]
			if p.knockedOut(now) {
				continue
			}
			tx, ty := swordTip(p, r.cfg.SwordReach)
			if dist(tx, ty, h.X, h.Y) <= h.Size+r.cfg.SwordHitRadius {
				killer = p
				break
			}
		}
		if killer == nil {
			remaining = append(remaining, h)
			continue
		}
		killer.Score++
		if killer.Token != "" {
			r.ledger.Set(killer.Token, killer.Score)
		}
		announcements = append(announcements, chatMessage{
			Type: msgTypeChat,
			From: botName,
			Text: fmt.Sprintf("%s killed an enemy! (+1)", killer.Label),
		})
	}
	r.hazards = remaining

	// Knockouts. At most one per player per tick; the player is reset to
	// board center and ignores input until the out period expires.
	for _, id := range r.order {
		p := r.players[id]
		if p.knockedOut(now) {
			continue
		}
		for _, h := range r.hazards {
			if dist(p.X, p.Y, h.X, h.Y) <= r.cfg.PlayerHitRadius+h.Size {
				p.OutUntil = now.Add(r.cfg.OutDuration())
				p.X = r.cfg.BoardWidth / 2
				p.Y = r.cfg.BoardHeight / 2
				p.Angle = 0
				announcements = append(announcements, chatMessage{
					Type: msgTypeChat,
					From: botName,
					Text: fmt.Sprintf("%s is OUT for %d seconds!", p.Label, int(r.cfg.OutDuration().Seconds())),
				})
				break
			}
		}
	}

	return announcements
}

// step advances one room and broadcasts the results.
func (h *Hub) step(r *Room, now time.Time) {
	for _, msg := range r.advance(now) {
		r.broadcast(msg)
	}
	r.broadcastState()
}

// RunSimulation drives every non-empty room at the fixed tick rate until the
// stop channel closes. Empty rooms stay allocated but are skipped.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(h.cfg.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			for _, room := range h.roomList() {
				if room.playerCount() == 0 {
					continue
				}
				h.step(room, now)
			}
		}
	}
}
