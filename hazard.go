package server

import (
	"math"
	"strconv"
	"time"
)

// edgeSpawnOffset places new hazards just outside the visible board.
const edgeSpawnOffset = 20.0

// hazard is a server-simulated enemy. Velocity is fixed at spawn time; the
// position is unbounded until the cull pass drops it.
type hazard struct {
	ID   string
	X    float64
	Y    float64
	VX   float64
	VY   float64
	Size float64
}

func (h *hazard) snapshot() hazardSnapshot {
	return hazardSnapshot{ID: h.ID, X: h.X, Y: h.Y, VX: h.VX, VY: h.VY, Size: h.Size}
}

// spawnHazardLocked creates one hazard at a uniformly chosen board edge,
// aimed at a randomized point within a small box around board center, moving
// at the configured fixed speed. Caller holds the room mutex.
func (r *Room) spawnHazardLocked(now time.Time) {
	cfg := r.cfg

	var x, y float64
	switch r.rng.Intn(4) {
	case 0: // top
		x = r.rng.Float64() * cfg.BoardWidth
		y = -edgeSpawnOffset
	case 1: // right
		x = cfg.BoardWidth + edgeSpawnOffset
		y = r.rng.Float64() * cfg.BoardHeight
	case 2: // bottom
		x = r.rng.Float64() * cfg.BoardWidth
		y = cfg.BoardHeight + edgeSpawnOffset
	case 3: // left
		x = -edgeSpawnOffset
		y = r.rng.Float64() * cfg.BoardHeight
	}

	tx := cfg.BoardWidth*0.5 + (r.rng.Float64()*140 - 70)
	ty := cfg.BoardHeight*0.5 + (r.rng.Float64()*140 - 70)

	dx := tx - x
	dy := ty - y
	length := math.Hypot(dx, dy)
	if length == 0 {
		length = 1
	}

	r.nextHazardID++
	r.hazards = append(r.hazards, &hazard{
		ID:   strconv.FormatUint(r.nextHazardID, 10),
		X:    x,
		Y:    y,
		VX:   dx / length * cfg.HazardSpeed,
		VY:   dy / length * cfg.HazardSpeed,
		Size: cfg.HazardSize,
	})
	r.lastSpawn = now
}

// swordTip returns the point a fixed reach ahead of the player along its
// facing angle.
func swordTip(p *playerState, reach float64) (float64, float64) {
	return p.X + math.Cos(p.Angle)*reach, p.Y + math.Sin(p.Angle)*reach
}
