package server

import "time"

// playerColors is cycled by join order when assigning a display color.
var playerColors = []string{"green", "blue", "red", "orange", "purple", "cyan", "magenta", "brown"}

// playerState is the authoritative per-player record. ID, Color, Label, and
// conn are fixed at join time; everything else is guarded by the room mutex.
type playerState struct {
	ID    string
	Token string

	X     float64
	Y     float64
	Angle float64

	Color string
	Label string

	Warnings int
	OutUntil time.Time
	Score    int

	conn Conn
}

// knockedOut reports whether the player is still serving an out period.
func (p *playerState) knockedOut(now time.Time) bool {
	return p.OutUntil.After(now)
}

func (p *playerState) snapshot() playerSnapshot {
	outUntil := int64(0)
	if !p.OutUntil.IsZero() {
		outUntil = p.OutUntil.UnixMilli()
	}
	return playerSnapshot{
		ID:       p.ID,
		X:        p.X,
		Y:        p.Y,
		Angle:    p.Angle,
		Color:    p.Color,
		Label:    p.Label,
		OutUntil: outUntil,
		Score:    p.Score,
	}
}
