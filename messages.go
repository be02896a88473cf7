package server

import (
	"encoding/json"
	"math"
	"strconv"

	"sword-arena/server/scores"
)

const (
	msgTypeHello   = "hello"
	msgTypeMove    = "move"
	msgTypeChat    = "chat"
	msgTypeWelcome = "welcome"
	msgTypeState   = "state"
	msgTypeScore   = "score"
	msgTypeFull    = "full"
)

// clientMessage is the inbound envelope. Every variant shares it; fields that
// do not apply to a given type are simply left at their zero values.
type clientMessage struct {
	Type  string      `json:"type"`
	Token string      `json:"token"`
	Text  string      `json:"text"`
	X     looseNumber `json:"x"`
	Y     looseNumber `json:"y"`
	Angle looseNumber `json:"angle"`
}

// looseNumber coerces the way browser clients do: JSON numbers pass through,
// numeric strings are parsed, and anything else (including NaN/Inf) becomes 0.
// A field that fails to coerce never rejects the whole message.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	*n = 0
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = sanitizedLoose(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*n = sanitizedLoose(f)
		}
	}
	return nil
}

func sanitizedLoose(f float64) looseNumber {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return looseNumber(f)
}

type welcomeMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Room int    `json:"room"`
}

type scoreMessage struct {
	Type  string `json:"type"`
	Score int    `json:"score"`
}

type chatMessage struct {
	Type string `json:"type"`
	From string `json:"from"`
	Text string `json:"text"`
}

type fullMessage struct {
	Type string `json:"type"`
}

type stateMessage struct {
	Type        string           `json:"type"`
	Players     []playerSnapshot `json:"players"`
	Hazards     []hazardSnapshot `json:"hazards"`
	Leaderboard []scores.Entry   `json:"leaderboard,omitempty"`
}

type playerSnapshot struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Angle    float64 `json:"angle"`
	Color    string  `json:"color"`
	Label    string  `json:"label"`
	OutUntil int64   `json:"outUntil"`
	Score    int     `json:"score"`
}

type hazardSnapshot struct {
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
	Size float64 `json:"size"`
}
