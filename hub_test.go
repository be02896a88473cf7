package server

import (
	"fmt"
	"testing"
)

func TestAssignRoomFillsInCreationOrder(t *testing.T) {
	cfg := DefaultConfig()
	hub := newTestHub(cfg)

	for i := 0; i < cfg.MaxPlayers; i++ {
		room := hub.assignRoom()
		if room.Number != 1 {
			t.Fatalf("connection %d placed in room %d, want 1", i+1, room.Number)
		}
		room.addPlayer(&fakeConn{})
	}

	overflow := hub.assignRoom()
	if overflow.Number != 2 {
		t.Fatalf("overflow placed in room %d, want 2", overflow.Number)
	}
}

func TestAssignRoomReusesFreedSlots(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPlayers = 1
	hub := newTestHub(cfg)

	room := hub.assignRoom()
	p := room.addPlayer(&fakeConn{})
	if second := hub.assignRoom(); second.Number != 2 {
		t.Fatalf("second room number = %d, want 2", second.Number)
	}

	room.removePlayer(p.ID)
	// Room 1 has a free slot again and wins by creation order.
	if again := hub.assignRoom(); again.Number != 1 {
		t.Fatalf("reassigned room = %d, want 1", again.Number)
	}
}

func TestAssignRoomHonorsMaxRooms(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPlayers = 1
	cfg.MaxRooms = 2
	hub := newTestHub(cfg)

	for i := 0; i < 2; i++ {
		room := hub.assignRoom()
		if room == nil {
			t.Fatalf("room %d not allocated", i+1)
		}
		room.addPlayer(&fakeConn{})
	}
	if room := hub.assignRoom(); room != nil {
		t.Fatalf("expected nil past the room cap, got room %d", room.Number)
	}
}

func TestWelcomeReportsSecondRoom(t *testing.T) {
	cfg := DefaultConfig()
	hub := newTestHub(cfg)

	for i := 0; i < cfg.MaxPlayers; i++ {
		if sess := hub.Connect(&fakeConn{}); sess == nil {
			t.Fatalf("connection %d rejected", i+1)
		}
	}

	conn := &fakeConn{}
	if sess := hub.Connect(conn); sess == nil {
		t.Fatal("overflow connection rejected")
	}
	welcome := conn.lastOfType(t, msgTypeWelcome)
	if got := welcome["room"].(float64); got != 2 {
		t.Fatalf("welcome room = %v, want 2", got)
	}
	if welcome["id"].(string) == "" {
		t.Fatal("welcome id empty")
	}
}

func TestConnectRejectsWhenEveryRoomIsFull(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPlayers = 1
	cfg.MaxRooms = 1
	hub := newTestHub(cfg)

	if sess := hub.Connect(&fakeConn{}); sess == nil {
		t.Fatal("first connection rejected")
	}

	conn := &fakeConn{}
	if sess := hub.Connect(conn); sess != nil {
		t.Fatal("expected rejection when full")
	}
	if msgs := conn.messagesOfType(t, msgTypeFull); len(msgs) != 1 {
		t.Fatalf("full notifications = %d, want 1", len(msgs))
	}
	if !conn.closed {
		t.Fatal("rejected connection left open")
	}
}

func TestRoomsAreNeverRemoved(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPlayers = 1
	hub := newTestHub(cfg)

	var sessions []*session
	for i := 0; i < 3; i++ {
		sess := hub.Connect(&fakeConn{})
		if sess == nil {
			t.Fatalf("connection %d rejected", i+1)
		}
		sessions = append(sessions, sess)
	}
	for _, sess := range sessions {
		sess.Disconnect()
	}

	if got := len(hub.roomList()); got != 3 {
		t.Fatalf("rooms after everyone left = %d, want 3", got)
	}
	for i, room := range hub.roomList() {
		if room.playerCount() != 0 {
			t.Fatalf("room %d still has players", i+1)
		}
	}
}

func TestHazardIDsAreMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	room, _, _ := quietRoom(t, cfg)
	room.lastSpawn = simBase

	seen := make(map[string]bool)
	now := simBase
	for i := 0; i < 5; i++ {
		now = now.Add(cfg.SpawnInterval())
		room.advance(now)
		for _, h := range room.hazards {
			seen[h.ID] = true
		}
	}
	for i := 1; i <= 5; i++ {
		if !seen[fmt.Sprintf("%d", i)] {
			t.Fatalf("missing hazard id %d (seen %v)", i, seen)
		}
	}
}
