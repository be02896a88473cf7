package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler serves the websocket endpoint plus a plain liveness response so
// hosting platforms see a responding port.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/diagnostics", h.serveDiagnostics)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("WebSocket server running"))
	})
	return mux
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	sess := h.Connect(newWSConn(conn))
	if sess == nil {
		return
	}
	defer sess.Disconnect()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		sess.HandleMessage(payload)
	}
}

type diagnosticsRoom struct {
	Room    int `json:"room"`
	Players int `json:"players"`
	Hazards int `json:"hazards"`
}

func (h *Hub) serveDiagnostics(w http.ResponseWriter, r *http.Request) {
	rooms := make([]diagnosticsRoom, 0)
	for _, room := range h.roomList() {
		rooms = append(rooms, diagnosticsRoom{
			Room:    room.Number,
			Players: room.playerCount(),
			Hazards: room.hazardCount(),
		})
	}

	payload := struct {
		Status     string            `json:"status"`
		ServerTime int64             `json:"serverTime"`
		TickMS     int               `json:"tickMs"`
		Rooms      []diagnosticsRoom `json:"rooms"`
	}{
		Status:     "ok",
		ServerTime: time.Now().UnixMilli(),
		TickMS:     h.cfg.TickMS,
		Rooms:      rooms,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
