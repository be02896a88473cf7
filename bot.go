package server

import (
	"math/rand"
	"time"
)

// reminderMessages is the fixed pool the bot draws from. Purely cosmetic.
var reminderMessages = []string{
	"Reminder: Please be respectful. No swearing.",
	"Keep it friendly 🙂",
	"Chat rules: be kind and respectful.",
	"No bad words please.",
}

// RunReminderBot periodically drops one random reminder into every non-empty
// room under the bot identity. It carries no state between runs.
func (h *Hub) RunReminderBot(stop <-chan struct{}) {
	ticker := time.NewTicker(h.cfg.BotInterval())
	defer ticker.Stop()

	// Own source: the hub rng belongs to room assignment.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			for _, room := range h.roomList() {
				if room.playerCount() == 0 {
					continue
				}
				room.broadcastChat(botName, reminderMessages[rng.Intn(len(reminderMessages))])
			}
		}
	}
}
