// Package scores keeps the process-wide score table keyed by player token.
package scores

import (
	"sort"
	"sync"
)

// Entry is one leaderboard row.
type Entry struct {
	Token string `json:"token"`
	Score int    `json:"score"`
}

// Ledger maps opaque client tokens to accumulated scores. It is shared by
// every room and must stay consistent under concurrent tick updates. Entries
// never expire and only live for the process lifetime.
type Ledger struct {
	mu      sync.RWMutex
	byToken map[string]int
}

func NewLedger() *Ledger {
	return &Ledger{byToken: make(map[string]int)}
}

// Get returns the stored score for token, or 0 when absent. A lookup never
// creates an entry.
func (l *Ledger) Get(token string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.byToken[token]
}

// Set stores score for token, creating the entry if needed.
func (l *Ledger) Set(token string, score int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byToken[token] = score
}

// Leaderboard returns up to limit entries ordered by descending score. Ties
// break on token so the ordering is stable across calls.
func (l *Ledger) Leaderboard(limit int) []Entry {
	l.mu.RLock()
	entries := make([]Entry, 0, len(l.byToken))
	for token, score := range l.byToken {
		entries = append(entries, Entry{Token: token, Score: score})
	}
	l.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Token < entries[j].Token
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
