// Package stats keeps per-chat, per-game play counters in memory.
package stats

import "sync"

// Entry holds the counters for one (chat, game) pair. Wins never exceeds
// Played.
type Entry struct {
	Played int
	Wins   int
}

// Store maps chat ID and game name to play counters. Entries are created
// lazily, incremented monotonically and never deleted.
type Store struct {
	mu     sync.RWMutex
	byChat map[int64]map[string]Entry
}

// NewStore creates an empty stats store.
func NewStore() *Store {
	return &Store{byChat: make(map[int64]map[string]Entry)}
}

// Record increments the played counter for the (chat, game) pair, and the
// wins counter if won. Always succeeds.
func (s *Store) Record(chatID int64, gameName string, won bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	games, ok := s.byChat[chatID]
	if !ok {
		games = make(map[string]Entry)
		s.byChat[chatID] = games
	}

	entry := games[gameName]
	entry.Played++
	if won {
		entry.Wins++
	}
	games[gameName] = entry
}

// Snapshot returns a copy of the chat's counters, empty if the chat has
// never played.
func (s *Store) Snapshot(chatID int64) map[string]Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Entry, len(s.byChat[chatID]))
	for name, entry := range s.byChat[chatID] {
		out[name] = entry
	}
	return out
}
