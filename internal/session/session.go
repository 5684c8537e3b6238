// Package session tracks the per-chat interaction state. A chat has at most
// one pending expectation at a time; starting any new game or quiz
// overwrites the prior session entirely.
package session

import (
	"sync"

	"telegram-quiz-bot/internal/game"
)

// State is the chat's current interaction mode.
type State int

const (
	// Idle means no answer is expected from the chat.
	Idle State = iota
	// AwaitingQuizAnswer means a topic quiz question is pending.
	AwaitingQuizAnswer
	// AwaitingGameAnswer means a mini-game round is pending; Game says which.
	AwaitingGameAnswer
)

// Session is the per-chat state machine instance. Game, Answer and Question
// are meaningful only in the awaiting variants.
type Session struct {
	FirstName string
	State     State
	Game      game.Kind
	Answer    string
	// Question keeps the generated prompt body for a potential resend; it is
	// not consulted when checking answers.
	Question string
}

// Store maps a chat ID to its current session. The map itself is guarded for
// concurrent access, but there is deliberately no cross-operation locking:
// Telegram delivers a chat's updates in order, and concurrent updates for
// different chats never touch the same key.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]Session)}
}

// Get returns the chat's session, or a zero session if none exists.
func (s *Store) Get(chatID int64) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[chatID]
}

// Set unconditionally overwrites the chat's session.
func (s *Store) Set(chatID int64, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = sess
}

// Clear removes the chat's session. Idempotent.
func (s *Store) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
