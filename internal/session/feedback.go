package session

import "sync"

// FeedbackStore marks chats whose next free-text message is feedback for the
// operator rather than a game move. The mark is consumed exactly once, by
// the next inbound message from that chat, regardless of its content.
type FeedbackStore struct {
	mu      sync.Mutex
	pending map[int64]bool
}

// NewFeedbackStore creates an empty feedback store.
func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{pending: make(map[int64]bool)}
}

// Set marks the chat's next message as feedback.
func (f *FeedbackStore) Set(chatID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending[chatID] = true
}

// Consume clears the mark and reports whether it was set.
func (f *FeedbackStore) Consume(chatID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	was := f.pending[chatID]
	delete(f.pending, chatID)
	return was
}
