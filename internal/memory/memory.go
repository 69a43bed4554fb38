package memory

import "sync"

// Turn is one delivered user-message/agent-reply pair.
type Turn struct {
	User  string
	Agent string
}

// Manager keeps a bounded per-chat window of conversation turns. It is
// advisory context for the responder, not a ledger: concurrent appends
// on the same chat may interleave, bounded by the eviction window.
type Manager struct {
	mu     sync.RWMutex
	window int
	chats  map[string][]Turn
}

func NewManager(window int) *Manager {
	if window <= 0 {
		window = 10
	}
	return &Manager{window: window, chats: make(map[string][]Turn)}
}

// Append records a delivered exchange, evicting the oldest turns once
// the window is exceeded.
func (m *Manager) Append(chatID, user, agent string) {
	if chatID == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	turns := append(m.chats[chatID], Turn{User: user, Agent: agent})
	if len(turns) > m.window {
		turns = append(turns[:0:0], turns[len(turns)-m.window:]...)
	}
	m.chats[chatID] = turns
}

// Recent returns a copy of the chat's retained turns, oldest first.
func (m *Manager) Recent(chatID string) []Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	turns := m.chats[chatID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

func (m *Manager) Reset(chatID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.chats, chatID)
}
