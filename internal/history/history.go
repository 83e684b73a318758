package history

import (
	"sync"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Entry is one turn of a conversation.
type Entry struct {
	Role      string
	Content   string
	Timestamp time.Time
}

// Store keeps a bounded per-user transcript. It is an interface so a
// database-backed implementation can replace the in-memory one without
// touching the command router.
type Store interface {
	Append(userID int64, e Entry)
	Snapshot(userID int64) []Entry
	Clear(userID int64)
}

// Manager is the in-memory Store. Each user's transcript holds at most the
// limit's worth of entries; older turns are evicted front-first.
type Manager struct {
	mu       sync.RWMutex
	limit    int
	sessions map[int64][]Entry
}

func NewManager(limit int) *Manager {
	return &Manager{limit: limit, sessions: make(map[int64][]Entry)}
}

func (m *Manager) Append(userID int64, e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	es := append(m.sessions[userID], e)
	if n := len(es) - m.limit; n > 0 {
		es = es[n:]
	}
	m.sessions[userID] = es
}

// Snapshot returns a chronological copy, empty when the user has no history.
func (m *Manager) Snapshot(userID int64) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	es := m.sessions[userID]
	out := make([]Entry, len(es))
	copy(out, es)
	return out
}

func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
