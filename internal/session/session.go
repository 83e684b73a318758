package session

import (
	"errors"
	"regexp"
	"sync"
)

// ErrInvalidModelID rejects model ids outside the Modal job-id alphabet.
var ErrInvalidModelID = errors.New("model IDs can only contain letters, numbers, dashes, and underscores")

var modelIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Session holds one user's model selection and generation parameters.
// An empty ModelID means the base (non-finetuned) model.
type Session struct {
	UserID      int64
	ModelID     string
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// Defaults seed newly created sessions.
type Defaults struct {
	ModelID     string
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// Manager keeps sessions per user. Sessions are created lazily and live for
// the process lifetime; there is no persistence.
type Manager struct {
	mu       sync.RWMutex
	defaults Defaults
	sessions map[int64]*Session
}

func NewManager(defaults Defaults) *Manager {
	return &Manager{
		defaults: defaults,
		sessions: make(map[int64]*Session),
	}
}

func (m *Manager) GetOrCreate(userID int64) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.getOrCreateLocked(userID)
}

func (m *Manager) getOrCreateLocked(userID int64) *Session {
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s := &Session{
		UserID:      userID,
		ModelID:     m.defaults.ModelID,
		Temperature: m.defaults.Temperature,
		MaxTokens:   m.defaults.MaxTokens,
		TopP:        m.defaults.TopP,
	}
	m.sessions[userID] = s
	return s
}

// SetModel validates and stores a model selection. On validation failure the
// previous selection is kept.
func (m *Manager) SetModel(userID int64, modelID string) error {
	if !modelIDRe.MatchString(modelID) {
		return ErrInvalidModelID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getOrCreateLocked(userID).ModelID = modelID
	return nil
}

// ClearModel switches the user back to the base model.
func (m *Manager) ClearModel(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getOrCreateLocked(userID).ModelID = ""
}

// Describe returns a read-only copy for status display.
func (m *Manager) Describe(userID int64) Session {
	return m.GetOrCreate(userID)
}
