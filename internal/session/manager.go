package session

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/ugaemi/tiltball-server/internal/game"
	"github.com/ugaemi/tiltball-server/internal/ws"
)

var (
	// ErrTooManySessions is returned when the manager is at capacity.
	ErrTooManySessions = errors.New("too many active sessions")
	// ErrSessionExists is returned when a client already owns a session.
	ErrSessionExists = errors.New("client already has a session")
)

// Manager manages all active sessions.
type Manager struct {
	sessions map[string]*Session // id -> session
	byClient map[string]string   // client id -> session id
	limit    int
	mu       sync.RWMutex
}

// NewManager creates a session manager holding at most limit sessions.
// A non-positive limit uses game.MaxSessions.
func NewManager(limit int) *Manager {
	if limit <= 0 {
		limit = game.MaxSessions
	}
	return &Manager{
		sessions: make(map[string]*Session),
		byClient: make(map[string]string),
		limit:    limit,
	}
}

// Create registers a new session for client.
func (m *Manager) Create(player *game.Player, client *ws.Client, opts Options) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byClient[client.ID]; ok {
		return nil, ErrSessionExists
	}
	if len(m.sessions) >= m.limit {
		return nil, ErrTooManySessions
	}

	s := New(player, client, opts)
	m.sessions[s.ID] = s
	m.byClient[client.ID] = s.ID

	slog.Info("session created", "session", s.ID, "client", client.ID, "ball_size", player.BallSize.String())
	return s, nil
}

// Get returns a session by its ID.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// FindByClient returns the session owned by a client, or nil.
func (m *Manager) FindByClient(clientID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byClient[clientID]
	if !ok {
		return nil
	}
	return m.sessions[id]
}

// Remove stops and forgets a session.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
		delete(m.byClient, s.client.ID)
	}
	m.mu.Unlock()

	if ok {
		s.Stop()
		slog.Info("session removed", "session", id)
	}
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
