package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
	"github.com/md-rejoyan-islam/resume-builder-sub002/pkg/metrics"
)

var ErrSessionNotFound = errors.New("session not found")

type managed struct {
	mu sync.Mutex
	s  *Session
}

// Manager keeps the open editing sessions of this process. Each session has
// its own lock so slow saves on one document never block another.
type Manager struct {
	gw document.Gateway

	mu       sync.RWMutex
	sessions map[string]*managed
}

func NewManager(gw document.Gateway) *Manager {
	return &Manager{gw: gw, sessions: make(map[string]*managed)}
}

func (m *Manager) Gateway() document.Gateway { return m.gw }

// Open fetches the document, picks its schema by kind and starts a hydrated
// session. It returns the new session id.
func (m *Manager) Open(ctx context.Context, documentID string) (string, State, error) {
	snap, err := m.gw.Fetch(ctx, documentID)
	if err != nil {
		return "", State{}, fmt.Errorf("fetch %s: %w", documentID, err)
	}
	schema, err := document.SchemaFor(snap.Kind)
	if err != nil {
		return "", State{}, err
	}
	s := NewSession(schema, documentID)
	if err := s.hydrate(snap); err != nil {
		return "", State{}, err
	}

	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = &managed{s: s}
	n := len(m.sessions)
	m.mu.Unlock()
	metrics.OpenSessions.Inc()
	log.Infof("opened session %s for %s (%d open)", id, documentID, n)
	return id, s.State(), nil
}

// With runs fn while holding the session's lock.
func (m *Manager) With(id string, fn func(*Session) error) error {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.s)
}

// Close discards a session and any edits it has not saved.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	metrics.OpenSessions.Dec()
	log.Debugf("closed session %s", id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
