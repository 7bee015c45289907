package session

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/rename"
	"github.com/google/uuid"
)

// Manager tracks open renaming sessions. Safe for concurrent use.
type Manager struct {
	source    ports.IDSource
	newSource func(sessionID string) (ports.IDSource, error) // Optional per-session source (isolation)

	mu       sync.RWMutex
	sessions map[string]*rename.Session
	owned    map[string]io.Closer // isolated sources to release on Close

	logger  *slog.Logger
	metrics *observability.Metrics
	newID   func() string
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager and the sessions it opens.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithMetrics records session counts and renaming activity.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

// WithIsolation gives every session its own source from factory instead of
// the shared one. Integers of different sessions may then overlap.
func WithIsolation(factory func(sessionID string) (ports.IDSource, error)) Option {
	return func(m *Manager) {
		m.newSource = factory
	}
}

// WithIDGenerator overrides how IDs are generated for sessions opened without one.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a Manager whose sessions draw from source.
func NewManager(source ports.IDSource, opts ...Option) *Manager {
	m := &Manager{
		source:   source,
		sessions: make(map[string]*rename.Session),
		owned:    make(map[string]io.Closer),
		logger:   logging.NewNop(), // Default to no-op
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open starts a new session under sessionID, or under a generated ID when
// sessionID is empty. It returns the ID actually used.
func (m *Manager) Open(sessionID string) (string, *rename.Session, error) {
	if sessionID == "" {
		sessionID = m.newID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[sessionID]; exists {
		return "", nil, fmt.Errorf("open %s: %w", sessionID, ErrSessionExists)
	}

	source := m.source
	if m.newSource != nil {
		var err error
		if source, err = m.newSource(sessionID); err != nil {
			return "", nil, fmt.Errorf("open %s: %w", sessionID, err)
		}
		if c, ok := source.(io.Closer); ok {
			m.owned[sessionID] = c
		}
	}
	s := rename.New(source,
		rename.WithLogger(m.logger.With("session_id", sessionID)),
		rename.WithMetrics(m.metrics),
	)
	m.sessions[sessionID] = s
	m.metrics.SessionOpened()
	m.logger.Debug("session opened", "session_id", sessionID)
	return sessionID, s, nil
}

// Get returns the open session with the given ID.
func (m *Manager) Get(sessionID string) (*rename.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", sessionID, ErrSessionNotFound)
	}
	return s, nil
}

// Rename renames keys, in order, within the given session.
func (m *Manager) Rename(sessionID string, keys ...any) ([]int, error) {
	s, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(keys))
	for _, k := range keys {
		id, err := s.Rename(k)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Close discards a session. Its integers stay consumed on the source; a
// source created for an isolated session is closed with it.
func (m *Manager) Close(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return fmt.Errorf("close %s: %w", sessionID, ErrSessionNotFound)
	}
	delete(m.sessions, sessionID)
	if c, ok := m.owned[sessionID]; ok {
		delete(m.owned, sessionID)
		if err := c.Close(); err != nil {
			m.logger.Warn("failed to release session source", "session_id", sessionID, "error", err)
		}
	}
	m.metrics.SessionClosed()
	m.logger.Debug("session closed", "session_id", sessionID)
	return nil
}

// List returns the IDs of open sessions, sorted.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
