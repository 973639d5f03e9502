package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Manager owns the live session snapshots. All accessors work on
// clones; callers mutate a clone and write it back with Save, so a
// half-applied turn never leaks into the shared map.
type Manager struct {
	mu                sync.RWMutex
	sessions          map[string]*Session
	inactivityTimeout time.Duration
	mirror            *Mirror
	onExpire          func(*Session)
}

func NewManager(inactivityTimeout time.Duration) *Manager {
	if inactivityTimeout <= 0 {
		inactivityTimeout = 30 * time.Minute
	}
	return &Manager{
		sessions:          make(map[string]*Session),
		inactivityTimeout: inactivityTimeout,
	}
}

// SetMirror attaches a best-effort external mirror for session state.
func (m *Manager) SetMirror(mirror *Mirror) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mirror = mirror
}

func (m *Manager) SetExpireHook(hook func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpire = hook
}

// Create starts a fresh session with a generated id.
func (m *Manager) Create(ctx context.Context) *Session {
	return m.create(ctx, uuid.NewString())
}

// Ensure returns the session with the given id, creating it if absent.
// Inbound turns carry caller-chosen session ids, so an unknown id
// starts a new conversation rather than failing.
func (m *Manager) Ensure(ctx context.Context, sessionID string) *Session {
	if sessionID == "" {
		return m.Create(ctx)
	}
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if ok {
		return clone(s)
	}
	return m.create(ctx, sessionID)
}

func (m *Manager) create(ctx context.Context, id string) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:             id,
		Status:         StatusActive,
		Slots:          make(map[string]string),
		Resumption:     ResumptionNone,
		StartedAt:      now,
		LastActivityAt: now,
	}

	m.mu.Lock()
	// Lost the race with a concurrent create for the same id.
	if existing, ok := m.sessions[id]; ok {
		s = existing
	} else {
		m.sessions[id] = s
	}
	mirror := m.mirror
	m.mu.Unlock()

	mirror.Store(ctx, s, m.inactivityTimeout)
	return clone(s)
}

func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(s), nil
}

// Save writes an updated snapshot back and bumps activity.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	if _, ok := m.sessions[s.ID]; !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	s.LastActivityAt = time.Now().UTC()
	m.sessions[s.ID] = clone(s)
	mirror := m.mirror
	m.mu.Unlock()

	mirror.Store(ctx, s, m.inactivityTimeout)
	return nil
}

func (m *Manager) End(ctx context.Context, sessionID string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	s.Status = StatusEnded
	s.LastActivityAt = time.Now().UTC()
	out := clone(s)
	mirror := m.mirror
	m.mu.Unlock()

	mirror.Remove(ctx, sessionID)
	return out, nil
}

func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.expireInactive(ctx)
			}
		}
	}()
}

func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, s := range m.sessions {
		if s.Status == StatusActive {
			count++
		}
	}
	return count
}

func (m *Manager) expireInactive(ctx context.Context) {
	now := time.Now().UTC()
	var expired []*Session

	m.mu.Lock()
	for id, s := range m.sessions {
		if s.Status == StatusActive && now.Sub(s.LastActivityAt) < m.inactivityTimeout {
			continue
		}
		if s.Status == StatusActive {
			s.Status = StatusEnded
			expired = append(expired, clone(s))
		}
		delete(m.sessions, id)
	}
	hook := m.onExpire
	mirror := m.mirror
	m.mu.Unlock()

	for _, s := range expired {
		mirror.Remove(ctx, s.ID)
		if hook != nil {
			hook(s)
		}
	}
}

func clone(s *Session) *Session {
	c := *s
	c.Slots = make(map[string]string, len(s.Slots))
	for k, v := range s.Slots {
		c.Slots[k] = v
	}
	return &c
}
