package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"

	chat "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/domain"
)

// Conn is the transport surface the registry tracks. *Connection satisfies
// it; tests substitute fakes.
type Conn interface {
	Send(payload []byte) error
	Close(code int, reason string)
}

// Session binds one live connection to the participant authenticated at
// upgrade time. The participant is authoritative for every frame sent over
// this session; payload-claimed identities are ignored.
type Session struct {
	ID          string
	Participant chat.Participant
	Conn        Conn
	CreatedAt   time.Time
}

// NewSession constructs a Session with a fresh handle.
func NewSession(p chat.Participant, conn Conn) *Session {
	return &Session{
		ID:          uuid.NewString(),
		Participant: p,
		Conn:        conn,
		CreatedAt:   time.Now(),
	}
}

// Registry is the authoritative participant -> live session map and the
// source of truth for presence. At most one session per participant: a later
// Register supersedes an earlier one for the same participant.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session // participant key -> session
}

// NewRegistry constructs an initialized Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Register inserts or replaces the session for its participant and returns
// the superseded session, if any. The caller is responsible for closing the
// returned session so the close happens outside the registry lock.
func (r *Registry) Register(s *Session) (prev *Session) {
	key := s.Participant.Key()

	r.mu.Lock()
	prev = r.sessions[key]
	r.sessions[key] = s
	r.mu.Unlock()

	if prev == s {
		return nil
	}
	return prev
}

// Lookup returns the live session for the participant, if any.
func (r *Registry) Lookup(p chat.Participant) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[p.Key()]
	r.mu.RUnlock()
	return s, ok
}

// Unregister removes the session if it is still the current entry for its
// participant. Removing an already-absent or superseded session is a no-op,
// so disconnect handlers for a stale socket never evict the live one.
// Returns true when an entry was actually removed.
func (r *Registry) Unregister(s *Session) bool {
	if s == nil {
		return false
	}
	key := s.Participant.Key()

	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.sessions[key]
	if !ok || current.ID != s.ID {
		return false
	}
	delete(r.sessions, key)
	return true
}

// Snapshot returns the currently registered sessions. Used for best-effort
// presence fan-out; the slice is a copy and safe to range over without locks.
func (r *Registry) Snapshot() []*Session {
	r.mu.RLock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	r.mu.RUnlock()
	return out
}

// Len reports the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	n := len(r.sessions)
	r.mu.RUnlock()
	return n
}

// Close terminates all tracked sessions and clears registry state.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Conn.Close(1001, "registry shutdown")
	}
}
