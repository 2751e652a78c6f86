package sessions

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iammorganparry/clive/apps/uigen/internal/models"
)

// Session is a copy of one session's state. Mutating it does not affect the store.
type Session struct {
	ID         string
	History    []models.Message
	LastActive time.Time
	Artifact   string
}

type entry struct {
	history    []models.Message
	lastActive time.Time
	artifact   string
}

// Store is the authoritative in-memory session map. Every method is safe for
// concurrent use and atomic on its own; callers that need a read-modify-write
// sequence across calls hold the per-session Lock.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	locks    map[string]*sessionLock
	keep     int
	now      func() time.Time
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewStore creates an empty store that retains the last keep history entries
// after AppendAndTrim. keep < 1 is treated as 1.
func NewStore(keep int) *Store {
	if keep < 1 {
		keep = 1
	}
	return &Store{
		sessions: make(map[string]*entry),
		locks:    make(map[string]*sessionLock),
		keep:     keep,
		now:      time.Now,
	}
}

// GetOrCreate returns the session for id, creating an empty one if id is
// unknown. An empty id gets a freshly generated one.
func (s *Store) GetOrCreate(id string) (string, Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = uuid.New().String()
	}
	e, ok := s.sessions[id]
	if !ok {
		e = &entry{history: []models.Message{}, lastActive: s.now()}
		s.sessions[id] = e
	}
	return id, e.session(id)
}

// Get returns the session for id without creating it.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return e.session(id), true
}

// Exists reports whether id is live in the store.
func (s *Store) Exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	return ok
}

// Touch marks the session active now.
func (s *Store) Touch(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return false
	}
	e.lastActive = s.now()
	return true
}

// Append adds a message to the end of the history without trimming.
func (s *Store) Append(id string, role models.Role, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return false
	}
	e.history = append(e.history, models.Message{Role: role, Text: text})
	return true
}

// AppendAndTrim adds a message and then drops everything but the most recent
// keep entries.
func (s *Store) AppendAndTrim(id string, role models.Role, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return false
	}
	e.history = append(e.history, models.Message{Role: role, Text: text})
	s.trim(e)
	return true
}

// Trim drops everything but the most recent keep history entries.
func (s *Store) Trim(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return false
	}
	s.trim(e)
	return true
}

func (s *Store) trim(e *entry) {
	if n := len(e.history); n > s.keep {
		trimmed := make([]models.Message, s.keep)
		copy(trimmed, e.history[n-s.keep:])
		e.history = trimmed
	}
}

// History returns a copy of the session history, oldest first.
func (s *Store) History(id string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil
	}
	return copyHistory(e.history)
}

// SetArtifact replaces the session's last generated component.
func (s *Store) SetArtifact(id, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return false
	}
	e.artifact = code
	return true
}

// Artifact returns the last generated component, or "" if none.
func (s *Store) Artifact(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[id]; ok {
		return e.artifact
	}
	return ""
}

// Snapshot copies the persistable part of a session.
func (s *Store) Snapshot(id string) (*models.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return &models.Snapshot{
		History:   copyHistory(e.history),
		Component: e.artifact,
	}, true
}

// Restore installs a snapshot under id, replacing any live state, and marks
// the session active now.
func (s *Store) Restore(id string, snap *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := copyHistory(snap.History)
	if history == nil {
		history = []models.Message{}
	}
	s.sessions[id] = &entry{
		history:    history,
		lastActive: s.now(),
		artifact:   snap.Component,
	}
}

// Delete removes a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Expire removes every session last active before cutoff and returns their ids, sorted.
func (s *Store) Expire(cutoff time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for id, e := range s.sessions {
		if e.lastActive.Before(cutoff) {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// List summarizes live sessions, most recently active first.
func (s *Store) List() []models.SessionSummary {
	s.mu.Lock()
	out := make([]models.SessionSummary, 0, len(s.sessions))
	for id, e := range s.sessions {
		out = append(out, models.SessionSummary{
			ID:           id,
			LastActive:   e.lastActive,
			HistoryLen:   len(e.history),
			HasComponent: e.artifact != "",
		})
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].LastActive.Equal(out[j].LastActive) {
			return out[i].ID < out[j].ID
		}
		return out[i].LastActive.After(out[j].LastActive)
	})
	return out
}

// Lock serializes work on one session id and returns the unlock func.
// Lock entries are dropped once no caller holds or waits on them.
func (s *Store) Lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

func (e *entry) session(id string) Session {
	return Session{
		ID:         id,
		History:    copyHistory(e.history),
		LastActive: e.lastActive,
		Artifact:   e.artifact,
	}
}

func copyHistory(h []models.Message) []models.Message {
	if h == nil {
		return nil
	}
	out := make([]models.Message, len(h))
	copy(out, h)
	return out
}
