package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

// SessionStore держит сессии в памяти процесса. Операции одной сессии
// выполняются последовательно, разные сессии друг друга не блокируют.
type SessionStore interface {
	Create() models.Session
	Get(id string) (models.Session, error)
	Update(id string, fn func(*models.Session) error) (models.Session, error)
	Delete(id string) error
	Sweep(idle time.Duration) int
	Len() int
}

type sessionEntry struct {
	mu      sync.Mutex
	session *models.Session
}

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	now      func() time.Time
}

func NewSessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]*sessionEntry),
		now:      time.Now,
	}
}

func (s *memorySessionStore) Create() models.Session {
	session := models.NewSession(uuid.New().String(), s.now())

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	return *session
}

func (s *memorySessionStore) entry(id string) (*sessionEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func (s *memorySessionStore) Get(id string) (models.Session, error) {
	e, err := s.entry(id)
	if err != nil {
		return models.Session{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.LastSeenAt = s.now()

	return *e.session, nil
}

// Update runs fn on the live session under the session lock and returns the resulting
// snapshot. fn's error is returned as is; the session keeps whatever fn left in it.
func (s *memorySessionStore) Update(id string, fn func(*models.Session) error) (models.Session, error) {
	e, err := s.entry(id)
	if err != nil {
		return models.Session{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	err = fn(e.session)
	e.session.LastSeenAt = s.now()

	return *e.session, err
}

func (s *memorySessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Sweep удаляет сессии, неактивные дольше idle. idle <= 0 отключает очистку.
func (s *memorySessionStore) Sweep(idle time.Duration) int {
	if idle <= 0 {
		return 0
	}

	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if !e.mu.TryLock() {
			// сессия сейчас занята запросом
			continue
		}
		stale := e.session.LastSeenAt.Before(cutoff)
		e.mu.Unlock()

		if stale {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}

func (s *memorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
