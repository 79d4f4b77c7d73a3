package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClockedSessionStore() (SessionStore, *manualClock) {
	clock := &manualClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	store := NewSessionStore()
	store.(*memorySessionStore).now = clock.Now
	return store, clock
}

func TestSessionStoreCreateGetDelete(t *testing.T) {
	store := NewSessionStore()

	a := store.Create()
	b := store.Create()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, models.StateAwaitingID, a.State)
	assert.False(t, a.IsAdmin)
	assert.Equal(t, 2, store.Len())

	got, err := store.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	require.NoError(t, store.Delete(a.ID))
	_, err = store.Get(a.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(a.ID), ErrSessionNotFound)
	assert.Equal(t, 1, store.Len())
}

func TestSessionStoreUpdate(t *testing.T) {
	store := NewSessionStore()
	session := store.Create()

	updated, err := store.Update(session.ID, func(s *models.Session) error {
		s.State = models.StateVerified
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.StateVerified, updated.State)

	boom := errors.New("boom")
	updated, err = store.Update(session.ID, func(s *models.Session) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, models.StateVerified, updated.State)

	_, err = store.Update("missing", func(s *models.Session) error {
		t.Fatal("fn must not run for unknown session")
		return nil
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStoreSnapshotsAreCopies(t *testing.T) {
	store := NewSessionStore()
	session := store.Create()

	snapshot, err := store.Get(session.ID)
	require.NoError(t, err)
	snapshot.IsAdmin = true

	again, err := store.Get(session.ID)
	require.NoError(t, err)
	assert.False(t, again.IsAdmin)
}

func TestSessionStoreSweep(t *testing.T) {
	store, clock := newClockedSessionStore()

	stale := store.Create()
	clock.Advance(30 * time.Minute)
	fresh := store.Create()
	clock.Advance(45 * time.Minute)

	assert.Equal(t, 0, store.Sweep(0), "non-positive idle disables sweep")

	removed := store.Sweep(time.Hour)
	assert.Equal(t, 1, removed)

	_, err := store.Get(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestSessionStoreSweepSkipsActivity(t *testing.T) {
	store, clock := newClockedSessionStore()

	session := store.Create()
	clock.Advance(50 * time.Minute)
	_, err := store.Get(session.ID)
	require.NoError(t, err)
	clock.Advance(50 * time.Minute)

	assert.Equal(t, 0, store.Sweep(time.Hour))
	assert.Equal(t, 1, store.Len())
}

func TestSessionStoreConcurrentSessions(t *testing.T) {
	store := NewSessionStore()

	var wg sync.WaitGroup
	ids := make(chan string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session := store.Create()
			_, err := store.Update(session.ID, func(s *models.Session) error {
				s.State = models.StateVerified
				return nil
			})
			assert.NoError(t, err)
			ids <- session.ID
		}()
	}
	wg.Wait()
	close(ids)

	assert.Equal(t, 50, store.Len())
	for id := range ids {
		got, err := store.Get(id)
		require.NoError(t, err)
		assert.Equal(t, models.StateVerified, got.State)
	}
}
