package api

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

//Session represents a login session
type Session struct {
	Expires time.Time
}

//MemorySessionStore represents a SessionStore that uses an in-memory map
type MemorySessionStore struct {
	store    map[string]*Session
	duration time.Duration
	mu       *sync.Mutex
}

const sessionChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

//randString returns a random alphanumeric string of length n
func randString(n int) (string, error) {
	b := make([]byte, n)
	max := big.NewInt(int64(len(sessionChars)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		b[i] = sessionChars[idx.Int64()]
	}
	return string(b), nil
}

//scavenge removes stale records every hour
func scavenge(m *MemorySessionStore) {
	for {
		time.Sleep(time.Hour)
		m.removeExpired(time.Now())
	}
}

func (m *MemorySessionStore) removeExpired(now time.Time) {
	m.mu.Lock()
	for id, t := range m.store {
		if t.Expires.Before(now) {
			delete(m.store, id)
		}
	}
	m.mu.Unlock()
}

//NewMemorySessionStore returns a new MemorySessionStore with the given expiration duration.
func NewMemorySessionStore(duration time.Duration) *MemorySessionStore {
	m := &MemorySessionStore{
		store:    make(map[string]*Session),
		duration: duration,
		mu:       new(sync.Mutex),
	}
	go scavenge(m)
	return m
}

//Create returns a new sessionID
func (m *MemorySessionStore) Create() (string, error) {
	id, err := randString(22)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.store[id] = &Session{
		Expires: time.Now().Add(m.duration),
	}
	m.mu.Unlock()
	return id, nil
}

//Check returns whether or not sessionID is a valid session. Valid sessions are extended
func (m *MemorySessionStore) Check(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.store[sessionID]; ok {
		if s.Expires.After(time.Now()) {
			s.Expires = time.Now().Add(m.duration)
			return true
		}
		delete(m.store, sessionID)
	}
	return false
}

//Delete ends the session with the given sessionID
func (m *MemorySessionStore) Delete(sessionID string) {
	m.mu.Lock()
	delete(m.store, sessionID)
	m.mu.Unlock()
}
