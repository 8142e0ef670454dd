package api

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandString(t *testing.T) {
	re := regexp.MustCompile("^[a-zA-Z0-9]{22}$")
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s, err := randString(22)
		require.NoError(t, err)
		assert.Regexp(t, re, s)
		assert.False(t, seen[s])
		seen[s] = true
	}
}

func TestMemorySessionStore(t *testing.T) {
	m := NewMemorySessionStore(time.Hour)

	id, err := m.Create()
	require.NoError(t, err)
	assert.True(t, m.Check(id))
	assert.False(t, m.Check("missing"))
	assert.Len(t, m.store, 1)

	m.Delete(id)
	assert.False(t, m.Check(id))
	assert.Empty(t, m.store)
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	m := NewMemorySessionStore(-time.Second)

	id, err := m.Create()
	require.NoError(t, err)
	assert.False(t, m.Check(id))
	assert.Empty(t, m.store)

	_, err = m.Create()
	require.NoError(t, err)
	assert.Len(t, m.store, 1)

	m.removeExpired(time.Now())
	assert.Empty(t, m.store)
}
