package kv

import "sync"

//MemoryStore is a Store that keeps items in an in-memory map. Contents are lost on exit
type MemoryStore struct {
	items map[string]string
	mu    *sync.Mutex
}

//NewMemory returns an empty MemoryStore
func NewMemory() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]string),
		mu:    new(sync.Mutex),
	}
}

func (m *MemoryStore) GetItem(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryStore) SetItem(key, value string) error {
	m.mu.Lock()
	m.items[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) RemoveItem(key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
