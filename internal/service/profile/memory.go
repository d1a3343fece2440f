package profile

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore implements Service with a process-local map. All data is lost
// on restart; it is the default backend and the test double.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]*Profile),
	}
}

func (m *MemoryStore) Upsert(_ context.Context, username string, params UpsertParams) (*Profile, error) {
	key := NormalizeUsername(username)
	if key == "" {
		return nil, ErrUsernameRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := merge(m.profiles[key], key, params)
	m.profiles[key] = &next

	result := next
	return &result, nil
}

func (m *MemoryStore) Get(_ context.Context, username string) (*Profile, error) {
	key := NormalizeUsername(username)

	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.profiles[key]
	if !exists {
		return nil, ErrNotFound
	}
	result := *p
	return &result, nil
}

func (m *MemoryStore) ActivateByEmail(_ context.Context, email string) (int, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, p := range m.profiles {
		if p.Email == email && p.Email != "" {
			p.CanActivate = true
			count++
		}
	}
	return count, nil
}

// Clear removes all profiles (useful for test cleanup).
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = make(map[string]*Profile)
}

// Compile-time interface check
var _ Service = (*MemoryStore)(nil)
