package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"yggdrasil-server/internal/model"
)

// MemoryStore backs the standalone (no Postgres) mode and the test suite.
// It implements the account and profile store contracts over plain maps.
type MemoryStore struct {
	mu             sync.RWMutex
	usersByID      map[string]model.User
	profilesByID   map[string]model.Profile
	profilesByName map[string]model.Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		usersByID:      map[string]model.User{},
		profilesByID:   map[string]model.Profile{},
		profilesByName: map[string]model.Profile{},
	}
}

func (m *MemoryStore) AddUser(u model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usersByID[u.ID] = u
}

func (m *MemoryStore) AddProfile(p model.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profilesByID[p.ID] = p
	m.profilesByName[p.Name] = p
}

func (m *MemoryStore) FindByLogin(_ context.Context, login string) (model.User, error) {
	login = strings.TrimSpace(login)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.usersByID {
		if strings.EqualFold(u.Email, login) || u.Username == login {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (m *MemoryStore) ByID(_ context.Context, id string) (model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profilesByID[id]
	if !ok {
		return model.Profile{}, model.ErrProfileNotFound
	}
	return p, nil
}

func (m *MemoryStore) ByName(_ context.Context, name string) (model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profilesByName[name]
	if !ok {
		return model.Profile{}, model.ErrProfileNotFound
	}
	return p, nil
}

func (m *MemoryStore) ByNames(_ context.Context, names []string) ([]model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profiles := make([]model.Profile, 0, len(names))
	seen := map[string]struct{}{}
	for _, name := range names {
		p, ok := m.profilesByName[name]
		if !ok {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		profiles = append(profiles, p)
	}

	// Stable output for equal inputs.
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

func (m *MemoryStore) ByUser(_ context.Context, userID string) ([]model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profiles := make([]model.Profile, 0)
	for _, p := range m.profilesByID {
		if p.UserID == userID {
			profiles = append(profiles, p)
		}
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i].CreatedAt.Before(profiles[j].CreatedAt) })
	return profiles, nil
}
