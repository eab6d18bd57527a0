package repository

import (
	"context"
	"sync"
	"time"

	"yggdrasil-server/internal/model"
)

// MemorySessionStore keeps sessions in a token-keyed map. All transitions on
// a session happen under one mutex, which gives Rotate the same
// compare-and-swap guarantee the SQL store gets from its conditional UPDATE.
type MemorySessionStore struct {
	mu      sync.Mutex
	byToken map[string]*model.Session
	nowFunc func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		byToken: map[string]*model.Session{},
		nowFunc: time.Now,
	}
}

func (m *MemorySessionStore) Create(_ context.Context, s model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := s
	m.byToken[s.AccessToken] = &stored
	return nil
}

func (m *MemorySessionStore) FindByAccessToken(_ context.Context, accessToken string) (model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.byToken[accessToken]
	if !ok || !s.Active || s.Expired(m.nowFunc()) {
		return model.Session{}, model.ErrTokenMismatch
	}
	return *s, nil
}

func (m *MemorySessionStore) Rotate(_ context.Context, oldToken, newToken, selectedProfileID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.byToken[oldToken]
	if !ok || !s.Active || s.Expired(m.nowFunc()) {
		return model.ErrTokenMismatch
	}

	delete(m.byToken, oldToken)
	s.AccessToken = newToken
	if selectedProfileID != "" {
		s.SelectedProfileID = selectedProfileID
	}
	s.ExpiresAt = expiresAt
	m.byToken[newToken] = s
	return nil
}

func (m *MemorySessionStore) Invalidate(_ context.Context, accessToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.byToken[accessToken]; ok {
		s.Active = false
	}
	return nil
}

func (m *MemorySessionStore) InvalidateAllForUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.byToken {
		if s.UserID == userID {
			s.Active = false
		}
	}
	return nil
}

func (m *MemorySessionStore) CleanExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.nowFunc()
	var removed int64
	for token, s := range m.byToken {
		if !s.Active || s.Expired(now) {
			delete(m.byToken, token)
			removed++
		}
	}
	return removed, nil
}
