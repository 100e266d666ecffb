package newsletter

import (
	"context"
	"sync"
	"time"
)

// memStore is an in-memory Store with the same uniqueness guarantees as
// the unique email index.
type memStore struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[string]*Subscriber
}

func newMemStore() *memStore {
	return &memStore{rows: map[string]*Subscriber{}}
}

func (m *memStore) GetOrCreate(_ context.Context, d Subscriber) (*Subscriber, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.rows[d.Email]; ok {
		cp := *s
		return &cp, false, nil
	}
	m.nextID++
	d.ID = m.nextID
	m.rows[d.Email] = &d
	cp := d
	return &cp, true, nil
}

func (m *memStore) Reissue(_ context.Context, sub *Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.rows[sub.Email]
	s.ConfirmToken, s.ConfirmSentAt, s.IP, s.UserAgent = sub.ConfirmToken, sub.ConfirmSentAt, sub.IP, sub.UserAgent
	return nil
}

func (m *memStore) ByToken(_ context.Context, token string) (*Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.rows {
		if s.ConfirmToken != nil && *s.ConfirmToken == token {
			cp := *s
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) Activate(_ context.Context, id uint64, token string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.rows {
		if s.ID == id && s.ConfirmToken != nil && *s.ConfirmToken == token {
			s.IsActive, s.ConfirmedAt, s.ConfirmToken = true, &at, nil
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) get(email string) Subscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.rows[email]
}
