package store

import (
	"context"
	"sync"
	"time"

	"SONJUTOKTOK_BACK-END/internal/models"
)

// MemoryStore is a process-local ProfileStore. The uniqueness check and the
// write happen under one lock, which gives the same guarantee as the
// Postgres constraints.
type MemoryStore struct {
	mu        sync.RWMutex
	byPhone   map[string]models.Profile
	bySubject map[string]string
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byPhone:   map[string]models.Profile{},
		bySubject: map[string]string{},
		now:       time.Now,
	}
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) FindByPhone(_ context.Context, phone string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byPhone[phone]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) FindBySubject(_ context.Context, subject string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	phone, ok := s.bySubject[subject]
	if !ok {
		return nil, ErrNotFound
	}
	p := s.byPhone[phone]
	return &p, nil
}

func (s *MemoryStore) Insert(_ context.Context, p models.Profile) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byPhone[p.PhoneNumber]; exists {
		return nil, ErrDuplicatePhone
	}
	if _, exists := s.bySubject[p.SubjectID]; exists {
		return nil, ErrDuplicateSubject
	}

	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now().UTC()
	}
	s.byPhone[p.PhoneNumber] = p
	s.bySubject[p.SubjectID] = p.PhoneNumber

	out := p
	return &out, nil
}

// Len returns the number of stored profiles
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byPhone)
}
