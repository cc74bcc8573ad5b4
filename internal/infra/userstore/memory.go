package userstore

import (
	"context"
	"sync"

	"cridaa-booking/internal/domain/user"
	"cridaa-booking/internal/infra"

	"github.com/google/uuid"
)

// MemoryStore backs the memory deployment profile and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]user.User
	byEmail map[string]uuid.UUID
	byName  map[string]uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[uuid.UUID]user.User),
		byEmail: make(map[string]uuid.UUID),
		byName:  make(map[string]uuid.UUID),
	}
}

func (s *MemoryStore) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[u.Email]; taken {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "email already taken", nil)
	}
	if _, taken := s.byName[u.Username]; taken {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "username already taken", nil)
	}

	s.byID[u.ID] = *u
	s.byEmail[u.Email] = u.ID
	s.byName[u.Username] = u.ID
	return nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "user not found", nil)
	}
	u := s.byID[id]
	return &u, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "user not found", nil)
	}
	return &u, nil
}
