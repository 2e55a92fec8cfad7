package identity

import (
	"context"
	"sync"
)

// MemStore backs the service when no database is configured and in
// tests.
type MemStore struct {
	mu       sync.RWMutex
	accounts []Account
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) CreateAccount(_ context.Context, account Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Email == account.Email {
			return ErrDuplicateEmail
		}
	}
	s.accounts = append(s.accounts, account)
	return nil
}

func (s *MemStore) AccountByEmail(_ context.Context, email string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, account := range s.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return Account{}, ErrNotFound
}

func (s *MemStore) AccountByID(_ context.Context, id string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, account := range s.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return Account{}, ErrNotFound
}
