// Package memory holds keypairs in process memory. It is the default
// when no key-store database is configured, and the test double of
// choice; keys stored here do not survive a restart.
package memory

import (
	"context"
	"sync"

	"github.com/sam7695/secure-asset-management/internal/financial/domain"
)

type KeyStore struct {
	mu    sync.RWMutex
	pairs map[string]*domain.KeyPair
}

func NewKeyStore() *KeyStore {
	return &KeyStore{pairs: make(map[string]*domain.KeyPair)}
}

func (s *KeyStore) Get(_ context.Context, userID string) (*domain.KeyPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pairs[userID], nil
}

func (s *KeyStore) PutIfAbsent(_ context.Context, pair *domain.KeyPair) (*domain.KeyPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.pairs[pair.UserID]; ok {
		return existing, nil
	}

	s.pairs[pair.UserID] = pair

	return pair, nil
}
