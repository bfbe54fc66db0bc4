package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/you/contactsvc/domain"
)

// MockRevocationStore implements domain.RevocationStore for testing.
// Without overrides it keeps revoked ids in memory.
type MockRevocationStore struct {
	RevokeFunc    func(ctx context.Context, tokenID string, expiresAt time.Time) (bool, error)
	IsRevokedFunc func(ctx context.Context, tokenID string) (bool, error)

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewMockRevocationStore creates a new MockRevocationStore with default behaviors
func NewMockRevocationStore() *MockRevocationStore {
	return &MockRevocationStore{revoked: make(map[string]time.Time)}
}

// Revoke returns true only for the first revocation of tokenID
func (m *MockRevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) (bool, error) {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, tokenID, expiresAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.revoked[tokenID]; ok {
		return false, nil
	}
	m.revoked[tokenID] = expiresAt
	return true, nil
}

func (m *MockRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if m.IsRevokedFunc != nil {
		return m.IsRevokedFunc(ctx, tokenID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok, nil
}

// Compile-time interface compliance verification
var _ domain.RevocationStore = (*MockRevocationStore)(nil)
