package mocks

import (
	"strings"
	"sync"

	"github.com/you/contactsvc/domain"
)

// MockHashPrefix marks hashes produced by MockPasswordService
const MockHashPrefix = "hashed_"

// MockPasswordService implements domain.PasswordService without bcrypt.
// Hashes are MockHashPrefix followed by the plaintext.
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool

	mu     sync.Mutex
	hashed []string
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash records the plaintext and returns its fake hash
func (m *MockPasswordService) Hash(password string) (string, error) {
	m.mu.Lock()
	m.hashed = append(m.hashed, password)
	m.mu.Unlock()
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return MockHashPrefix + password, nil
}

// Verify accepts a hash made by Hash for the same plaintext
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return strings.HasPrefix(hashedPassword, MockHashPrefix) && hashedPassword[len(MockHashPrefix):] == password
}

// Hashed returns every plaintext passed to Hash, in order
func (m *MockPasswordService) Hashed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.hashed...)
}

var _ domain.PasswordService = (*MockPasswordService)(nil)
