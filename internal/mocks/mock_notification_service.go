package mocks

import (
	"sync"

	"github.com/you/contactsvc/domain"
)

// SentEmail is a message captured by MockNotificationService
type SentEmail struct {
	To, Subject, Body string
}

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendEmailFunc func(to, subject, body string) error

	mu   sync.Mutex
	Sent []SentEmail
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendEmail records the message, then delegates to SendEmailFunc when set
func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: subject, Body: body})
	m.mu.Unlock()
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	// Default behavior: success (no actual email sent in tests)
	return nil
}

// Last returns the most recent message, if any
func (m *MockNotificationService) Last() (SentEmail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return SentEmail{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}

// All returns a copy of every captured message
func (m *MockNotificationService) All() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentEmail(nil), m.Sent...)
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
