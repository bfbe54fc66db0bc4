package mocks

import (
	"context"

	"github.com/you/contactsvc/domain"
)

// MockContactService implements domain.ContactService interface for testing
type MockContactService struct {
	CreateFunc            func(ctx context.Context, ownerID uint, fields domain.ContactFields) (*domain.Contact, error)
	ListFunc              func(ctx context.Context, ownerID uint, offset, limit int) ([]domain.Contact, error)
	GetFunc               func(ctx context.Context, ownerID, id uint) (*domain.Contact, error)
	UpdateFunc            func(ctx context.Context, ownerID, id uint, fields domain.ContactFields) (*domain.Contact, error)
	DeleteFunc            func(ctx context.Context, ownerID, id uint) (*domain.Contact, error)
	SearchFunc            func(ctx context.Context, ownerID uint, filter domain.ContactFilter) ([]domain.Contact, error)
	UpcomingBirthdaysFunc func(ctx context.Context, ownerID uint) ([]domain.Contact, error)
}

// NewMockContactService creates a new MockContactService with default behaviors
func NewMockContactService() *MockContactService {
	return &MockContactService{}
}

func (m *MockContactService) Create(ctx context.Context, ownerID uint, fields domain.ContactFields) (*domain.Contact, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ownerID, fields)
	}
	return &domain.Contact{ID: 1, UserID: ownerID, ContactFields: fields}, nil
}

func (m *MockContactService) List(ctx context.Context, ownerID uint, offset, limit int) ([]domain.Contact, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, offset, limit)
	}
	return []domain.Contact{}, nil
}

func (m *MockContactService) Get(ctx context.Context, ownerID, id uint) (*domain.Contact, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, ownerID, id)
	}
	return nil, domain.ErrContactNotFound
}

func (m *MockContactService) Update(ctx context.Context, ownerID, id uint, fields domain.ContactFields) (*domain.Contact, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ownerID, id, fields)
	}
	return nil, domain.ErrContactNotFound
}

func (m *MockContactService) Delete(ctx context.Context, ownerID, id uint) (*domain.Contact, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, id)
	}
	return nil, domain.ErrContactNotFound
}

func (m *MockContactService) Search(ctx context.Context, ownerID uint, filter domain.ContactFilter) ([]domain.Contact, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, ownerID, filter)
	}
	return []domain.Contact{}, nil
}

func (m *MockContactService) UpcomingBirthdays(ctx context.Context, ownerID uint) ([]domain.Contact, error) {
	if m.UpcomingBirthdaysFunc != nil {
		return m.UpcomingBirthdaysFunc(ctx, ownerID)
	}
	return []domain.Contact{}, nil
}

// Compile-time interface compliance verification
var _ domain.ContactService = (*MockContactService)(nil)
