package mocks

import (
	"context"

	"github.com/you/contactsvc/domain"
)

// MockContactRepository implements domain.ContactRepository interface for testing
type MockContactRepository struct {
	CreateFunc   func(ctx context.Context, contact *domain.Contact) error
	ListFunc     func(ctx context.Context, ownerID uint, offset, limit int) ([]domain.Contact, error)
	FindByIDFunc func(ctx context.Context, ownerID, id uint) (*domain.Contact, error)
	UpdateFunc   func(ctx context.Context, contact *domain.Contact) error
	DeleteFunc   func(ctx context.Context, ownerID, id uint) (*domain.Contact, error)
	SearchFunc   func(ctx context.Context, ownerID uint, filter domain.ContactFilter) ([]domain.Contact, error)
	ListAllFunc  func(ctx context.Context, ownerID uint) ([]domain.Contact, error)
}

// NewMockContactRepository creates a new MockContactRepository with default behaviors
func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{}
}

func (m *MockContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, contact)
	}
	return nil
}

func (m *MockContactRepository) List(ctx context.Context, ownerID uint, offset, limit int) ([]domain.Contact, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, offset, limit)
	}
	return []domain.Contact{}, nil
}

func (m *MockContactRepository) FindByID(ctx context.Context, ownerID, id uint) (*domain.Contact, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, ownerID, id)
	}
	return nil, domain.ErrContactNotFound
}

func (m *MockContactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, contact)
	}
	return nil
}

func (m *MockContactRepository) Delete(ctx context.Context, ownerID, id uint) (*domain.Contact, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, id)
	}
	return nil, domain.ErrContactNotFound
}

func (m *MockContactRepository) Search(ctx context.Context, ownerID uint, filter domain.ContactFilter) ([]domain.Contact, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, ownerID, filter)
	}
	return []domain.Contact{}, nil
}

func (m *MockContactRepository) ListAll(ctx context.Context, ownerID uint) ([]domain.Contact, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, ownerID)
	}
	return []domain.Contact{}, nil
}

// Compile-time interface compliance verification
var _ domain.ContactRepository = (*MockContactRepository)(nil)
