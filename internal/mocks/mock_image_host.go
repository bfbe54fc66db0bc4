package mocks

import (
	"context"
	"io"

	"github.com/you/contactsvc/domain"
)

// MockImageHost implements domain.ImageHost interface for testing
type MockImageHost struct {
	UploadFunc func(ctx context.Context, key, contentType string, data []byte) (string, error)
	BaseURL    string
}

// NewMockImageHost creates a new MockImageHost with default behaviors
func NewMockImageHost() *MockImageHost {
	return &MockImageHost{BaseURL: "https://images.test"}
}

// Upload stores nothing and returns BaseURL/key
func (m *MockImageHost) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, key, contentType, data)
	}
	return m.BaseURL + "/" + key, nil
}

// MockImageProcessor implements domain.ImageProcessor interface for testing
type MockImageProcessor struct {
	NormalizeFunc func(r io.Reader) ([]byte, string, error)
}

// NewMockImageProcessor creates a new MockImageProcessor with default behaviors
func NewMockImageProcessor() *MockImageProcessor {
	return &MockImageProcessor{}
}

// Normalize returns the input unchanged as a PNG
func (m *MockImageProcessor) Normalize(r io.Reader) ([]byte, string, error) {
	if m.NormalizeFunc != nil {
		return m.NormalizeFunc(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}
	return data, "image/png", nil
}

// Compile-time interface compliance verification
var (
	_ domain.ImageHost      = (*MockImageHost)(nil)
	_ domain.ImageProcessor = (*MockImageProcessor)(nil)
)
