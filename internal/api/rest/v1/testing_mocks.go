//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/MGTheTrain/docsign/internal/domain/keys"
	"github.com/MGTheTrain/docsign/internal/domain/signatures"

	"github.com/stretchr/testify/mock"
)

// MockKeyGenerationService is a mock implementation of KeyGenerationService
type MockKeyGenerationService struct {
	mock.Mock
}

func (m *MockKeyGenerationService) Generate(ctx context.Context, name, department string, keySize int) (*keys.GeneratedKey, error) {
	args := m.Called(ctx, name, department, keySize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.GeneratedKey), args.Error(1)
}

// MockKeyDirectoryService is a mock implementation of KeyDirectoryService
type MockKeyDirectoryService struct {
	mock.Mock
}

func (m *MockKeyDirectoryService) Register(ctx context.Context, name, department, publicKey string) (*keys.KeyEntry, error) {
	args := m.Called(ctx, name, department, publicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyEntry), args.Error(1)
}

func (m *MockKeyDirectoryService) List(ctx context.Context) ([]*keys.KeyEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.KeyEntry), args.Error(1)
}

func (m *MockKeyDirectoryService) GetByID(ctx context.Context, keyID string) (*keys.KeyEntry, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyEntry), args.Error(1)
}

func (m *MockKeyDirectoryService) DeleteByID(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}

// MockSignatureService is a mock implementation of SignatureService
type MockSignatureService struct {
	mock.Mock
}

func (m *MockSignatureService) Sign(ctx context.Context, message []byte, privateKey string) (string, error) {
	args := m.Called(ctx, message, privateKey)
	return args.String(0), args.Error(1)
}

func (m *MockSignatureService) Verify(ctx context.Context, message []byte, encodedSignature string, keyID, publicKey *string) (*signatures.VerificationResult, error) {
	args := m.Called(ctx, message, encodedSignature, keyID, publicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*signatures.VerificationResult), args.Error(1)
}

func (m *MockSignatureService) Hash(ctx context.Context, message []byte, algorithm string) (string, error) {
	args := m.Called(ctx, message, algorithm)
	return args.String(0), args.Error(1)
}
