package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/cryptoalg"
	"github.com/MGTheTrain/docsign/internal/domain/keys"
	"github.com/MGTheTrain/docsign/internal/infrastructure/metrics"
	"github.com/MGTheTrain/docsign/internal/pkg/logger"
	"github.com/MGTheTrain/docsign/internal/pkg/validators"

	"github.com/google/uuid"
)

// maxKeyIDAttempts bounds retries when a truncated UUID collides with an existing entry.
const maxKeyIDAttempts = 5

// keyDirectoryService implements the KeyDirectoryService interface
type keyDirectoryService struct {
	directory keys.KeyDirectory
	logger    logger.Logger
}

// NewKeyDirectoryService creates a new keyDirectoryService instance
func NewKeyDirectoryService(directory keys.KeyDirectory, logger logger.Logger) (keys.KeyDirectoryService, error) {
	if directory == nil {
		return nil, fmt.Errorf("key directory must not be nil")
	}
	return &keyDirectoryService{
		directory: directory,
		logger:    logger,
	}, nil
}

// Register validates publicKey and stores it under a fresh 8 character identifier
func (s *keyDirectoryService) Register(ctx context.Context, name, department, publicKey string) (*keys.KeyEntry, error) {
	parsed, err := crypto.ParsePublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}

	for attempt := 0; attempt < maxKeyIDAttempts; attempt++ {
		entry := &keys.KeyEntry{
			ID:              newKeyID(),
			Name:            strings.TrimSpace(name),
			Department:      strings.TrimSpace(department),
			PublicKey:       parsed.String(),
			DateTimeCreated: time.Now().UTC(),
		}

		err := s.directory.Create(ctx, entry)
		if err == nil {
			s.logger.Info("Registered public key for ", entry.Signer(), " with id ", entry.ID)
			return entry, nil
		}
		if !errors.Is(err, keys.ErrKeyIDConflict) {
			return nil, fmt.Errorf("failed to register public key: %w", err)
		}
	}

	return nil, fmt.Errorf("failed to register public key: %w after %d attempts", keys.ErrKeyIDConflict, maxKeyIDAttempts)
}

// List retrieves all directory entries
func (s *keyDirectoryService) List(ctx context.Context) ([]*keys.KeyEntry, error) {
	entries, err := s.directory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}
	return entries, nil
}

// GetByID retrieves a directory entry by its identifier
func (s *keyDirectoryService) GetByID(ctx context.Context, keyID string) (*keys.KeyEntry, error) {
	entry, err := s.directory.GetByID(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get directory entry: %w", err)
	}
	return entry, nil
}

// DeleteByID removes a directory entry by its identifier
func (s *keyDirectoryService) DeleteByID(ctx context.Context, keyID string) error {
	if err := s.directory.DeleteByID(ctx, keyID); err != nil {
		return fmt.Errorf("failed to delete directory entry: %w", err)
	}
	return nil
}

func newKeyID() string {
	return uuid.NewString()[:keys.KeyIDLength]
}

// keyGenerationService implements the KeyGenerationService interface
type keyGenerationService struct {
	rsa       cryptoalg.RSAProcessor
	directory keys.KeyDirectoryService
	timeout   time.Duration
	metrics   *metrics.Metrics
	logger    logger.Logger
}

// NewKeyGenerationService creates a new keyGenerationService instance.
// A zero timeout leaves key generation bounded only by the caller's context.
func NewKeyGenerationService(
	rsa cryptoalg.RSAProcessor,
	directory keys.KeyDirectoryService,
	timeout time.Duration,
	metrics *metrics.Metrics,
	logger logger.Logger,
) (keys.KeyGenerationService, error) {
	if rsa == nil || directory == nil {
		return nil, fmt.Errorf("rsa processor and key directory service are required")
	}
	return &keyGenerationService{
		rsa:       rsa,
		directory: directory,
		timeout:   timeout,
		metrics:   metrics,
		logger:    logger,
	}, nil
}

// Generate creates a key pair, registers the public key and returns the private key to the caller
func (s *keyGenerationService) Generate(ctx context.Context, name, department string, keySize int) (*keys.GeneratedKey, error) {
	if !validators.IsSupportedRSAKeySize(keySize) {
		return nil, fmt.Errorf("%w: %d bits", crypto.ErrInvalidKeySize, keySize)
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(department) == "" {
		return nil, fmt.Errorf("%w: name and department are required", keys.ErrInvalidKeyEntry)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	keyPair, err := s.rsa.GenerateKeyPair(ctx, keySize, false)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}
	s.metrics.ObserveKeyGeneration(keySize, time.Since(start))

	entry, err := s.directory.Register(ctx, name, department, keyPair.Public.String())
	if err != nil {
		return nil, err
	}

	s.logger.Info("Generated ", keySize, "-bit key pair with id ", entry.ID)
	return &keys.GeneratedKey{
		Entry:      entry,
		PrivateKey: keyPair.Private,
	}, nil
}
