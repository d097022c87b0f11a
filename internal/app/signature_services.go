package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/cryptoalg"
	"github.com/MGTheTrain/docsign/internal/domain/keys"
	"github.com/MGTheTrain/docsign/internal/domain/signatures"
	"github.com/MGTheTrain/docsign/internal/infrastructure/metrics"
	"github.com/MGTheTrain/docsign/internal/pkg/logger"
)

// Verification messages returned to callers
const (
	MessageSignatureValid   = "Signature is VALID - Document is authentic"
	MessageSignatureInvalid = "Signature is INVALID - Document may be tampered"
)

// signatureService implements the SignatureService interface
type signatureService struct {
	processor cryptoalg.SignatureProcessor
	hashers   map[string]cryptoalg.Hasher
	directory keys.KeyDirectoryService
	metrics   *metrics.Metrics
	logger    logger.Logger
}

// NewSignatureService creates a new signatureService instance. hashers serve
// Hash requests for algorithms other than the processor's own.
func NewSignatureService(
	processor cryptoalg.SignatureProcessor,
	hashers []cryptoalg.Hasher,
	directory keys.KeyDirectoryService,
	metrics *metrics.Metrics,
	logger logger.Logger,
) (signatures.SignatureService, error) {
	if processor == nil || directory == nil {
		return nil, fmt.Errorf("signature processor and key directory service are required")
	}

	byName := make(map[string]cryptoalg.Hasher, len(hashers))
	for _, hasher := range hashers {
		byName[hasher.Algorithm()] = hasher
	}

	return &signatureService{
		processor: processor,
		hashers:   byName,
		directory: directory,
		metrics:   metrics,
		logger:    logger,
	}, nil
}

// Sign returns the encoded signature of message for the "d:n" private key
func (s *signatureService) Sign(ctx context.Context, message []byte, privateKey string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key, err := crypto.ParsePrivateKey(privateKey)
	if err != nil {
		return "", fmt.Errorf("invalid private key: %w", err)
	}

	signature, err := s.processor.Sign(message, key)
	s.metrics.ObserveSignature(s.processor.HashAlgorithm(), err)
	if err != nil {
		return "", err
	}

	return crypto.EncodeSignature(signature), nil
}

// Verify checks encodedSignature against the directory entry keyID or, when
// keyID is empty or unknown, against the uploaded publicKey. Without a usable
// key it fails with ErrMissingKey
func (s *signatureService) Verify(ctx context.Context, message []byte, encodedSignature string, keyID, publicKey *string) (*signatures.VerificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, signer, err := s.resolvePublicKey(ctx, keyID, publicKey)
	if err != nil {
		s.metrics.ObserveVerification(s.processor.HashAlgorithm(), false, err)
		return nil, err
	}

	signature, err := crypto.DecodeSignature(encodedSignature)
	if err != nil {
		s.metrics.ObserveVerification(s.processor.HashAlgorithm(), false, err)
		return nil, err
	}

	valid, err := s.processor.Verify(message, signature, key)
	s.metrics.ObserveVerification(s.processor.HashAlgorithm(), valid, err)
	if err != nil {
		return nil, err
	}

	result := &signatures.VerificationResult{
		Valid:   valid,
		Message: MessageSignatureInvalid,
	}
	if valid {
		result.Message = MessageSignatureValid
		result.Signer = &signer
	}
	return result, nil
}

func (s *signatureService) resolvePublicKey(ctx context.Context, keyID, publicKey *string) (*crypto.PublicKey, string, error) {
	if keyID != nil && *keyID != "" {
		entry, err := s.directory.GetByID(ctx, *keyID)
		switch {
		case err == nil:
			key, err := entry.ParsedPublicKey()
			if err != nil {
				return nil, "", fmt.Errorf("invalid public key in directory: %w", err)
			}
			return key, entry.Signer(), nil
		case errors.Is(err, keys.ErrKeyNotFound):
			s.logger.Info("Key id ", *keyID, " not in directory")
		default:
			return nil, "", err
		}
	}

	if publicKey != nil && *publicKey != "" {
		key, err := crypto.ParsePublicKey(*publicKey)
		if err != nil {
			return nil, "", fmt.Errorf("invalid public key: %w", err)
		}
		return key, signatures.UploadedKeySigner, nil
	}

	return nil, "", fmt.Errorf("%w: must provide either key_id or public_key_file", crypto.ErrMissingKey)
}

// Hash returns the hex digest of message. An empty algorithm selects the processor's hash
func (s *signatureService) Hash(ctx context.Context, message []byte, algorithm string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if algorithm == "" || algorithm == s.processor.HashAlgorithm() {
		return s.processor.Hash(message), nil
	}

	hasher, ok := s.hashers[algorithm]
	if !ok {
		return "", fmt.Errorf("%w: %q", crypto.ErrUnsupportedHashAlgorithm, algorithm)
	}
	return crypto.EncodeDigest(hasher.Compute(message)), nil
}
