package cryptography

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/cryptoalg"
	"github.com/MGTheTrain/docsign/internal/pkg/logger"
)

// signatureProcessor composes a hash engine, PKCS#1 v1.5 padding and the RSA
// trapdoor. Only the bound key pair is shared between calls.
type signatureProcessor struct {
	hasher  cryptoalg.Hasher
	padding cryptoalg.PaddingScheme
	rsa     cryptoalg.RSAProcessor
	keyPair atomic.Pointer[crypto.KeyPair]
	logger  logger.Logger
}

// NewSignatureProcessor creates a signature processor for the given hash algorithm
func NewSignatureProcessor(hashAlgorithm string, rsa cryptoalg.RSAProcessor, logger logger.Logger) (cryptoalg.SignatureProcessor, error) {
	if rsa == nil {
		return nil, fmt.Errorf("rsa processor must not be nil")
	}

	hasher, err := NewHasher(hashAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to create hasher: %w", err)
	}

	padding, err := NewPKCS1v15Padding(hashAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to create padding: %w", err)
	}

	return &signatureProcessor{
		hasher:  hasher,
		padding: padding,
		rsa:     rsa,
		logger:  logger,
	}, nil
}

// GenerateKeys generates a key pair and binds it to the processor
func (s *signatureProcessor) GenerateKeys(ctx context.Context, keySize int, verbose bool) (*crypto.KeyPair, error) {
	keyPair, err := s.rsa.GenerateKeyPair(ctx, keySize, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing keys: %w", err)
	}

	s.keyPair.Store(keyPair)
	return keyPair, nil
}

// KeyPair returns the bound key pair or nil
func (s *signatureProcessor) KeyPair() *crypto.KeyPair {
	return s.keyPair.Load()
}

// Sign hashes message, pads the digest to the modulus width and applies the private exponent
func (s *signatureProcessor) Sign(message []byte, privateKey *crypto.PrivateKey) (*big.Int, error) {
	if privateKey == nil {
		if bound := s.keyPair.Load(); bound != nil {
			privateKey = bound.Private
		}
	}
	if privateKey == nil || privateKey.N == nil {
		return nil, fmt.Errorf("%w: no private key for signing", crypto.ErrMissingKey)
	}

	digest := s.hasher.Compute(message)

	em, err := s.padding.Pad(digest, privateKey.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to pad digest: %w", err)
	}

	signature, err := s.rsa.Decrypt(em, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}

	s.logger.Info("Signed message with ", s.hasher.Algorithm())
	return signature, nil
}

// Verify recovers the encoded message with the public exponent and compares
// the embedded digest with the digest of message
func (s *signatureProcessor) Verify(message []byte, signature *big.Int, publicKey *crypto.PublicKey) (bool, error) {
	if publicKey == nil {
		if bound := s.keyPair.Load(); bound != nil {
			publicKey = bound.Public
		}
	}
	if publicKey == nil || publicKey.N == nil {
		return false, fmt.Errorf("%w: no public key for verification", crypto.ErrMissingKey)
	}

	em, err := s.rsa.Encrypt(signature, publicKey)
	if err != nil {
		s.logger.Info("Signature rejected: ", err)
		return false, nil
	}

	extracted, ok := s.padding.Unpad(em, publicKey.Size())
	if !ok {
		s.logger.Info("Signature rejected: malformed PKCS#1 v1.5 encoding")
		return false, nil
	}

	valid := bytes.Equal(extracted, s.hasher.Compute(message))
	s.logger.Info("Signature verification result: ", valid)
	return valid, nil
}

// Hash returns the hex digest of message
func (s *signatureProcessor) Hash(message []byte) string {
	return crypto.EncodeDigest(s.hasher.Compute(message))
}

// HashAlgorithm returns the name of the processor's hash engine
func (s *signatureProcessor) HashAlgorithm() string {
	return s.hasher.Algorithm()
}
