package cryptoalg

import (
	"context"
	"math/big"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
)

// PaddingScheme encodes a digest into a full-width integer for the RSA trapdoor and back.
type PaddingScheme interface {
	// Pad builds the encoded message for a modulus of keySizeBytes bytes.
	Pad(digest []byte, keySizeBytes int) (*big.Int, error)

	// Unpad extracts the digest. The boolean is false for any malformed encoding.
	Unpad(encoded *big.Int, keySizeBytes int) ([]byte, bool)
}

// SignatureProcessor signs and verifies messages by composing a Hasher, a
// PaddingScheme and an RSAProcessor. It may hold one bound key pair which is
// used whenever a nil key is passed.
type SignatureProcessor interface {
	// GenerateKeys generates a key pair and binds it to the processor.
	GenerateKeys(ctx context.Context, keySize int, verbose bool) (*crypto.KeyPair, error)

	// KeyPair returns the bound key pair or nil.
	KeyPair() *crypto.KeyPair

	// Sign returns the signature integer for message.
	Sign(message []byte, privateKey *crypto.PrivateKey) (*big.Int, error)

	// Verify reports whether signature is valid for message. Malformed or
	// out-of-range signatures yield false; only a missing key yields an error.
	Verify(message []byte, signature *big.Int, publicKey *crypto.PublicKey) (bool, error)

	// Hash returns the hex digest of message with the processor's hash engine.
	Hash(message []byte) string

	// HashAlgorithm returns the name of the processor's hash engine.
	HashAlgorithm() string
}
