package crypto

import (
	"errors"

	"github.com/MGTheTrain/docsign/internal/pkg/bigmath"
)

var (
	// ErrInvalidKeyFormat is returned for a key string that is not "<exponent>:<modulus>".
	ErrInvalidKeyFormat = errors.New("invalid key format")

	// ErrOutOfRange is returned when a raw RSA input is not in [0, n).
	ErrOutOfRange = errors.New("value out of range for modulus")

	// ErrNoModularInverse is returned when the private exponent cannot be derived.
	ErrNoModularInverse = bigmath.ErrNoModularInverse

	// ErrKeyTooSmall is returned when the modulus cannot hold the PKCS#1 v1.5 encoding.
	ErrKeyTooSmall = errors.New("key too small for PKCS#1 v1.5 padding")

	// ErrMissingKey is returned when sign or verify runs without any key available.
	ErrMissingKey = errors.New("no key available")

	// ErrInvalidKeySize is returned for key or prime sizes that cannot be generated.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrUnsupportedHashAlgorithm is returned for hash names other than md5 and sha256.
	ErrUnsupportedHashAlgorithm = errors.New("unsupported hash algorithm")

	// ErrPrimeSearchExhausted is returned when no prime was found within the attempt budget.
	ErrPrimeSearchExhausted = errors.New("prime search exhausted")

	// ErrInvalidDigestLength is returned when a digest does not match the padding's hash algorithm.
	ErrInvalidDigestLength = errors.New("invalid digest length")

	// ErrInvalidSignatureFormat is returned for a signature that is not base64 of a decimal integer.
	ErrInvalidSignatureFormat = errors.New("invalid signature format")
)
