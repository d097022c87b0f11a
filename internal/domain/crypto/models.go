package crypto

import (
	"fmt"
	"math/big"
	"strings"
)

// PublicKey is an RSA public key (e, n).
// Values are never mutated after construction; share freely between goroutines.
type PublicKey struct {
	E *big.Int
	N *big.Int
}

// PrivateKey is an RSA private key (d, n).
type PrivateKey struct {
	D *big.Int
	N *big.Int
}

// KeyPair bundles the two halves produced by one key generation call.
type KeyPair struct {
	Public  *PublicKey
	Private *PrivateKey
}

// NewPublicKey copies e and n into a new PublicKey.
func NewPublicKey(e, n *big.Int) *PublicKey {
	return &PublicKey{E: new(big.Int).Set(e), N: new(big.Int).Set(n)}
}

// NewPrivateKey copies d and n into a new PrivateKey.
func NewPrivateKey(d, n *big.Int) *PrivateKey {
	return &PrivateKey{D: new(big.Int).Set(d), N: new(big.Int).Set(n)}
}

// String renders the key as "<e>:<n>".
func (k *PublicKey) String() string {
	return formatKeyString(k.E, k.N)
}

// Size returns the modulus length in bytes, ceil(bitlen(n)/8).
func (k *PublicKey) Size() int {
	return modulusSize(k.N)
}

// String renders the key as "<d>:<n>".
func (k *PrivateKey) String() string {
	return formatKeyString(k.D, k.N)
}

// Size returns the modulus length in bytes, ceil(bitlen(n)/8).
func (k *PrivateKey) Size() int {
	return modulusSize(k.N)
}

// ParsePublicKey parses "<e>:<n>".
func ParsePublicKey(s string) (*PublicKey, error) {
	e, n, err := parseKeyString(s)
	if err != nil {
		return nil, err
	}
	return &PublicKey{E: e, N: n}, nil
}

// ParsePrivateKey parses "<d>:<n>".
func ParsePrivateKey(s string) (*PrivateKey, error) {
	d, n, err := parseKeyString(s)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{D: d, N: n}, nil
}

func formatKeyString(exponent, modulus *big.Int) string {
	return exponent.String() + ":" + modulus.String()
}

func modulusSize(n *big.Int) int {
	if n == nil {
		return 0
	}
	return (n.BitLen() + 7) / 8
}

// parseKeyString rejects moduli above MaxKeySize and exponents wider than the
// modulus, so a parsed key always exponentiates in bounded time.
func parseKeyString(s string) (*big.Int, *big.Int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("%w: expected exactly one ':' separator", ErrInvalidKeyFormat)
	}

	exponent, err := parseDecimal(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: exponent: %v", ErrInvalidKeyFormat, err)
	}
	modulus, err := parseDecimal(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: modulus: %v", ErrInvalidKeyFormat, err)
	}

	if exponent.Sign() <= 0 {
		return nil, nil, fmt.Errorf("%w: exponent must be positive", ErrInvalidKeyFormat)
	}
	if modulus.Cmp(big.NewInt(2)) < 0 {
		return nil, nil, fmt.Errorf("%w: modulus must be at least 2", ErrInvalidKeyFormat)
	}
	if modulus.BitLen() > MaxKeySize {
		return nil, nil, fmt.Errorf("%w: modulus has %d bits, maximum is %d", ErrInvalidKeyFormat, modulus.BitLen(), MaxKeySize)
	}
	// exponentiation cost grows with the exponent width
	if bits := exponent.BitLen(); bits > modulus.BitLen() && bits > maxSmallExponentBits {
		return nil, nil, fmt.Errorf("%w: exponent has %d bits, wider than the %d-bit modulus", ErrInvalidKeyFormat, bits, modulus.BitLen())
	}

	return exponent, modulus, nil
}

// parseDecimal accepts ASCII digits only: no sign, no spaces, no base prefix.
func parseDecimal(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty value")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, fmt.Errorf("non-digit character %q at offset %d", s[i], i)
		}
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("cannot parse %q", s)
	}
	return v, nil
}
