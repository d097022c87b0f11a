package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// EncodeDigest renders a digest as lower-case hex.
func EncodeDigest(digest []byte) string {
	return hex.EncodeToString(digest)
}

// EncodeSignature renders a signature as base64 of its decimal representation.
func EncodeSignature(signature *big.Int) string {
	return base64.StdEncoding.EncodeToString([]byte(signature.String()))
}

// DecodeSignature reverses EncodeSignature.
func DecodeSignature(encoded string) (*big.Int, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignatureFormat, err)
	}

	signature, err := parseDecimal(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignatureFormat, err)
	}

	return signature, nil
}
