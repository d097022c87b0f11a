package cryptography

import (
	"encoding/binary"
	"fmt"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/cryptoalg"
)

// blockSize is the chunk size in bytes shared by MD5 and SHA-256.
const blockSize = 64

// NewHasher returns the hash engine registered under algorithm.
func NewHasher(algorithm string) (cryptoalg.Hasher, error) {
	switch algorithm {
	case crypto.HashAlgorithmMD5:
		return NewMD5Hasher(), nil
	case crypto.HashAlgorithmSHA256:
		return NewSHA256Hasher(), nil
	default:
		return nil, fmt.Errorf("%w: %q", crypto.ErrUnsupportedHashAlgorithm, algorithm)
	}
}

// padMessage applies the Merkle–Damgård padding shared by MD5 and SHA-256:
// a single 0x80 byte, zeros up to 56 mod 64, then the message length in bits
// as a 64-bit integer in the given byte order. The input is not modified.
func padMessage(message []byte, order binary.ByteOrder) []byte {
	padLen := blockSize - (len(message)+9)%blockSize
	if padLen == blockSize {
		padLen = 0
	}

	padded := make([]byte, len(message)+1+padLen+8)
	copy(padded, message)
	padded[len(message)] = 0x80
	order.PutUint64(padded[len(padded)-8:], uint64(len(message))*8)

	return padded
}
