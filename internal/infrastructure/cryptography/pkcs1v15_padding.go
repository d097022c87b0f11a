package cryptography

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/cryptoalg"
)

// minPaddingStringLength is the smallest number of 0xFF bytes in an encoded message.
const minPaddingStringLength = 8

// digestInfoPrefixes holds the DER encoded DigestInfo header that precedes the
// raw digest: SEQUENCE { SEQUENCE { OID, NULL }, OCTET STRING }.
var digestInfoPrefixes = map[string][]byte{
	// OID 1.2.840.113549.2.5
	crypto.HashAlgorithmMD5: {
		0x30, 0x20, 0x30, 0x0c, 0x06, 0x08, 0x2a, 0x86, 0x48, 0x86,
		0xf7, 0x0d, 0x02, 0x05, 0x05, 0x00, 0x04, 0x10,
	},
	// OID 2.16.840.1.101.3.4.2.1
	crypto.HashAlgorithmSHA256: {
		0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
		0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20,
	},
}

var digestSizes = map[string]int{
	crypto.HashAlgorithmMD5:    crypto.MD5DigestSize,
	crypto.HashAlgorithmSHA256: crypto.SHA256DigestSize,
}

type pkcs1v15Padding struct {
	prefix     []byte
	digestSize int
}

// NewPKCS1v15Padding returns the EMSA-PKCS1-v1_5 encoding for the given hash algorithm.
func NewPKCS1v15Padding(hashAlgorithm string) (cryptoalg.PaddingScheme, error) {
	prefix, ok := digestInfoPrefixes[hashAlgorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %q", crypto.ErrUnsupportedHashAlgorithm, hashAlgorithm)
	}
	return &pkcs1v15Padding{
		prefix:     prefix,
		digestSize: digestSizes[hashAlgorithm],
	}, nil
}

// Pad returns 0x00 0x01 FF..FF 0x00 DigestInfo as a big-endian integer.
func (p *pkcs1v15Padding) Pad(digest []byte, keySizeBytes int) (*big.Int, error) {
	if len(digest) != p.digestSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", crypto.ErrInvalidDigestLength, len(digest), p.digestSize)
	}

	tLen := len(p.prefix) + len(digest)
	psLen := keySizeBytes - 3 - tLen
	if psLen < minPaddingStringLength {
		return nil, fmt.Errorf("%w: %d byte modulus, need at least %d", crypto.ErrKeyTooSmall, keySizeBytes, tLen+3+minPaddingStringLength)
	}

	em := make([]byte, keySizeBytes)
	em[1] = 0x01
	for i := 2; i < 2+psLen; i++ {
		em[i] = 0xff
	}
	copy(em[3+psLen:], p.prefix)
	copy(em[3+psLen+len(p.prefix):], digest)

	return new(big.Int).SetBytes(em), nil
}

// Unpad never fails with an error; any deviation from the expected layout
// returns false so untrusted signatures cannot abort verification.
func (p *pkcs1v15Padding) Unpad(encoded *big.Int, keySizeBytes int) ([]byte, bool) {
	if encoded == nil || encoded.Sign() < 0 || keySizeBytes <= 0 {
		return nil, false
	}
	if (encoded.BitLen()+7)/8 > keySizeBytes {
		return nil, false
	}

	em := encoded.FillBytes(make([]byte, keySizeBytes))
	if len(em) < 2 || em[0] != 0x00 || em[1] != 0x01 {
		return nil, false
	}

	sep := bytes.IndexByte(em[2:], 0x00)
	if sep < minPaddingStringLength {
		return nil, false
	}
	for _, b := range em[2 : 2+sep] {
		if b != 0xff {
			return nil, false
		}
	}

	rest := em[2+sep+1:]
	if !bytes.HasPrefix(rest, p.prefix) {
		return nil, false
	}

	digest := rest[len(p.prefix):]
	if len(digest) != p.digestSize {
		return nil, false
	}

	return append([]byte(nil), digest...), true
}
