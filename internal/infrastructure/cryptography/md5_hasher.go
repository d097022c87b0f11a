package cryptography

import (
	"encoding/binary"
	"math/bits"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/cryptoalg"
)

// md5K[i] = floor(2^32 * |sin(i+1)|)
var md5K = [64]uint32{
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee,
	0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be,
	0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa,
	0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed,
	0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c,
	0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05,
	0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039,
	0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1,
	0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

// Left-rotate amounts, one row per round group, cycling every 4 rounds.
var md5Shifts = [4][4]int{
	{7, 12, 17, 22},
	{5, 9, 14, 20},
	{4, 11, 16, 23},
	{6, 10, 15, 21},
}

// md5State holds the four chaining words for a single Compute call.
type md5State struct {
	a, b, c, d uint32
}

func newMD5State() *md5State {
	return &md5State{
		a: 0x67452301,
		b: 0xefcdab89,
		c: 0x98badcfe,
		d: 0x10325476,
	}
}

// block absorbs one 64-byte chunk.
func (s *md5State) block(chunk []byte) {
	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(chunk[i*4:])
	}

	a, b, c, d := s.a, s.b, s.c, s.d

	for i := 0; i < 64; i++ {
		var f uint32
		var g int

		switch i / 16 {
		case 0:
			f = (b & c) | (^b & d)
			g = i
		case 1:
			f = (d & b) | (^d & c)
			g = (5*i + 1) % 16
		case 2:
			f = b ^ c ^ d
			g = (3*i + 5) % 16
		default:
			f = c ^ (b | ^d)
			g = (7 * i) % 16
		}

		f += a + md5K[i] + m[g]
		a = d
		d = c
		c = b
		b += bits.RotateLeft32(f, md5Shifts[i/16][i%4])
	}

	s.a += a
	s.b += b
	s.c += c
	s.d += d
}

func (s *md5State) sum() []byte {
	digest := make([]byte, crypto.MD5DigestSize)
	binary.LittleEndian.PutUint32(digest[0:], s.a)
	binary.LittleEndian.PutUint32(digest[4:], s.b)
	binary.LittleEndian.PutUint32(digest[8:], s.c)
	binary.LittleEndian.PutUint32(digest[12:], s.d)
	return digest
}

// md5Hasher implements cryptoalg.Hasher per RFC 1321.
type md5Hasher struct{}

// NewMD5Hasher returns the MD5 engine.
func NewMD5Hasher() cryptoalg.Hasher {
	return md5Hasher{}
}

func (md5Hasher) Algorithm() string { return crypto.HashAlgorithmMD5 }

func (md5Hasher) Size() int { return crypto.MD5DigestSize }

// Compute returns the 16-byte MD5 digest of message.
func (md5Hasher) Compute(message []byte) []byte {
	padded := padMessage(message, binary.LittleEndian)

	state := newMD5State()
	for off := 0; off < len(padded); off += blockSize {
		state.block(padded[off : off+blockSize])
	}

	return state.sum()
}
