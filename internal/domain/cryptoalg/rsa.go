package cryptoalg

import (
	"context"
	"math/big"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
)

// PrimeGenerator produces probable primes of an exact bit length.
type PrimeGenerator interface {
	// GeneratePrime returns a probable prime whose bit length is exactly bits.
	// It returns ctx.Err() when the context is done before a prime is found.
	GeneratePrime(ctx context.Context, bits int) (*big.Int, error)
}

// RSAProcessor handles RSA key generation and the raw trapdoor permutation.
// Signing uses Decrypt (private exponent), verification uses Encrypt (public exponent).
type RSAProcessor interface {
	// GenerateKeyPair generates a fresh key pair whose modulus has keySize bits (±1).
	// With verbose set the intermediate values are written to the debug log.
	GenerateKeyPair(ctx context.Context, keySize int, verbose bool) (*crypto.KeyPair, error)

	// Encrypt computes x^e mod n. x must be in [0, n).
	Encrypt(x *big.Int, publicKey *crypto.PublicKey) (*big.Int, error)

	// Decrypt computes x^d mod n. x must be in [0, n).
	Decrypt(x *big.Int, privateKey *crypto.PrivateKey) (*big.Int, error)
}
