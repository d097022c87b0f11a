package cryptography

import (
	"context"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/cryptoalg"
	"github.com/MGTheTrain/docsign/internal/pkg/bigmath"
	"github.com/MGTheTrain/docsign/internal/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// maxDistinctPrimeRetries bounds how often q is resampled when it equals p.
const maxDistinctPrimeRetries = 16

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	primes cryptoalg.PrimeGenerator
	logger logger.Logger
}

// NewRSAProcessor creates and returns a new instance of rsaProcessor
func NewRSAProcessor(primes cryptoalg.PrimeGenerator, logger logger.Logger) (cryptoalg.RSAProcessor, error) {
	if primes == nil {
		return nil, fmt.Errorf("prime generator must not be nil")
	}
	return &rsaProcessor{
		primes: primes,
		logger: logger,
	}, nil
}

// GenerateKeyPair searches p and q concurrently. The first failure, or ctx
// being done, cancels the other search.
func (r *rsaProcessor) GenerateKeyPair(ctx context.Context, keySize int, verbose bool) (*crypto.KeyPair, error) {
	if keySize < crypto.MinKeySize || keySize > crypto.MaxKeySize {
		return nil, fmt.Errorf("%w: %d bits, must be between %d and %d", crypto.ErrInvalidKeySize, keySize, crypto.MinKeySize, crypto.MaxKeySize)
	}
	half := keySize / 2

	var p, q *big.Int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = r.primes.GeneratePrime(gctx, half)
		return err
	})
	g.Go(func() error {
		var err error
		q, err = r.primes.GeneratePrime(gctx, half)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to generate primes: %w", err)
	}

	for retry := 0; p.Cmp(q) == 0; retry++ {
		if retry == maxDistinctPrimeRetries {
			return nil, fmt.Errorf("%w: could not find distinct %d-bit primes", crypto.ErrPrimeSearchExhausted, half)
		}
		var err error
		if q, err = r.primes.GeneratePrime(ctx, half); err != nil {
			return nil, fmt.Errorf("failed to generate primes: %w", err)
		}
	}

	n := new(big.Int).Mul(p, q)
	phi := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))

	e := publicExponent(phi)
	d, err := bigmath.ModInverse(e, phi)
	if err != nil {
		return nil, fmt.Errorf("failed to derive private exponent: %w", err)
	}

	if verbose {
		r.logger.Debug("p = ", p.String())
		r.logger.Debug("q = ", q.String())
		r.logger.Debug("n = ", n.String())
		r.logger.Debug("phi = ", phi.String())
		r.logger.Debug("e = ", e.String())
		r.logger.Debug("d = ", d.String())
	}

	r.logger.Info(fmt.Sprintf("Generated RSA key pair with %d-bit modulus", n.BitLen()))

	return &crypto.KeyPair{
		Public:  &crypto.PublicKey{E: e, N: n},
		Private: &crypto.PrivateKey{D: d, N: new(big.Int).Set(n)},
	}, nil
}

// publicExponent prefers 65537 and otherwise returns the smallest odd e >= 3
// coprime to phi. phi is even, so the search always ends.
func publicExponent(phi *big.Int) *big.Int {
	e := big.NewInt(crypto.DefaultPublicExponent)
	if bigmath.GCD(e, phi).Cmp(one) == 0 {
		return e
	}

	e.SetInt64(3)
	for bigmath.GCD(e, phi).Cmp(one) != 0 {
		e.Add(e, two)
	}
	return e
}

// Encrypt applies the public exponent: x^e mod n.
func (r *rsaProcessor) Encrypt(x *big.Int, publicKey *crypto.PublicKey) (*big.Int, error) {
	if publicKey == nil {
		return nil, fmt.Errorf("%w: public key is nil", crypto.ErrMissingKey)
	}
	if publicKey.E == nil || publicKey.N == nil {
		return nil, fmt.Errorf("%w: incomplete public key", crypto.ErrInvalidKeyFormat)
	}

	return r.apply(x, publicKey.E, publicKey.N)
}

// Decrypt applies the private exponent: x^d mod n.
func (r *rsaProcessor) Decrypt(x *big.Int, privateKey *crypto.PrivateKey) (*big.Int, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("%w: private key is nil", crypto.ErrMissingKey)
	}
	if privateKey.D == nil || privateKey.N == nil {
		return nil, fmt.Errorf("%w: incomplete private key", crypto.ErrInvalidKeyFormat)
	}

	return r.apply(x, privateKey.D, privateKey.N)
}

func (r *rsaProcessor) apply(x, exponent, modulus *big.Int) (*big.Int, error) {
	if x == nil || x.Sign() < 0 || x.Cmp(modulus) >= 0 {
		return nil, crypto.ErrOutOfRange
	}

	result, err := bigmath.PowerMod(x, exponent, modulus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", crypto.ErrInvalidKeyFormat, err)
	}
	return result, nil
}
