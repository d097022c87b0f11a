package cryptography

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/cryptoalg"
	"github.com/MGTheTrain/docsign/internal/pkg/bigmath"
	"github.com/MGTheTrain/docsign/internal/pkg/logger"
)

// DefaultMillerRabinRounds bounds the false positive rate by 4^-40 = 2^-80.
const DefaultMillerRabinRounds = 40

// attemptsPerBit sets the default candidate budget relative to the prime size.
// The expected number of odd candidates is about ln(2^bits)/2, well below this.
const attemptsPerBit = 64

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// smallPrimes rejects most composite candidates before Miller–Rabin runs.
var smallPrimes = []uint64{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73,
	79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151, 157,
	163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227, 229, 233, 239, 241, 251,
}

// PrimeGeneratorOption configures a prime generator.
type PrimeGeneratorOption func(*primeGenerator)

// WithRandom replaces crypto/rand.Reader as the randomness source.
func WithRandom(random io.Reader) PrimeGeneratorOption {
	return func(g *primeGenerator) {
		g.random = random
	}
}

// WithMillerRabinRounds sets the number of Miller–Rabin witnesses per candidate.
func WithMillerRabinRounds(rounds int) PrimeGeneratorOption {
	return func(g *primeGenerator) {
		g.rounds = rounds
	}
}

// WithMaxAttempts bounds the number of candidates sampled per prime.
// Zero selects a budget proportional to the requested bit length.
func WithMaxAttempts(attempts int) PrimeGeneratorOption {
	return func(g *primeGenerator) {
		g.maxAttempts = attempts
	}
}

type primeGenerator struct {
	random      io.Reader
	rounds      int
	maxAttempts int
	logger      logger.Logger
}

// NewPrimeGenerator creates a Miller–Rabin based prime generator.
func NewPrimeGenerator(logger logger.Logger, opts ...PrimeGeneratorOption) (cryptoalg.PrimeGenerator, error) {
	g := &primeGenerator{
		random: rand.Reader,
		rounds: DefaultMillerRabinRounds,
		logger: logger,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.random == nil {
		return nil, fmt.Errorf("randomness source must not be nil")
	}
	if g.rounds < 1 {
		return nil, fmt.Errorf("miller-rabin rounds must be positive, got %d", g.rounds)
	}
	if g.maxAttempts < 0 {
		return nil, fmt.Errorf("max attempts must not be negative, got %d", g.maxAttempts)
	}

	return g, nil
}

// GeneratePrime samples odd candidates with the top bit set until one passes
// trial division and Miller–Rabin.
func (g *primeGenerator) GeneratePrime(ctx context.Context, bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: prime size %d bits", crypto.ErrInvalidKeySize, bits)
	}

	attempts := g.maxAttempts
	if attempts == 0 {
		attempts = attemptsPerBit * bits
	}

	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate, err := g.candidate(bits)
		if err != nil {
			return nil, err
		}

		ok, err := g.isProbablePrime(candidate)
		if err != nil {
			return nil, err
		}
		if ok {
			return candidate, nil
		}
	}

	g.logger.Warn(fmt.Sprintf("Prime search gave up after %d candidates of %d bits", attempts, bits))
	return nil, fmt.Errorf("%w: no %d-bit prime after %d candidates", crypto.ErrPrimeSearchExhausted, bits, attempts)
}

// candidate returns a random odd integer of exactly bits bits.
func (g *primeGenerator) candidate(bits int) (*big.Int, error) {
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}

	excess := uint(len(buf)*8 - bits)
	buf[0] &= 0xFF >> excess
	buf[0] |= 0x80 >> excess
	buf[len(buf)-1] |= 1

	return new(big.Int).SetBytes(buf), nil
}

func (g *primeGenerator) isProbablePrime(n *big.Int) (bool, error) {
	if n.Cmp(two) < 0 {
		return false, nil
	}
	if n.Cmp(three) <= 0 {
		return true, nil
	}
	if n.Bit(0) == 0 {
		return false, nil
	}

	rem := new(big.Int)
	for _, p := range smallPrimes {
		bp := new(big.Int).SetUint64(p)
		if n.Cmp(bp) == 0 {
			return true, nil
		}
		if rem.Mod(n, bp).Sign() == 0 {
			return false, nil
		}
	}

	return g.millerRabin(n)
}

// millerRabin writes n-1 = d*2^s and checks rounds random witnesses in [2, n-2].
func (g *primeGenerator) millerRabin(n *big.Int) (bool, error) {
	nMinusOne := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinusOne)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	// witnesses are drawn as 2 + [0, n-3)
	span := new(big.Int).Sub(n, three)

	for round := 0; round < g.rounds; round++ {
		a, err := rand.Int(g.random, span)
		if err != nil {
			return false, fmt.Errorf("failed to draw witness: %w", err)
		}
		a.Add(a, two)

		x, err := bigmath.PowerMod(a, d, n)
		if err != nil {
			return false, err
		}
		if x.Cmp(one) == 0 || x.Cmp(nMinusOne) == 0 {
			continue
		}

		composite := true
		for r := 1; r < s; r++ {
			x.Mul(x, x)
			x.Mod(x, n)
			if x.Cmp(nMinusOne) == 0 {
				composite = false
				break
			}
		}
		if composite {
			return false, nil
		}
	}

	return true, nil
}
