package bigmath

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrNoModularInverse is returned when gcd(a, m) != 1.
	ErrNoModularInverse = errors.New("modular inverse does not exist")

	// ErrInvalidModulus is returned for a modulus that is zero or negative.
	ErrInvalidModulus = errors.New("modulus must be positive")

	// ErrNegativeExponent is returned by PowerMod for exponents below zero.
	ErrNegativeExponent = errors.New("exponent must not be negative")
)

var one = big.NewInt(1)

// GCD returns the non-negative greatest common divisor of a and b.
// GCD(0, 0) is 0.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	r := new(big.Int)

	for y.Sign() != 0 {
		r.Rem(x, y)
		x, y, r = y, r, x
	}

	return x
}

// ExtendedGCD returns (g, x, y) such that a*x + b*y = g = gcd(a, b), with g >= 0.
//
// The remainder sequence is walked iteratively so deep recursion can't happen
// regardless of operand size.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	q := new(big.Int)
	tmp := new(big.Int)

	for r.Sign() != 0 {
		q.Quo(oldR, r)

		// (oldR, r) = (r, oldR - q*r)
		tmp.Mul(q, r)
		oldR.Sub(oldR, tmp)
		oldR, r = r, oldR

		tmp.Mul(q, s)
		oldS.Sub(oldS, tmp)
		oldS, s = s, oldS

		tmp.Mul(q, t)
		oldT.Sub(oldT, tmp)
		oldT, t = t, oldT
	}

	if oldR.Sign() < 0 {
		oldR.Neg(oldR)
		oldS.Neg(oldS)
		oldT.Neg(oldT)
	}

	return oldR, oldS, oldT
}

// ModInverse returns x in [0, m) with (a*x) mod m = 1.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Cmp(one) <= 0 {
		return nil, fmt.Errorf("modulus %s: %w", m.String(), ErrNoModularInverse)
	}

	reduced := new(big.Int).Mod(a, m)
	g, x, _ := ExtendedGCD(reduced, m)
	if g.Cmp(one) != 0 {
		return nil, fmt.Errorf("gcd(%s, %s) = %s: %w", a.String(), m.String(), g.String(), ErrNoModularInverse)
	}

	return x.Mod(x, m), nil
}

// PowerMod computes base^exponent mod modulus by right-to-left square and multiply.
// The result is always in [0, modulus).
func PowerMod(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}
	if exponent.Sign() < 0 {
		return nil, ErrNegativeExponent
	}
	if modulus.Cmp(one) == 0 {
		return new(big.Int), nil
	}

	result := big.NewInt(1)
	b := new(big.Int).Mod(base, modulus)

	bits := exponent.BitLen()
	for i := 0; i < bits; i++ {
		if exponent.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
		if i+1 < bits {
			b.Mul(b, b)
			b.Mod(b, modulus)
		}
	}

	return result, nil
}
