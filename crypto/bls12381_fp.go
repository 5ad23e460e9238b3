package crypto

// BLS12-381 finite field arithmetic over F_p.
//
// The BLS12-381 curve is defined over F_p where:
//   p = 0x1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab
//
// This file provides modular arithmetic primitives for the base field.
// Elements are canonical big.Int values in [0, p), serialized as 48
// big-endian bytes.

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// BLS12-381 curve parameters.
var (
	// blsP is the base field modulus.
	blsP, _ = new(big.Int).SetString(
		"1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab", 16)
	// blsR is the subgroup order.
	blsR, _ = new(big.Int).SetString(
		"73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)
	// blsB is the curve coefficient b = 4 for G1: y^2 = x^3 + 4.
	blsB = big.NewInt(4)
)

// ErrBLSNotInvertible is returned when an operation needs the inverse of a
// zero field element supplied from outside a trusted call path.
var ErrBLSNotInvertible = errors.New("bls: zero has no inverse")

// blsFpAdd returns (a + b) mod p.
func blsFpAdd(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, blsP)
}

// blsFpSub returns (a - b) mod p.
func blsFpSub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, blsP)
}

// blsFpMul returns (a * b) mod p.
func blsFpMul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, blsP)
}

// blsFpMulSmall returns (a * s) mod p for a small word-sized scalar.
func blsFpMulSmall(a *big.Int, s int64) *big.Int {
	r := new(big.Int).Mul(a, big.NewInt(s))
	return r.Mod(r, blsP)
}

// blsFpNeg returns (-a) mod p.
func blsFpNeg(a *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(blsP, new(big.Int).Mod(a, blsP))
}

// blsFpInv returns a^(-1) mod p. Inverting zero is a caller bug on every
// internal path, so it panics rather than returning an error.
func blsFpInv(a *big.Int) *big.Int {
	inv := new(big.Int).ModInverse(a, blsP)
	if inv == nil {
		panic(ErrBLSNotInvertible)
	}
	return inv
}

// blsFpSqr returns a^2 mod p.
func blsFpSqr(a *big.Int) *big.Int {
	r := new(big.Int).Mul(a, a)
	return r.Mod(r, blsP)
}

// blsFpExp returns a^e mod p.
func blsFpExp(a, e *big.Int) *big.Int {
	return new(big.Int).Exp(a, e, blsP)
}

// blsFpSqrt returns a square root of a mod p, or nil if none exists.
// For BLS12-381, p = 3 mod 4, so sqrt(a) = a^((p+1)/4) mod p, verified
// by squaring since not every element is a quadratic residue.
func blsFpSqrt(a *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int)
	}
	exp := new(big.Int).Add(blsP, big.NewInt(1))
	exp.Rsh(exp, 2)
	r := blsFpExp(a, exp)
	if blsFpSqr(r).Cmp(new(big.Int).Mod(a, blsP)) != 0 {
		return nil
	}
	return r
}

// blsFpSgn0 returns the "sign" of a field element per RFC 9380:
// 1 if a mod 2 == 1, 0 otherwise.
func blsFpSgn0(a *big.Int) int {
	t := new(big.Int).Mod(a, blsP)
	return int(t.Bit(0))
}

// blsFpFromBytes48 decodes a canonical 48-byte big-endian field element.
// Returns nil if the value is not reduced.
func blsFpFromBytes48(b [48]byte) *big.Int {
	v := new(big.Int).SetBytes(b[:])
	if v.Cmp(blsP) >= 0 {
		return nil
	}
	return v
}

// blsFpToBytes48 encodes a field element as 48 big-endian bytes.
func blsFpToBytes48(a *big.Int) [48]byte {
	var out [48]byte
	new(big.Int).Mod(a, blsP).FillBytes(out[:])
	return out
}

// blsFpRandom samples a uniform field element from crypto/rand.
func blsFpRandom() (*big.Int, error) {
	return rand.Int(rand.Reader, blsP)
}
