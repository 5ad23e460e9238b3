package crypto

// BLS12-381 extension field F_p^2 = F_p[u] / (u^2 + 1).
//
// Elements are represented as (c0 + c1*u) with c0, c1 in F_p. G2 point
// coordinates live here. Square roots use the eighth-roots-of-unity
// method; a second variant computes sqrt(u/v) directly for the SSWU map.

import (
	"math/big"
	"sync"
)

// blsFp2 represents an element of F_p^2 as (c0 + c1*u).
type blsFp2 struct {
	c0, c1 *big.Int
}

func newBlsFp2(c0, c1 *big.Int) *blsFp2 {
	return &blsFp2{c0: new(big.Int).Set(c0), c1: new(big.Int).Set(c1)}
}

// newBlsFp2FromInt64 builds a small constant, mapping negative values
// into the field.
func newBlsFp2FromInt64(c0, c1 int64) *blsFp2 {
	a := big.NewInt(c0)
	b := big.NewInt(c1)
	return &blsFp2{c0: a.Mod(a, blsP), c1: b.Mod(b, blsP)}
}

func blsFp2Zero() *blsFp2 {
	return &blsFp2{c0: new(big.Int), c1: new(big.Int)}
}

func blsFp2One() *blsFp2 {
	return &blsFp2{c0: big.NewInt(1), c1: new(big.Int)}
}

func (e *blsFp2) isZero() bool {
	return e.c0.Sign() == 0 && e.c1.Sign() == 0
}

func (e *blsFp2) isOne() bool {
	return e.c0.Cmp(big.NewInt(1)) == 0 && e.c1.Sign() == 0
}

func (e *blsFp2) equal(f *blsFp2) bool {
	return e.c0.Cmp(f.c0) == 0 && e.c1.Cmp(f.c1) == 0
}

func (e *blsFp2) clone() *blsFp2 {
	return newBlsFp2(e.c0, e.c1)
}

// blsFp2Add returns e + f in F_p^2.
func blsFp2Add(e, f *blsFp2) *blsFp2 {
	return &blsFp2{
		c0: blsFpAdd(e.c0, f.c0),
		c1: blsFpAdd(e.c1, f.c1),
	}
}

// blsFp2Sub returns e - f in F_p^2.
func blsFp2Sub(e, f *blsFp2) *blsFp2 {
	return &blsFp2{
		c0: blsFpSub(e.c0, f.c0),
		c1: blsFpSub(e.c1, f.c1),
	}
}

// blsFp2Mul returns e * f in F_p^2.
// (a0 + a1*u)(b0 + b1*u) = (a0*b0 - a1*b1) + (a0*b1 + a1*b0)*u
func blsFp2Mul(e, f *blsFp2) *blsFp2 {
	v0 := blsFpMul(e.c0, f.c0)
	v1 := blsFpMul(e.c1, f.c1)
	return &blsFp2{
		c0: blsFpSub(v0, v1),
		c1: blsFpSub(blsFpMul(blsFpAdd(e.c0, e.c1), blsFpAdd(f.c0, f.c1)), blsFpAdd(v0, v1)),
	}
}

// blsFp2Sqr returns e^2 in F_p^2.
func blsFp2Sqr(e *blsFp2) *blsFp2 {
	ab := blsFpMul(e.c0, e.c1)
	return &blsFp2{
		c0: blsFpMul(blsFpAdd(e.c0, e.c1), blsFpSub(e.c0, e.c1)),
		c1: blsFpAdd(ab, ab),
	}
}

// blsFp2Neg returns -e in F_p^2.
func blsFp2Neg(e *blsFp2) *blsFp2 {
	return &blsFp2{
		c0: blsFpNeg(e.c0),
		c1: blsFpNeg(e.c1),
	}
}

// blsFp2Conj returns the conjugate of e: (c0 - c1*u).
func blsFp2Conj(e *blsFp2) *blsFp2 {
	return &blsFp2{
		c0: new(big.Int).Set(e.c0),
		c1: blsFpNeg(e.c1),
	}
}

// blsFp2Inv returns e^(-1) in F_p^2 via the conjugate and one base-field
// inversion: (a + b*u)^(-1) = (a - b*u) / (a^2 + b^2).
func blsFp2Inv(e *blsFp2) *blsFp2 {
	t := blsFpAdd(blsFpSqr(e.c0), blsFpSqr(e.c1))
	inv := blsFpInv(t)
	return &blsFp2{
		c0: blsFpMul(e.c0, inv),
		c1: blsFpMul(blsFpNeg(e.c1), inv),
	}
}

// blsFp2Div returns e / f.
func blsFp2Div(e, f *blsFp2) *blsFp2 {
	return blsFp2Mul(e, blsFp2Inv(f))
}

// blsFp2MulScalar returns e * s where s is in F_p.
func blsFp2MulScalar(e *blsFp2, s *big.Int) *blsFp2 {
	return &blsFp2{
		c0: blsFpMul(e.c0, s),
		c1: blsFpMul(e.c1, s),
	}
}

// blsFp2MulSmall returns e * s for a small word-sized scalar.
func blsFp2MulSmall(e *blsFp2, s int64) *blsFp2 {
	return &blsFp2{
		c0: blsFpMulSmall(e.c0, s),
		c1: blsFpMulSmall(e.c1, s),
	}
}

// blsFp2Exp returns e^k by square-and-multiply over the bits of k.
func blsFp2Exp(e *blsFp2, k *big.Int) *blsFp2 {
	res := blsFp2One()
	base := e.clone()
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			res = blsFp2Mul(res, base)
		}
		base = blsFp2Sqr(base)
	}
	return res
}

// blsFp2Sgn0 returns the "sign" of an Fp2 element per RFC 9380:
// sgn0(c0) | (c0 == 0 && sgn0(c1)).
func blsFp2Sgn0(e *blsFp2) int {
	s0 := blsFpSgn0(e.c0)
	z0 := 0
	if new(big.Int).Mod(e.c0, blsP).Sign() == 0 {
		z0 = 1
	}
	s1 := blsFpSgn0(e.c1)
	return s0 | (z0 & s1)
}

// Eighth roots of unity in Fp2: roots[k] = (1+u)^(k*(p^2-1)/8).
// Computed once on first use; both square-root variants match candidate
// check values against this table.
var (
	blsFp2RootsOnce sync.Once
	blsFp2Roots     [8]*blsFp2
	// (p^2+7)/16 and (p^2-9)/16, the sqrt and sqrt-division exponents.
	blsFp2SqrtExp    *big.Int
	blsFp2SqrtDivExp *big.Int
)

func blsFp2EighthRoots() *[8]*blsFp2 {
	blsFp2RootsOnce.Do(func() {
		p2 := new(big.Int).Mul(blsP, blsP)
		step := new(big.Int).Sub(p2, big.NewInt(1))
		step.Div(step, big.NewInt(8))
		onePlusU := newBlsFp2(big.NewInt(1), big.NewInt(1))
		for k := 0; k < 8; k++ {
			e := new(big.Int).Mul(step, big.NewInt(int64(k)))
			blsFp2Roots[k] = blsFp2Exp(onePlusU, e)
		}
		blsFp2SqrtExp = new(big.Int).Add(p2, big.NewInt(7))
		blsFp2SqrtExp.Div(blsFp2SqrtExp, big.NewInt(16))
		blsFp2SqrtDivExp = new(big.Int).Sub(p2, big.NewInt(9))
		blsFp2SqrtDivExp.Div(blsFp2SqrtDivExp, big.NewInt(16))
	})
	return &blsFp2Roots
}

// blsFp2Sqrt returns a square root of e, or nil if none exists.
//
// candidate = e^((p^2+7)/16); check = candidate^2 / e. If check equals an
// even-indexed eighth root of unity roots[2j], then candidate / roots[j]
// is a root. Odd-indexed check values mean e is a non-residue.
func blsFp2Sqrt(e *blsFp2) *blsFp2 {
	if e.isZero() {
		return blsFp2Zero()
	}
	roots := blsFp2EighthRoots()
	cand := blsFp2Exp(e, blsFp2SqrtExp)
	check := blsFp2Div(blsFp2Sqr(cand), e)
	for j := 0; j < 4; j++ {
		if check.equal(roots[2*j]) {
			root := blsFp2Div(cand, roots[j])
			if !blsFp2Sqr(root).equal(e) {
				panic("bls: fp2 sqrt candidate failed verification")
			}
			return root
		}
	}
	return nil
}

// blsFp2SqrtDivision computes sqrt(u/v) without a separate division:
// gamma = u*v^7 * (u*v^15)^((p^2-9)/16), tried against the first four
// eighth roots of unity. Returns the root and true on success, or gamma
// and false so the SSWU map can retry with the eta constants. Distinct
// from blsFp2Sqrt on purpose: the candidate set differs.
func blsFp2SqrtDivision(u, v *blsFp2) (*blsFp2, bool) {
	roots := blsFp2EighthRoots()
	t1 := blsFp2Mul(u, blsFp2Exp(v, big.NewInt(7)))
	t2 := blsFp2Mul(t1, blsFp2Exp(v, big.NewInt(8)))
	gamma := blsFp2Mul(blsFp2Exp(t2, blsFp2SqrtDivExp), t1)
	for j := 0; j < 4; j++ {
		cand := blsFp2Mul(gamma, roots[j])
		if blsFp2Sub(blsFp2Mul(blsFp2Sqr(cand), v), u).isZero() {
			return cand, true
		}
	}
	return gamma, false
}
