package crypto

// BLS12-381 degree-12 extension field F_p^12, the pairing target field.
//
// Rather than a 2-3-2 tower, elements are plain degree-11 polynomials
// over F_p reduced by f(x) = x^12 - 2x^6 + 2. A small generic engine
// (convolution multiply, top-down reduction, polynomial extended Euclid)
// is parameterized by the reduction-coefficient vector, so the same code
// would serve any monic modulus; F_p^12 binds it to this one.

import (
	"math/big"
	"sync"
)

// blsFp12Degree is the extension degree of the pairing target field.
const blsFp12Degree = 12

// blsFp12 is an element of F_p^12: 12 F_p coefficients, index = power of
// the generator. Coefficients are kept canonical in [0, p).
type blsFp12 []*big.Int

// blsFp12ModCoeffs encodes f(x) = x^12 - 2x^6 + 2 as the vector of lower
// coefficients: x^12 = -2 + 2x^6, stored canonically mod p.
var blsFp12ModCoeffs = func() []*big.Int {
	m := blsPolyZero(blsFp12Degree)
	m[0] = big.NewInt(2)
	m[6] = new(big.Int).Sub(blsP, big.NewInt(2))
	return m
}()

// blsFp12HardExp is the "hard part" exponent (p^4 - p^2 + 1) / r of the
// optimized final exponentiation.
var blsFp12HardExp, _ = new(big.Int).SetString(
	"f686b3d807d01c0bd38c3195c899ed3cde88eeb996ca394506632528d6a9a2f2"+
		"30063cf081517f68f7764c28b6f8ae5a72bce8d63cb9f827eca0ba621315b207"+
		"6995003fc77a17988f8761bdc51dc2378b9039096d1b767f17fcbde783765915"+
		"c97f36c6f18212ed0b283ed237db421d160aeb6a1e79983774940996754c8c71"+
		"a2629b0dea236905ce937335d5b68fa9912aae208ccf1e516c3f438e3ba79", 16)

func blsPolyZero(n int) []*big.Int {
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = new(big.Int)
	}
	return out
}

func blsFp12Zero() blsFp12 {
	return blsPolyZero(blsFp12Degree)
}

func blsFp12One() blsFp12 {
	out := blsPolyZero(blsFp12Degree)
	out[0] = big.NewInt(1)
	return out
}

// blsFp12FromInt64 builds the constant polynomial c.
func blsFp12FromInt64(c int64) blsFp12 {
	out := blsPolyZero(blsFp12Degree)
	out[0] = new(big.Int).Mod(big.NewInt(c), blsP)
	return out
}

func (a blsFp12) clone() blsFp12 {
	out := make(blsFp12, blsFp12Degree)
	for i, c := range a {
		out[i] = new(big.Int).Set(c)
	}
	return out
}

func (a blsFp12) isOne() bool {
	if a[0].Cmp(big.NewInt(1)) != 0 {
		return false
	}
	for i := 1; i < blsFp12Degree; i++ {
		if a[i].Sign() != 0 {
			return false
		}
	}
	return true
}

func (a blsFp12) isZero() bool {
	for _, c := range a {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

func (a blsFp12) equal(b blsFp12) bool {
	for i := 0; i < blsFp12Degree; i++ {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

func blsFp12Add(a, b blsFp12) blsFp12 {
	out := make(blsFp12, blsFp12Degree)
	for i := 0; i < blsFp12Degree; i++ {
		out[i] = blsFpAdd(a[i], b[i])
	}
	return out
}

func blsFp12Sub(a, b blsFp12) blsFp12 {
	out := make(blsFp12, blsFp12Degree)
	for i := 0; i < blsFp12Degree; i++ {
		out[i] = blsFpSub(a[i], b[i])
	}
	return out
}

func blsFp12Neg(a blsFp12) blsFp12 {
	out := make(blsFp12, blsFp12Degree)
	for i := 0; i < blsFp12Degree; i++ {
		out[i] = blsFpNeg(a[i])
	}
	return out
}

// blsFp12MulScalar returns a * s for s in F_p.
func blsFp12MulScalar(a blsFp12, s *big.Int) blsFp12 {
	out := make(blsFp12, blsFp12Degree)
	for i := 0; i < blsFp12Degree; i++ {
		out[i] = blsFpMul(a[i], s)
	}
	return out
}

// blsFp12Mul multiplies two elements: schoolbook convolution to degree
// 2n-2, then top-down reduction substituting x^k = x^(k-n) * (lower
// coefficients of f) until everything fits below degree n.
func blsFp12Mul(a, b blsFp12) blsFp12 {
	const n = blsFp12Degree
	t := make([]*big.Int, 2*n-1)
	for i := range t {
		t[i] = new(big.Int)
	}
	for i := 0; i < n; i++ {
		if a[i].Sign() == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			t[i+j].Add(t[i+j], new(big.Int).Mul(a[i], b[j]))
		}
	}
	for i := 2*n - 2; i >= n; i-- {
		top := new(big.Int).Mod(t[i], blsP)
		t[i].SetInt64(0)
		if top.Sign() == 0 {
			continue
		}
		e := i - n
		for j := 0; j < n; j++ {
			if blsFp12ModCoeffs[j].Sign() == 0 {
				continue
			}
			t[e+j].Sub(t[e+j], new(big.Int).Mul(top, blsFp12ModCoeffs[j]))
		}
	}
	out := make(blsFp12, n)
	for i := 0; i < n; i++ {
		out[i] = t[i].Mod(t[i], blsP)
	}
	return out
}

func blsFp12Sqr(a blsFp12) blsFp12 {
	return blsFp12Mul(a, a)
}

// blsPolyDeg returns the degree of a coefficient slice, treating the zero
// polynomial as degree 0.
func blsPolyDeg(p []*big.Int) int {
	d := len(p) - 1
	for d > 0 && p[d].Sign() == 0 {
		d--
	}
	return d
}

// blsPolyRoundedDiv divides polynomial a by b over F_p, discarding the
// remainder. Used only by the extended-Euclid inverse below.
func blsPolyRoundedDiv(a, b []*big.Int) []*big.Int {
	dega, degb := blsPolyDeg(a), blsPolyDeg(b)
	temp := make([]*big.Int, len(a))
	for i, c := range a {
		temp[i] = new(big.Int).Set(c)
	}
	out := blsPolyZero(len(a))
	leadInv := blsFpInv(b[degb])
	for i := dega - degb; i >= 0; i-- {
		c := blsFpMul(temp[degb+i], leadInv)
		out[i] = blsFpAdd(out[i], c)
		for j := 0; j <= degb; j++ {
			temp[j+i] = blsFpSub(temp[j+i], blsFpMul(c, b[j]))
		}
	}
	return out[:blsPolyDeg(out)+1]
}

// blsFp12Inv inverts a via polynomial extended Euclid against f(x),
// normalized at the end by one base-field inversion of the remaining
// constant term. Zero input panics inside blsFpInv.
func blsFp12Inv(a blsFp12) blsFp12 {
	const n = blsFp12Degree
	lm := blsPolyZero(n + 1)
	lm[0] = big.NewInt(1)
	hm := blsPolyZero(n + 1)
	low := make([]*big.Int, n+1)
	for i := 0; i < n; i++ {
		low[i] = new(big.Int).Set(a[i])
	}
	low[n] = new(big.Int)
	high := make([]*big.Int, n+1)
	for i := 0; i < n; i++ {
		high[i] = new(big.Int).Set(blsFp12ModCoeffs[i])
	}
	high[n] = big.NewInt(1)

	for blsPolyDeg(low) > 0 {
		rq := blsPolyRoundedDiv(high, low)
		r := blsPolyZero(n + 1)
		copy(r, rq)
		nm := make([]*big.Int, n+1)
		nw := make([]*big.Int, n+1)
		for i := 0; i <= n; i++ {
			nm[i] = new(big.Int).Set(hm[i])
			nw[i] = new(big.Int).Set(high[i])
		}
		for i := 0; i <= n; i++ {
			for j := 0; j <= n-i; j++ {
				nm[i+j].Sub(nm[i+j], new(big.Int).Mul(lm[i], r[j]))
				nw[i+j].Sub(nw[i+j], new(big.Int).Mul(low[i], r[j]))
			}
		}
		for i := 0; i <= n; i++ {
			nm[i].Mod(nm[i], blsP)
			nw[i].Mod(nw[i], blsP)
		}
		lm, low, hm, high = nm, nw, lm, low
	}
	leadInv := blsFpInv(low[0])
	out := make(blsFp12, n)
	for i := 0; i < n; i++ {
		out[i] = blsFpMul(lm[i], leadInv)
	}
	return out
}

func blsFp12Div(a, b blsFp12) blsFp12 {
	return blsFp12Mul(a, blsFp12Inv(b))
}

// blsFp12Exp returns a^k by square-and-multiply.
func blsFp12Exp(a blsFp12, k *big.Int) blsFp12 {
	res := blsFp12One()
	base := a.clone()
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			res = blsFp12Mul(res, base)
		}
		base = blsFp12Sqr(base)
	}
	return res
}

// Frobenius substitution table: row[i] = (x^p)^i mod f. Since the
// coefficients of an element live in F_p they are fixed by p-th powering,
// so frob(a) = sum_i a_i * row[i].
var (
	blsFp12FrobOnce sync.Once
	blsFp12FrobRows [blsFp12Degree]blsFp12
)

func blsFp12FrobTable() *[blsFp12Degree]blsFp12 {
	blsFp12FrobOnce.Do(func() {
		x := blsFp12Zero()
		x[1] = big.NewInt(1)
		xp := blsFp12Exp(x, blsP)
		blsFp12FrobRows[0] = blsFp12One()
		for i := 1; i < blsFp12Degree; i++ {
			blsFp12FrobRows[i] = blsFp12Mul(blsFp12FrobRows[i-1], xp)
		}
	})
	return &blsFp12FrobRows
}

// blsFp12Frobenius returns a^p via the substitution table.
func blsFp12Frobenius(a blsFp12) blsFp12 {
	rows := blsFp12FrobTable()
	out := blsFp12Zero()
	for i := 0; i < blsFp12Degree; i++ {
		if a[i].Sign() == 0 {
			continue
		}
		row := rows[i]
		for j := 0; j < blsFp12Degree; j++ {
			out[j] = blsFpAdd(out[j], blsFpMul(a[i], row[j]))
		}
	}
	return out
}

// blsFp12FinalExp maps a Miller-loop output into the order-r subgroup of
// F_p^12: f^(p^2+1) costs two Frobenius and one multiply, raising that to
// p^6-1 costs six Frobenius and one division, and the remainder of
// (p^12-1)/r is the fixed hard-part exponent.
func blsFp12FinalExp(f blsFp12) blsFp12 {
	g := blsFp12Mul(blsFp12Frobenius(blsFp12Frobenius(f)), f)
	h := g
	for i := 0; i < 6; i++ {
		h = blsFp12Frobenius(h)
	}
	g = blsFp12Div(h, g)
	return blsFp12Exp(g, blsFp12HardExp)
}
