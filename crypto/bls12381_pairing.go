package crypto

// BLS12-381 optimal ate pairing: Miller loop over the pseudo-binary
// expansion of the ate loop count, then the optimized final
// exponentiation from bls12381_fp12.go.
//
// G2 points are lifted into F_p^12 through the degree-6 twist: the twist
// curve coordinate (c0 + c1*u) untwists to the polynomial
// (c0 - c1) + c1*x^6, divided by w^2 for x and w^3 for y, where w is the
// degree-1 basis element. The lifted points then satisfy the G1 equation
// y^2 = x^3 + 4 over F_p^12, so a single affine line function serves the
// whole loop.

import "math/big"

// blsAteLoopCount is the absolute value of the BLS12-381 parameter,
// 0xd201000000010000. The Miller loop walks its bits 62..0 high-to-low
// (the top bit is implicit in the loop initialization R = Q).
var blsAteLoopCount, _ = new(big.Int).SetString("d201000000010000", 16)

const blsMillerSteps = 63

// blsFp12Point is an affine point with F_p^12 coordinates, used only
// inside the Miller loop.
type blsFp12Point struct {
	x, y blsFp12
}

// Powers of the basis element used by the twist embedding, inverted once.
var (
	blsTwistW2Inv = func() blsFp12 {
		w2 := blsFp12Zero()
		w2[2] = big.NewInt(1)
		return blsFp12Inv(w2)
	}()
	blsTwistW3Inv = func() blsFp12 {
		w3 := blsFp12Zero()
		w3[3] = big.NewInt(1)
		return blsFp12Inv(w3)
	}()
)

// blsTwistG2 lifts an affine G2 point into F_p^12.
func blsTwistG2(x, y *blsFp2) *blsFp12Point {
	nx := blsFp12Zero()
	nx[0] = blsFpSub(x.c0, x.c1)
	nx[6] = new(big.Int).Set(x.c1)
	ny := blsFp12Zero()
	ny[0] = blsFpSub(y.c0, y.c1)
	ny[6] = new(big.Int).Set(y.c1)
	return &blsFp12Point{
		x: blsFp12Mul(nx, blsTwistW2Inv),
		y: blsFp12Mul(ny, blsTwistW3Inv),
	}
}

// blsEmbedG1 lifts an affine G1 point into F_p^12 as constant
// polynomials.
func blsEmbedG1(x, y *big.Int) *blsFp12Point {
	nx := blsFp12Zero()
	nx[0] = new(big.Int).Set(x)
	ny := blsFp12Zero()
	ny[0] = new(big.Int).Set(y)
	return &blsFp12Point{x: nx, y: ny}
}

// blsLineFunc evaluates the line through p1 and p2 at t, returning a
// separate numerator and denominator so the loop can defer division.
// Three cases: secant, tangent (equal points), vertical (inverses).
func blsLineFunc(p1, p2, t *blsFp12Point) (num, den blsFp12) {
	var mNum, mDen blsFp12
	switch {
	case !p1.x.equal(p2.x):
		mNum = blsFp12Sub(p2.y, p1.y)
		mDen = blsFp12Sub(p2.x, p1.x)
	case p1.y.equal(p2.y):
		mNum = blsFp12MulScalar(blsFp12Sqr(p1.x), big.NewInt(3))
		mDen = blsFp12MulScalar(p1.y, big.NewInt(2))
	default:
		return blsFp12Sub(t.x, p1.x), blsFp12One()
	}
	num = blsFp12Sub(
		blsFp12Mul(mNum, blsFp12Sub(t.x, p1.x)),
		blsFp12Mul(mDen, blsFp12Sub(t.y, p1.y)))
	return num, mDen
}

// blsFp12PointDouble doubles an affine F_p^12 point.
func blsFp12PointDouble(p *blsFp12Point) *blsFp12Point {
	lam := blsFp12Div(
		blsFp12MulScalar(blsFp12Sqr(p.x), big.NewInt(3)),
		blsFp12MulScalar(p.y, big.NewInt(2)))
	nx := blsFp12Sub(blsFp12Sqr(lam), blsFp12MulScalar(p.x, big.NewInt(2)))
	ny := blsFp12Sub(blsFp12Mul(lam, blsFp12Sub(p.x, nx)), p.y)
	return &blsFp12Point{x: nx, y: ny}
}

// blsFp12PointAdd adds two distinct affine F_p^12 points. Adding a point
// to its negation cannot happen on the Miller-loop path for subgroup
// inputs, so it is treated as an invariant violation.
func blsFp12PointAdd(p1, p2 *blsFp12Point) *blsFp12Point {
	if p1.x.equal(p2.x) && p1.y.equal(p2.y) {
		return blsFp12PointDouble(p1)
	}
	if p1.x.equal(p2.x) {
		panic("bls: degenerate addition in miller loop")
	}
	lam := blsFp12Div(blsFp12Sub(p2.y, p1.y), blsFp12Sub(p2.x, p1.x))
	nx := blsFp12Sub(blsFp12Sub(blsFp12Sqr(lam), p1.x), p2.x)
	ny := blsFp12Sub(blsFp12Mul(lam, blsFp12Sub(p1.x, nx)), p1.y)
	return &blsFp12Point{x: nx, y: ny}
}

// blsMillerLoop runs the Miller loop for e(p, q). Both points must be
// non-identity and on-curve (the callers enforce this). Numerator and
// denominator accumulate separately; the single division happens at the
// end, before the optional final exponentiation.
func blsMillerLoop(p *BlsG1Point, q *BlsG2Point, doFinalExp bool) blsFp12 {
	px, py := p.blsG1ToAffine()
	qx, qy := q.blsG2ToAffine()
	pt := blsEmbedG1(px, py)
	qt := blsTwistG2(qx, qy)

	r := &blsFp12Point{x: qt.x.clone(), y: qt.y.clone()}
	fNum := blsFp12One()
	fDen := blsFp12One()
	for i := blsMillerSteps - 1; i >= 0; i-- {
		n, d := blsLineFunc(r, r, pt)
		fNum = blsFp12Mul(blsFp12Sqr(fNum), n)
		fDen = blsFp12Mul(blsFp12Sqr(fDen), d)
		r = blsFp12PointDouble(r)
		if blsAteLoopCount.Bit(i) == 1 {
			n, d = blsLineFunc(r, qt, pt)
			fNum = blsFp12Mul(fNum, n)
			fDen = blsFp12Mul(fDen, d)
			r = blsFp12PointAdd(r, qt)
		}
	}
	f := blsFp12Div(fNum, fDen)
	if doFinalExp {
		return blsFp12FinalExp(f)
	}
	return f
}

// BlsPairing computes e(p, q). Identity inputs give the GT identity.
// Off-curve inputs are a protocol-level precondition violation and
// panic; untrusted points must be validated at deserialization.
func BlsPairing(p *BlsG1Point, q *BlsG2Point, doFinalExp bool) blsFp12 {
	if p.blsG1IsInfinity() || q.blsG2IsInfinity() {
		return blsFp12One()
	}
	if !blsG1IsOnCurve(p) || !blsG2IsOnCurve(q) {
		panic("bls: pairing input not on curve")
	}
	return blsMillerLoop(p, q, doFinalExp)
}

// blsPairingCheck verifies e(sig, gen) == e(hm, pk) by computing
// e(sig, gen) * e(hm, pk)^-1 with one shared final exponentiation and
// comparing against the GT identity. All four points must be non-zero
// and on-curve.
func blsPairingCheck(pk *BlsG1Point, hm *BlsG2Point, gen *BlsG1Point, sig *BlsG2Point) bool {
	if pk.blsG1IsInfinity() || gen.blsG1IsInfinity() ||
		hm.blsG2IsInfinity() || sig.blsG2IsInfinity() {
		return false
	}
	if !blsG1IsOnCurve(pk) || !blsG1IsOnCurve(gen) ||
		!blsG2IsOnCurve(hm) || !blsG2IsOnCurve(sig) {
		return false
	}
	f1 := blsMillerLoop(gen, sig, false)
	f2 := blsMillerLoop(pk, hm, false)
	f := blsFp12Mul(f1, blsFp12Inv(f2))
	return blsFp12FinalExp(f).isOne()
}
