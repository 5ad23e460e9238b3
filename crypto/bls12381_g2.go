package crypto

// BLS12-381 G2 point operations over the twist curve y^2 = x^3 + 4(1+u)
// in F_p^2.
//
// Same homogeneous projective representation and formulas as G1 (affine
// is X/Z, Y/Z; identity is (1, 1, 0)), with coordinates in F_p^2 and the
// twisted curve coefficient.

import (
	"bytes"
	"math/big"
)

// BlsG2Point represents a point on the BLS12-381 G2 twist curve in
// homogeneous projective coordinates.
type BlsG2Point struct {
	x, y, z *blsFp2
}

// blsB2 is the twisted curve coefficient 4(1+u).
var blsB2 = newBlsFp2FromInt64(4, 4)

// BLS12-381 G2 generator point coordinates.
var (
	blsG2GenX0, _ = new(big.Int).SetString(
		"024aa2b2f08f0a91260805272dc51051c6e47ad4fa403b02b4510b647ae3d1770bac0326a805bbefd48056c8c121bdb8", 16)
	blsG2GenX1, _ = new(big.Int).SetString(
		"13e02b6052719f607dacd3a088274f65596bd0d09920b61ab5da61bbdc7f5049334cf11213945d57e5ac7d055d042b7e", 16)
	blsG2GenY0, _ = new(big.Int).SetString(
		"0ce5d527727d6e118cc9cdc6da2e351aadfd9baa8cbdd3a76d429a695160d12c923ac9cc3baca289e193548608b82801", 16)
	blsG2GenY1, _ = new(big.Int).SetString(
		"0606c4a02ea734cc32acd2b02bc28b99cb3e287e85a763af267492ab572e99ab3f370d275cec1da1aaa9075ff05f79be", 16)
)

// blsHEffG2 is the effective cofactor for G2 cofactor clearing. It is
// larger than r, which is why scalar multiplication must not reduce its
// input.
var blsHEffG2, _ = new(big.Int).SetString(
	"bc69f08f2ee75b3584c6a0ea91b352888e2a8e9145ad7689986ff031508ffe1329c2f178731db956d82bf015d1212b02ec0ec69d7477c1ae954cbc06689f6a359894c0adebbf6b4e8020005aaa95551", 16)

// BlsG2Generator returns the generator of G2.
func BlsG2Generator() *BlsG2Point {
	return &BlsG2Point{
		x: newBlsFp2(blsG2GenX0, blsG2GenX1),
		y: newBlsFp2(blsG2GenY0, blsG2GenY1),
		z: blsFp2One(),
	}
}

// BlsG2Infinity returns the identity point (1, 1, 0).
func BlsG2Infinity() *BlsG2Point {
	return &BlsG2Point{
		x: blsFp2One(),
		y: blsFp2One(),
		z: blsFp2Zero(),
	}
}

func (p *BlsG2Point) clone() *BlsG2Point {
	return &BlsG2Point{x: p.x.clone(), y: p.y.clone(), z: p.z.clone()}
}

// blsG2IsInfinity returns true if the point is the identity (Z=0).
func (p *BlsG2Point) blsG2IsInfinity() bool {
	return p.z.isZero()
}

// blsG2Equal compares by cross-multiplication.
func blsG2Equal(a, b *BlsG2Point) bool {
	return blsFp2Mul(a.x, b.z).equal(blsFp2Mul(b.x, a.z)) &&
		blsFp2Mul(a.y, b.z).equal(blsFp2Mul(b.y, a.z))
}

// blsG2ToAffine converts to affine coordinates. Returns nil, nil for the
// identity.
func (p *BlsG2Point) blsG2ToAffine() (x, y *blsFp2) {
	if p.blsG2IsInfinity() {
		return nil, nil
	}
	zInv := blsFp2Inv(p.z)
	return blsFp2Mul(p.x, zInv), blsFp2Mul(p.y, zInv)
}

// blsG2IsOnCurve checks Y^2*Z = X^3 + 4(1+u)*Z^3.
func blsG2IsOnCurve(p *BlsG2Point) bool {
	lhs := blsFp2Mul(blsFp2Sqr(p.y), p.z)
	z3 := blsFp2Mul(blsFp2Sqr(p.z), p.z)
	rhs := blsFp2Add(blsFp2Mul(blsFp2Sqr(p.x), p.x), blsFp2Mul(blsB2, z3))
	return lhs.equal(rhs)
}

// blsG2Double doubles a point with the same homogeneous formulas as G1.
func blsG2Double(p *BlsG2Point) *BlsG2Point {
	w := blsFp2MulSmall(blsFp2Sqr(p.x), 3)
	s := blsFp2Mul(p.y, p.z)
	b := blsFp2Mul(blsFp2Mul(p.x, p.y), s)
	h := blsFp2Sub(blsFp2Sqr(w), blsFp2MulSmall(b, 8))
	s2 := blsFp2Sqr(s)
	return &BlsG2Point{
		x: blsFp2MulSmall(blsFp2Mul(h, s), 2),
		y: blsFp2Sub(
			blsFp2Mul(w, blsFp2Sub(blsFp2MulSmall(b, 4), h)),
			blsFp2MulSmall(blsFp2Mul(blsFp2Sqr(p.y), s2), 8)),
		z: blsFp2MulSmall(blsFp2Mul(s, s2), 8),
	}
}

// blsG2Add adds two points.
func blsG2Add(p1, p2 *BlsG2Point) *BlsG2Point {
	if p1.blsG2IsInfinity() {
		return p2.clone()
	}
	if p2.blsG2IsInfinity() {
		return p1.clone()
	}
	u1 := blsFp2Mul(p2.y, p1.z)
	u2 := blsFp2Mul(p1.y, p2.z)
	v1 := blsFp2Mul(p2.x, p1.z)
	v2 := blsFp2Mul(p1.x, p2.z)
	if v1.equal(v2) {
		if u1.equal(u2) {
			return blsG2Double(p1)
		}
		return BlsG2Infinity()
	}
	u := blsFp2Sub(u1, u2)
	v := blsFp2Sub(v1, v2)
	vSq := blsFp2Sqr(v)
	vSqV2 := blsFp2Mul(vSq, v2)
	vCu := blsFp2Mul(v, vSq)
	w := blsFp2Mul(p1.z, p2.z)
	a := blsFp2Sub(blsFp2Sub(blsFp2Mul(blsFp2Sqr(u), w), vCu), blsFp2MulSmall(vSqV2, 2))
	return &BlsG2Point{
		x: blsFp2Mul(v, a),
		y: blsFp2Sub(blsFp2Mul(u, blsFp2Sub(vSqV2, a)), blsFp2Mul(vCu, u2)),
		z: blsFp2Mul(vCu, w),
	}
}

// blsG2ScalarMul computes k*P without reducing k mod r; see
// blsG1ScalarMul.
func blsG2ScalarMul(p *BlsG2Point, k *big.Int) *BlsG2Point {
	if k.Sign() == 0 || p.blsG2IsInfinity() {
		return BlsG2Infinity()
	}
	res := BlsG2Infinity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		res = blsG2Double(res)
		if k.Bit(i) == 1 {
			res = blsG2Add(res, p)
		}
	}
	return res
}

// blsG2Neg returns -P.
func blsG2Neg(p *BlsG2Point) *BlsG2Point {
	return &BlsG2Point{x: p.x.clone(), y: blsFp2Neg(p.y), z: p.z.clone()}
}

// blsFp2SignFlag selects the component carrying the sign: the imaginary
// part when nonzero, else the real part, tested like blsFpSignFlag.
func blsFp2SignFlag(y *blsFp2) bool {
	if y.c1.Sign() != 0 {
		return blsFpSignFlag(y.c1)
	}
	return blsFpSignFlag(y.c0)
}

// blsG2Compress serializes a point to the 96-byte compressed form:
// x_c1 with flag bits in the first 48 bytes, x_c0 in the second 48.
func blsG2Compress(p *BlsG2Point) [96]byte {
	var out [96]byte
	if p.blsG2IsInfinity() {
		out[0] = blsFlagCompressed | blsFlagInfinity
		return out
	}
	x, y := p.blsG2ToAffine()
	x.c1.FillBytes(out[:48])
	x.c0.FillBytes(out[48:])
	out[0] |= blsFlagCompressed
	if blsFp2SignFlag(y) {
		out[0] |= blsFlagSign
	}
	return out
}

// blsG2Decompress parses a 96-byte compressed G2 point. The infinity
// encoding must be exactly 0xC0 followed by zeros.
func blsG2Decompress(in [96]byte) (*BlsG2Point, error) {
	if in[0]&blsFlagCompressed == 0 {
		return nil, ErrBLSPointFormat
	}
	if in[0]&blsFlagInfinity != 0 {
		if in[0] != blsFlagCompressed|blsFlagInfinity || !bytes.Equal(in[1:], make([]byte, 95)) {
			return nil, ErrBLSPointInfinity
		}
		return BlsG2Infinity(), nil
	}
	var buf [48]byte
	copy(buf[:], in[:48])
	buf[0] &= 0x1F
	xc1 := new(big.Int).SetBytes(buf[:])
	xc0 := new(big.Int).SetBytes(in[48:])
	if xc0.Cmp(blsP) >= 0 || xc1.Cmp(blsP) >= 0 {
		return nil, ErrBLSPointRange
	}
	x := &blsFp2{c0: xc0, c1: xc1}
	y2 := blsFp2Add(blsFp2Mul(blsFp2Sqr(x), x), blsB2)
	y := blsFp2Sqrt(y2)
	if y == nil {
		return nil, ErrBLSPointNoSqrt
	}
	wantSign := in[0]&blsFlagSign != 0
	if blsFp2SignFlag(y) != wantSign {
		y = blsFp2Neg(y)
	}
	return &BlsG2Point{x: x, y: y, z: blsFp2One()}, nil
}
