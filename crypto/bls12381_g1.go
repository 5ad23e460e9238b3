package crypto

// BLS12-381 G1 point operations over the curve y^2 = x^3 + 4 in F_p.
//
// Points are homogeneous projective triples (X, Y, Z) representing the
// affine point (X/Z, Y/Z); the identity is the canonical triple (1, 1, 0).
// Representations are non-unique, so equality is checked by
// cross-multiplication, never by raw coordinate comparison.

import (
	"bytes"
	"errors"
	"math/big"
)

// Compressed point and scalar sizes.
const (
	BLSPubkeySize    = 48 // compressed G1
	BLSSignatureSize = 96 // compressed G2
	BLSSecretSize    = 32 // F_r scalar
)

// Compressed-point flag bits, carried in the top byte.
const (
	blsFlagCompressed = 0x80
	blsFlagInfinity   = 0x40
	blsFlagSign       = 0x20
)

// Compressed-point decoding errors.
var (
	ErrBLSPointFormat   = errors.New("bls: invalid compressed point format")
	ErrBLSPointInfinity = errors.New("bls: non-canonical infinity encoding")
	ErrBLSPointRange    = errors.New("bls: x coordinate not in field")
	ErrBLSPointNoSqrt   = errors.New("bls: x coordinate has no matching y")
)

// BlsG1Point represents a point on the BLS12-381 G1 curve in homogeneous
// projective coordinates.
type BlsG1Point struct {
	x, y, z *big.Int
}

// BLS12-381 G1 generator point coordinates.
var (
	blsG1GenX, _ = new(big.Int).SetString(
		"17f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb", 16)
	blsG1GenY, _ = new(big.Int).SetString(
		"08b3f481e3aaa0f1a09e30ed741d8ae4fcf5e095d5d00af600db18cb2c04b3edd03cc744a2888ae40caa232946c5e7e1", 16)
)

// BlsG1Generator returns the generator of G1.
func BlsG1Generator() *BlsG1Point {
	return &BlsG1Point{
		x: new(big.Int).Set(blsG1GenX),
		y: new(big.Int).Set(blsG1GenY),
		z: big.NewInt(1),
	}
}

// BlsG1Infinity returns the identity point (1, 1, 0).
func BlsG1Infinity() *BlsG1Point {
	return &BlsG1Point{
		x: big.NewInt(1),
		y: big.NewInt(1),
		z: new(big.Int),
	}
}

func (p *BlsG1Point) clone() *BlsG1Point {
	return &BlsG1Point{
		x: new(big.Int).Set(p.x),
		y: new(big.Int).Set(p.y),
		z: new(big.Int).Set(p.z),
	}
}

// blsG1IsInfinity returns true if the point is the identity (Z=0).
func (p *BlsG1Point) blsG1IsInfinity() bool {
	return p.z.Sign() == 0
}

// blsG1Equal compares by cross-multiplication: X1*Z2 == X2*Z1 and
// Y1*Z2 == Y2*Z1.
func blsG1Equal(a, b *BlsG1Point) bool {
	return blsFpMul(a.x, b.z).Cmp(blsFpMul(b.x, a.z)) == 0 &&
		blsFpMul(a.y, b.z).Cmp(blsFpMul(b.y, a.z)) == 0
}

// blsG1ToAffine converts to affine coordinates with one field inversion.
// Returns nil, nil for the identity.
func (p *BlsG1Point) blsG1ToAffine() (x, y *big.Int) {
	if p.blsG1IsInfinity() {
		return nil, nil
	}
	zInv := blsFpInv(p.z)
	return blsFpMul(p.x, zInv), blsFpMul(p.y, zInv)
}

// blsG1IsOnCurve checks the projective curve equation Y^2*Z = X^3 + 4*Z^3.
// The identity satisfies it trivially.
func blsG1IsOnCurve(p *BlsG1Point) bool {
	lhs := blsFpMul(blsFpSqr(p.y), p.z)
	z3 := blsFpMul(blsFpSqr(p.z), p.z)
	rhs := blsFpAdd(blsFpMul(blsFpSqr(p.x), p.x), blsFpMul(blsB, z3))
	return lhs.Cmp(rhs) == 0
}

// blsG1Double doubles a point: W = 3X^2, S = YZ, B = XYS, H = W^2 - 8B,
// X' = 2HS, Y' = W(4B - H) - 8Y^2S^2, Z' = 8S^3.
func blsG1Double(p *BlsG1Point) *BlsG1Point {
	w := blsFpMulSmall(blsFpSqr(p.x), 3)
	s := blsFpMul(p.y, p.z)
	b := blsFpMul(blsFpMul(p.x, p.y), s)
	h := blsFpSub(blsFpSqr(w), blsFpMulSmall(b, 8))
	s2 := blsFpSqr(s)
	return &BlsG1Point{
		x: blsFpMulSmall(blsFpMul(h, s), 2),
		y: blsFpSub(
			blsFpMul(w, blsFpSub(blsFpMulSmall(b, 4), h)),
			blsFpMulSmall(blsFpMul(blsFpSqr(p.y), s2), 8)),
		z: blsFpMulSmall(blsFpMul(s, s2), 8),
	}
}

// blsG1Add adds two points with the unified homogeneous-projective
// formulas, falling back to doubling for equal points and to the identity
// for additive inverses.
func blsG1Add(p1, p2 *BlsG1Point) *BlsG1Point {
	if p1.blsG1IsInfinity() {
		return p2.clone()
	}
	if p2.blsG1IsInfinity() {
		return p1.clone()
	}
	u1 := blsFpMul(p2.y, p1.z)
	u2 := blsFpMul(p1.y, p2.z)
	v1 := blsFpMul(p2.x, p1.z)
	v2 := blsFpMul(p1.x, p2.z)
	if v1.Cmp(v2) == 0 {
		if u1.Cmp(u2) == 0 {
			return blsG1Double(p1)
		}
		return BlsG1Infinity()
	}
	u := blsFpSub(u1, u2)
	v := blsFpSub(v1, v2)
	vSq := blsFpSqr(v)
	vSqV2 := blsFpMul(vSq, v2)
	vCu := blsFpMul(v, vSq)
	w := blsFpMul(p1.z, p2.z)
	a := blsFpSub(blsFpSub(blsFpMul(blsFpSqr(u), w), vCu), blsFpMulSmall(vSqV2, 2))
	return &BlsG1Point{
		x: blsFpMul(v, a),
		y: blsFpSub(blsFpMul(u, blsFpSub(vSqV2, a)), blsFpMul(vCu, u2)),
		z: blsFpMul(vCu, w),
	}
}

// blsG1ScalarMul computes k*P by iterative double-and-add over the bits
// of k, high to low. The scalar is deliberately NOT reduced mod r:
// cofactor clearing multiplies by an effective cofactor larger than r.
func blsG1ScalarMul(p *BlsG1Point, k *big.Int) *BlsG1Point {
	if k.Sign() == 0 || p.blsG1IsInfinity() {
		return BlsG1Infinity()
	}
	res := BlsG1Infinity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		res = blsG1Double(res)
		if k.Bit(i) == 1 {
			res = blsG1Add(res, p)
		}
	}
	return res
}

// blsG1Neg returns -P.
func blsG1Neg(p *BlsG1Point) *BlsG1Point {
	return &BlsG1Point{
		x: new(big.Int).Set(p.x),
		y: blsFpNeg(p.y),
		z: new(big.Int).Set(p.z),
	}
}

// blsFpSignFlag reports whether y encodes with the sign flag set:
// the unreduced doubling 2y reaches or exceeds the modulus, i.e. y is
// the "larger" of the two roots.
func blsFpSignFlag(y *big.Int) bool {
	d := new(big.Int).Lsh(y, 1)
	return d.Cmp(blsP) >= 0
}

// blsG1Compress serializes a point to the 48-byte ZCash compressed form:
// bit7 = compression (always set), bit6 = infinity, bit5 = sign of y.
func blsG1Compress(p *BlsG1Point) [48]byte {
	var out [48]byte
	if p.blsG1IsInfinity() {
		out[0] = blsFlagCompressed | blsFlagInfinity
		return out
	}
	x, y := p.blsG1ToAffine()
	x.FillBytes(out[:])
	out[0] |= blsFlagCompressed
	if blsFpSignFlag(y) {
		out[0] |= blsFlagSign
	}
	return out
}

// blsG1Decompress parses a 48-byte compressed G1 point. The infinity
// encoding must be exactly 0xC0 followed by zeros; anything else with
// the infinity flag set is rejected.
func blsG1Decompress(in [48]byte) (*BlsG1Point, error) {
	if in[0]&blsFlagCompressed == 0 {
		return nil, ErrBLSPointFormat
	}
	if in[0]&blsFlagInfinity != 0 {
		if in[0] != blsFlagCompressed|blsFlagInfinity || !bytes.Equal(in[1:], make([]byte, 47)) {
			return nil, ErrBLSPointInfinity
		}
		return BlsG1Infinity(), nil
	}
	var buf [48]byte
	copy(buf[:], in[:])
	buf[0] &= 0x1F
	x := new(big.Int).SetBytes(buf[:])
	if x.Cmp(blsP) >= 0 {
		return nil, ErrBLSPointRange
	}
	y2 := blsFpAdd(blsFpMul(blsFpSqr(x), x), blsB)
	y := blsFpSqrt(y2)
	if y == nil {
		return nil, ErrBLSPointNoSqrt
	}
	wantSign := in[0]&blsFlagSign != 0
	if blsFpSignFlag(y) != wantSign {
		y = blsFpNeg(y)
	}
	return &BlsG1Point{x: x, y: y, z: big.NewInt(1)}, nil
}
