package crypto

// Simplified SWU map onto the curve 3-isogenous to the BLS12-381 G2
// twist, and the 3-isogeny map back, per RFC 9380 Section 6.6.2 and
// Appendix E.3.
//
// The iso-curve is y^2 = x^3 + A'x + B' with A' = 240u, B' = 1012(1+u),
// and SSWU constant Z = -2 - u. The map is total: if sqrt(u/v) fails,
// the numerator is rescaled by Z*t^2 and one of four eta constants must
// yield a root. Total failure indicates corrupted parameters, not bad
// input, and panics.

import "math/big"

// SSWU iso-curve parameters.
var (
	blsIsoA = newBlsFp2FromInt64(0, 240)
	blsIsoB = newBlsFp2FromInt64(1012, 1012)
	blsIsoZ = newBlsFp2FromInt64(-2, -1)
)

// Eta constants for the sqrt retry path.
var blsSwuEtas = func() [4]*blsFp2 {
	ev1, _ := new(big.Int).SetString(
		"699be3b8c6870965e5bf892ad5d2cc7b0e85a117402dfd83b7f4a947e02d978498255a2aaec0ac627b5afbdf1bf1c90", 16)
	ev2, _ := new(big.Int).SetString(
		"8157cd83046453f5dd0972b6e3949e4288020b5b8a9cc99ca07e27089a2ce2436d965026adad3ef7baba37f2183e9b5", 16)
	ev3, _ := new(big.Int).SetString(
		"ab1c2ffdd6c253ca155231eb3e71ba044fd562f6f72bc5bad5ec46a0b7a3b0247cf08ce6c6317f40edbc653a72dee17", 16)
	ev4, _ := new(big.Int).SetString(
		"aa404866706722864480885d68ad0ccac1967c7544b447873cc37e0181271e006df72162a3d3e0287bf597fbf7f8fc1", 16)
	return [4]*blsFp2{
		newBlsFp2(ev1, ev2),
		newBlsFp2(blsFpNeg(ev2), ev1),
		newBlsFp2(ev3, ev4),
		newBlsFp2(blsFpNeg(ev4), ev3),
	}
}()

// blsSswuMapG2 maps a field element onto the iso-curve, returning
// projective coordinates (x, y, z). Sign of y is aligned with sgn0(t).
func blsSswuMapG2(t *blsFp2) (x, y, z *blsFp2) {
	t2 := blsFp2Sqr(t)
	zt2 := blsFp2Mul(blsIsoZ, t2)
	tmp := blsFp2Add(zt2, blsFp2Sqr(zt2))
	denom := blsFp2Neg(blsFp2Mul(blsIsoA, tmp))
	num := blsFp2Mul(blsIsoB, blsFp2Add(tmp, blsFp2One()))
	if denom.isZero() {
		// Exceptional case: Z*t^2 + (Z*t^2)^2 == -1.
		denom = blsFp2Mul(blsIsoZ, blsIsoA)
	}

	// v = denom^3, u = num^3 + A'*num*denom^2 + B'*v; y^2 = u/v.
	v := blsFp2Mul(blsFp2Sqr(denom), denom)
	u := blsFp2Add(
		blsFp2Add(
			blsFp2Mul(blsFp2Sqr(num), num),
			blsFp2Mul(blsIsoA, blsFp2Mul(num, blsFp2Sqr(denom)))),
		blsFp2Mul(blsIsoB, v))

	cand, ok := blsFp2SqrtDivision(u, v)
	yv := cand
	cand = blsFp2Mul(cand, blsFp2Mul(t2, t))
	if !ok {
		u2 := blsFp2Mul(u, blsFp2Mul(blsFp2Sqr(zt2), zt2))
		found := false
		for _, eta := range blsSwuEtas {
			ec := blsFp2Mul(eta, cand)
			if blsFp2Sub(blsFp2Mul(blsFp2Sqr(ec), v), u2).isZero() {
				yv = ec
				found = true
				break
			}
		}
		if !found {
			panic("bls: sswu map total failure")
		}
		num = blsFp2Mul(num, zt2)
	}
	if blsFp2Sgn0(t) != blsFp2Sgn0(yv) {
		yv = blsFp2Neg(yv)
	}
	return num, blsFp2Mul(yv, denom), denom
}

// 3-isogeny coefficient tables from RFC 9380 Appendix E.3. The x
// numerator, y numerator and y denominator are degree 3; the x
// denominator is degree 2 and is homogenized with one extra factor of z
// in blsIsoMapG2.
var blsIsoMapCoeffs = func() (k [4][]*blsFp2) {
	f := func(c0, c1 string) *blsFp2 {
		a, ok0 := new(big.Int).SetString(c0, 16)
		b, ok1 := new(big.Int).SetString(c1, 16)
		if !ok0 || !ok1 {
			panic("bls: bad isogeny constant")
		}
		return &blsFp2{c0: a, c1: b}
	}
	// x numerator
	k[0] = []*blsFp2{
		f("5c759507e8e333ebb5b7a9a47d7ed8532c52d39fd3a042a88b58423c50ae15d5c2638e343d9c71c6238aaaaaaaa97d6",
			"5c759507e8e333ebb5b7a9a47d7ed8532c52d39fd3a042a88b58423c50ae15d5c2638e343d9c71c6238aaaaaaaa97d6"),
		f("0",
			"11560bf17baa99bc32126fced787c88f984f87adf7ae0c7f9a208c6b4f20a4181472aaa9cb8d555526a9ffffffffc71a"),
		f("11560bf17baa99bc32126fced787c88f984f87adf7ae0c7f9a208c6b4f20a4181472aaa9cb8d555526a9ffffffffc71e",
			"8ab05f8bdd54cde190937e76bc3e447cc27c3d6fbd7063fcd104635a790520c0a395554e5c6aaaa9354ffffffffe38d"),
		f("171d6541fa38ccfaed6dea691f5fb614cb14b4e7f4e810aa22d6108f142b85757098e38d0f671c7188e2aaaaaaaa5ed1",
			"0"),
	}
	// x denominator
	k[1] = []*blsFp2{
		f("0",
			"1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaa63"),
		f("c",
			"1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaa9f"),
		f("1", "0"),
	}
	// y numerator
	k[2] = []*blsFp2{
		f("1530477c7ab4113b59a4c18b076d11930f7da5d4a07f649bf54439d87d27e500fc8c25ebf8c92f6812cfc71c71c6d706",
			"1530477c7ab4113b59a4c18b076d11930f7da5d4a07f649bf54439d87d27e500fc8c25ebf8c92f6812cfc71c71c6d706"),
		f("0",
			"5c759507e8e333ebb5b7a9a47d7ed8532c52d39fd3a042a88b58423c50ae15d5c2638e343d9c71c6238aaaaaaaa97be"),
		f("11560bf17baa99bc32126fced787c88f984f87adf7ae0c7f9a208c6b4f20a4181472aaa9cb8d555526a9ffffffffc71c",
			"8ab05f8bdd54cde190937e76bc3e447cc27c3d6fbd7063fcd104635a790520c0a395554e5c6aaaa9354ffffffffe38f"),
		f("124c9ad43b6cf79bfbf7043de3811ad0761b0f37a1e26286b0e977c69aa274524e79097a56dc4bd9e1b371c71c718b10",
			"0"),
	}
	// y denominator
	k[3] = []*blsFp2{
		f("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffa8fb",
			"1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffa8fb"),
		f("0",
			"1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffa9d3"),
		f("12",
			"1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaa99"),
		f("1", "0"),
	}
	return k
}()

// blsIsoMapG2 evaluates the 3-isogeny from the iso-curve to the G2 twist
// on projective input. Each rational-map polynomial is evaluated by
// Horner with ascending z powers; the degree-2 x denominator gets one
// extra z to match the degree-3 rows before the projective composition.
func blsIsoMapG2(x, y, z *blsFp2) *BlsG2Point {
	zp := [3]*blsFp2{z, blsFp2Sqr(z), blsFp2Mul(blsFp2Sqr(z), z)}
	var mapped [4]*blsFp2
	for i, ks := range blsIsoMapCoeffs {
		acc := ks[len(ks)-1]
		for j := 0; j < len(ks)-1; j++ {
			k := ks[len(ks)-2-j]
			acc = blsFp2Add(blsFp2Mul(acc, x), blsFp2Mul(zp[j], k))
		}
		mapped[i] = acc
	}
	mapped[1] = blsFp2Mul(mapped[1], z)
	mapped[2] = blsFp2Mul(mapped[2], y)
	mapped[3] = blsFp2Mul(mapped[3], z)
	return &BlsG2Point{
		x: blsFp2Mul(mapped[0], mapped[3]),
		y: blsFp2Mul(mapped[2], mapped[1]),
		z: blsFp2Mul(mapped[1], mapped[3]),
	}
}
