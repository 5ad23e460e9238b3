package crypto

import (
	"bytes"
	"math/big"
	"testing"
)

// --- Field arithmetic tests ---

func TestBlsFpArithmetic(t *testing.T) {
	a := big.NewInt(17)
	b := big.NewInt(23)

	// Add
	sum := blsFpAdd(a, b)
	if sum.Cmp(big.NewInt(40)) != 0 {
		t.Errorf("blsFpAdd(17, 23) = %s, want 40", sum)
	}

	// Sub
	diff := blsFpSub(b, a)
	if diff.Cmp(big.NewInt(6)) != 0 {
		t.Errorf("blsFpSub(23, 17) = %s, want 6", diff)
	}

	// Mul
	prod := blsFpMul(a, b)
	if prod.Cmp(big.NewInt(391)) != 0 {
		t.Errorf("blsFpMul(17, 23) = %s, want 391", prod)
	}

	// Sqr
	sq := blsFpSqr(a)
	if sq.Cmp(big.NewInt(289)) != 0 {
		t.Errorf("blsFpSqr(17) = %s, want 289", sq)
	}

	// Neg: -17 mod p = p - 17
	neg := blsFpNeg(a)
	expected := new(big.Int).Sub(blsP, a)
	if neg.Cmp(expected) != 0 {
		t.Errorf("blsFpNeg(17) = %s, want %s", neg, expected)
	}

	// Inv: a * a^(-1) == 1 mod p
	inv := blsFpInv(a)
	check := blsFpMul(a, inv)
	if check.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("blsFpMul(17, blsFpInv(17)) = %s, want 1", check)
	}
}

func TestBlsFpSqrt(t *testing.T) {
	// 4 is a perfect square: sqrt(4) = 2 or p-2.
	r := blsFpSqrt(big.NewInt(4))
	if r == nil {
		t.Fatal("blsFpSqrt(4) returned nil")
	}
	if blsFpSqr(r).Cmp(big.NewInt(4)) != 0 {
		t.Errorf("sqrt(4)^2 = %s, want 4", blsFpSqr(r))
	}

	// 0 -> 0
	r = blsFpSqrt(big.NewInt(0))
	if r == nil || r.Sign() != 0 {
		t.Errorf("blsFpSqrt(0) = %v, want 0", r)
	}
}

func TestBlsFpModulus(t *testing.T) {
	// BLS12-381 p should be 381 bits.
	if blsP.BitLen() != 381 {
		t.Errorf("blsP bit length = %d, want 381", blsP.BitLen())
	}
	// p should be prime.
	if !blsP.ProbablyPrime(20) {
		t.Error("blsP is not prime")
	}
	// r should be prime.
	if !blsR.ProbablyPrime(20) {
		t.Error("blsR is not prime")
	}
	// r should be 255 bits.
	if blsR.BitLen() != 255 {
		t.Errorf("blsR bit length = %d, want 255", blsR.BitLen())
	}
}

func TestBlsFpInvZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("blsFpInv(0) did not panic")
		}
	}()
	blsFpInv(new(big.Int))
}

func TestBlsFpBytes48RoundTrip(t *testing.T) {
	v := new(big.Int).Sub(blsP, big.NewInt(1))
	enc := blsFpToBytes48(v)
	dec := blsFpFromBytes48(enc)
	if dec == nil || dec.Cmp(v) != 0 {
		t.Fatalf("round trip of p-1 failed: %v", dec)
	}

	// Unreduced values are rejected.
	bad := blsFpToBytes48(new(big.Int))
	copy(bad[:], blsP.FillBytes(make([]byte, 48)))
	if blsFpFromBytes48(bad) != nil {
		t.Error("blsFpFromBytes48 accepted p")
	}
}

func TestBlsFieldRandom(t *testing.T) {
	a, err := blsFpRandom()
	if err != nil {
		t.Fatal(err)
	}
	if a.Sign() < 0 || a.Cmp(blsP) >= 0 {
		t.Error("blsFpRandom outside [0, p)")
	}
	k, err := blsFrRandom()
	if err != nil {
		t.Fatal(err)
	}
	if k.Sign() <= 0 || k.Cmp(blsR) >= 0 {
		t.Error("blsFrRandom outside (0, r)")
	}
}

// --- Fr scalar field tests ---

func TestBlsFrArithmetic(t *testing.T) {
	a := big.NewInt(100)
	b := big.NewInt(7)

	if blsFrAdd(a, b).Cmp(big.NewInt(107)) != 0 {
		t.Error("blsFrAdd(100, 7) != 107")
	}
	if blsFrSub(a, b).Cmp(big.NewInt(93)) != 0 {
		t.Error("blsFrSub(100, 7) != 93")
	}
	if blsFrMul(a, b).Cmp(big.NewInt(700)) != 0 {
		t.Error("blsFrMul(100, 7) != 700")
	}
	if blsFrMul(a, blsFrInv(a)).Cmp(big.NewInt(1)) != 0 {
		t.Error("a * a^(-1) != 1 mod r")
	}
	if blsFrAdd(a, blsFrNeg(a)).Sign() != 0 {
		t.Error("a + (-a) != 0 mod r")
	}
}

func TestBlsFrBytes32RoundTrip(t *testing.T) {
	v := new(big.Int).Sub(blsR, big.NewInt(1))
	enc := blsFrToBytes32(v)
	dec := blsFrFromBytes32(enc)
	if dec.Cmp(v) != 0 {
		t.Fatalf("round trip of r-1 failed: %v", dec)
	}

	// Out-of-range input reduces mod r.
	var all [32]byte
	for i := range all {
		all[i] = 0xff
	}
	wide := new(big.Int).SetBytes(all[:])
	dec = blsFrFromBytes32(all)
	if dec.Cmp(new(big.Int).Mod(wide, blsR)) != 0 {
		t.Errorf("blsFrFromBytes32(0xff..ff) = %v", dec)
	}

	// Reduction boundary: exactly r decodes to zero, r+1 to one.
	var rb [32]byte
	blsR.FillBytes(rb[:])
	if blsFrFromBytes32(rb).Sign() != 0 {
		t.Error("bytes of r did not decode to zero")
	}
	new(big.Int).Add(blsR, big.NewInt(1)).FillBytes(rb[:])
	if blsFrFromBytes32(rb).Cmp(big.NewInt(1)) != 0 {
		t.Error("bytes of r+1 did not decode to one")
	}
}

// --- Fp2 arithmetic tests ---

func TestBlsFp2Arithmetic(t *testing.T) {
	a := &blsFp2{c0: big.NewInt(3), c1: big.NewInt(5)}
	b := &blsFp2{c0: big.NewInt(7), c1: big.NewInt(11)}

	// Add
	sum := blsFp2Add(a, b)
	if !sum.equal(&blsFp2{c0: big.NewInt(10), c1: big.NewInt(16)}) {
		t.Errorf("blsFp2Add: unexpected result")
	}

	// Sub
	diff := blsFp2Sub(b, a)
	if !diff.equal(&blsFp2{c0: big.NewInt(4), c1: big.NewInt(6)}) {
		t.Errorf("blsFp2Sub: unexpected result")
	}

	// Mul: (3+5u)(7+11u) = (21-55) + (33+35)u = -34 + 68u
	prod := blsFp2Mul(a, b)
	expected := &blsFp2{c0: blsFpSub(big.NewInt(21), big.NewInt(55)), c1: big.NewInt(68)}
	if !prod.equal(expected) {
		t.Errorf("blsFp2Mul: got (%s, %s), want (%s, %s)",
			prod.c0, prod.c1, expected.c0, expected.c1)
	}

	// Inv: a * a^(-1) == 1
	inv := blsFp2Inv(a)
	check := blsFp2Mul(a, inv)
	if !check.equal(blsFp2One()) {
		t.Errorf("blsFp2Mul(a, blsFp2Inv(a)) is not one: (%s, %s)", check.c0, check.c1)
	}

	// Sqr agrees with Mul.
	if !blsFp2Sqr(a).equal(blsFp2Mul(a, a)) {
		t.Error("blsFp2Sqr disagrees with blsFp2Mul")
	}

	// u^2 = -1.
	u := &blsFp2{c0: new(big.Int), c1: big.NewInt(1)}
	u2 := blsFp2Sqr(u)
	if !u2.equal(&blsFp2{c0: blsFpNeg(big.NewInt(1)), c1: new(big.Int)}) {
		t.Error("u^2 != -1")
	}
}

func TestBlsFp2Sqrt(t *testing.T) {
	// sqrt of a known square must square back.
	a := &blsFp2{c0: big.NewInt(7), c1: big.NewInt(11)}
	sq := blsFp2Sqr(a)
	root := blsFp2Sqrt(sq)
	if root == nil {
		t.Fatal("blsFp2Sqrt returned nil for a square")
	}
	if !blsFp2Sqr(root).equal(sq) {
		t.Error("sqrt(a^2)^2 != a^2")
	}

	// Zero maps to zero.
	if !blsFp2Sqrt(blsFp2Zero()).isZero() {
		t.Error("blsFp2Sqrt(0) != 0")
	}
}

func TestBlsFp2SqrtDivision(t *testing.T) {
	u := &blsFp2{c0: big.NewInt(9), c1: big.NewInt(4)}
	v := &blsFp2{c0: big.NewInt(3), c1: big.NewInt(1)}
	// Force u/v to be a square by using u = w^2 * v.
	w := &blsFp2{c0: big.NewInt(5), c1: big.NewInt(2)}
	u = blsFp2Mul(blsFp2Sqr(w), v)

	root, ok := blsFp2SqrtDivision(u, v)
	if !ok {
		t.Fatal("sqrt_division failed on a known square ratio")
	}
	if !blsFp2Mul(blsFp2Sqr(root), v).equal(u) {
		t.Error("root^2 * v != u")
	}
}

func TestBlsFp2EighthRoots(t *testing.T) {
	roots := blsFp2EighthRoots()
	// Every table entry to the 8th power is 1.
	for k, rt := range roots {
		e := blsFp2Exp(rt, big.NewInt(8))
		if !e.isOne() {
			t.Errorf("roots[%d]^8 != 1", k)
		}
	}
}

// --- Fp12 tests ---

func TestBlsFp12Arithmetic(t *testing.T) {
	a := blsFp12Zero()
	for i := range a {
		a[i] = big.NewInt(int64(i + 1))
	}
	b := blsFp12Zero()
	for i := range b {
		b[i] = big.NewInt(int64(2*i + 3))
	}

	// Commutativity and distributivity spot checks.
	if !blsFp12Mul(a, b).equal(blsFp12Mul(b, a)) {
		t.Error("blsFp12Mul is not commutative")
	}
	lhs := blsFp12Mul(a, blsFp12Add(b, b))
	rhs := blsFp12Add(blsFp12Mul(a, b), blsFp12Mul(a, b))
	if !lhs.equal(rhs) {
		t.Error("blsFp12Mul does not distribute over blsFp12Add")
	}

	// Inverse.
	inv := blsFp12Inv(a)
	if !blsFp12Mul(a, inv).isOne() {
		t.Error("a * a^(-1) != 1 in Fp12")
	}

	// One is the multiplicative identity.
	if !blsFp12Mul(a, blsFp12One()).equal(a) {
		t.Error("a * 1 != a in Fp12")
	}

	// x^12 = 2x^6 - 2 under the reduction polynomial.
	x := blsFp12Zero()
	x[1] = big.NewInt(1)
	x12 := blsFp12Exp(x, big.NewInt(12))
	want := blsFp12Zero()
	want[0] = blsFpNeg(big.NewInt(2))
	want[6] = big.NewInt(2)
	if !x12.equal(want) {
		t.Error("x^12 != 2x^6 - 2 mod f")
	}
}

func TestBlsFp12Frobenius(t *testing.T) {
	a := blsFp12Zero()
	for i := range a {
		a[i] = big.NewInt(int64(7*i + 5))
	}
	// Frobenius must agree with raising to the p-th power.
	if !blsFp12Frobenius(a).equal(blsFp12Exp(a, blsP)) {
		t.Error("frobenius(a) != a^p")
	}
	// Twelve applications are the identity.
	b := a.clone()
	for i := 0; i < 12; i++ {
		b = blsFp12Frobenius(b)
	}
	if !b.equal(a) {
		t.Error("frobenius^12 != id")
	}
}

// --- G1 tests ---

func TestBlsG1Generator(t *testing.T) {
	g := BlsG1Generator()
	if !blsG1IsOnCurve(g) {
		t.Fatal("G1 generator not on curve")
	}
	// Multiplying by the group order yields the identity.
	if !blsG1ScalarMul(g, blsR).blsG1IsInfinity() {
		t.Error("r * G1 generator != infinity")
	}
}

func TestBlsG1GroupLaw(t *testing.T) {
	g := BlsG1Generator()

	// 2G via double equals G + G.
	d := blsG1Double(g)
	s := blsG1Add(g, g)
	if !blsG1Equal(d, s) {
		t.Error("double(G) != G + G")
	}
	if !blsG1IsOnCurve(d) {
		t.Error("2G not on curve")
	}

	// Associativity: (G + 2G) + 3G == G + (2G + 3G).
	g2 := blsG1Double(g)
	g3 := blsG1Add(g2, g)
	l := blsG1Add(blsG1Add(g, g2), g3)
	r := blsG1Add(g, blsG1Add(g2, g3))
	if !blsG1Equal(l, r) {
		t.Error("G1 addition not associative")
	}

	// Scalar consistency: 5G == 2G + 3G.
	if !blsG1Equal(blsG1ScalarMul(g, big.NewInt(5)), blsG1Add(g2, g3)) {
		t.Error("5G != 2G + 3G")
	}

	// P + (-P) == identity.
	if !blsG1Add(g, blsG1Neg(g)).blsG1IsInfinity() {
		t.Error("G + (-G) != infinity")
	}

	// Identity is neutral.
	if !blsG1Equal(blsG1Add(g, BlsG1Infinity()), g) {
		t.Error("G + 0 != G")
	}

	// Zero scalar yields the identity.
	if !blsG1ScalarMul(g, new(big.Int)).blsG1IsInfinity() {
		t.Error("0 * G != infinity")
	}

	// mul distributes over scalar addition: (a+b)G == aG + bG.
	a, b := big.NewInt(11), big.NewInt(29)
	lhs := blsG1ScalarMul(g, new(big.Int).Add(a, b))
	rhs := blsG1Add(blsG1ScalarMul(g, a), blsG1ScalarMul(g, b))
	if !blsG1Equal(lhs, rhs) {
		t.Error("(a+b)G != aG + bG")
	}
}

func TestBlsG1Compression(t *testing.T) {
	g := BlsG1Generator()

	// Generator golden bytes.
	enc := blsG1Compress(g)
	if enc != BLSG1GeneratorCompressed {
		t.Errorf("compressed G1 generator mismatch: %x", enc)
	}

	// 2G golden bytes.
	enc2 := blsG1Compress(blsG1Double(g))
	want2 := mustDecodeHex48(
		"a572cbea904d67468808c8eb50a9450c9721db309128012543902d0ac358a62ae28f75bb8f1c7c42c39a8c5529bf0f4e")
	if enc2 != want2 {
		t.Errorf("compressed 2*G1 mismatch: %x", enc2)
	}

	// Round trips, including sign recovery, across small multiples.
	for k := int64(1); k <= 10; k++ {
		p := blsG1ScalarMul(g, big.NewInt(k))
		dec, err := blsG1Decompress(blsG1Compress(p))
		if err != nil {
			t.Fatalf("decompress %d*G: %v", k, err)
		}
		if !blsG1Equal(dec, p) {
			t.Errorf("round trip of %d*G changed the point", k)
		}
	}

	// Infinity round trip with the canonical encoding.
	inf := blsG1Compress(BlsG1Infinity())
	if inf != BLSPointAtInfinityG1 {
		t.Errorf("compressed G1 infinity mismatch: %x", inf)
	}
	dec, err := blsG1Decompress(inf)
	if err != nil || !dec.blsG1IsInfinity() {
		t.Errorf("G1 infinity round trip failed: %v", err)
	}
}

func TestBlsG1DecompressRejects(t *testing.T) {
	// Missing compression flag.
	var raw [48]byte
	if _, err := blsG1Decompress(raw); err != ErrBLSPointFormat {
		t.Errorf("expected format error, got %v", err)
	}

	// Non-canonical infinity: flag set plus a nonzero payload byte.
	var inf [48]byte
	inf[0] = 0xC0
	inf[5] = 1
	if _, err := blsG1Decompress(inf); err != ErrBLSPointInfinity {
		t.Errorf("expected infinity error, got %v", err)
	}

	// Infinity with the sign flag set is equally non-canonical.
	var infSign [48]byte
	infSign[0] = 0xE0
	if _, err := blsG1Decompress(infSign); err != ErrBLSPointInfinity {
		t.Errorf("expected infinity error for 0xE0, got %v", err)
	}

	// x >= p.
	var big48 [48]byte
	blsP.FillBytes(big48[:])
	big48[0] |= blsFlagCompressed
	if _, err := blsG1Decompress(big48); err != ErrBLSPointRange {
		t.Errorf("expected range error, got %v", err)
	}

	// x with no matching y (x = 1 is not on the curve).
	var off [48]byte
	off[47] = 1
	off[0] |= blsFlagCompressed
	if _, err := blsG1Decompress(off); err != ErrBLSPointNoSqrt {
		t.Errorf("expected no-sqrt error, got %v", err)
	}
}

// --- G2 tests ---

func TestBlsG2Generator(t *testing.T) {
	g := BlsG2Generator()
	if !blsG2IsOnCurve(g) {
		t.Fatal("G2 generator not on curve")
	}
	if !blsG2ScalarMul(g, blsR).blsG2IsInfinity() {
		t.Error("r * G2 generator != infinity")
	}
}

func TestBlsG2Double(t *testing.T) {
	// 2*G2 against reference affine coordinates.
	d := blsG2Double(BlsG2Generator())
	x, y := d.blsG2ToAffine()

	wantX := &blsFp2{
		c0: mustHexInt("1638533957d540a9d2370f17cc7ed5863bc0b995b8825e0ee1ea1e1e4d00dbae81f14b0bf3611b78c952aacab827a053"),
		c1: mustHexInt("0a4edef9c1ed7f729f520e47730a124fd70662a904ba1074728114d1031e1572c6c886f6b57ec72a6178288c47c33577"),
	}
	wantY := &blsFp2{
		c0: mustHexInt("0468fb440d82b0630aeb8dca2b5256789a66da69bf91009cbfe6bd221e47aa8ae88dece9764bf3bd999d95d71e4c9899"),
		c1: mustHexInt("0f6d4552fa65dd2638b361543f887136a43253d9c66c411697003f7a13c308f5422e1aa0a59c8967acdefd8b6e36ccf3"),
	}
	if !x.equal(wantX) {
		t.Errorf("2*G2 x mismatch: (%x, %x)", x.c0, x.c1)
	}
	if !y.equal(wantY) {
		t.Errorf("2*G2 y mismatch: (%x, %x)", y.c0, y.c1)
	}
}

func TestBlsG2GroupLaw(t *testing.T) {
	g := BlsG2Generator()
	g2 := blsG2Double(g)
	g3 := blsG2Add(g2, g)

	if !blsG2Equal(blsG2Add(g, g), g2) {
		t.Error("G + G != 2G in G2")
	}
	if !blsG2Equal(blsG2ScalarMul(g, big.NewInt(5)), blsG2Add(g2, g3)) {
		t.Error("5G != 2G + 3G in G2")
	}
	if !blsG2Add(g, blsG2Neg(g)).blsG2IsInfinity() {
		t.Error("G + (-G) != infinity in G2")
	}
	if !blsG2IsOnCurve(g3) {
		t.Error("3G not on curve in G2")
	}
}

func TestBlsG2Compression(t *testing.T) {
	g := BlsG2Generator()

	enc := blsG2Compress(g)
	if enc != BLSG2GeneratorCompressed {
		t.Errorf("compressed G2 generator mismatch: %x", enc)
	}

	for k := int64(1); k <= 6; k++ {
		p := blsG2ScalarMul(g, big.NewInt(k))
		dec, err := blsG2Decompress(blsG2Compress(p))
		if err != nil {
			t.Fatalf("decompress %d*G2: %v", k, err)
		}
		if !blsG2Equal(dec, p) {
			t.Errorf("round trip of %d*G2 changed the point", k)
		}
	}

	inf := blsG2Compress(BlsG2Infinity())
	if inf != BLSPointAtInfinityG2 {
		t.Errorf("compressed G2 infinity mismatch: %x", inf)
	}
	dec, err := blsG2Decompress(inf)
	if err != nil || !dec.blsG2IsInfinity() {
		t.Errorf("G2 infinity round trip failed: %v", err)
	}
}

func TestBlsG2DecompressRejects(t *testing.T) {
	// Non-canonical infinity.
	var inf [96]byte
	inf[0] = 0xC0
	inf[90] = 1
	if _, err := blsG2Decompress(inf); err != ErrBLSPointInfinity {
		t.Errorf("expected infinity error, got %v", err)
	}

	// x_c0 >= p in the second half.
	var raw [96]byte
	raw[0] = blsFlagCompressed
	blsP.FillBytes(raw[48:])
	if _, err := blsG2Decompress(raw); err != ErrBLSPointRange {
		t.Errorf("expected range error, got %v", err)
	}
}

func mustHexInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("bad hex in test vector: " + s)
	}
	return v
}

func mustBytesEqual(t *testing.T, got, want []byte, what string) {
	t.Helper()
	if !bytes.Equal(got, want) {
		t.Errorf("%s mismatch:\n got  %x\n want %x", what, got, want)
	}
}
