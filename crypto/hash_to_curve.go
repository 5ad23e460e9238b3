// Hash-to-curve for BLS12-381 G2 per IETF RFC 9380.
//
// Maps arbitrary byte strings to points in the prime-order subgroup of
// G2, as used by the signature scheme in bls.go:
//
//   1. expand_message_xmd: expand input to uniform bytes using SHA-256
//   2. hash_to_field: produce two F_p^2 elements from the expanded bytes
//   3. map_to_curve: SSWU onto the 3-isogenous curve, isogeny back
//   4. Add the two mapped points
//   5. Clear the cofactor to land in the prime-order subgroup
//
// Two independent map evaluations are summed because a single one is
// neither subgroup-guaranteed nor uniformly distributed (the "random
// oracle" suite needs both).
//
// Constant-time note: math/big does not provide constant-time
// operations. Suitable for verification of public inputs, not hardened
// for secret-dependent hashing.

package crypto

import (
	"crypto/sha256"
	"errors"
	"math/big"
)

// Hash-to-field parameters for the XMD:SHA-256 suite.
const (
	blsHashBInBytes = 32 // SHA-256 output size
	blsHashRInBytes = 64 // SHA-256 block size
	blsHashL        = 64 // bytes per reduced field element
)

var (
	ErrBLSDSTTooLong    = errors.New("bls: DST longer than 255 bytes")
	ErrBLSExpandTooLong = errors.New("bls: expand_message_xmd output too large")
)

// expandMessageXMD implements expand_message_xmd from RFC 9380 Section
// 5.4.1 with SHA-256. Produces lenInBytes of pseudo-random output from
// msg and dst:
//
//	DST_prime = DST || I2OSP(len(DST), 1)
//	b_0 = H(Z_pad || msg || I2OSP(len, 2) || I2OSP(0, 1) || DST_prime)
//	b_1 = H(b_0 || I2OSP(1, 1) || DST_prime)
//	b_i = H(strxor(b_0, b_{i-1}) || I2OSP(i, 1) || DST_prime)
func expandMessageXMD(msg, dst []byte, lenInBytes int) ([]byte, error) {
	if len(dst) > 255 {
		return nil, ErrBLSDSTTooLong
	}
	ell := (lenInBytes + blsHashBInBytes - 1) / blsHashBInBytes
	if ell > 255 {
		return nil, ErrBLSExpandTooLong
	}

	dstPrime := make([]byte, len(dst)+1)
	copy(dstPrime, dst)
	dstPrime[len(dst)] = byte(len(dst))

	zPad := make([]byte, blsHashRInBytes)
	libStr := []byte{byte(lenInBytes >> 8), byte(lenInBytes)}

	h := sha256.New()
	h.Write(zPad)
	h.Write(msg)
	h.Write(libStr)
	h.Write([]byte{0})
	h.Write(dstPrime)
	b0 := h.Sum(nil)

	h.Reset()
	h.Write(b0)
	h.Write([]byte{1})
	h.Write(dstPrime)
	bi := h.Sum(nil)

	uniform := make([]byte, 0, ell*blsHashBInBytes)
	uniform = append(uniform, bi...)

	for i := 2; i <= ell; i++ {
		xored := make([]byte, blsHashBInBytes)
		for j := 0; j < blsHashBInBytes; j++ {
			xored[j] = b0[j] ^ bi[j]
		}
		h.Reset()
		h.Write(xored)
		h.Write([]byte{byte(i)})
		h.Write(dstPrime)
		bi = h.Sum(nil)
		uniform = append(uniform, bi...)
	}

	return uniform[:lenInBytes], nil
}

// blsHashToFieldFp2 produces count F_p^2 elements from msg. Each F_p
// component is sliced from a 64-byte window of the expanded output and
// reduced mod p; consecutive pairs form one F_p^2 element.
func blsHashToFieldFp2(msg, dst []byte, count int) ([]*blsFp2, error) {
	uniform, err := expandMessageXMD(msg, dst, count*2*blsHashL)
	if err != nil {
		return nil, err
	}
	out := make([]*blsFp2, count)
	for i := 0; i < count; i++ {
		var cs [2]*big.Int
		for j := 0; j < 2; j++ {
			off := blsHashL * (j + i*2)
			v := new(big.Int).SetBytes(uniform[off : off+blsHashL])
			cs[j] = v.Mod(v, blsP)
		}
		out[i] = &blsFp2{c0: cs[0], c1: cs[1]}
	}
	return out, nil
}

// BlsHashToG2 hashes a message to a point in the prime-order subgroup of
// G2 using the XMD:SHA-256_SSWU_RO suite with the given domain
// separation tag.
func BlsHashToG2(msg, dst []byte) (*BlsG2Point, error) {
	u, err := blsHashToFieldFp2(msg, dst, 2)
	if err != nil {
		return nil, err
	}
	q0 := blsIsoMapG2(blsSswuMapG2(u[0]))
	q1 := blsIsoMapG2(blsSswuMapG2(u[1]))
	r := blsG2Add(q0, q1)
	return blsG2ScalarMul(r, blsHEffG2), nil
}
