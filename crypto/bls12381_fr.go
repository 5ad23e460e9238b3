package crypto

// BLS12-381 scalar field F_r, where r is the prime order of the G1/G2
// subgroups. Secret keys are F_r elements; their canonical wire form is
// 32 big-endian bytes, handled through uint256 for fixed-width round trips.

import (
	"crypto/rand"
	"math/big"

	"github.com/holiman/uint256"
)

// blsFrAdd returns (a + b) mod r.
func blsFrAdd(a, b *big.Int) *big.Int {
	s := new(big.Int).Add(a, b)
	return s.Mod(s, blsR)
}

// blsFrSub returns (a - b) mod r.
func blsFrSub(a, b *big.Int) *big.Int {
	s := new(big.Int).Sub(a, b)
	return s.Mod(s, blsR)
}

// blsFrMul returns (a * b) mod r.
func blsFrMul(a, b *big.Int) *big.Int {
	s := new(big.Int).Mul(a, b)
	return s.Mod(s, blsR)
}

// blsFrNeg returns (-a) mod r.
func blsFrNeg(a *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(blsR, new(big.Int).Mod(a, blsR))
}

// blsFrInv returns a^(-1) mod r, panicking on zero like blsFpInv.
func blsFrInv(a *big.Int) *big.Int {
	inv := new(big.Int).ModInverse(a, blsR)
	if inv == nil {
		panic(ErrBLSNotInvertible)
	}
	return inv
}

// blsFrWireR is the subgroup order as a fixed 256-bit word, the modulus
// for scalars crossing the 32-byte wire boundary.
var blsFrWireR = uint256.MustFromBig(blsR)

// blsFrFromBytes32 decodes 32 big-endian bytes into a scalar, reducing
// mod r when the raw value is out of range. Decode, range check, and
// reduction all run on fixed 256-bit words; r has 255 bits, so the
// wide value always fits.
func blsFrFromBytes32(b [32]byte) *big.Int {
	v := new(uint256.Int).SetBytes32(b[:])
	if v.Cmp(blsFrWireR) >= 0 {
		v.Mod(v, blsFrWireR)
	}
	return v.ToBig()
}

// blsFrToBytes32 encodes a scalar canonically as 32 big-endian bytes.
func blsFrToBytes32(a *big.Int) [32]byte {
	u, overflow := uint256.FromBig(new(big.Int).Mod(a, blsR))
	if overflow {
		// r fits in 255 bits, so a reduced scalar never overflows.
		panic("bls: reduced scalar exceeds 256 bits")
	}
	return u.Bytes32()
}

// blsFrRandom samples a uniform nonzero scalar from crypto/rand.
func blsFrRandom() (*big.Int, error) {
	for {
		k, err := rand.Int(rand.Reader, blsR)
		if err != nil {
			return nil, err
		}
		if k.Sign() != 0 {
			return k, nil
		}
	}
}
