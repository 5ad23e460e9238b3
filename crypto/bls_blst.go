//go:build blst

// BLS backend backed by the supranational/blst library via CGO.
//
// Maps the three ciphersuites onto blst's hash-and-verify: the domain
// separation tag is passed through, and the augmentation suite
// pre-augments the message with the compressed public key, which is
// exactly what the pure-Go path hashes.
//
// Build with: go build -tags blst
package crypto

import (
	blst "github.com/supranational/blst/bindings/go"
)

// BlstBLSBackend implements BLSBackend using blst with the
// minimal-pubkey-size scheme (public keys in G1, signatures in G2).
type BlstBLSBackend struct{}

func (b *BlstBLSBackend) Name() string { return "blst" }

func (b *BlstBLSBackend) Verify(pubkey, msg, sig []byte, suite BlsCiphersuite) bool {
	dst, err := suite.dst()
	if err != nil {
		return false
	}
	// Infinity public keys carry the infinity flag; blst would accept
	// some of them as valid points, so reject at the flag level like the
	// pure-Go path.
	if len(pubkey) != BLSPubkeySize || pubkey[0]&blsFlagInfinity != 0 {
		return false
	}
	pk := new(blst.P1Affine).Uncompress(pubkey)
	if pk == nil {
		return false
	}
	s := new(blst.P2Affine).Uncompress(sig)
	if s == nil {
		return false
	}
	input := msg
	if suite.augmented() {
		input = append(append(make([]byte, 0, len(pubkey)+len(msg)), pubkey...), msg...)
	}
	return s.Verify(true, pk, true, input, dst)
}

func (b *BlstBLSBackend) PopVerify(pubkey, proof []byte) bool {
	if len(pubkey) != BLSPubkeySize || pubkey[0]&blsFlagInfinity != 0 {
		return false
	}
	pk := new(blst.P1Affine).Uncompress(pubkey)
	if pk == nil {
		return false
	}
	p := new(blst.P2Affine).Uncompress(proof)
	if p == nil {
		return false
	}
	return p.Verify(true, pk, true, pubkey, blsDSTPopTag)
}
