// Pluggable BLS verification backend.
//
// BLSBackend abstracts signature and proof-of-possession verification so
// deployments can swap the pure-Go arithmetic for an optimized native
// library. Two implementations exist:
//
//   - PureGoBLSBackend: the implementation in this package, always
//     available
//   - the blst adapter in bls_blst.go, compiled in with the "blst" build
//     tag
//
// The active backend is selected at runtime via SetBLSBackend. Well-known
// compressed constants and cheap format validators live here too, so
// callers can reject malformed keys without a full decompression.
package crypto

import (
	"encoding/hex"
	"fmt"
	"sync"
)

// Well-known compressed BLS12-381 constants.
var (
	// BLSG1GeneratorCompressed is the compressed G1 generator (48 bytes).
	BLSG1GeneratorCompressed = mustDecodeHex48(
		"97f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb")

	// BLSG2GeneratorCompressed is the compressed G2 generator (96 bytes).
	BLSG2GeneratorCompressed = mustDecodeHex96(
		"93e02b6052719f607dacd3a088274f65596bd0d09920b61ab5da61bbdc7f5049334cf11213945d57e5ac7d055d042b7e" +
			"024aa2b2f08f0a91260805272dc51051c6e47ad4fa403b02b4510b647ae3d1770bac0326a805bbefd48056c8c121bdb8")

	// BLSPointAtInfinityG1 is the canonical compressed G1 identity:
	// 0xC0 followed by 47 zero bytes.
	BLSPointAtInfinityG1 = func() [BLSPubkeySize]byte {
		var b [BLSPubkeySize]byte
		b[0] = blsFlagCompressed | blsFlagInfinity
		return b
	}()

	// BLSPointAtInfinityG2 is the canonical compressed G2 identity:
	// 0xC0 followed by 95 zero bytes.
	BLSPointAtInfinityG2 = func() [BLSSignatureSize]byte {
		var b [BLSSignatureSize]byte
		b[0] = blsFlagCompressed | blsFlagInfinity
		return b
	}()
)

// BLSBackend verifies signatures and proofs of possession over the
// fixed-size compressed byte formats. Implementations must be safe for
// concurrent use and must treat every input as attacker-controlled.
type BLSBackend interface {
	// Verify checks a signature: 48-byte compressed G1 public key,
	// arbitrary message, 96-byte compressed G2 signature.
	Verify(pubkey, msg, sig []byte, suite BlsCiphersuite) bool

	// PopVerify checks a proof of possession for the public key.
	PopVerify(pubkey, proof []byte) bool

	// Name identifies the backend.
	Name() string
}

var (
	activeBLSMu      sync.RWMutex
	activeBLSBackend BLSBackend = &PureGoBLSBackend{}
)

// DefaultBLSBackend returns the currently active backend.
func DefaultBLSBackend() BLSBackend {
	activeBLSMu.RLock()
	defer activeBLSMu.RUnlock()
	return activeBLSBackend
}

// SetBLSBackend selects the active backend. Safe for concurrent use;
// nil resets to the pure-Go default.
func SetBLSBackend(b BLSBackend) {
	activeBLSMu.Lock()
	defer activeBLSMu.Unlock()
	if b == nil {
		b = &PureGoBLSBackend{}
	}
	activeBLSBackend = b
}

// ValidateBLSPublicKey checks the compressed format of a public key
// without decompressing: length, compression flag, infinity rejection,
// and x-coordinate range.
func ValidateBLSPublicKey(pubkey []byte) error {
	if len(pubkey) != BLSPubkeySize {
		return ErrBLSPointFormat
	}
	if pubkey[0]&blsFlagCompressed == 0 {
		return ErrBLSPointFormat
	}
	// An infinity public key is never valid, whatever the payload.
	if pubkey[0]&blsFlagInfinity != 0 {
		return ErrBLSPointInfinity
	}
	var buf [BLSPubkeySize]byte
	copy(buf[:], pubkey)
	buf[0] &= 0x1F
	if blsFpFromBytes48(buf) == nil {
		return ErrBLSPointRange
	}
	return nil
}

// ValidateBLSSignature checks the compressed format of a signature:
// length, compression flag, and the x-coordinate component ranges. The
// canonical infinity encoding passes; decompression-level checks (curve
// membership, canonical infinity payload) are left to verification.
func ValidateBLSSignature(sig []byte) error {
	if len(sig) != BLSSignatureSize {
		return ErrBLSPointFormat
	}
	if sig[0]&blsFlagCompressed == 0 {
		return ErrBLSPointFormat
	}
	var c1, c0 [48]byte
	copy(c1[:], sig[:48])
	c1[0] &= 0x1F
	copy(c0[:], sig[48:])
	if blsFpFromBytes48(c1) == nil || blsFpFromBytes48(c0) == nil {
		return ErrBLSPointRange
	}
	return nil
}

// PureGoBLSBackend delegates to the implementation in this package.
type PureGoBLSBackend struct{}

func (b *PureGoBLSBackend) Name() string { return "pure-go" }

func (b *PureGoBLSBackend) Verify(pubkey, msg, sig []byte, suite BlsCiphersuite) bool {
	if len(pubkey) != BLSPubkeySize || len(sig) != BLSSignatureSize {
		return false
	}
	var pk [BLSPubkeySize]byte
	var s [BLSSignatureSize]byte
	copy(pk[:], pubkey)
	copy(s[:], sig)
	return BLSVerify(s, msg, pk, suite)
}

func (b *PureGoBLSBackend) PopVerify(pubkey, proof []byte) bool {
	if len(pubkey) != BLSPubkeySize || len(proof) != BLSSignatureSize {
		return false
	}
	var pk [BLSPubkeySize]byte
	var p [BLSSignatureSize]byte
	copy(pk[:], pubkey)
	copy(p[:], proof)
	return BLSPopVerify(pk, p)
}

func mustDecodeHex48(s string) [48]byte {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 48 {
		panic(fmt.Sprintf("invalid hex for 48-byte value: %s", s))
	}
	var out [48]byte
	copy(out[:], b)
	return out
}

func mustDecodeHex96(s string) [96]byte {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 96 {
		panic(fmt.Sprintf("invalid hex for 96-byte value: %s", s))
	}
	var out [96]byte
	copy(out[:], b)
	return out
}
