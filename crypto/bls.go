package crypto

// BLS signature scheme over BLS12-381, the tz4 address family: 48-byte
// compressed G1 public keys, 96-byte compressed G2 signatures, 32-byte
// secret scalars (minimal-pubkey-size configuration, signatures in G2).
//
// Three IETF ciphersuites are supported; message augmentation is the
// default. Signing is fully deterministic. Verification accepts
// arbitrary attacker-controlled bytes and collapses every failure,
// format or arithmetic, to false.

import (
	"crypto/sha256"
	"errors"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"
)

// BlsCiphersuite selects the domain separation tag used when hashing
// messages to G2.
type BlsCiphersuite int

const (
	// BlsCiphersuiteBasic hashes the raw message.
	BlsCiphersuiteBasic BlsCiphersuite = iota
	// BlsCiphersuiteAug prefixes the message with the signer's
	// compressed public key before hashing. This is the default.
	BlsCiphersuiteAug
	// BlsCiphersuitePop uses the proof-of-possession signing tag.
	BlsCiphersuitePop
)

// Domain separation tags, part of the protocol contract.
var (
	blsDSTBasic = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_")
	blsDSTAug   = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_AUG_")
	blsDSTPop   = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")
	// blsDSTPopTag is used when proving or verifying possession itself.
	blsDSTPopTag = []byte("BLS_POP_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")
	// blsKeyGenSalt is the initial HKDF-Extract salt.
	blsKeyGenSalt = []byte("BLS-SIG-KEYGEN-SALT-")
)

var (
	ErrBLSInvalidSeed   = errors.New("bls: seed reduces to the zero scalar")
	ErrBLSInvalidIkm    = errors.New("bls: ikm shorter than 32 bytes")
	ErrBLSKeyGenFailed  = errors.New("bls: key generation exhausted retries")
	ErrBLSInvalidSecret = errors.New("bls: secret key is zero")
	ErrBLSInvalidCsuite = errors.New("bls: unknown ciphersuite")
)

func (c BlsCiphersuite) dst() ([]byte, error) {
	switch c {
	case BlsCiphersuiteBasic:
		return blsDSTBasic, nil
	case BlsCiphersuiteAug:
		return blsDSTAug, nil
	case BlsCiphersuitePop:
		return blsDSTPop, nil
	}
	return nil, ErrBLSInvalidCsuite
}

// augmented returns true for the ciphersuite that prefixes messages with
// the compressed public key.
func (c BlsCiphersuite) augmented() bool {
	return c == BlsCiphersuiteAug
}

// BLSFromSeed derives a secret scalar by reducing the 32-byte seed mod
// r. This deliberately deviates from the IETF KeyGen procedure to stay
// byte-compatible with the wallet client convention this address family
// serves. A seed reducing to zero is rejected.
func BLSFromSeed(seed [BLSSecretSize]byte) (*big.Int, error) {
	sk := blsFrFromBytes32(seed)
	if sk.Sign() == 0 {
		return nil, ErrBLSInvalidSeed
	}
	return sk, nil
}

// BLSKeyGen derives a secret scalar from input keying material per the
// IETF BLS KeyGen procedure: HKDF-Extract(salt, ikm || 0x00), then
// HKDF-Expand(prk, keyInfo || I2OSP(48, 2), 48), reduced mod r. A zero
// scalar triggers a deterministic retry with salt = SHA256(salt), up to
// 256 attempts total.
func BLSKeyGen(ikm, keyInfo []byte) (*big.Int, error) {
	if len(ikm) < 32 {
		return nil, ErrBLSInvalidIkm
	}
	secret := make([]byte, len(ikm)+1)
	copy(secret, ikm)
	info := make([]byte, len(keyInfo)+2)
	copy(info, keyInfo)
	info[len(keyInfo)] = 0
	info[len(keyInfo)+1] = 48

	salt := blsKeyGenSalt
	for attempt := 0; attempt < 256; attempt++ {
		prk := hkdf.Extract(sha256.New, secret, salt)
		okm := make([]byte, 48)
		if _, err := io.ReadFull(hkdf.Expand(sha256.New, prk, info), okm); err != nil {
			return nil, err
		}
		sk := new(big.Int).SetBytes(okm)
		sk.Mod(sk, blsR)
		if sk.Sign() != 0 {
			return sk, nil
		}
		next := sha256.Sum256(salt)
		salt = next[:]
	}
	return nil, ErrBLSKeyGenFailed
}

// BLSPublicKey returns the compressed G1 public key sk * g1.
func BLSPublicKey(sk *big.Int) ([BLSPubkeySize]byte, error) {
	if sk == nil || sk.Sign() == 0 {
		return [BLSPubkeySize]byte{}, ErrBLSInvalidSecret
	}
	pk := blsG1ScalarMul(BlsG1Generator(), new(big.Int).Mod(sk, blsR))
	return blsG1Compress(pk), nil
}

// blsSignWithDST hashes (an optionally pre-augmented) message to G2 with
// the given tag and multiplies by the secret.
func blsSignWithDST(sk *big.Int, msg, dst []byte) ([BLSSignatureSize]byte, error) {
	hm, err := BlsHashToG2(msg, dst)
	if err != nil {
		return [BLSSignatureSize]byte{}, err
	}
	sig := blsG2ScalarMul(hm, new(big.Int).Mod(sk, blsR))
	return blsG2Compress(sig), nil
}

// BLSSign signs msg under the given ciphersuite. With the augmentation
// suite the message is prefixed with the signer's compressed public key
// before hashing. Deterministic: no randomness on the signing path.
func BLSSign(sk *big.Int, msg []byte, suite BlsCiphersuite) ([BLSSignatureSize]byte, error) {
	if sk == nil || sk.Sign() == 0 {
		return [BLSSignatureSize]byte{}, ErrBLSInvalidSecret
	}
	dst, err := suite.dst()
	if err != nil {
		return [BLSSignatureSize]byte{}, err
	}
	input := msg
	if suite.augmented() {
		pk, err := BLSPublicKey(sk)
		if err != nil {
			return [BLSSignatureSize]byte{}, err
		}
		input = append(append(make([]byte, 0, len(pk)+len(msg)), pk[:]...), msg...)
	}
	return blsSignWithDST(sk, input, dst)
}

// blsVerifyWithDST runs the shared verification path: flag-level checks,
// decompression, post-decompression infinity rejection, hash, pairing
// check. msg must already carry any augmentation prefix.
func blsVerifyWithDST(sig [BLSSignatureSize]byte, msg []byte, pk [BLSPubkeySize]byte, dst []byte) bool {
	// Infinity public keys are rejected outright at the flag level.
	if pk[0]&blsFlagInfinity != 0 {
		return false
	}
	// The infinity signature is accepted here only in its exact
	// canonical form; decompression enforces that, and the point is
	// rejected right after anyway.
	pkPt, err := blsG1Decompress(pk)
	if err != nil {
		return false
	}
	sigPt, err := blsG2Decompress(sig)
	if err != nil {
		return false
	}
	if pkPt.blsG1IsInfinity() || sigPt.blsG2IsInfinity() {
		return false
	}
	hm, err := BlsHashToG2(msg, dst)
	if err != nil {
		return false
	}
	return blsPairingCheck(pkPt, hm, BlsG1Generator(), sigPt)
}

// BLSVerify verifies a signature over msg for the given compressed
// public key and ciphersuite. Safe on arbitrary input bytes; every
// failure returns false.
func BLSVerify(sig [BLSSignatureSize]byte, msg []byte, pk [BLSPubkeySize]byte, suite BlsCiphersuite) bool {
	dst, err := suite.dst()
	if err != nil {
		return false
	}
	input := msg
	if suite.augmented() {
		input = append(append(make([]byte, 0, len(pk)+len(msg)), pk[:]...), msg...)
	}
	return blsVerifyWithDST(sig, input, pk, dst)
}

// BLSPopProve produces a proof of possession: a signature over the
// public key's own compressed bytes under the dedicated POP tag.
func BLSPopProve(sk *big.Int) ([BLSSignatureSize]byte, error) {
	if sk == nil || sk.Sign() == 0 {
		return [BLSSignatureSize]byte{}, ErrBLSInvalidSecret
	}
	pk, err := BLSPublicKey(sk)
	if err != nil {
		return [BLSSignatureSize]byte{}, err
	}
	return blsSignWithDST(sk, pk[:], blsDSTPopTag)
}

// BLSPopVerify checks a proof of possession for the given public key.
func BLSPopVerify(pk [BLSPubkeySize]byte, proof [BLSSignatureSize]byte) bool {
	return blsVerifyWithDST(proof, pk[:], pk, blsDSTPopTag)
}
