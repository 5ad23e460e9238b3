// Command tz4bls is a small CLI for the tz4 BLS address family: key
// generation, public key derivation, signing, verification, and proofs
// of possession over BLS12-381. All values cross the boundary as hex
// over the three fixed-size byte formats (32-byte secret, 48-byte
// public key, 96-byte signature).
//
// A leading -log flag selects the output format for diagnostics: json
// (the default), text, or color.
//
// Usage:
//
//	tz4bls [-log json|text|color] <command> [flags]
//
//	tz4bls keygen -ikm <hex> [-info <hex>]
//	tz4bls seed -seed <hex32>
//	tz4bls pubkey -sk <hex32>
//	tz4bls sign -sk <hex32> -msg <string> [-suite basic|aug|pop]
//	tz4bls verify -pk <hex48> -msg <string> -sig <hex96> [-suite basic|aug|pop]
//	tz4bls pop -sk <hex32>
//	tz4bls popverify -pk <hex48> -proof <hex96>
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/objkt-com/tezex-sub000/crypto"
	"github.com/objkt-com/tezex-sub000/log"
)

var logger = log.Default().Module("tz4bls")

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches the subcommand and returns the process exit code.
// Separated from main so it can be tested in isolation.
func run(args []string) int {
	args = configureLogging(args)
	if len(args) == 0 {
		usage()
		return 2
	}
	switch args[0] {
	case "keygen":
		return cmdKeygen(args[1:])
	case "seed":
		return cmdSeed(args[1:])
	case "pubkey":
		return cmdPubkey(args[1:])
	case "sign":
		return cmdSign(args[1:])
	case "verify":
		return cmdVerify(args[1:])
	case "pop":
		return cmdPop(args[1:])
	case "popverify":
		return cmdPopVerify(args[1:])
	case "-h", "--help", "help":
		usage()
		return 0
	}
	fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
	usage()
	return 2
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: tz4bls [-log json|text|color] <keygen|seed|pubkey|sign|verify|pop|popverify> [flags]")
}

// configureLogging peels an optional leading -log flag off the argument
// list and installs the matching formatter as the default logger. Left
// alone, the slog JSON handler from the log package stays in place.
func configureLogging(args []string) []string {
	var format string
	switch {
	case len(args) >= 2 && args[0] == "-log":
		format, args = args[1], args[2:]
	case len(args) >= 1 && strings.HasPrefix(args[0], "-log="):
		format, args = strings.TrimPrefix(args[0], "-log="), args[1:]
	default:
		return args
	}
	var f log.LogFormatter
	switch format {
	case "text":
		f = &log.TextFormatter{}
	case "color":
		f = &log.ColorFormatter{}
	default:
		f = &log.JSONFormatter{}
	}
	log.SetDefault(log.NewWithHandler(log.NewFormatterHandler(os.Stderr, f, slog.LevelInfo)))
	logger = log.Default().Module("tz4bls")
	return args
}

func parseSuite(s string) (crypto.BlsCiphersuite, error) {
	switch s {
	case "basic":
		return crypto.BlsCiphersuiteBasic, nil
	case "aug", "":
		return crypto.BlsCiphersuiteAug, nil
	case "pop":
		return crypto.BlsCiphersuitePop, nil
	}
	return 0, fmt.Errorf("unknown ciphersuite %q", s)
}

func decodeSecret(s string) ([crypto.BLSSecretSize]byte, error) {
	var out [crypto.BLSSecretSize]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != crypto.BLSSecretSize {
		return out, fmt.Errorf("secret must be %d bytes, got %d", crypto.BLSSecretSize, len(b))
	}
	copy(out[:], b)
	return out, nil
}

func decodePubkey(s string) ([crypto.BLSPubkeySize]byte, error) {
	var out [crypto.BLSPubkeySize]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != crypto.BLSPubkeySize {
		return out, fmt.Errorf("pubkey must be %d bytes, got %d", crypto.BLSPubkeySize, len(b))
	}
	copy(out[:], b)
	return out, nil
}

func decodeSignature(s string) ([crypto.BLSSignatureSize]byte, error) {
	var out [crypto.BLSSignatureSize]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != crypto.BLSSignatureSize {
		return out, fmt.Errorf("signature must be %d bytes, got %d", crypto.BLSSignatureSize, len(b))
	}
	copy(out[:], b)
	return out, nil
}

func cmdKeygen(args []string) int {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	ikmHex := fs.String("ikm", "", "input keying material, hex, at least 32 bytes")
	infoHex := fs.String("info", "", "optional key info, hex")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	ikm, err := hex.DecodeString(*ikmHex)
	if err != nil {
		logger.Error("invalid ikm hex", "err", err)
		return 1
	}
	info, err := hex.DecodeString(*infoHex)
	if err != nil {
		logger.Error("invalid info hex", "err", err)
		return 1
	}
	sk, err := crypto.BLSKeyGen(ikm, info)
	if err != nil {
		logger.Error("key generation failed", "err", err)
		return 1
	}
	var out [crypto.BLSSecretSize]byte
	sk.FillBytes(out[:])
	fmt.Printf("%x\n", out)
	return 0
}

func cmdSeed(args []string) int {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedHex := fs.String("seed", "", "32-byte seed, hex")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	seed, err := decodeSecret(*seedHex)
	if err != nil {
		logger.Error("invalid seed", "err", err)
		return 1
	}
	sk, err := crypto.BLSFromSeed(seed)
	if err != nil {
		logger.Error("seed rejected", "err", err)
		return 1
	}
	var out [crypto.BLSSecretSize]byte
	sk.FillBytes(out[:])
	fmt.Printf("%x\n", out)
	return 0
}

func cmdPubkey(args []string) int {
	fs := flag.NewFlagSet("pubkey", flag.ContinueOnError)
	skHex := fs.String("sk", "", "32-byte secret scalar, hex")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	seed, err := decodeSecret(*skHex)
	if err != nil {
		logger.Error("invalid secret", "err", err)
		return 1
	}
	sk, err := crypto.BLSFromSeed(seed)
	if err != nil {
		logger.Error("invalid secret", "err", err)
		return 1
	}
	pk, err := crypto.BLSPublicKey(sk)
	if err != nil {
		logger.Error("public key derivation failed", "err", err)
		return 1
	}
	fmt.Printf("%x\n", pk)
	return 0
}

func cmdSign(args []string) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	skHex := fs.String("sk", "", "32-byte secret scalar, hex")
	msg := fs.String("msg", "", "message to sign")
	suiteName := fs.String("suite", "aug", "ciphersuite: basic, aug, pop")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	seed, err := decodeSecret(*skHex)
	if err != nil {
		logger.Error("invalid secret", "err", err)
		return 1
	}
	sk, err := crypto.BLSFromSeed(seed)
	if err != nil {
		logger.Error("invalid secret", "err", err)
		return 1
	}
	suite, err := parseSuite(*suiteName)
	if err != nil {
		logger.Error("invalid ciphersuite", "err", err)
		return 1
	}
	sig, err := crypto.BLSSign(sk, []byte(*msg), suite)
	if err != nil {
		logger.Error("signing failed", "err", err)
		return 1
	}
	fmt.Printf("%x\n", sig)
	return 0
}

func cmdVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	pkHex := fs.String("pk", "", "48-byte compressed public key, hex")
	msg := fs.String("msg", "", "signed message")
	sigHex := fs.String("sig", "", "96-byte compressed signature, hex")
	suiteName := fs.String("suite", "aug", "ciphersuite: basic, aug, pop")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	pk, err := decodePubkey(*pkHex)
	if err != nil {
		logger.Error("invalid pubkey", "err", err)
		return 1
	}
	sig, err := decodeSignature(*sigHex)
	if err != nil {
		logger.Error("invalid signature", "err", err)
		return 1
	}
	suite, err := parseSuite(*suiteName)
	if err != nil {
		logger.Error("invalid ciphersuite", "err", err)
		return 1
	}
	ok := crypto.DefaultBLSBackend().Verify(pk[:], []byte(*msg), sig[:], suite)
	fmt.Println(ok)
	if !ok {
		return 1
	}
	return 0
}

func cmdPop(args []string) int {
	fs := flag.NewFlagSet("pop", flag.ContinueOnError)
	skHex := fs.String("sk", "", "32-byte secret scalar, hex")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	seed, err := decodeSecret(*skHex)
	if err != nil {
		logger.Error("invalid secret", "err", err)
		return 1
	}
	sk, err := crypto.BLSFromSeed(seed)
	if err != nil {
		logger.Error("invalid secret", "err", err)
		return 1
	}
	proof, err := crypto.BLSPopProve(sk)
	if err != nil {
		logger.Error("proof generation failed", "err", err)
		return 1
	}
	fmt.Printf("%x\n", proof)
	return 0
}

func cmdPopVerify(args []string) int {
	fs := flag.NewFlagSet("popverify", flag.ContinueOnError)
	pkHex := fs.String("pk", "", "48-byte compressed public key, hex")
	proofHex := fs.String("proof", "", "96-byte compressed proof, hex")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	pk, err := decodePubkey(*pkHex)
	if err != nil {
		logger.Error("invalid pubkey", "err", err)
		return 1
	}
	proof, err := decodeSignature(*proofHex)
	if err != nil {
		logger.Error("invalid proof", "err", err)
		return 1
	}
	ok := crypto.DefaultBLSBackend().PopVerify(pk[:], proof[:])
	fmt.Println(ok)
	if !ok {
		return 1
	}
	return 0
}
