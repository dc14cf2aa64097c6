// Command blssigner is an offline BLS12-381 key/signature utility.
//
// Usage:
//
//	blssigner keygen
//	blssigner sign -priv <hex> -msg <string>
//	blssigner verify -pub <hex> -msg <string> -sig <hex>
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/wyf-accept/bls12381/bls12381"
	"github.com/wyf-accept/bls12381/log"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// newLogger builds the process logger per -log-format: "json" (default)
// hands off to slog's own JSON handler; "text"/"color" render through
// formatter.go's LogFormatter instead (log.NewWithFormatter).
func newLogger(format string) (*log.Logger, error) {
	switch format {
	case "", "json":
		return log.Default(), nil
	case "text":
		return log.NewWithFormatter(&log.TextFormatter{}, os.Stderr, slog.LevelInfo), nil
	case "color":
		return log.NewWithFormatter(&log.ColorFormatter{}, os.Stderr, slog.LevelInfo), nil
	default:
		return nil, fmt.Errorf("unknown -log-format %q (want json, text, or color)", format)
	}
}

func run(args []string) int {
	top := flag.NewFlagSet("blssigner", flag.ContinueOnError)
	logFormat := top.String("log-format", "json", "log output format: json, text, or color")
	if err := top.Parse(args); err != nil {
		return 2
	}
	args = top.Args()

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: blssigner [-log-format json|text|color] <keygen|sign|verify> [flags]")
		return 2
	}

	logger, err := newLogger(*logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logger = logger.Module("blssigner")

	switch args[0] {
	case "keygen":
		return runKeygen(logger, args[1:])
	case "sign":
		return runSign(logger, args[1:])
	case "verify":
		return runVerify(logger, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", args[0])
		return 2
	}
}

func runKeygen(logger *log.Logger, args []string) int {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	priv, pub, err := bls12381.KeyPairGenerate()
	if err != nil {
		logger.Error("key generation failed", "error", err)
		return 1
	}

	fmt.Printf("priv: %s\n", hex.EncodeToString(priv))
	fmt.Printf("pub:  %s\n", hex.EncodeToString(pub))
	return 0
}

func runSign(logger *log.Logger, args []string) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	privHex := fs.String("priv", "", "private key, hex-encoded (48 bytes)")
	msg := fs.String("msg", "", "message to sign")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	priv, err := hex.DecodeString(*privHex)
	if err != nil {
		logger.Error("invalid -priv encoding", "error", err)
		return 1
	}

	sig, err := bls12381.Sign([]byte(*msg), priv)
	if err != nil {
		logger.Error("signing failed", "error", err)
		return 1
	}

	fmt.Printf("sig: %s\n", hex.EncodeToString(sig))
	return 0
}

func runVerify(logger *log.Logger, args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	pubHex := fs.String("pub", "", "public key, hex-encoded (96 bytes)")
	sigHex := fs.String("sig", "", "signature, hex-encoded (48 bytes)")
	msg := fs.String("msg", "", "message that was signed")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	pub, err := hex.DecodeString(*pubHex)
	if err != nil {
		logger.Error("invalid -pub encoding", "error", err)
		return 1
	}
	sig, err := hex.DecodeString(*sigHex)
	if err != nil {
		logger.Error("invalid -sig encoding", "error", err)
		return 1
	}

	ok, err := bls12381.Verify(sig, []byte(*msg), pub)
	if err != nil {
		logger.Error("verification errored", "error", err)
		return 1
	}
	if !ok {
		fmt.Println("FAIL")
		return 1
	}
	fmt.Println("OK")
	return 0
}
