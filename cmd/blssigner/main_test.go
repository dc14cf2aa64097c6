package main

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/wyf-accept/bls12381/bls12381"
)

func TestNewLoggerDefaultsToJSON(t *testing.T) {
	l, err := newLogger("")
	if err != nil {
		t.Fatalf("newLogger(\"\") returned error: %v", err)
	}
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewLoggerJSON(t *testing.T) {
	l, err := newLogger("json")
	if err != nil {
		t.Fatalf("newLogger(json) returned error: %v", err)
	}
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewLoggerText(t *testing.T) {
	l, err := newLogger("text")
	if err != nil {
		t.Fatalf("newLogger(text) returned error: %v", err)
	}
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewLoggerColor(t *testing.T) {
	l, err := newLogger("color")
	if err != nil {
		t.Fatalf("newLogger(color) returned error: %v", err)
	}
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewLoggerUnknownFormat(t *testing.T) {
	_, err := newLogger("xml")
	if err == nil {
		t.Fatal("expected error for unknown -log-format value")
	}
	if !strings.Contains(err.Error(), "xml") {
		t.Fatalf("expected error to mention the bad value, got: %v", err)
	}
}

func TestRunUsageWithNoArgs(t *testing.T) {
	if code := run(nil); code != 2 {
		t.Fatalf("expected exit code 2 for no subcommand, got %d", code)
	}
}

func TestRunUnknownSubcommand(t *testing.T) {
	if code := run([]string{"frobnicate"}); code != 2 {
		t.Fatalf("expected exit code 2 for unknown subcommand, got %d", code)
	}
}

func TestRunBadLogFormat(t *testing.T) {
	if code := run([]string{"-log-format", "xml", "keygen"}); code != 2 {
		t.Fatalf("expected exit code 2 for bad -log-format, got %d", code)
	}
}

func TestRunKeygenEndToEnd(t *testing.T) {
	if code := run([]string{"-log-format", "text", "keygen"}); code != 0 {
		t.Fatalf("expected exit code 0 from keygen, got %d", code)
	}
}

// TestRunSignAndVerifyEndToEnd drives the sign/verify subcommands through
// run() with a key pair produced directly by the library, exercising the
// same hex-decode and flag-parsing paths runSign/runVerify use without
// needing to scrape stdout.
func TestRunSignAndVerifyEndToEnd(t *testing.T) {
	priv, pub, err := bls12381.KeyPairGenerate()
	if err != nil {
		t.Fatalf("KeyPairGenerate: %v", err)
	}

	sig, err := bls12381.Sign([]byte("hello world"), priv)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	privHex := hex.EncodeToString(priv)
	pubHex := hex.EncodeToString(pub)
	sigHex := hex.EncodeToString(sig)

	if code := run([]string{"sign", "-priv", privHex, "-msg", "hello world"}); code != 0 {
		t.Fatalf("expected exit code 0 from sign, got %d", code)
	}

	if code := run([]string{"verify", "-pub", pubHex, "-sig", sigHex, "-msg", "hello world"}); code != 0 {
		t.Fatalf("expected exit code 0 from verify, got %d", code)
	}

	if code := run([]string{"verify", "-pub", pubHex, "-sig", sigHex, "-msg", "wrong message"}); code == 0 {
		t.Fatal("expected non-zero exit code when verifying a tampered message")
	}
}

func TestRunVerifyBadEncoding(t *testing.T) {
	if code := run([]string{"verify", "-pub", "zz", "-sig", "zz", "-msg", "hi"}); code != 1 {
		t.Fatalf("expected exit code 1 for invalid -pub encoding, got %d", code)
	}
}
