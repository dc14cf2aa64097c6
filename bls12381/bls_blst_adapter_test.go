//go:build blst

package bls12381

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"testing"

	blst "github.com/supranational/blst/bindings/go"
)

// makeIKM generates deterministic IKM of the required 32-byte minimum length.
func makeIKM(seed byte) []byte {
	ikm := make([]byte, 32)
	for i := range ikm {
		ikm[i] = seed ^ byte(i*17+3)
	}
	return ikm
}

// makeRandomIKM generates cryptographically random 32-byte IKM.
func makeRandomIKM() []byte {
	ikm := make([]byte, 32)
	if _, err := rand.Read(ikm); err != nil {
		panic("failed to generate random IKM")
	}
	return ikm
}

func TestBlstCheckG1CompressedAgreesOnOwnGenerator(t *testing.T) {
	ok, err := BlstCheckG1Compressed(ECPGenerator())
	if err != nil {
		t.Fatalf("BlstCheckG1Compressed: %v", err)
	}
	if !ok {
		t.Fatal("blst disagrees with this package's own G1-generator compressed encoding")
	}
}

func TestBlstCheckG2CompressedAgreesOnOwnGenerator(t *testing.T) {
	ok, err := BlstCheckG2Compressed(ECP2Generator())
	if err != nil {
		t.Fatalf("BlstCheckG2Compressed: %v", err)
	}
	if !ok {
		t.Fatal("blst disagrees with this package's own G2-generator compressed encoding")
	}
}

func TestBlstCheckG1CompressedAgreesOnOwnKeyPair(t *testing.T) {
	// Exercise this package's own KeyPairGenerate public key (bls.go, G2) and
	// a non-generator G1 multiple, not just the fixed generators,
	// cross-checked against blst's own codec.
	_, pub, err := KeyPairGenerate()
	if err != nil {
		t.Fatalf("KeyPairGenerate: %v", err)
	}
	pk, ok := ECP2FromBytesCompressed(pub)
	if !ok {
		t.Fatal("this package's own compressed public key failed to decode")
	}
	agree, err := BlstCheckG2Compressed(pk)
	if err != nil {
		t.Fatalf("BlstCheckG2Compressed: %v", err)
	}
	if !agree {
		t.Fatal("blst disagrees with this package's own compressed public key encoding")
	}

	sig := ECPGenerator().Mul(bigFromUint64(424242))
	agree, err = BlstCheckG1Compressed(sig)
	if err != nil {
		t.Fatalf("BlstCheckG1Compressed: %v", err)
	}
	if !agree {
		t.Fatal("blst disagrees with this package's own compressed G1 point encoding")
	}
}

func TestBlstCheckG1CompressedRejectsGarbage(t *testing.T) {
	// Flip a bit in a valid compressed encoding, landing off-curve (bit 3:
	// flipping bits 0-2 of the generator's x stays on the curve); blst's
	// own decompressor (the same one BlstCheckG1Compressed calls) should
	// reject it.
	enc := ECPGenerator().ToBytesCompressed()
	enc[len(enc)-1] ^= 0x08
	if pt := new(blst.P1Affine).Uncompress(enc); pt != nil {
		t.Fatal("expected blst to reject a tampered compressed G1 point")
	}
}

func TestBlstRealBackendName(t *testing.T) {
	backend := &BlstRealBackend{}
	name := backend.Name()
	if name != "blst-minpk-oracle" {
		t.Errorf("expected name 'blst-minpk-oracle', got %q", name)
	}
}

func TestBlstKeyGen(t *testing.T) {
	ikm := makeIKM(0x42)
	pk, sk, err := BlstKeyGen(ikm)
	if err != nil {
		t.Fatalf("BlstKeyGen failed: %v", err)
	}
	if len(pk) != 48 {
		t.Errorf("expected pubkey length 48, got %d", len(pk))
	}
	if len(sk) != 32 {
		t.Errorf("expected secret key length 32, got %d", len(sk))
	}
	// Pubkey should have compression bit set.
	if pk[0]&0x80 == 0 {
		t.Error("pubkey compression bit not set")
	}
}

func TestBlstSignVerifyRoundtrip(t *testing.T) {
	ikm := makeIKM(0x01)
	pk, sk, err := BlstKeyGen(ikm)
	if err != nil {
		t.Fatalf("BlstKeyGen failed: %v", err)
	}

	msg := []byte("hello differential test")
	sig, err := BlstSign(sk, msg)
	if err != nil {
		t.Fatalf("BlstSign failed: %v", err)
	}
	if len(sig) != 96 {
		t.Errorf("expected sig length 96, got %d", len(sig))
	}

	backend := &BlstRealBackend{}
	if !backend.Verify(pk, msg, sig) {
		t.Error("Verify returned false for valid signature")
	}
}

func TestBlstVerifyWrongMessage(t *testing.T) {
	ikm := makeIKM(0x02)
	pk, sk, err := BlstKeyGen(ikm)
	if err != nil {
		t.Fatalf("BlstKeyGen failed: %v", err)
	}

	msg1 := []byte("correct message")
	msg2 := []byte("wrong message")
	sig, err := BlstSign(sk, msg1)
	if err != nil {
		t.Fatalf("BlstSign failed: %v", err)
	}

	backend := &BlstRealBackend{}
	if backend.Verify(pk, msg2, sig) {
		t.Error("Verify should return false for wrong message")
	}
}

func TestBlstVerifyInvalidSig(t *testing.T) {
	ikm := makeIKM(0x03)
	pk, _, err := BlstKeyGen(ikm)
	if err != nil {
		t.Fatalf("BlstKeyGen failed: %v", err)
	}

	msg := []byte("test message")
	// Random bytes are not a valid compressed G2 point.
	badSig := make([]byte, 96)
	rand.Read(badSig)

	backend := &BlstRealBackend{}
	if backend.Verify(pk, msg, badSig) {
		t.Error("Verify should return false for invalid signature bytes")
	}
}

func TestBlstVerifyInvalidPubkey(t *testing.T) {
	ikm := makeIKM(0x04)
	_, sk, err := BlstKeyGen(ikm)
	if err != nil {
		t.Fatalf("BlstKeyGen failed: %v", err)
	}

	msg := []byte("test message")
	sig, err := BlstSign(sk, msg)
	if err != nil {
		t.Fatalf("BlstSign failed: %v", err)
	}

	// Random bytes are not a valid compressed G1 point.
	badPK := make([]byte, 48)
	rand.Read(badPK)

	backend := &BlstRealBackend{}
	if backend.Verify(badPK, msg, sig) {
		t.Error("Verify should return false for invalid pubkey bytes")
	}
}

func TestBlstVerifyEmptyInputs(t *testing.T) {
	backend := &BlstRealBackend{}

	// All nil/empty combinations should return false without panicking.
	cases := []struct {
		name string
		pk   []byte
		msg  []byte
		sig  []byte
	}{
		{"nil pubkey", nil, []byte("msg"), make([]byte, 96)},
		{"empty pubkey", []byte{}, []byte("msg"), make([]byte, 96)},
		{"nil sig", make([]byte, 48), []byte("msg"), nil},
		{"empty sig", make([]byte, 48), []byte("msg"), []byte{}},
		{"nil msg (valid length pk/sig)", make([]byte, 48), nil, make([]byte, 96)},
		{"all nil", nil, nil, nil},
		{"all empty", []byte{}, []byte{}, []byte{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Should not panic.
			result := backend.Verify(tc.pk, tc.msg, tc.sig)
			if result {
				t.Error("Verify should return false for empty/nil inputs")
			}
		})
	}
}

func TestBlstKeyGenDeterminism(t *testing.T) {
	ikm := makeIKM(0x50)

	pk1, sk1, err := BlstKeyGen(ikm)
	if err != nil {
		t.Fatalf("BlstKeyGen(1) failed: %v", err)
	}
	pk2, sk2, err := BlstKeyGen(ikm)
	if err != nil {
		t.Fatalf("BlstKeyGen(2) failed: %v", err)
	}

	if !bytes.Equal(pk1, pk2) {
		t.Error("same IKM produced different public keys")
	}
	if !bytes.Equal(sk1, sk2) {
		t.Error("same IKM produced different secret keys")
	}
}

func TestBlstKeyGenDifferentIKM(t *testing.T) {
	ikm1 := makeIKM(0x60)
	ikm2 := makeIKM(0x61)

	pk1, sk1, err := BlstKeyGen(ikm1)
	if err != nil {
		t.Fatalf("BlstKeyGen(1) failed: %v", err)
	}
	pk2, sk2, err := BlstKeyGen(ikm2)
	if err != nil {
		t.Fatalf("BlstKeyGen(2) failed: %v", err)
	}

	if bytes.Equal(pk1, pk2) {
		t.Error("different IKM produced same public keys")
	}
	if bytes.Equal(sk1, sk2) {
		t.Error("different IKM produced same secret keys")
	}
}

func TestBlstMultipleSignVerify(t *testing.T) {
	backend := &BlstRealBackend{}
	ikm := makeIKM(0x80)
	pk, sk, err := BlstKeyGen(ikm)
	if err != nil {
		t.Fatalf("BlstKeyGen failed: %v", err)
	}

	for i := 0; i < 100; i++ {
		msg := []byte(fmt.Sprintf("message iteration %d with extra data to sign", i))
		sig, err := BlstSign(sk, msg)
		if err != nil {
			t.Fatalf("BlstSign[%d] failed: %v", i, err)
		}
		if !backend.Verify(pk, msg, sig) {
			t.Errorf("Verify failed for message %d", i)
		}
	}
}

func TestBlstBLSBackendInterface(t *testing.T) {
	// Compile-time check that BlstRealBackend satisfies BLSBackend.
	var _ BLSBackend = (*BlstRealBackend)(nil)

	// Runtime check via the interface.
	var backend BLSBackend = &BlstRealBackend{}
	if backend.Name() != "blst-minpk-oracle" {
		t.Errorf("interface Name() returned %q, expected 'blst-minpk-oracle'", backend.Name())
	}
}

func TestBlstKeyGenShortIKM(t *testing.T) {
	// IKM shorter than 32 bytes should fail.
	shortIKM := make([]byte, 16)
	_, _, err := BlstKeyGen(shortIKM)
	if err != ErrBlstInvalidIKM {
		t.Errorf("expected ErrBlstInvalidIKM for short IKM, got %v", err)
	}
}

func TestBlstSignInvalidSecretKey(t *testing.T) {
	// Invalid (too short) secret key should fail.
	_, err := BlstSign([]byte{1, 2, 3}, []byte("msg"))
	if err != ErrBlstInvalidSecretKey {
		t.Errorf("expected ErrBlstInvalidSecretKey, got %v", err)
	}
}

func TestBlstSetAsActiveBackend(t *testing.T) {
	// Verify that BlstRealBackend can be set as the active BLS backend. This
	// only exercises blst's own MinPk scheme through the generic interface,
	// not a cross-check of bls.go's MinSig output -- see the package doc
	// comment in bls_blst_adapter.go.
	original := DefaultBLSBackend()
	defer SetBLSBackend(original)

	SetBLSBackend(&BlstRealBackend{})
	active := DefaultBLSBackend()
	if active.Name() != "blst-minpk-oracle" {
		t.Errorf("expected active backend 'blst-minpk-oracle', got %q", active.Name())
	}

	ikm := makeIKM(0x90)
	pk, sk, err := BlstKeyGen(ikm)
	if err != nil {
		t.Fatalf("BlstKeyGen failed: %v", err)
	}
	msg := []byte("test via active backend")
	sig, err := BlstSign(sk, msg)
	if err != nil {
		t.Fatalf("BlstSign failed: %v", err)
	}
	if !BLSVerifyWithBackend(active, pk, msg, sig) {
		t.Error("BLSVerifyWithBackend failed through active blst backend")
	}
}

func TestBlstCrossSignerVerifyFails(t *testing.T) {
	// Signature from one key should not verify with a different key.
	backend := &BlstRealBackend{}
	ikm1 := makeIKM(0xA0)
	ikm2 := makeIKM(0xA1)

	pk1, sk1, _ := BlstKeyGen(ikm1)
	pk2, _, _ := BlstKeyGen(ikm2)

	msg := []byte("cross signer test")
	sig, _ := BlstSign(sk1, msg)

	if !backend.Verify(pk1, msg, sig) {
		t.Error("Verify should succeed with correct key")
	}
	if backend.Verify(pk2, msg, sig) {
		t.Error("Verify should fail with wrong key")
	}
}

// --- Benchmarks ---

func BenchmarkBlstVerify(b *testing.B) {
	ikm := makeRandomIKM()
	pk, sk, err := BlstKeyGen(ikm)
	if err != nil {
		b.Fatalf("BlstKeyGen failed: %v", err)
	}
	msg := []byte("benchmark verify message for BLS12-381")
	sig, err := BlstSign(sk, msg)
	if err != nil {
		b.Fatalf("BlstSign failed: %v", err)
	}
	backend := &BlstRealBackend{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !backend.Verify(pk, msg, sig) {
			b.Fatal("Verify failed during benchmark")
		}
	}
}

func BenchmarkBlstCheckG1Compressed(b *testing.B) {
	p := ECPGenerator()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if ok, err := BlstCheckG1Compressed(p); err != nil || !ok {
			b.Fatal("BlstCheckG1Compressed failed during benchmark")
		}
	}
}
