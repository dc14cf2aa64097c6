package bls12381

import (
	"testing"
)

// --- G1 edge cases ---

func TestECPInfinityDbl(t *testing.T) {
	inf := ECPInfinity()
	if !inf.Dbl().IsInfinity() {
		t.Fatal("2*O should be O")
	}
}

func TestECPInfinityScalarMul(t *testing.T) {
	inf := ECPInfinity()
	scalars := []bigInt{bigZero(), bigOne(), bigFromUint64(42), curveOrder}
	for _, k := range scalars {
		if !inf.Mul(k).IsInfinity() {
			t.Fatal("k*O should be O for every k")
		}
	}
}

func TestECPZeroScalarMul(t *testing.T) {
	if !ECPGenerator().Mul(bigZero()).IsInfinity() {
		t.Fatal("0*G should be O")
	}
}

func TestECPOrderScalarMulIsInfinity(t *testing.T) {
	if !ECPGenerator().Mul(curveOrder).IsInfinity() {
		t.Fatal("r*G should be O")
	}
}

func TestECPNegInfinity(t *testing.T) {
	if !ECPInfinity().Neg().IsInfinity() {
		t.Fatal("-O should be O")
	}
}

func TestECPNegNegIsIdentity(t *testing.T) {
	g := ECPGenerator()
	if !g.Neg().Neg().Equals(g) {
		t.Fatal("-(-G) should equal G")
	}
}

func TestECPAddInfinityIsIdentity(t *testing.T) {
	g := ECPGenerator()
	if !g.Add(ECPInfinity()).Equals(g) {
		t.Fatal("G+O should equal G")
	}
	if !ECPInfinity().Add(g).Equals(g) {
		t.Fatal("O+G should equal G")
	}
}

func TestECPAddNegSelfIsInfinity(t *testing.T) {
	g := ECPGenerator()
	if !g.Add(g.Neg()).IsInfinity() {
		t.Fatal("G+(-G) should equal O")
	}
}

func TestECPRMinusOneTimesGenIsNegGen(t *testing.T) {
	rMinusOne := curveOrder.sub(bigOne())
	got := ECPGenerator().Mul(rMinusOne)
	want := ECPGenerator().Neg()
	if !got.Equals(want) {
		t.Fatal("(r-1)*G should equal -G")
	}
}

func TestECPGeneratorIsOnCurveAndInSubgroup(t *testing.T) {
	g := ECPGenerator()
	if !g.IsOnCurve() {
		t.Fatal("generator must satisfy the curve equation")
	}
	if !g.InSubgroup() {
		t.Fatal("generator must lie in the order-r subgroup")
	}
}

func TestECPCompressedInfinityRoundtrip(t *testing.T) {
	b := ECPInfinity().ToBytesCompressed()
	p, ok := ECPFromBytesCompressed(b)
	if !ok {
		t.Fatal("decoding the compressed point at infinity should succeed")
	}
	if !p.IsInfinity() {
		t.Fatal("decoded point should be infinity")
	}
}

func TestECPFromBytesCompressedRejectsWrongLength(t *testing.T) {
	if _, ok := ECPFromBytesCompressed(make([]byte, bigBytes-1)); ok {
		t.Fatal("a too-short buffer should be rejected")
	}
	if _, ok := ECPFromBytesCompressed(make([]byte, bigBytes+1)); ok {
		t.Fatal("a too-long buffer should be rejected")
	}
}

func TestECPFromBytesCompressedRejectsOffCurvePoint(t *testing.T) {
	b := ECPGenerator().ToBytesCompressed()
	// Flip a low bit deep in the x-coordinate payload, leaving the
	// compression/sign header bits alone. Bit 3 is used because flipping
	// bits 0-2 of the generator's x still leaves x^3+4 a square.
	b[len(b)-1] ^= 0x08
	if _, ok := ECPFromBytesCompressed(b); ok {
		t.Fatal("a corrupted x-coordinate should not decode to a valid curve point")
	}
}

// --- G2 edge cases ---

func TestECP2InfinityDbl(t *testing.T) {
	if !ECP2Infinity().Dbl().IsInfinity() {
		t.Fatal("2*O should be O in G2")
	}
}

func TestECP2ZeroScalarMul(t *testing.T) {
	if !ECP2Generator().Mul(bigZero()).IsInfinity() {
		t.Fatal("0*G2 should be O")
	}
}

func TestECP2OrderScalarMulIsInfinity(t *testing.T) {
	if !ECP2Generator().Mul(curveOrder).IsInfinity() {
		t.Fatal("r*G2 should be O")
	}
}

func TestECP2NegNegIsIdentity(t *testing.T) {
	g := ECP2Generator()
	if !g.Neg().Neg().Equals(g) {
		t.Fatal("-(-G2) should equal G2")
	}
}

func TestECP2AddNegSelfIsInfinity(t *testing.T) {
	g := ECP2Generator()
	if !g.Add(g.Neg()).IsInfinity() {
		t.Fatal("G2+(-G2) should equal O")
	}
}

func TestECP2GeneratorIsOnCurveAndInSubgroup(t *testing.T) {
	g := ECP2Generator()
	if !g.IsOnCurve() {
		t.Fatal("G2 generator must satisfy the twist equation")
	}
	if !g.InSubgroup() {
		t.Fatal("G2 generator must lie in the order-r subgroup")
	}
}

func TestECP2CompressedInfinityRoundtrip(t *testing.T) {
	b := ECP2Infinity().ToBytesCompressed()
	p, ok := ECP2FromBytesCompressed(b)
	if !ok {
		t.Fatal("decoding the compressed G2 point at infinity should succeed")
	}
	if !p.IsInfinity() {
		t.Fatal("decoded point should be infinity")
	}
}

func TestECP2FromBytesCompressedRejectsWrongLength(t *testing.T) {
	if _, ok := ECP2FromBytesCompressed(make([]byte, 2*bigBytes-1)); ok {
		t.Fatal("a too-short G2 buffer should be rejected")
	}
}

func TestECP2ClearCofactorLandsInSubgroup(t *testing.T) {
	// The input, 5*G2, already lies in the order-r subgroup; this checks
	// that clearing the cofactor keeps such a point there.
	p := ECP2Generator().Dbl().Dbl().Add(ECP2Generator())
	cleared := p.ClearCofactor()
	if !cleared.InSubgroup() {
		t.Fatal("ClearCofactor should always produce a subgroup element")
	}
}

// --- Fp / bigInt boundary values ---

func TestFpModulusReducesToZero(t *testing.T) {
	p := nres(modulus)
	if !p.IsZero() {
		t.Fatal("the modulus itself should reduce to 0 in Fp")
	}
}

func TestFpModulusMinusOneIsNonzero(t *testing.T) {
	pm1 := modulus.sub(bigOne())
	if nres(pm1).IsZero() {
		t.Fatal("p-1 should be nonzero in Fp")
	}
}

func TestFpMinusOneSquaredIsOne(t *testing.T) {
	pm1 := nres(modulus.sub(bigOne()))
	if !pm1.Sqr().Equals(FpOne()) {
		t.Fatal("(p-1)^2 should equal 1 mod p")
	}
}

func TestScalarFromBytesRejectsOutOfRange(t *testing.T) {
	oversized := curveOrder.norm().toBytes()
	if _, ok := ScalarFromBytes(oversized); ok {
		t.Fatal("a scalar equal to the group order should be rejected")
	}
}

func TestScalarFromBytesRejectsWrongLength(t *testing.T) {
	if _, ok := ScalarFromBytes(make([]byte, bigBytes-1)); ok {
		t.Fatal("a short buffer should be rejected")
	}
}

func TestScalarRoundtrip(t *testing.T) {
	s := bigFromUint64(123456789)
	b := ScalarToBytes(s)
	back, ok := ScalarFromBytes(b)
	if !ok {
		t.Fatal("decoding a valid scalar should succeed")
	}
	if back.cmp(s) != 0 {
		t.Fatal("ScalarFromBytes(ScalarToBytes(s)) should equal s")
	}
}

// --- Signature API edge cases ---

func TestVerifyRejectsWrongLengthPublicKey(t *testing.T) {
	sk, _, _ := KeyPairGenerate()
	sig, err := Sign([]byte("m"), sk)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	_, err = Verify(sig, []byte("m"), make([]byte, 2*bigBytes-1))
	if err == nil {
		t.Fatal("a malformed public key should surface a decode error")
	}
}

func TestVerifyRejectsInfinitySignature(t *testing.T) {
	_, pk, _ := KeyPairGenerate()
	sig := ECPInfinity().ToBytesCompressed()
	ok, err := Verify(sig, []byte("m"), pk)
	if err == nil && ok {
		t.Fatal("the point at infinity should never verify as a valid signature")
	}
}

// --- Hash-to-curve edge cases ---

func TestMapitNeverReturnsOffCurvePoint(t *testing.T) {
	digests := [][]byte{
		make([]byte, bigBytes),
		bytesOfAll(0xff),
		[]byte("not 48 bytes but mapit only reads what it needs padded up"),
	}
	for _, d := range digests {
		padded := make([]byte, bigBytes)
		copy(padded, d)
		p := mapit(padded)
		if !p.IsOnCurve() {
			t.Fatal("mapit must always return a point on the curve")
		}
		if !p.InSubgroup() {
			t.Fatal("mapit must always return a point in the prime-order subgroup")
		}
	}
}

func bytesOfAll(b byte) []byte {
	out := make([]byte, bigBytes)
	for i := range out {
		out[i] = b
	}
	return out
}

func TestHashToG2ZeroInput(t *testing.T) {
	p := HashToG2(Fp2{a: FpZero(), b: FpZero()})
	if !p.IsOnCurve() {
		t.Fatal("HashToG2 must return a point on the twist even for the zero input")
	}
	if !p.InSubgroup() {
		t.Fatal("HashToG2 must return a subgroup element even for the zero input")
	}
}
