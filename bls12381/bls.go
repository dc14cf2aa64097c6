package bls12381

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/sha3"
)

// BLS signature shell, grounded in the key_pair_generate/sign/verify triple:
// signatures and message-hash points live in G1, public keys in G2. A
// message is hashed to a G1 point via SHAKE256 (hashMessage+mapit), signing
// is scalar multiplication of that point by the private key, and
// verification checks e(G2-generator, -sig) * e(pubkey, H(m)) == 1 via the
// multi-pairing accumulator (pairing.go).

var (
	// ErrInvalidPrivateKey is returned when a private-key byte string does
	// not decode to a canonical scalar in [1, r).
	ErrInvalidPrivateKey = errors.New("bls12381: invalid private key encoding")
	// ErrInvalidSignature is returned when a signature byte string does not
	// decode to a point on G1 in the prime-order subgroup.
	ErrInvalidSignature = errors.New("bls12381: invalid signature encoding")
	// ErrInvalidPublicKey is returned when a public-key byte string does not
	// decode to a point on G2 in the prime-order subgroup.
	ErrInvalidPublicKey = errors.New("bls12381: invalid public key encoding")
)

// hashMessage hashes an arbitrary message to a G1 point via a 48-byte
// SHAKE256 digest fed through the legacy try-and-increment map (mapit).
func hashMessage(m []byte) ECP {
	h := sha3.NewShake256()
	h.Write(m)
	digest := make([]byte, bigBytes)
	h.Read(digest)
	return mapit(digest)
}

// KeyPairGenerate samples a uniformly random scalar s in [1, r) via
// crypto/rand rejection sampling and derives the public key w = [s]G2.
// Returns the 48-byte private scalar and the 96-byte compressed public key.
func KeyPairGenerate() (priv, pub []byte, err error) {
	for {
		buf := make([]byte, bigBytes)
		if _, err := rand.Read(buf); err != nil {
			return nil, nil, err
		}
		// r has 255 bits: keep only the low 255 bits of the 48-byte buffer
		// so most candidates already fall in [0, r); the loop rejects the
		// rest.
		for i := 0; i < 16; i++ {
			buf[i] = 0
		}
		buf[16] &= 0x7f
		s := bigFromBytes(buf)
		if s.isZero() || s.cmp(curveOrder) >= 0 {
			continue
		}
		w := ECP2Generator().Mul(s)
		return s.toBytes(), w.ToBytesCompressed(), nil
	}
}

// Sign produces a 48-byte compressed G1 signature over m under the private
// key priv (48-byte big-endian scalar).
func Sign(m, priv []byte) ([]byte, error) {
	if len(priv) != bigBytes {
		return nil, ErrInvalidPrivateKey
	}
	s := bigFromBytes(priv)
	if s.isZero() || s.cmp(curveOrder) >= 0 {
		return nil, ErrInvalidPrivateKey
	}
	d := hashMessage(m)
	sig := d.Mul(s)
	return sig.ToBytesCompressed(), nil
}

// Verify reports whether sig is a valid signature over m under the public
// key pub. An encoding that does not decode to a point in the prime-order
// subgroup returns ErrInvalidSignature or ErrInvalidPublicKey; the
// expected-negative "does not verify" outcome is reported as (false, nil).
func Verify(sig, m, pub []byte) (bool, error) {
	d, ok := ECPFromBytesCompressed(sig)
	if !ok || !d.InSubgroup() {
		return false, ErrInvalidSignature
	}
	pk, ok := ECP2FromBytesCompressed(pub)
	if !ok || !pk.InSubgroup() {
		return false, ErrInvalidPublicKey
	}

	hm := hashMessage(m)
	g := ECP2Generator()
	neg := d.Neg()

	acc := InitMP()
	acc.Another(g, neg)
	acc.Another(pk, hm)
	v := Fexp(acc.Miller())
	return v.IsOne(), nil
}
