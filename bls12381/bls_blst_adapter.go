//go:build blst

// Differential-testing oracle, built atop the supranational/blst C library
// via CGO, for two things this package's own domain actually produces:
//
//  1. Compressed G1/G2 point codecs (g1.go/g2.go) -- BlstCheckG1Compressed
//     and BlstCheckG2Compressed round-trip one of this package's own
//     ToBytesCompressed outputs through blst's decompressor/compressor and
//     check the bytes survive unchanged, an independent check that our
//     compression format matches the standard ZCash-style serialisation.
//  2. blst's own MinPk signature scheme end-to-end (BlstKeyGen/BlstSign/
//     BlstRealBackend), kept as a sanity oracle on the CGO binding itself.
//
// It is deliberately NOT a drop-in verifier of this package's own Sign/
// Verify output (bls.go): blst's public Go binding only ships the "MinPk"
// scheme (pubkey in G1, sig in G2), the opposite of this package's "MinSig"
// convention (pubkey in G2, sig in G1, bls.go), and blst hashes messages to
// curve points with its own DST-driven SSWU rather than this package's
// legacy try-and-increment mapit -- the two signature schemes produce
// different curve points for the same message, so there is no meaningful
// byte-for-byte comparison to make at that layer without reimplementing
// one scheme's hash inside the other's verifier.
//
// Build with: go build -tags blst
// Test with:  go test -tags blst ./... -run Blst
package bls12381

import (
	"errors"
	"fmt"

	blst "github.com/supranational/blst/bindings/go"
)

// blstDST is blst's own MinPk domain separation tag, used only by the
// BlstKeyGen/BlstSign/BlstRealBackend sanity oracle below -- it has no
// bearing on this package's own hashMessage (bls.go), which never consults
// a DST.
var blstDST = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")

// Key and signature sizes for blst's MinPk scheme.
const (
	blstPubkeySize = 48 // compressed G1
	blstSigSize    = 96 // compressed G2
	blstSecretSize = 32 // scalar field element
)

// Errors returned by blst adapter helpers.
var (
	ErrBlstInvalidIKM       = errors.New("blst: IKM must be at least 32 bytes")
	ErrBlstKeyGenFailed     = errors.New("blst: key generation failed")
	ErrBlstInvalidSecretKey = errors.New("blst: invalid secret key bytes")
	ErrBlstSignFailed       = errors.New("blst: signing failed")
	ErrBlstInvalidSignature = errors.New("blst: invalid signature bytes")
	ErrBlstBadPointEncoding = errors.New("blst: point does not decompress cleanly")
)

// BlstCheckG1Compressed cross-checks this package's own G1 compressed-point
// codec (g1.go) against blst's: it feeds p's ToBytesCompressed encoding
// through blst's decompressor and re-compresses, and reports whether the
// two encodings agree byte for byte.
func BlstCheckG1Compressed(p ECP) (bool, error) {
	enc := p.ToBytesCompressed()
	pt := new(blst.P1Affine).Uncompress(enc)
	if pt == nil {
		return false, ErrBlstBadPointEncoding
	}
	return bytesEqual(pt.Compress(), enc), nil
}

// BlstCheckG2Compressed is BlstCheckG1Compressed's G2 counterpart, against
// this package's ECP2 codec (g2.go).
func BlstCheckG2Compressed(p ECP2) (bool, error) {
	enc := p.ToBytesCompressed()
	pt := new(blst.P2Affine).Uncompress(enc)
	if pt == nil {
		return false, ErrBlstBadPointEncoding
	}
	return bytesEqual(pt.Compress(), enc), nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// BlstRealBackend is a sanity oracle over blst's own MinPk scheme
// (BlstKeyGen/BlstSign below): it never decodes this package's own MinSig
// signatures (see the package doc comment above).
type BlstRealBackend struct{}

// Name returns the backend identifier.
func (b *BlstRealBackend) Name() string {
	return "blst-minpk-oracle"
}

// Verify checks a single MinPk-scheme BLS signature using blst. pubkey must
// be 48-byte compressed G1, sig must be 96-byte compressed G2.
func (b *BlstRealBackend) Verify(pubkey, msg, sig []byte) bool {
	if len(pubkey) == 0 || len(sig) == 0 {
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

	return s.Verify(true, pk, true, msg, blstDST)
}

// BlstKeyGen generates a MinPk-scheme BLS key pair from input key material
// (IKM). IKM must be at least 32 bytes. Returns compressed public key (48
// bytes, G1) and serialized secret key (32 bytes).
func BlstKeyGen(ikm []byte) (pubkey, secretKey []byte, err error) {
	if len(ikm) < 32 {
		return nil, nil, ErrBlstInvalidIKM
	}

	sk := blst.KeyGen(ikm)
	if sk == nil {
		return nil, nil, ErrBlstKeyGenFailed
	}

	pk := new(blst.P1Affine).From(sk)
	pubkey = pk.Compress()
	secretKey = sk.Serialize()
	return pubkey, secretKey, nil
}

// BlstSign signs a message using the given MinPk secret key bytes (32
// bytes). Returns the compressed signature (96 bytes, G2).
func BlstSign(secretKey, msg []byte) ([]byte, error) {
	if len(secretKey) != blstSecretSize {
		return nil, ErrBlstInvalidSecretKey
	}

	sk := new(blst.SecretKey).Deserialize(secretKey)
	if sk == nil {
		return nil, ErrBlstInvalidSecretKey
	}

	sig := new(blst.P2Affine).Sign(sk, msg, blstDST)
	if sig == nil {
		return nil, ErrBlstSignFailed
	}

	return sig.Compress(), nil
}

// blstGenKeyPair is a convenience for tests: generates a key pair from IKM,
// panicking on failure. Not exported to avoid misuse in production code.
func blstGenKeyPair(ikm []byte) (pk, sk []byte) {
	pubkey, secretKey, err := BlstKeyGen(ikm)
	if err != nil {
		panic(fmt.Sprintf("blstGenKeyPair: %v", err))
	}
	return pubkey, secretKey
}
