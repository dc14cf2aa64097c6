package bls12381

// Byte encodings for the core's external surface (spec section 6):
//   - scalar / private key: 48-byte big-endian, canonical in [0, r).
//   - G1 point: 48-byte compressed form (g1.go).
//   - G2 point: 96-byte compressed form, imaginary component first (g2.go).
//
// Point encode/decode already live next to their types in g1.go/g2.go; this
// file holds the scalar codec shared by key generation, signing, and any
// external caller building its own key material.

// ScalarToBytes serialises a curve-order scalar as 48-byte big-endian.
func ScalarToBytes(s bigInt) []byte {
	return s.norm().toBytes()
}

// ScalarFromBytes decodes a 48-byte big-endian scalar, reporting false if it
// is not canonical (>= the group order r).
func ScalarFromBytes(b []byte) (bigInt, bool) {
	if len(b) != bigBytes {
		return bigInt{}, false
	}
	s := bigFromBytes(b)
	if s.cmp(curveOrder) >= 0 {
		return bigInt{}, false
	}
	return s, true
}
