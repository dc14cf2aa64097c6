package bls12381

import "math/big"

// Legacy try-and-increment hash-to-G1, used by the BLS signature shell
// (bls.go) to map a SHAKE256 digest onto a G1 point: mapit treats the
// digest as a candidate x-coordinate and walks x, x+1, x+2... until
// x^3+4 is a square in Fp, then clears the G1 cofactor. This predates the
// SWU+isogeny construction used for G2 (hash2curve.go) and is kept
// separate since G1's curve has a trivial (non-quadratic-twist) cofactor
// map that doesn't need the isogeny machinery.
func mapit(digest []byte) ECP {
	u := new(big.Int).SetBytes(digest)
	u.Mod(u, modulusBig)
	uSgn0 := uint64(u.Bit(0))

	x := new(big.Int).Set(u)
	for i := 0; i < 256; i++ {
		xFp := nres(bigIntFromBigInt(x))
		rhs := xFp.Sqr().Mul(xFp).Add(curveBFp)
		y, ok := rhs.Sqrt()
		if ok {
			ySgn0 := uint64(redc(y).parity())
			if ySgn0 != uSgn0 {
				y = y.Neg()
			}
			p := NewECP(xFp, y)
			return p.Mul(curveCof)
		}
		x.Add(x, big.NewInt(1))
		x.Mod(x, modulusBig)
	}

	return ECPInfinity()
}
