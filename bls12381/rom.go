package bls12381

import "math/big"

// ROM: process-wide constants for the BLS12-381 instantiation. Parsed once
// from the limb tables below (transcribed verbatim from the reference
// curve-parameter tables) via package-level initialisers and a one-shot
// init(); never reloaded or mutated afterwards.
//
//   MODBYTES=48  BASEBITS=29  MODBITS=381  MOD8=3  MODTYPE=NotSpecial
//   SH=14 (FEXCESS=2^14-1)  SEXTIC_TWIST=MType  ATE_BITS=65  SIGN_OF_X=Negative

const (
	fexcess = int32(1<<14 - 1)

	// ateBits is the ROM's ATE_BITS, one more than the 64-bit length of |x|,
	// the BLS parameter. MillerLoop takes the bit length from curveBnx.
	ateBits = 65
)

// limb tables, base 2^29, little-endian. Copied from the curve's ROM module.
var (
	modulusLimbs = []uint32{
		0x1FFFAAAB, 0xFF7FFFF, 0x14FFFFEE, 0x17FFFD62, 0xF6241EA, 0x9507B58, 0xAFD9CC3, 0x109E70A2,
		0x1764774B, 0x121A5D66, 0x12C6E9ED, 0x12FFCD34, 0x111EA3, 0xD,
	}
	r2modpLimbs = []uint32{
		0x15BEF7AE, 0x1031CD0E, 0x2DD93E8, 0x9226323, 0xE6E2CD2, 0x11684DAA, 0x1170E5DB, 0x88E25B1,
		0x1B366399, 0x1C536F47, 0xD1F9CBC, 0x278B67F, 0x1EA66A2B, 0xC,
	}
	fraLimbs = []uint32{
		0x12235FB8, 0x83BAF6C, 0x19E04F63, 0x1D4A7AC7, 0xB9C4F67, 0x1EBC25D, 0x1D3DEC91, 0x1FA797AB,
		0x1F0FD603, 0x1016068, 0x108C6FAD, 0x5760CCF, 0x104D3BF0, 0xC,
	}
	frbLimbs = []uint32{
		0xDDC4AF3, 0x7BC5093, 0x1B1FB08B, 0x1AB5829A, 0x3C5F282, 0x764B8FB, 0xDBFB032, 0x10F6D8F6,
		0x1854A147, 0x1118FCFD, 0x23A7A40, 0xD89C065, 0xFC3E2B3, 0x0,
	}
	curveOrderLimbs = []uint32{
		0x1, 0x1FFFFFF8, 0x1F96FFBF, 0x1B4805FF, 0x1D80553B, 0xC0404D0, 0x1520CCE7, 0xA6533AF,
		0x73EDA7, 0x0, 0x0, 0x0, 0x0, 0x0,
	}
	curveGxLimbs = []uint32{
		0x1B22C6BB, 0x19D78056, 0x1E86BBFE, 0xBD07FF2, 0x1AC586C5, 0x1D1F8B8D, 0x4168538, 0x9F2EE97,
		0xFC3688C, 0x27D4D60, 0x9A558E3, 0x32FAF28, 0x1F1D3A73, 0xB,
	}
	curveGyLimbs = []uint32{
		0x6C5E7E1, 0x551194A, 0x222B903, 0x198E8945, 0xB3EDD03, 0xC659602, 0xBD8036C, 0x12BABA01,
		0x4FCF5E0, 0xBA0EC57, 0x8278C3B, 0x75541E3, 0xB3F481E, 0x4,
	}
	curveBnxLimbs = []uint32{
		0x10000, 0x10080000, 0x34, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0,
	}
	curveCofLimbs = []uint32{
		0xAAAB, 0x55558, 0x157855A3, 0x191800AA, 0x396, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0,
	}
	curvePxaLimbs = []uint32{
		0x121BDB8, 0x402B646, 0x16EFBF5, 0x18064D50, 0x1D1770BA, 0x5B23D71, 0xC0AD144, 0x1A9F4807,
		0x11C6E47A, 0x196E2882, 0x9820149, 0x11E1522, 0x4AA2B2F, 0x1,
	}
	curvePxbLimbs = []uint32{
		0x1D042B7E, 0xD63E82A, 0x51755F9, 0x19E22427, 0x15049334, 0x10DDEE3F, 0x186AD769, 0x1A132416,
		0x5596BD0, 0x4413A7B, 0x1F6B34E8, 0x4E33EC0, 0x1E02B605, 0x9,
	}
	curvePyaLimbs = []uint32{
		0x8B82801, 0xC9AA430, 0xB28A278, 0x15939877, 0xD12C923, 0xD34A8B0, 0xE9DB50A, 0x155197BA,
		0x1AADFD9B, 0x16D171A8, 0x3327371, 0x4FADC23, 0xE5D5277, 0x6,
	}
	curvePybLimbs = []uint32{
		0x105F79BE, 0x15483AFF, 0x1B07686A, 0xE1A4EB9, 0x99AB3F3, 0x955AB97, 0xEBC99D2, 0xFD0B4EC,
		0x19CB3E28, 0x15E145C, 0xCAB34AC, 0x1D4E6998, 0x6C4A02, 0x3,
	}
)

// Derived, process-lifetime-immutable ROM values. mconst is the single-word
// Montgomery constant -p^-1 mod 2^29, used by the NotSpecial reduction path.
// modulus, modulusBig, r2modp and mconst are package-level initialisers, not
// init() assignments: Go sets every package-level variable (in dependency
// order) before any init() body runs, so nres/montReduce are usable from the
// var initialisers in g1.go/g2.go and from hash2curve.go's init().
var (
	modulus    = bigFromLimbs29(modulusLimbs)
	modulusBig = modulus.norm().toBigInt()
	r2modp     = bigFromLimbs29(r2modpLimbs)
	mconst     = montgomeryConst()

	fra, frb Fp // Frobenius twist constant FRA + FRB*u

	curveOrder    bigInt // r, the G1/G2 prime subgroup order
	curveOrderBig *big.Int
	curveGx       Fp
	curveGy       Fp
	curveBnx      bigInt // |x|, the BLS parameter magnitude
	xBig          *big.Int
	curveCof      bigInt // G1 cofactor

	curvePxa, curvePxb Fp // G2 generator x = curvePxb*u + curvePxa
	curvePya, curvePyb Fp // G2 generator y = curvePyb*u + curvePya

	hardExponent    bigInt
	hardExponentBig *big.Int
	g2Cofactor      bigInt
)

// montgomeryConst returns -modulus^-1 mod 2^29, derived via a one-shot
// big.Int inverse rather than hand transcription.
func montgomeryConst() uint64 {
	base := new(big.Int).Lsh(big.NewInt(1), baseBits)
	m0 := new(big.Int).Mod(modulusBig, base)
	inv := new(big.Int).ModInverse(m0, base)
	neg := new(big.Int).Sub(base, inv)
	return neg.Uint64() & bmask
}

func init() {
	fra = nres(bigFromLimbs29(fraLimbs))
	frb = nres(bigFromLimbs29(frbLimbs))

	curveOrder = bigFromLimbs29(curveOrderLimbs)
	curveGx = nres(bigFromLimbs29(curveGxLimbs))
	curveGy = nres(bigFromLimbs29(curveGyLimbs))
	curveBnx = bigFromLimbs29(curveBnxLimbs)
	curveCof = bigFromLimbs29(curveCofLimbs)

	curvePxa = nres(bigFromLimbs29(curvePxaLimbs))
	curvePxb = nres(bigFromLimbs29(curvePxbLimbs))
	curvePya = nres(bigFromLimbs29(curvePyaLimbs))
	curvePyb = nres(bigFromLimbs29(curvePybLimbs))

	curveOrderBig = curveOrder.norm().toBigInt()

	// Final-exponentiation hard-part exponent (p^4-p^2+1)/r, computed once
	// exactly from p and r rather than transcribed as a giant literal.
	p2 := new(big.Int).Mul(modulusBig, modulusBig)
	p4 := new(big.Int).Mul(p2, p2)
	num := new(big.Int).Sub(p4, p2)
	num.Add(num, big.NewInt(1))
	hardExponentBig = new(big.Int).Div(num, curveOrderBig)
	hardExponent = bigIntFromBigInt(hardExponentBig)

	// BLS parameter x (negative sign) and G2 cofactor h2 = (x^8-4x^7+5x^6
	// -4x^4+6x^3-4x^2-4x+13)/9, the standard closed-form for BLS12 curves,
	// evaluated exactly via big.Int rather than transcribed.
	xBig = new(big.Int).Neg(curveBnx.norm().toBigInt())
	x2 := new(big.Int).Mul(xBig, xBig)
	x3 := new(big.Int).Mul(x2, xBig)
	x4 := new(big.Int).Mul(x3, xBig)
	x6 := new(big.Int).Mul(x4, x2)
	x7 := new(big.Int).Mul(x6, xBig)
	x8 := new(big.Int).Mul(x7, xBig)
	h2 := new(big.Int).Set(x8)
	h2.Sub(h2, new(big.Int).Mul(big.NewInt(4), x7))
	h2.Add(h2, new(big.Int).Mul(big.NewInt(5), x6))
	h2.Sub(h2, new(big.Int).Mul(big.NewInt(4), x4))
	h2.Add(h2, new(big.Int).Mul(big.NewInt(6), x3))
	h2.Sub(h2, new(big.Int).Mul(big.NewInt(4), x2))
	h2.Sub(h2, new(big.Int).Mul(big.NewInt(4), xBig))
	h2.Add(h2, big.NewInt(13))
	h2.Div(h2, big.NewInt(9))
	g2Cofactor = bigIntFromBigInt(h2)
}

// toBigInt converts a normalised bigInt to math/big for one-shot ROM
// bootstrap computations (inverse mod 2^29, etc). Never used on the hot
// path.
func (a bigInt) toBigInt() *big.Int {
	r := new(big.Int)
	for i := nlen - 1; i >= 0; i-- {
		r.Lsh(r, baseBits)
		r.Or(r, new(big.Int).SetUint64(a.w[i]))
	}
	return r
}

func bigIntFromBigInt(v *big.Int) bigInt {
	var b bigInt
	tmp := new(big.Int).Set(v)
	base := big.NewInt(1 << baseBits)
	for i := 0; i < nlen; i++ {
		word := new(big.Int).Mod(tmp, base)
		b.w[i] = word.Uint64()
		tmp.Rsh(tmp, baseBits)
	}
	return b
}
