package bls12381

import (
	"encoding/hex"
	"math/big"
	"sync"
)

// Hash-to-curve for G2: an optimised Shallue-van de Woestijne-Ulas map onto
// the 3-isogenous curve E': y^2 = x^3 + ISO3_A2*x + ISO3_B2 over Fp2,
// followed by evaluating the published 3-isogeny (XNUM/XDEN/YNUM/YDEN) to
// land on the BLS12-381 twist, then cofactor clearing (g2.go) to project
// into the prime-order G2 subgroup. The isogeny coefficients and the 3-isogeny
// curve parameters below are the standard published constants for this curve.

var (
	iso3A2 Fp2
	iso3B2 Fp2
	iso3E2 Fp2

	sqrtI, ev1, ev2, ev3, ev4 Fp

	xnum, xden, ynum, yden [4]Fp2

	hash2curveOnce  sync.Once
	sqrtChainExpVal *big.Int
)

func mustHexFp(s string) Fp {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("bls12381: bad hex constant: " + err.Error())
	}
	v := new(big.Int).SetBytes(b)
	return nres(bigIntFromBigInt(v))
}

func init() {
	iso3A2 = Fp2FromInts(0, 240)
	iso3B2 = Fp2FromInts(1012, 1012)
	iso3E2 = Fp2FromInts(-2, -1)

	sqrtI = mustHexFp("06af0e0437ff400b6831e36d6bd17ffe48395dabc2d3435e77f76e17009241c5ee67992f72ec05f4c81084fbede3cc09")
	ev1 = mustHexFp("0699be3b8c6870965e5bf892ad5d2cc7b0e85a117402dfd83b7f4a947e02d978498255a2aaec0ac627b5afbdf1bf1c90")
	ev2 = mustHexFp("08157cd83046453f5dd0972b6e3949e4288020b5b8a9cc99ca07e27089a2ce2436d965026adad3ef7baba37f2183e9b5")
	ev3 = mustHexFp("0ab1c2ffdd6c253ca155231eb3e71ba044fd562f6f72bc5bad5ec46a0b7a3b0247cf08ce6c6317f40edbc653a72dee17")
	ev4 = mustHexFp("0aa404866706722864480885d68ad0ccac1967c7544b447873cc37e0181271e006df72162a3d3e0287bf597fbf7f8fc1")

	xnum = [4]Fp2{
		{a: mustHexFp("05c759507e8e333ebb5b7a9a47d7ed8532c52d39fd3a042a88b58423c50ae15d5c2638e343d9c71c6238aaaaaaaa97d6"),
			b: mustHexFp("05c759507e8e333ebb5b7a9a47d7ed8532c52d39fd3a042a88b58423c50ae15d5c2638e343d9c71c6238aaaaaaaa97d6")},
		{a: FpZero(),
			b: mustHexFp("11560bf17baa99bc32126fced787c88f984f87adf7ae0c7f9a208c6b4f20a4181472aaa9cb8d555526a9ffffffffc71a")},
		{a: mustHexFp("11560bf17baa99bc32126fced787c88f984f87adf7ae0c7f9a208c6b4f20a4181472aaa9cb8d555526a9ffffffffc71e"),
			b: mustHexFp("08ab05f8bdd54cde190937e76bc3e447cc27c3d6fbd7063fcd104635a790520c0a395554e5c6aaaa9354ffffffffe38d")},
		{a: mustHexFp("171d6541fa38ccfaed6dea691f5fb614cb14b4e7f4e810aa22d6108f142b85757098e38d0f671c7188e2aaaaaaaa5ed1"),
			b: FpZero()},
	}
	xden = [4]Fp2{
		{a: FpZero(),
			b: mustHexFp("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaa63")},
		{a: FpOne().Imul(12),
			b: mustHexFp("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaa9f")},
		Fp2One(),
		Fp2Zero(),
	}
	ynum = [4]Fp2{
		{a: mustHexFp("1530477c7ab4113b59a4c18b076d11930f7da5d4a07f649bf54439d87d27e500fc8c25ebf8c92f6812cfc71c71c6d706"),
			b: mustHexFp("1530477c7ab4113b59a4c18b076d11930f7da5d4a07f649bf54439d87d27e500fc8c25ebf8c92f6812cfc71c71c6d706")},
		{a: FpZero(),
			b: mustHexFp("05c759507e8e333ebb5b7a9a47d7ed8532c52d39fd3a042a88b58423c50ae15d5c2638e343d9c71c6238aaaaaaaa97be")},
		{a: mustHexFp("11560bf17baa99bc32126fced787c88f984f87adf7ae0c7f9a208c6b4f20a4181472aaa9cb8d555526a9ffffffffc71c"),
			b: mustHexFp("08ab05f8bdd54cde190937e76bc3e447cc27c3d6fbd7063fcd104635a790520c0a395554e5c6aaaa9354ffffffffe38f")},
		{a: mustHexFp("124c9ad43b6cf79bfbf7043de3811ad0761b0f37a1e26286b0e977c69aa274524e79097a56dc4bd9e1b371c71c718b10"),
			b: FpZero()},
	}
	yden = [4]Fp2{
		{a: mustHexFp("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffa8fb"),
			b: mustHexFp("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffa8fb")},
		{a: FpZero(),
			b: mustHexFp("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffa9d3")},
		{a: FpOne().Imul(18),
			b: mustHexFp("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaa99")},
		Fp2FromInts(1, 0),
	}
}

// sqrtChainExp is (p^2-9)/16, with p^2 the order of Fp2, computed lazily
// (first real use, well after all package init() has run) to avoid depending
// on cross-file init ordering for modulusBig. It has about 758 bits, wider
// than a bigInt, so it is kept as a math/big value.
func sqrtChainExp() *big.Int {
	hash2curveOnce.Do(func() {
		num := new(big.Int).Mul(modulusBig, modulusBig)
		num.Sub(num, big.NewInt(9))
		num.Div(num, big.NewInt(16))
		sqrtChainExpVal = num
	})
	return sqrtChainExpVal
}

// sqrtDivisionChain computes x^((p^2-9)/16) by square-and-multiply, the
// exponentiation chain at the core of sqrtDivisionFp2's candidate square root.
func sqrtDivisionChain(x Fp2) Fp2 {
	e := sqrtChainExp()
	r := Fp2One()
	for i := e.BitLen() - 1; i >= 0; i-- {
		r = r.Sqr()
		if e.Bit(i) == 1 {
			r = r.Mul(x)
		}
	}
	return r
}

func rootsOfUnity() [4]Fp2 {
	return [4]Fp2{
		Fp2FromInts(1, 0),
		Fp2FromInts(0, 1),
		{a: sqrtI, b: sqrtI},
		{a: sqrtI, b: sqrtI.Neg()},
	}
}

func etas() [4]Fp2 {
	return [4]Fp2{
		{a: ev1, b: ev2},
		{a: ev2.Neg(), b: ev1},
		{a: ev3, b: ev4},
		{a: ev4.Neg(), b: ev3},
	}
}

// sqrtDivisionFp2 computes sqrt(u/v) in Fp2, returning the candidate and
// whether it is genuinely a square root (i.e. sqrt_candidate^2 * v == u).
func sqrtDivisionFp2(u, v Fp2) (Fp2, bool) {
	v2 := v.Sqr()
	v3 := v2.Mul(v)
	v4 := v2.Sqr()
	v7 := v4.Mul(v3)
	v8 := v4.Sqr()
	v15 := v8.Mul(v7)
	uv15 := v15.Mul(u)
	uv7 := v7.Mul(u)

	candidate := sqrtDivisionChain(uv15).Mul(uv7)

	roots := rootsOfUnity()
	for _, root := range roots {
		r := root.Mul(candidate)
		check := r.Sqr().Mul(v).Sub(u)
		if check.IsZero() {
			return r, true
		}
	}
	return candidate, false
}

// iso3Point is a point on the 3-isogenous curve E', held projectively as
// (X*Z, Y*Z, Z) per the optimised SWU adaptation.
type iso3Point struct {
	x, y, z Fp2
}

// swuOptimised maps a field element t onto E' via the optimised
// Shallue-van de Woestijne-Ulas method.
func swuOptimised(t Fp2) iso3Point {
	isNegT := t.IsNeg()
	t2 := t.Sqr()
	et2 := t2.Mul(iso3E2)
	common := et2.Sqr().Add(et2)

	xNumerator := common.Add(Fp2FromInts(1, 0)).Mul(iso3B2)

	var xDenominator Fp2
	if common.IsZero() {
		xDenominator = iso3E2.Mul(iso3A2)
	} else {
		xDenominator = common.Mul(iso3A2).Neg()
	}

	u := xNumerator.Sqr().Mul(xNumerator)
	tmp1 := xDenominator.Sqr()
	tmp2 := xNumerator.Mul(tmp1).Mul(iso3A2)
	u = u.Add(tmp2)

	tmp1 = tmp1.Mul(xDenominator)
	v := tmp1
	tmp1 = tmp1.Mul(iso3B2)
	u = u.Add(tmp1)

	sqrtCandidate, success := sqrtDivisionFp2(u, v)
	y := sqrtCandidate

	sqrtCandidate2 := sqrtCandidate.Mul(t2).Mul(t)
	u2 := u.Mul(et2).Mul(et2).Mul(et2)

	success2 := false
	for i, eta := range etas() {
		cand := eta.Mul(sqrtCandidate2)
		check := cand.Sqr().Mul(v).Sub(u2)
		if check.IsZero() && !success && !success2 {
			y = cand
			success2 = true
		} else if i == 3 && !success && !success2 {
			panic("bls12381: hash-to-curve SWU map found no square root")
		}
	}

	if !success {
		xNumerator = xNumerator.Mul(et2)
	}

	if isNegT != y.IsNeg() {
		y = y.Neg()
	}

	y = y.Mul(xDenominator)

	return iso3Point{x: xNumerator, y: y, z: xDenominator}
}

// zPowers returns z, z^2, z^3.
func zPowers(z Fp2) [3]Fp2 {
	z2 := z.Sqr()
	z3 := z2.Mul(z)
	return [3]Fp2{z, z2, z3}
}

// hornerEval evaluates a 4-coefficient polynomial (lowest degree first, as
// XNUM/XDEN/YNUM/YDEN are ordered: coeffs[i] multiplies x^i) at x using the
// projective z-powers to keep every term homogeneous of degree 3.
func hornerEval(coeffs [4]Fp2, x Fp2, z [3]Fp2) Fp2 {
	acc := coeffs[3]
	for zIndex := 0; zIndex < 3; zIndex++ {
		k := coeffs[2-zIndex]
		acc = acc.Mul(x).Add(k.Mul(z[zIndex]))
	}
	return acc
}

// iso3ToECP2 evaluates the 3-isogeny mapping E' -> the BLS12-381 twist.
func iso3ToECP2(p iso3Point) ECP2 {
	zv := zPowers(p.z)

	xNum := hornerEval(xnum, p.x, zv)
	xDen := hornerEval(xden, p.x, zv)
	yNum := hornerEval(ynum, p.x, zv)
	yDen := hornerEval(yden, p.x, zv)

	yNum = yNum.Mul(p.y)
	yDen = yDen.Mul(p.z)

	// Affine x = xNum/xDen, y = yNum/yDen; with Z = xDen*yDen the Jacobian
	// coordinates are X = x*Z^2 and Y = y*Z^3.
	zG2 := xDen.Mul(yDen)
	xG2 := xNum.Mul(yDen).Mul(zG2)
	yG2 := yNum.Mul(xDen).Mul(zG2.Sqr())

	return NewECP2Projective(xG2, yG2, zG2)
}

// HashToG2 maps a field element to a point in the prime-order G2 subgroup:
// SWU onto E', the 3-isogeny to the twist, then cofactor clearing.
func HashToG2(t Fp2) ECP2 {
	iso := swuOptimised(t)
	p := iso3ToECP2(iso)
	return p.ClearCofactor()
}
