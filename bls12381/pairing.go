package bls12381

// Optimal ate pairing e: G2 x G1 -> GT over the Fp4/Fp12 tower (fp4.go,
// fp12.go). The Miller loop walks the bits of |x|, the BLS parameter,
// accumulating sparse line-function values into an Fp12 accumulator; final
// exponentiation (fp12.go) projects the result into GT.
//
// curveB2 = 4(1+u) = b*xi (rom.go, g2.go) makes G2 the M-type sextic twist
// of E: y^2=x^3+b, not a bare copy of it: points on the twist live in
// E'(Fp2), and the untwist isomorphism into E(Fp12) is
// psi(x,y) = (x*w^-2, y*w^-3), using w^6=v^2=xi (fp12.go's cubic-over-
// quartic tower). A line value computed at T'=(rx,ry) on the twist and
// evaluated at P=(px,py) on E pulls back through psi to
//
//	l(P) = py*w^0 + (lambda*rx-ry)*xi^-1*w^3 - lambda*px*xi^-1*w^5
//
// so only the w^0, w^3 and w^5 graded pieces are nonzero: in Fp12's
// {a,b,c Fp4} layout (w-powers 0,3,1,4,2,5 for a.x,a.y,b.x,b.y,c.x,c.y) that
// is a.x, a.y and c.y. lineDouble/lineAdd already compute the bare
// ell0=lambda*rx-ry, ell1=-lambda*px, ell2=py; lineValue below applies the
// xi^-1 twist scaling (Fp2.DivIP) and places them at their graded slots.

func lineValue(ell0, ell1, ell2 Fp2) Fp12 {
	return Fp12{
		a: Fp4{a: ell2, b: ell0.DivIP()},
		b: Fp4Zero(),
		c: Fp4{a: Fp2Zero(), b: ell1.DivIP()},
	}
}

// lineDouble computes the tangent-line value at T (doubling step) evaluated
// at P=(px,py), and returns the doubled point.
func lineDouble(t ECP2, px, py Fp) (Fp12, ECP2) {
	if t.IsInfinity() {
		return Fp12One(), ECP2Infinity()
	}
	rx, ry := t.Affine()
	if ry.IsZero() {
		return Fp12One(), ECP2Infinity()
	}
	rxSq := rx.Sqr()
	num := rxSq.Add(rxSq).Add(rxSq)
	den := ry.Add(ry)
	lambda := num.Mul(den.Inverse())

	ell0 := lambda.Mul(rx).Sub(ry)
	ell1 := lambda.Neg().Mul(Fp2{a: px, b: FpZero()})
	ell2 := Fp2{a: py, b: FpZero()}

	return lineValue(ell0, ell1, ell2), t.Dbl()
}

// lineAdd computes the chord-line value for adding Q (fixed, affine) onto
// T, evaluated at P, and returns the new accumulator point T+Q.
func lineAdd(t ECP2, qx, qy Fp2, px, py Fp) (Fp12, ECP2) {
	if t.IsInfinity() {
		return Fp12One(), NewECP2(qx, qy)
	}
	rx, ry := t.Affine()
	if rx.Equals(qx) && ry.Equals(qy) {
		return lineDouble(t, px, py)
	}

	num := qy.Sub(ry)
	den := qx.Sub(rx)
	if den.IsZero() {
		return Fp12One(), ECP2Infinity()
	}
	lambda := num.Mul(den.Inverse())

	ell0 := lambda.Mul(rx).Sub(ry)
	ell1 := lambda.Neg().Mul(Fp2{a: px, b: FpZero()})
	ell2 := Fp2{a: py, b: FpZero()}

	return lineValue(ell0, ell1, ell2), t.Add(NewECP2(qx, qy))
}

// MillerLoop runs the Miller loop for a single (P,Q) pair, returning the
// raw (pre-final-exponentiation) Fp12 accumulator.
func MillerLoop(p ECP, q ECP2) Fp12 {
	if p.IsInfinity() || q.IsInfinity() {
		return Fp12One()
	}
	px, py := p.Affine()
	qx, qy := q.Affine()

	f := Fp12One()
	t := NewECP2(qx, qy)

	nb := curveBnx.nbits()
	for i := nb - 2; i >= 0; i-- {
		var lv Fp12
		lv, t = lineDouble(t, px, py)
		f = f.Sqr().Mul(lv)
		if curveBnx.bit(i) == 1 {
			lv, t = lineAdd(t, qx, qy, px, py)
			f = f.Mul(lv)
		}
	}

	// SIGN_OF_X = Negative: invert f. The inverse differs from the conjugate
	// by a factor in Fp6, which the final exponentiation maps to 1.
	return f.Inverse()
}

// Pairing computes e(P,Q) fully, including final exponentiation.
func Pairing(p ECP, q ECP2) Fp12 {
	return FinalExponentiation(MillerLoop(p, q))
}

// pairPQ holds one (G1,G2) pair queued in a multi-pairing accumulator.
type pairPQ struct {
	p ECP
	q ECP2
}

// MultiPairAccumulator defers final exponentiation across several pairings,
// matching the spec's initmp/another/miller/fexp split: Another appends a
// pair, Miller collapses the Miller-loop product, Fexp finishes it off.
type MultiPairAccumulator struct {
	pairs []pairPQ
}

func InitMP() *MultiPairAccumulator {
	return &MultiPairAccumulator{}
}

func (m *MultiPairAccumulator) Another(q ECP2, p ECP) {
	m.pairs = append(m.pairs, pairPQ{p: p, q: q})
}

func (m *MultiPairAccumulator) Miller() Fp12 {
	f := Fp12One()
	for _, pq := range m.pairs {
		if pq.p.IsInfinity() || pq.q.IsInfinity() {
			continue
		}
		f = f.Mul(MillerLoop(pq.p, pq.q))
	}
	return f
}

func Fexp(f Fp12) Fp12 {
	return FinalExponentiation(f)
}

// MultiPairing reports whether the product of e(P_i,Q_i) is the GT identity.
func MultiPairing(ps []ECP, qs []ECP2) bool {
	acc := InitMP()
	for i := range ps {
		acc.Another(qs[i], ps[i])
	}
	return Fexp(acc.Miller()).IsOne()
}
