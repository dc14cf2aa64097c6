package bls12381

// Fp12 is the degree-12 extension Fp4[w]/(w^3-v), the pairing target field.
// Elements are a+b*w+c*w^2 with a,b,c in Fp4; v is Fp4's own generator
// (Fp4{0,1}), reused here as the cubic non-residue for this level exactly as
// the tower definition names it.
type Fp12 struct {
	a, b, c Fp4
}

func Fp12One() Fp12 {
	return Fp12{a: Fp4One(), b: Fp4Zero(), c: Fp4Zero()}
}

func (z Fp12) Add(w Fp12) Fp12 {
	return Fp12{a: z.a.Add(w.a), b: z.b.Add(w.b), c: z.c.Add(w.c)}
}

func (z Fp12) Neg() Fp12 {
	return Fp12{a: z.a.Neg(), b: z.b.Neg(), c: z.c.Neg()}
}

// Mul computes the cubic-extension product via the standard
// three-term-Karatsuba ("Toom-3") formula over the non-residue xi = v:
//
//	c0 = a0b0 + xi*((a1+a2)(b1+b2) - a1b1 - a2b2)
//	c1 = (a0+a1)(b0+b1) - a0b0 - a1b1 + xi*a2b2
//	c2 = (a0+a2)(b0+b2) - a0b0 - a2b2 + a1b1
func (z Fp12) Mul(w Fp12) Fp12 {
	v0 := z.a.Mul(w.a)
	v1 := z.b.Mul(w.b)
	v2 := z.c.Mul(w.c)

	t0 := z.b.Add(z.c).Mul(w.b.Add(w.c)).Sub(v1).Sub(v2)
	c0 := v0.Add(t0.MulV())

	t1 := z.a.Add(z.b).Mul(w.a.Add(w.b)).Sub(v0).Sub(v1)
	c1 := t1.Add(v2.MulV())

	t2 := z.a.Add(z.c).Mul(w.a.Add(w.c)).Sub(v0).Sub(v2)
	c2 := t2.Add(v1)

	return Fp12{a: c0, b: c1, c: c2}
}

func (z Fp12) Sqr() Fp12 {
	return z.Mul(z)
}

func (z Fp12) Inverse() Fp12 {
	// Schoolbook cubic-extension inverse via the norm map down to Fp4:
	// compute N = a^3 + xi*b^3 + xi^2*c^3 - 3*xi*a*b*c (the resultant of the
	// minimal polynomial), then solve using the adjugate of the
	// multiplication-by-z matrix over {1,w,w^2}.
	a, b, c := z.a, z.b, z.c
	a2 := a.Sqr()
	b2 := b.Sqr()
	c2 := c.Sqr()

	t0 := a2.Sub(b.Mul(c).MulV())   // cofactor of a (row 0)
	t1 := c2.MulV().Sub(a.Mul(b))   // cofactor of b
	t2 := b2.Sub(a.Mul(c))          // cofactor of c

	norm := a.Mul(t0).Add(c.Mul(t1).MulV()).Add(b.Mul(t2).MulV())
	normInv := norm.Inverse()

	return Fp12{
		a: t0.Mul(normInv),
		b: t1.Mul(normInv),
		c: t2.Mul(normInv),
	}
}

func (z Fp12) Equals(w Fp12) bool {
	return z.a.Equals(w.a) && z.b.Equals(w.b) && z.c.Equals(w.c)
}

func (z Fp12) IsOne() bool {
	return z.a.Equals(Fp4One()) && z.b.IsZero() && z.c.IsZero()
}

// Frob computes the Frobenius endomorphism z^p by direct modular
// exponentiation. Frobenius(x) = x^p holds in any field of characteristic
// p, so this is correct by construction; it trades the micro-optimised
// twisted-Frobenius-constant formulation (precomputed gamma powers) for a
// formula with no transcription surface.
func (z Fp12) Frob() Fp12 {
	return fp12Pow(z, modulus)
}

// fp12Pow is public-exponent square-and-multiply; e's bit pattern (a ROM
// constant or the public BLS parameter) is not secret, so this need not run
// in constant time.
func fp12Pow(f Fp12, e bigInt) Fp12 {
	nb := e.nbits()
	r := Fp12One()
	for i := nb - 1; i >= 0; i-- {
		r = r.Sqr()
		if e.bit(i) == 1 {
			r = r.Mul(f)
		}
	}
	return r
}

// finalExpEasy computes f^((p^6-1)(p^2+1)), landing in the order
// (p^4-p^2+1) cyclotomic subgroup.
func finalExpEasy(f Fp12) Fp12 {
	p6 := f
	for i := 0; i < 6; i++ {
		p6 = p6.Frob()
	}
	f1 := p6.Mul(f.Inverse())
	f2 := f1.Frob().Frob().Mul(f1)
	return f2
}

// finalExpHard raises a cyclotomic-subgroup element to the exact hard-part
// exponent (p^4-p^2+1)/r, computed once via big.Int at init (hardExponentBig
// in rom.go). This stands in for the Granger-Scott addition chain driven by
// the BLS parameter x: same result, no hand-derived chain to get wrong. The
// exponent has 1268 bits, wider than a bigInt, so the square-and-multiply
// runs over the math/big value.
func finalExpHard(f Fp12) Fp12 {
	r := Fp12One()
	for i := hardExponentBig.BitLen() - 1; i >= 0; i-- {
		r = r.Sqr()
		if hardExponentBig.Bit(i) == 1 {
			r = r.Mul(f)
		}
	}
	return r
}

// FinalExponentiation raises a Miller-loop output to (p^12-1)/r.
func FinalExponentiation(f Fp12) Fp12 {
	return finalExpHard(finalExpEasy(f))
}
