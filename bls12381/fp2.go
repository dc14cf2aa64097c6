package bls12381

// Fp2 is the quadratic extension Fp[u]/(u^2+1): elements a+b*u with a,b in
// Fp. Multiplication uses the Karatsuba trick (one cross-term multiply
// instead of two) to halve the Fp multiplies per Fp2 multiply.
type Fp2 struct {
	a, b Fp
}

func Fp2Zero() Fp2 {
	return Fp2{a: FpZero(), b: FpZero()}
}

func Fp2One() Fp2 {
	return Fp2{a: FpOne(), b: FpZero()}
}

func Fp2FromInts(a, b int) Fp2 {
	return Fp2{a: FpOne().Imul(a), b: FpOne().Imul(b)}
}

func (z Fp2) Add(w Fp2) Fp2 {
	return Fp2{a: z.a.Add(w.a), b: z.b.Add(w.b)}
}

func (z Fp2) Sub(w Fp2) Fp2 {
	return Fp2{a: z.a.Sub(w.a), b: z.b.Sub(w.b)}
}

func (z Fp2) Neg() Fp2 {
	return Fp2{a: z.a.Neg(), b: z.b.Neg()}
}

// Conj returns the conjugate a-b*u.
func (z Fp2) Conj() Fp2 {
	return Fp2{a: z.a, b: z.b.Neg()}
}

// Mul computes (a+bu)(c+du) = (ac-bd) + (ad+bc)u via Karatsuba: t0=ac,
// t1=bd, t2=(a+b)(c+d), cross term = t2-t0-t1.
func (z Fp2) Mul(w Fp2) Fp2 {
	t0 := z.a.Mul(w.a)
	t1 := z.b.Mul(w.b)
	t2 := z.a.Add(z.b).Mul(w.a.Add(w.b))
	return Fp2{
		a: t0.Sub(t1),
		b: t2.Sub(t0).Sub(t1),
	}
}

// Sqr computes (a+bu)^2 = (a+b)(a-b) + 2ab*u.
func (z Fp2) Sqr() Fp2 {
	t0 := z.a.Add(z.b)
	t1 := z.a.Sub(z.b)
	t2 := z.a.Add(z.a)
	return Fp2{a: t0.Mul(t1), b: t2.Mul(z.b)}
}

// MulIP multiplies by 1+u, the non-residue defining the Fp4 extension.
func (z Fp2) MulIP() Fp2 {
	return z.Mul(Fp2{a: FpOne(), b: FpOne()})
}

// DivIP divides by 1+u (the inverse of MulIP).
func (z Fp2) DivIP() Fp2 {
	return z.Mul(Fp2{a: FpOne(), b: FpOne()}.Inverse())
}

// TimesI multiplies by u.
func (z Fp2) TimesI() Fp2 {
	return Fp2{a: z.b.Neg(), b: z.a}
}

// Inverse computes (a+bu)^-1 = (a-bu)/(a^2+b^2).
func (z Fp2) Inverse() Fp2 {
	norm := z.a.Sqr().Add(z.b.Sqr())
	inv := norm.Inverse()
	return Fp2{a: z.a.Mul(inv), b: z.b.Neg().Mul(inv)}
}

func (z Fp2) IsZero() bool {
	return z.a.IsZero() && z.b.IsZero()
}

func (z Fp2) Equals(w Fp2) bool {
	return z.a.Equals(w.a) && z.b.Equals(w.b)
}

// Sqrt computes a square root in Fp2 via the norm: find sqrt(a^2+b^2) in Fp,
// then solve for the real/imaginary parts directly.
func (z Fp2) Sqrt() (Fp2, bool) {
	if z.IsZero() {
		return Fp2Zero(), true
	}
	norm := z.a.Sqr().Add(z.b.Sqr())
	normSqrt, ok := norm.Sqrt()
	if !ok {
		return Fp2{}, false
	}
	two := FpOne().Dbl()
	t := z.a.Add(normSqrt)
	t2, ok2 := t.Mul(two.Inverse()).Sqrt()
	if !ok2 {
		t = z.a.Sub(normSqrt)
		t2, ok2 = t.Mul(two.Inverse()).Sqrt()
		if !ok2 {
			return Fp2{}, false
		}
	}
	y := z.b.Mul(t2.Dbl().Inverse())
	cand := Fp2{a: t2, b: y}
	if !cand.Sqr().Equals(z) {
		cand = cand.Neg()
		if !cand.Sqr().Equals(z) {
			return Fp2{}, false
		}
	}
	return cand, true
}

// IsNeg applies the lexicographic sign convention to Fp2: negative when the
// imaginary part is negative, or it is zero and the real part is negative.
func (z Fp2) IsNeg() bool {
	if z.b.IsZero() {
		return z.a.IsNeg()
	}
	return z.b.IsNeg()
}

func (z Fp2) ToBytes() []byte {
	out := make([]byte, 2*bigBytes)
	copy(out[:bigBytes], z.a.ToBytes())
	copy(out[bigBytes:], z.b.ToBytes())
	return out
}

func Fp2FromBytes(buf []byte) Fp2 {
	return Fp2{a: FpFromBytes(buf[:bigBytes]), b: FpFromBytes(buf[bigBytes:])}
}

// fp2Pow is public-exponent square-and-multiply over Fp2, mirroring fp12Pow.
func fp2Pow(z Fp2, e bigInt) Fp2 {
	nb := e.nbits()
	r := Fp2One()
	for i := nb - 1; i >= 0; i-- {
		r = r.Sqr()
		if e.bit(i) == 1 {
			r = r.Mul(z)
		}
	}
	return r
}
