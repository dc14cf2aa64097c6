package bls12381

// Fp4 is the quartic extension Fp2[v]/(v^2-(1+u)): elements a+b*v with
// a,b in Fp2. The non-residue 1+u is exactly Fp2.MulIP's target, so Fp4
// multiplication reuses it for the cross term the same way Fp2 reuses Fp's
// Karatsuba trick. Mirrors fp2.go one level up the tower.
type Fp4 struct {
	a, b Fp2
}

func Fp4Zero() Fp4 {
	return Fp4{a: Fp2Zero(), b: Fp2Zero()}
}

func Fp4One() Fp4 {
	return Fp4{a: Fp2One(), b: Fp2Zero()}
}

func (z Fp4) Add(w Fp4) Fp4 {
	return Fp4{a: z.a.Add(w.a), b: z.b.Add(w.b)}
}

func (z Fp4) Sub(w Fp4) Fp4 {
	return Fp4{a: z.a.Sub(w.a), b: z.b.Sub(w.b)}
}

func (z Fp4) Neg() Fp4 {
	return Fp4{a: z.a.Neg(), b: z.b.Neg()}
}

func (z Fp4) Conj() Fp4 {
	return Fp4{a: z.a, b: z.b.Neg()}
}

// Mul computes (a+bv)(c+dv) = (ac + bd(1+u)) + (ad+bc)v via Karatsuba.
func (z Fp4) Mul(w Fp4) Fp4 {
	t0 := z.a.Mul(w.a)
	t1 := z.b.Mul(w.b)
	t2 := z.a.Add(z.b).Mul(w.a.Add(w.b))
	return Fp4{
		a: t0.Add(t1.MulIP()),
		b: t2.Sub(t0).Sub(t1),
	}
}

func (z Fp4) Sqr() Fp4 {
	t0 := z.a.Add(z.b)
	t1 := z.b.MulIP()
	t2 := z.a.Add(t1)
	t3 := z.a.Mul(z.b)
	return Fp4{
		a: t0.Mul(t2).Sub(t3).Sub(t3.MulIP()),
		b: t3.Add(t3),
	}
}

// MulV multiplies by v, the non-residue defining the Fp12 extension.
func (z Fp4) MulV() Fp4 {
	return Fp4{a: z.b.MulIP(), b: z.a}
}

func (z Fp4) Inverse() Fp4 {
	norm := z.a.Sqr().Sub(z.b.Sqr().MulIP())
	inv := norm.Inverse()
	return Fp4{a: z.a.Mul(inv), b: z.b.Neg().Mul(inv)}
}

func (z Fp4) IsZero() bool {
	return z.a.IsZero() && z.b.IsZero()
}

func (z Fp4) Equals(w Fp4) bool {
	return z.a.Equals(w.a) && z.b.Equals(w.b)
}
