package bls12381

// ECP2 is a point on G2, the twisted curve y^2 = x^3 + 4(1+u) over Fp2, held
// in Jacobian projective coordinates. Mirrors ECP (g1.go) one field-level up
// the tower.
type ECP2 struct {
	x, y, z Fp2
}

var curveB2 = Fp2{a: FpOne().Imul(4), b: FpOne().Imul(4)}

func ECP2Infinity() ECP2 {
	return ECP2{x: Fp2One(), y: Fp2One(), z: Fp2Zero()}
}

func ECP2Generator() ECP2 {
	return ECP2{
		x: Fp2{a: curvePxa, b: curvePxb},
		y: Fp2{a: curvePya, b: curvePyb},
		z: Fp2One(),
	}
}

func NewECP2(x, y Fp2) ECP2 {
	return ECP2{x: x, y: y, z: Fp2One()}
}

// NewECP2Projective builds a point directly from projective coordinates, as
// produced by the isogeny map in hash2curve.go.
func NewECP2Projective(x, y, z Fp2) ECP2 {
	return ECP2{x: x, y: y, z: z}
}

func (p ECP2) IsInfinity() bool {
	return p.z.IsZero()
}

func (p ECP2) Affine() (Fp2, Fp2) {
	if p.IsInfinity() {
		return Fp2Zero(), Fp2Zero()
	}
	zInv := p.z.Inverse()
	zInv2 := zInv.Sqr()
	zInv3 := zInv2.Mul(zInv)
	return p.x.Mul(zInv2), p.y.Mul(zInv3)
}

func (p ECP2) Equals(q ECP2) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	pz2 := p.z.Sqr()
	qz2 := q.z.Sqr()
	if !p.x.Mul(qz2).Equals(q.x.Mul(pz2)) {
		return false
	}
	pz3 := pz2.Mul(p.z)
	qz3 := qz2.Mul(q.z)
	return p.y.Mul(qz3).Equals(q.y.Mul(pz3))
}

func (p ECP2) Neg() ECP2 {
	return ECP2{x: p.x, y: p.y.Neg(), z: p.z}
}

func (p ECP2) IsOnCurve() bool {
	if p.IsInfinity() {
		return true
	}
	x, y := p.Affine()
	lhs := y.Sqr()
	rhs := x.Sqr().Mul(x).Add(curveB2)
	return lhs.Equals(rhs)
}

func (p ECP2) InSubgroup() bool {
	return p.Mul(curveOrder).IsInfinity()
}

func (p ECP2) Dbl() ECP2 {
	if p.IsInfinity() || p.y.IsZero() {
		return ECP2Infinity()
	}
	a := p.x.Sqr()
	b := p.y.Sqr()
	c := b.Sqr()
	d := p.x.Add(b).Sqr().Sub(a).Sub(c)
	d = d.Add(d)
	e := a.Add(a).Add(a)
	f := e.Sqr()
	x3 := f.Sub(d.Add(d))
	y3 := e.Mul(d.Sub(x3)).Sub(c.Add(c).Add(c).Add(c).Add(c).Add(c).Add(c).Add(c))
	z3 := p.y.Mul(p.z)
	z3 = z3.Add(z3)
	return ECP2{x: x3, y: y3, z: z3}
}

func (p ECP2) Add(q ECP2) ECP2 {
	if p.IsInfinity() {
		return q
	}
	if q.IsInfinity() {
		return p
	}
	z1z1 := p.z.Sqr()
	z2z2 := q.z.Sqr()
	u1 := p.x.Mul(z2z2)
	u2 := q.x.Mul(z1z1)
	s1 := p.y.Mul(q.z).Mul(z2z2)
	s2 := q.y.Mul(p.z).Mul(z1z1)

	if u1.Equals(u2) {
		if !s1.Equals(s2) {
			return ECP2Infinity()
		}
		return p.Dbl()
	}

	h := u2.Sub(u1)
	i := h.Add(h).Sqr()
	j := h.Mul(i)
	r := s2.Sub(s1)
	r = r.Add(r)
	v := u1.Mul(i)
	x3 := r.Sqr().Sub(j).Sub(v.Add(v))
	y3 := r.Mul(v.Sub(x3)).Sub(s1.Mul(j).Add(s1.Mul(j)))
	z3 := p.z.Add(q.z).Sqr().Sub(z1z1).Sub(z2z2).Mul(h)
	return ECP2{x: x3, y: y3, z: z3}
}

func (p ECP2) Sub(q ECP2) ECP2 {
	return p.Add(q.Neg())
}

func (p ECP2) Mul(k bigInt) ECP2 {
	acc := ECP2Infinity()
	nb := k.nbits()
	for i := nb - 1; i >= 0; i-- {
		acc = acc.Dbl()
		withP := acc.Add(p)
		acc = ecp2Cmove(acc, withP, uint64(k.bit(i)))
	}
	return acc
}

func ecp2Cmove(a, b ECP2, flag uint64) ECP2 {
	return ECP2{
		x: fp2Cmove(a.x, b.x, flag),
		y: fp2Cmove(a.y, b.y, flag),
		z: fp2Cmove(a.z, b.z, flag),
	}
}

func fp2Cmove(a, b Fp2, flag uint64) Fp2 {
	return Fp2{
		a: Fp{x: a.a.x.cmove(b.a.x, flag), xes: max(a.a.xes, b.a.xes)},
		b: Fp{x: a.b.x.cmove(b.b.x, flag), xes: max(a.b.xes, b.b.xes)},
	}
}

// ClearCofactor projects an arbitrary point on the twist onto the
// prime-order G2 subgroup by scalar multiplication by the G2 cofactor.
func (p ECP2) ClearCofactor() ECP2 {
	return p.Mul(g2Cofactor)
}

// ToBytesCompressed serialises the affine point as 96 bytes: two 48-byte Fp
// components (imaginary part b then real part a, the convention fixed in
// DESIGN.md), with the infinity/sign bits carried in the first component's
// top byte exactly as in the G1 encoding.
func (p ECP2) ToBytesCompressed() []byte {
	out := make([]byte, 2*bigBytes)
	if p.IsInfinity() {
		out[0] = 0xc0
		return out
	}
	x, y := p.Affine()
	copy(out[:bigBytes], x.b.ToBytes())
	copy(out[bigBytes:], x.a.ToBytes())
	out[0] |= 0x80
	if y.IsNeg() {
		out[0] |= 0x20
	}
	return out
}

func ECP2FromBytesCompressed(b []byte) (ECP2, bool) {
	if len(b) != 2*bigBytes {
		return ECP2{}, false
	}
	if b[0]&0x80 == 0 {
		return ECP2{}, false
	}
	if b[0]&0xc0 == 0xc0 {
		return ECP2Infinity(), true
	}
	sign := b[0]&0x20 != 0
	buf := make([]byte, bigBytes)
	copy(buf, b[:bigBytes])
	buf[0] &^= 0xe0
	xb := FpFromBytes(buf)
	xa := FpFromBytes(b[bigBytes:])
	x := Fp2{a: xa, b: xb}
	rhs := x.Sqr().Mul(x).Add(curveB2)
	y, ok := rhs.Sqrt()
	if !ok {
		return ECP2{}, false
	}
	if y.IsNeg() != sign {
		y = y.Neg()
	}
	return NewECP2(x, y), true
}
