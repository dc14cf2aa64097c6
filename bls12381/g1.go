package bls12381

// ECP is a point on G1, the BLS12-381 curve y^2 = x^3 + 4 over Fp, held in
// Jacobian projective coordinates (X, Y, Z) with affine (X/Z^2, Y/Z^3).
// The point at infinity is encoded by Z=0.
type ECP struct {
	x, y, z Fp
}

var curveBFp = FpOne().Imul(4)

func ECPInfinity() ECP {
	return ECP{x: FpOne(), y: FpOne(), z: FpZero()}
}

func ECPGenerator() ECP {
	return ECP{x: curveGx, y: curveGy, z: FpOne()}
}

// NewECP builds an affine point (x,y); the caller is responsible for
// checking it lies on the curve and in the prime-order subgroup if that
// matters for the call site.
func NewECP(x, y Fp) ECP {
	return ECP{x: x, y: y, z: FpOne()}
}

func (p ECP) IsInfinity() bool {
	return p.z.IsZero()
}

func (p ECP) Affine() (Fp, Fp) {
	if p.IsInfinity() {
		return FpZero(), FpZero()
	}
	zInv := p.z.Inverse()
	zInv2 := zInv.Sqr()
	zInv3 := zInv2.Mul(zInv)
	return p.x.Mul(zInv2), p.y.Mul(zInv3)
}

// Equals compares without inversion: x1*z2^2 = x2*z1^2 and y1*z2^3 = y2*z1^3.
func (p ECP) Equals(q ECP) bool {
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

func (p ECP) Neg() ECP {
	return ECP{x: p.x, y: p.y.Neg(), z: p.z}
}

// IsOnCurve checks y^2 = x^3 + b on the affine coordinates; converting to
// affine costs one field inversion.
func (p ECP) IsOnCurve() bool {
	if p.IsInfinity() {
		return true
	}
	x, y := p.Affine()
	lhs := y.Sqr()
	rhs := x.Sqr().Mul(x).Add(curveBFp)
	return lhs.Equals(rhs)
}

// InSubgroup checks membership in the order-r prime subgroup by scalar
// multiplication: [r]P == infinity.
func (p ECP) InSubgroup() bool {
	return p.Mul(curveOrder).IsInfinity()
}

// Dbl doubles a Jacobian point using the standard b=curve-constant-free
// "dbl-2009-l" style formula (a=0 short Weierstrass).
func (p ECP) Dbl() ECP {
	if p.IsInfinity() || p.y.IsZero() {
		return ECPInfinity()
	}
	a := p.x.Sqr()
	b := p.y.Sqr()
	c := b.Sqr()
	d := p.x.Add(b).Sqr().Sub(a).Sub(c).Dbl()
	e := a.Dbl().Add(a)
	f := e.Sqr()
	x3 := f.Sub(d.Dbl())
	y3 := e.Mul(d.Sub(x3)).Sub(c.Dbl().Dbl().Dbl())
	z3 := p.y.Mul(p.z).Dbl()
	return ECP{x: x3, y: y3, z: z3}
}

// Add uses the general Jacobian addition formula ("add-2007-bl"), falling
// back to Dbl/infinity for the degenerate cases.
func (p ECP) Add(q ECP) ECP {
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
			return ECPInfinity()
		}
		return p.Dbl()
	}

	h := u2.Sub(u1)
	i := h.Dbl().Sqr()
	j := h.Mul(i)
	r := s2.Sub(s1).Dbl()
	v := u1.Mul(i)
	x3 := r.Sqr().Sub(j).Sub(v.Dbl())
	y3 := r.Mul(v.Sub(x3)).Sub(s1.Mul(j).Dbl())
	z3 := p.z.Add(q.z).Sqr().Sub(z1z1).Sub(z2z2).Mul(h)
	return ECP{x: x3, y: y3, z: z3}
}

func (p ECP) Sub(q ECP) ECP {
	return p.Add(q.Neg())
}

// Mul computes [k]P by plain binary double-and-add over the bits of k, top
// bit first, with a cmove between the running accumulator and its sum with
// P. k is not recoded into signed digits, no table of multiples of P is
// precomputed, and no GLV/GS endomorphism decomposition is used; the loop
// runs k.nbits() times, so its length depends on the bit length of k.
func (p ECP) Mul(k bigInt) ECP {
	acc := ECPInfinity()
	nb := k.nbits()
	for i := nb - 1; i >= 0; i-- {
		acc = acc.Dbl()
		withP := acc.Add(p)
		acc = ecpCmove(acc, withP, uint64(k.bit(i)))
	}
	return acc
}

func ecpCmove(a, b ECP, flag uint64) ECP {
	return ECP{
		x: Fp{x: a.x.x.cmove(b.x.x, flag), xes: max(a.x.xes, b.x.xes)},
		y: Fp{x: a.y.x.cmove(b.y.x, flag), xes: max(a.y.xes, b.y.xes)},
		z: Fp{x: a.z.x.cmove(b.z.x, flag), xes: max(a.z.xes, b.z.xes)},
	}
}

// ToBytesCompressed serialises the affine point as 48 bytes: in the top
// byte, 0x80 marks the compressed form, 0x40 marks infinity and 0x20
// carries the y sign.
func (p ECP) ToBytesCompressed() []byte {
	out := make([]byte, bigBytes)
	if p.IsInfinity() {
		out[0] = 0xc0
		return out
	}
	x, y := p.Affine()
	copy(out, x.ToBytes())
	out[0] |= 0x80
	if y.IsNeg() {
		out[0] |= 0x20
	}
	return out
}

// ECPFromBytesCompressed decodes a 48-byte compressed G1 point, recovering y
// via sqrt(x^3+b) and selecting the root matching the encoded sign bit.
func ECPFromBytesCompressed(b []byte) (ECP, bool) {
	if len(b) != bigBytes {
		return ECP{}, false
	}
	if b[0]&0x80 == 0 {
		return ECP{}, false
	}
	if b[0]&0xc0 == 0xc0 {
		return ECPInfinity(), true
	}
	sign := b[0]&0x20 != 0
	buf := make([]byte, bigBytes)
	copy(buf, b)
	buf[0] &^= 0xe0
	x := FpFromBytes(buf)
	rhs := x.Sqr().Mul(x).Add(curveBFp)
	y, ok := rhs.Sqrt()
	if !ok {
		return ECP{}, false
	}
	if y.IsNeg() != sign {
		y = y.Neg()
	}
	return NewECP(x, y), true
}
