package bls12381

// Fp is an element of the BLS12-381 base prime field, stored internally in
// Montgomery form (x * R mod p, R = 2^(nlen*baseBits) mod p) since the
// modulus is of the "NotSpecial" family -- it admits none of the
// PseudoMersenne / MontgomeryFriendly / GeneralisedMersenne shortcuts.
//
// xes is the excess tracker: an upper bound on x/p + 1. It lets add/mul/sqr
// decide whether an eager reduce() is required before the operation would
// risk overflowing the limb headroom, rather than reducing after every op.
type Fp struct {
	x   bigInt
	xes int32
}

// FpZero is the additive identity.
func FpZero() Fp {
	return Fp{x: bigZero(), xes: 1}
}

// FpOne is the multiplicative identity.
func FpOne() Fp {
	return nres(bigOne())
}

// nres lifts a canonical residue into Montgomery form: x*R mod p.
func nres(x bigInt) Fp {
	d := x.norm().mul(r2modp)
	return Fp{x: montReduce(d), xes: 2}
}

// redc exits Montgomery form, returning the canonical, fully reduced
// residue as a plain bigInt.
func redc(a Fp) bigInt {
	a = a.reduce()
	return montReduce(dbigFromBig(a.x))
}

// montReduce is the CIOS-style Montgomery reduction for the NotSpecial
// modulus path: given a double-width product, returns (d * R^-1) mod p.
func montReduce(d dbig) bigInt {
	var c [dnlen + nlen]uint64
	copy(c[:dnlen], d.w[:])
	for i := 0; i < nlen; i++ {
		u := (c[i] * mconst) & bmask
		var carry uint64
		for j := 0; j < nlen; j++ {
			v := c[i+j] + u*modulus.w[j] + carry
			c[i+j] = v & bmask
			carry = v >> baseBits
		}
		k := i + nlen
		for carry != 0 {
			v := c[k] + carry
			c[k] = v & bmask
			carry = v >> baseBits
			k++
		}
	}
	var r bigInt
	copy(r.w[:], c[nlen:nlen+nlen])
	if r.cmp(modulus) >= 0 {
		r = r.sub(modulus)
	}
	return r
}

// reduce performs a full reduction to canonical form (excess 1) using a
// bit-granular shift-and-subtract ladder: shift the modulus up by enough
// bits to match the current excess, then peel off multiples from the top
// down.
func (a Fp) reduce() Fp {
	if a.xes <= 1 {
		n := a.x.norm()
		if n.cmp(modulus) >= 0 {
			n = n.sub(modulus)
		}
		return Fp{x: n, xes: 1}
	}
	shift := uint(0)
	for (int32(1) << shift) < a.xes {
		shift++
	}
	x := a.x.norm()
	for k := int(shift); k >= 0; k-- {
		shifted := modulus.shl(uint(k))
		if x.cmp(shifted) >= 0 {
			x = x.sub(shifted)
		}
	}
	if x.cmp(modulus) >= 0 {
		x = x.sub(modulus)
	}
	return Fp{x: x, xes: 1}
}

// Add returns a+b, reducing the left operand first if the sum of excesses
// would exceed the field's excess budget.
func (a Fp) Add(b Fp) Fp {
	if a.xes+b.xes > fexcess {
		a = a.reduce()
	}
	return Fp{x: a.x.add(b.x).norm(), xes: a.xes + b.xes}
}

// Neg returns -a. sb (the modulus multiplier) is chosen from a's excess so
// the result never goes negative.
func (a Fp) Neg() Fp {
	sb := uint64(a.xes)
	if sb == 0 {
		sb = 1
	}
	scaled := modulus.imul(sb).norm()
	return Fp{x: scaled.sub(a.x).norm(), xes: a.xes + 1}
}

// Sub returns a-b.
func (a Fp) Sub(b Fp) Fp {
	return a.Add(b.Neg())
}

// Dbl returns 2a.
func (a Fp) Dbl() Fp {
	return a.Add(a)
}

// Mul returns a*b, reducing both operands first if their excess product
// would overflow the budget. Output excess is always 2.
func (a Fp) Mul(b Fp) Fp {
	if int64(a.xes)*int64(b.xes) > int64(fexcess) {
		a = a.reduce()
		b = b.reduce()
	}
	d := a.x.mul(b.x)
	return Fp{x: montReduce(d), xes: 2}
}

// Sqr returns a^2.
func (a Fp) Sqr() Fp {
	if int64(a.xes)*int64(a.xes) > int64(fexcess) {
		a = a.reduce()
	}
	d := a.x.sqr()
	return Fp{x: montReduce(d), xes: 2}
}

// Imul returns a*s for a small non-negative int s.
func (a Fp) Imul(s int) Fp {
	if s < 0 {
		return a.Imul(-s).Neg()
	}
	r := a
	acc := FpZero()
	for s > 0 {
		if s&1 == 1 {
			acc = acc.Add(r)
		}
		r = r.Dbl()
		s >>= 1
	}
	return acc
}

// IsZero reports whether a represents the zero residue.
func (a Fp) IsZero() bool {
	return a.reduce().x.isZero()
}

// Equals reports field equality up to reduction.
func (a Fp) Equals(b Fp) bool {
	return a.reduce().x.cmp(b.reduce().x) == 0
}

// fpPow raises a to the exponent e (given as a canonical bigInt, public
// exponent) via a 4-bit windowed ladder: a table of the 16 small powers of a
// is built once, then the exponent is consumed four bits at a time from the
// top, interleaving four squarings with one table multiply per nibble. Used
// for inversion (e = p-2) and square root (e = (p+1)/4); both exponents are
// public constants so this need not be constant-time in e, only in a.
func fpPow(a Fp, e bigInt) Fp {
	var table [16]Fp
	table[0] = FpOne()
	table[1] = a
	for i := 2; i < 16; i++ {
		table[i] = table[i-1].Mul(a)
	}
	nbits := e.nbits()
	if nbits == 0 {
		return FpOne()
	}
	nnibbles := (nbits + 3) / 4
	result := FpOne()
	for i := nnibbles - 1; i >= 0; i-- {
		if i != nnibbles-1 {
			for j := 0; j < 4; j++ {
				result = result.Sqr()
			}
		}
		nibble := 0
		for b := 3; b >= 0; b-- {
			nibble = (nibble << 1) | e.bit(i*4+b)
		}
		sel := table[0]
		for k := 1; k < 16; k++ {
			flag := uint64(0)
			if k == nibble {
				flag = 1
			}
			sel = Fp{x: sel.x.cmove(table[k].x, flag), xes: sel.xes}
		}
		result = result.Mul(sel)
	}
	return result
}

// Inverse returns a^-1 mod p via Fermat's little theorem: a^(p-2).
// Constant-time in a via the windowed table in fpPow.
func (a Fp) Inverse() Fp {
	pMinus2 := modulus.sub(bigFromUint64(2))
	return fpPow(a.reduce(), pMinus2)
}

// Sqrt returns a square root of a if one exists. BLS12-381's p is 3 mod 4,
// so sqrt(x) = x^((p+1)/4); the result is verified by squaring since the
// exponentiation alone can't distinguish squares from non-squares.
func (a Fp) Sqrt() (Fp, bool) {
	if a.IsZero() {
		return FpZero(), true
	}
	exp := modulus.add(bigOne()).shr(2)
	r := fpPow(a.reduce(), exp)
	if !r.Sqr().Equals(a) {
		return Fp{}, false
	}
	return r, true
}

// IsSquare reports whether a is a quadratic residue, via Euler's criterion.
func (a Fp) IsSquare() bool {
	if a.IsZero() {
		return true
	}
	exp := modulus.sub(bigOne()).shr(1)
	r := fpPow(a.reduce(), exp)
	return r.Equals(FpOne())
}

// IsNeg implements the sign convention used by serialization and
// hash-to-curve: a value is "negative" when its canonical representative
// exceeds p - a.
func (a Fp) IsNeg() bool {
	n := a.reduce().x
	comp := modulus.sub(n)
	return n.cmp(comp) > 0
}

// FpFromBytes decodes a fixed-width big-endian byte string into Montgomery
// form. Does not check canonicity; callers that need a FAIL on
// out-of-range input should compare against the modulus first.
func FpFromBytes(b []byte) Fp {
	return nres(bigFromBytes(b))
}

// ToBytes serialises the canonical, fully reduced residue as fixed-width
// big-endian bytes.
func (a Fp) ToBytes() []byte {
	return redc(a).toBytes()
}
