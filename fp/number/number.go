/*
 * BigFP - Finite floating point number.
 *
 * Copyright 2025, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package number implements finite arbitrary precision binary floating
// point values on top of the significand engine. A value is a sign, a
// bounded integer exponent and a significand holding a fraction in
// [1/2, 1), so the represented number is sign * fraction * 2^exponent.
// When the exponent reaches its floor the significand is allowed to
// lose leading bits instead, giving gradual underflow.
package number

import (
	"math"

	"github.com/rcornwell/bigfp/fp/defs"
	"github.com/rcornwell/bigfp/fp/mantissa"
)

// Largest precision accepted, in bits.
const maxPrecision = 1 << 30

// Number is a finite floating point value of user chosen precision.
type Number struct {
	m       *mantissa.Mantissa
	sign    defs.Sign
	e       defs.Exponent
	inexact bool
}

func checkPrecision(p int) error {
	if p < 0 || p > maxPrecision {
		return defs.ErrInvalidArgument
	}
	return nil
}

// New returns zero at precision p. A precision of zero gives the
// canonical one word zero.
func New(p int) (*Number, error) {
	if err := checkPrecision(p); err != nil {
		return nil, err
	}
	m, err := mantissa.New(defs.RoundPrecision(max(p, 1)))
	if err != nil {
		return nil, err
	}
	return &Number{m: m, sign: defs.Pos}, nil
}

// FromWord returns the integer value of w at precision p.
func FromWord(w defs.Word, p int) (*Number, error) {
	if w == 0 {
		return New(p)
	}
	if err := checkPrecision(p); err != nil {
		return nil, err
	}
	shift, m, err := mantissa.FromU64(defs.RoundPrecision(max(p, 1)), uint64(w))
	if err != nil {
		return nil, err
	}
	return &Number{m: m, sign: defs.Pos, e: defs.Exponent(64 - shift)}, nil
}

// FromFloat64 converts an IEEE 754 double to precision p. NaN and
// infinity are rejected; subnormal doubles convert exactly.
func FromFloat64(p int, f float64) (*Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, defs.ErrInvalidArgument
	}
	if f == 0 {
		return New(p)
	}
	if err := checkPrecision(p); err != nil {
		return nil, err
	}

	b := math.Float64bits(f)
	sign := defs.Pos
	if b>>63 != 0 {
		sign = defs.Neg
	}
	exp := int(b >> 52 & 0x7FF)
	frac := b & (1<<52 - 1)

	var u uint64
	var e2 int
	if exp == 0 {
		u = frac
		e2 = -1022 - 52
	} else {
		u = frac | 1<<52
		e2 = exp - 1023 - 52
	}

	pw := defs.RoundPrecision(max(p, 64))
	shift, m, err := mantissa.FromU64(pw, u)
	if err != nil {
		return nil, err
	}
	r := &Number{m: m, sign: sign, e: defs.Exponent(e2 + 64 - shift)}
	if p = defs.RoundPrecision(max(p, 1)); p != pw {
		if err := r.SetPrecision(p, defs.RoundToEven); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Float64 converts the value to an IEEE 754 double. Values outside
// the double range saturate to infinity or flush to zero.
func (x *Number) Float64() float64 {
	if x.IsZero() {
		return 0
	}
	f := math.Ldexp(float64(x.m.ToU64()), int(x.e)-64)
	if x.sign == defs.Neg {
		f = -f
	}
	return f
}

// MaxValue returns the largest representable value at precision p.
func MaxValue(p int) (*Number, error) {
	if err := checkPrecision(p); err != nil {
		return nil, err
	}
	m, err := mantissa.Oned(defs.RoundPrecision(max(p, 1)))
	if err != nil {
		return nil, err
	}
	return &Number{m: m, sign: defs.Pos, e: defs.ExponentMax}, nil
}

// MinValue returns the most negative representable value at
// precision p.
func MinValue(p int) (*Number, error) {
	r, err := MaxValue(p)
	if err != nil {
		return nil, err
	}
	r.sign = defs.Neg
	return r, nil
}

// MinPositive returns the smallest positive subnormal at precision p.
func MinPositive(p int) (*Number, error) {
	if err := checkPrecision(p); err != nil {
		return nil, err
	}
	m, err := mantissa.Min(defs.RoundPrecision(max(p, 1)))
	if err != nil {
		return nil, err
	}
	return &Number{m: m, sign: defs.Pos, e: defs.ExponentMin}, nil
}

// Clone returns a deep copy.
func (x *Number) Clone() (*Number, error) {
	m, err := x.m.Clone()
	if err != nil {
		return nil, err
	}
	return &Number{m: m, sign: x.sign, e: x.e, inexact: x.inexact}, nil
}

// Neg returns the value with the opposite sign.
func (x *Number) Neg() (*Number, error) {
	r, err := x.Clone()
	if err != nil {
		return nil, err
	}
	r.sign = r.sign.Invert()
	return r, nil
}

// Abs returns the magnitude of the value.
func (x *Number) Abs() (*Number, error) {
	r, err := x.Clone()
	if err != nil {
		return nil, err
	}
	r.sign = defs.Pos
	return r, nil
}

// IsZero reports whether the value is zero.
func (x *Number) IsZero() bool {
	return x.m.IsZero()
}

// IsSubnormal reports whether the value is subnormal.
func (x *Number) IsSubnormal() bool {
	return x.m.IsSubnormal() && !x.IsZero()
}

// Sign returns the sign of the value.
func (x *Number) Sign() defs.Sign {
	return x.sign
}

// SetSign replaces the sign of the value.
func (x *Number) SetSign(s defs.Sign) {
	x.sign = s
}

// Exponent returns the exponent of the value.
func (x *Number) Exponent() defs.Exponent {
	return x.e
}

// SetExponent replaces the exponent of the value.
func (x *Number) SetExponent(e defs.Exponent) {
	x.e = e
}

// Precision returns the precision in bits.
func (x *Number) Precision() int {
	return x.m.MaxBitLen()
}

// BitLen returns the count of active significand bits.
func (x *Number) BitLen() int {
	return x.m.BitLen()
}

// Inexact reports whether some operation on the way to this value had
// to discard nonzero low bits.
func (x *Number) Inexact() bool {
	return x.inexact
}

// RawParts decomposes the value into its significand words (least
// significant first), active bit count, sign and exponent.
func (x *Number) RawParts() ([]defs.Word, int, defs.Sign, defs.Exponent) {
	w, n := x.m.RawParts()
	words := make([]defs.Word, len(w))
	copy(words, w)
	return words, n, x.sign, x.e
}

// FromRawParts rebuilds a value from a decomposition produced by
// RawParts.
func FromRawParts(words []defs.Word, n int, sign defs.Sign, e defs.Exponent) (*Number, error) {
	if len(words) == 0 || (sign != defs.Pos && sign != defs.Neg) {
		return nil, defs.ErrInvalidArgument
	}
	m, err := mantissa.FromRawParts(words, n)
	if err != nil {
		return nil, err
	}
	return &Number{m: m, sign: sign, e: e}, nil
}

// SetPrecision changes the precision of the value, rounding when it
// shrinks. A rounding carry raises the exponent.
func (x *Number) SetPrecision(p int, rm defs.RoundingMode) error {
	if err := checkPrecision(p); err != nil {
		return err
	}
	p = defs.RoundPrecision(max(p, 1))
	mb := x.m.MaxBitLen()
	switch {
	case p < mb:
		lost := x.m.LowBitsNonzero(mb - p)
		if x.m.RoundMantissa(mb-p, rm, x.sign.IsPositive()) {
			if x.e == defs.ExponentMax {
				return defs.ExponentOverflow(x.sign)
			}
			x.e++
		}
		x.m.TruncTo(p)
		x.m.UpdateBitLen()
		if lost {
			x.inexact = true
		}
	case p > mb:
		return x.m.Extend(p)
	}
	return nil
}

// Effective exponent and a normalized significand for arithmetic.
// Subnormal inputs are shifted left and the shift moves into the
// exponent, which can run below the exponent floor here.
func (x *Number) normalizedParts() (int64, *mantissa.Mantissa, error) {
	if x.IsSubnormal() {
		shift, m, err := x.m.Normalized()
		if err != nil {
			return 0, nil, err
		}
		return int64(x.e) - int64(shift), m, nil
	}
	return int64(x.e), x.m, nil
}

// Pin the exponent at its floor, shifting the significand right to
// compensate. eTrue is the unclamped exponent. Discarded nonzero bits
// set the inexact flag.
func (x *Number) subnormalize(eTrue int64, rm defs.RoundingMode) {
	if eTrue >= int64(defs.ExponentMin) {
		x.e = defs.Exponent(eTrue)
		return
	}
	x.e = defs.ExponentMin
	shift := int64(defs.ExponentMin) - eTrue
	if shift > int64(x.m.MaxBitLen()) {
		if !x.m.IsAllZero() {
			x.inexact = true
		}
		x.m.ShiftRight(x.m.MaxBitLen())
		x.m.SetBitLen(0)
		return
	}
	s := int(shift)
	if x.m.LowBitsNonzero(s) {
		x.inexact = true
	}
	if x.m.RoundMantissa(s, rm, x.sign.IsPositive()) {
		// The tail rounded the value up to one; one shift position
		// comes back.
		s--
	}
	x.m.ShiftRight(s)
	x.m.DecBitLen(s)
}

// Cmp compares two values, returning negative, zero or positive.
func (x *Number) Cmp(y *Number) int {
	xz := x.IsZero()
	yz := y.IsZero()
	switch {
	case xz && yz:
		return 0
	case xz:
		return -int(y.sign)
	case yz:
		return int(x.sign)
	case x.sign != y.sign:
		return int(x.sign)
	}

	e1 := int64(x.e) - int64(x.m.MaxBitLen()-x.m.BitLen())
	e2 := int64(y.e) - int64(y.m.MaxBitLen()-y.m.BitLen())
	c := 0
	switch {
	case e1 > e2:
		c = 1
	case e1 < e2:
		c = -1
	default:
		c = x.m.AbsCmp(y.m)
	}
	if x.sign == defs.Neg {
		c = -c
	}
	return c
}

// Powi raises the value to a nonnegative integer power using binary
// exponentiation at working precision p.
func (x *Number) Powi(k int, p int, rm defs.RoundingMode) (*Number, error) {
	if k < 0 {
		return nil, defs.ErrInvalidArgument
	}
	p = defs.RoundPrecision(max(p, 1))
	if k == 0 {
		return FromWord(1, p)
	}
	if x.IsZero() {
		return New(p)
	}

	f, err := x.Clone()
	if err != nil {
		return nil, err
	}
	if f.m.MaxBitLen() < p {
		if err = f.SetPrecision(p, defs.RoundNone); err != nil {
			return nil, err
		}
	}
	var res *Number
	for k > 0 {
		if k&1 == 1 {
			if res == nil {
				res, err = f.Clone()
			} else {
				res, err = res.Mul(f, p, rm)
			}
			if err != nil {
				return nil, err
			}
		}
		k >>= 1
		if k > 0 {
			if f, err = f.Mul(f, p, rm); err != nil {
				return nil, err
			}
		}
	}
	if err = res.SetPrecision(p, rm); err != nil {
		return nil, err
	}
	return res, nil
}

// Fract returns the fractional part of the value, renormalized. The
// sign is kept.
func (x *Number) Fract() (*Number, error) {
	r, err := x.Clone()
	if err != nil {
		return nil, err
	}
	if x.IsZero() || x.e <= 0 {
		return r, nil
	}
	if int(x.e) >= x.m.MaxBitLen() {
		return New(x.m.MaxBitLen())
	}
	r.m.ShiftLeft(int(x.e))
	if r.m.IsAllZero() {
		return New(x.m.MaxBitLen())
	}
	shift := r.m.Maximize()
	r.m.SetBitLen(r.m.MaxBitLen())
	r.e = defs.Exponent(-shift)
	return r, nil
}

// IntAsWord returns the integer part of the value as a single word.
// Meaningful only while the exponent does not exceed the word size.
func (x *Number) IntAsWord() defs.Word {
	if x.IsZero() || x.e <= 0 {
		return 0
	}
	shift := defs.WordBits - int(x.e)
	if shift < 0 {
		shift = 0
	}
	w := x.m.Words()
	return w[len(w)-1] >> shift
}
