/*
 * BigFP - Arithmetic on finite numbers.
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

package number

import (
	"github.com/rcornwell/bigfp/fp/defs"
	"github.com/rcornwell/bigfp/fp/mantissa"
)

// Add returns x + y at precision p.
func (x *Number) Add(y *Number, p int, rm defs.RoundingMode) (*Number, error) {
	return x.addSub(y, y.sign, p, rm)
}

// Sub returns x - y at precision p.
func (x *Number) Sub(y *Number, p int, rm defs.RoundingMode) (*Number, error) {
	return x.addSub(y, y.sign.Invert(), p, rm)
}

// Cap an exponent difference at a shift that pushes the whole operand
// below the working window; the lost bits still land in the sticky.
func clampShift(d int64, m1, m2 *mantissa.Mantissa) int {
	bound := int64(m1.MaxBitLen() + m2.MaxBitLen() + 2*defs.WordBits)
	if d > bound {
		return int(bound)
	}
	return int(d)
}

func (x *Number) addSub(y *Number, ysign defs.Sign, p int, rm defs.RoundingMode) (*Number, error) {
	if err := checkPrecision(p); err != nil {
		return nil, err
	}
	if x.IsZero() {
		r, err := y.Clone()
		if err != nil {
			return nil, err
		}
		r.sign = ysign
		if err = r.SetPrecision(p, rm); err != nil {
			return nil, err
		}
		return r, nil
	}
	if y.IsZero() {
		r, err := x.Clone()
		if err != nil {
			return nil, err
		}
		if err = r.SetPrecision(p, rm); err != nil {
			return nil, err
		}
		return r, nil
	}

	e1, m1, err := x.normalizedParts()
	if err != nil {
		return nil, err
	}
	e2, m2, err := y.normalizedParts()
	if err != nil {
		return nil, err
	}

	if x.sign == ysign {
		sign := x.sign
		var carry int
		var m3 *mantissa.Mantissa
		eb := e1
		if e1 >= e2 {
			carry, m3, err = m1.AbsAdd(m2, clampShift(e1-e2, m1, m2), rm, sign.IsPositive())
		} else {
			eb = e2
			carry, m3, err = m2.AbsAdd(m1, clampShift(e2-e1, m1, m2), rm, sign.IsPositive())
		}
		if err != nil {
			return nil, err
		}
		return assemble(m3, sign, eb+int64(carry), p, rm)
	}

	// Opposite signs: take the smaller magnitude from the larger. The
	// result carries the sign of the larger operand.
	c := 0
	switch {
	case e1 > e2:
		c = 1
	case e1 < e2:
		c = -1
	default:
		c = m1.AbsCmp(m2)
	}
	if c == 0 {
		return New(p)
	}

	var sign defs.Sign
	var shift int
	var m3 *mantissa.Mantissa
	var eb int64
	if c > 0 {
		sign = x.sign
		eb = e1
		shift, m3, err = m1.AbsSub(m2, clampShift(e1-e2, m1, m2), rm, sign.IsPositive())
	} else {
		sign = ysign
		eb = e2
		shift, m3, err = m2.AbsSub(m1, clampShift(e2-e1, m1, m2), rm, sign.IsPositive())
	}
	if err != nil {
		return nil, err
	}
	return assemble(m3, sign, eb-int64(shift), p, rm)
}

// Mul returns x * y at precision p.
func (x *Number) Mul(y *Number, p int, rm defs.RoundingMode) (*Number, error) {
	if err := checkPrecision(p); err != nil {
		return nil, err
	}
	if x.IsZero() || y.IsZero() {
		return New(p)
	}
	e1, m1, err := x.normalizedParts()
	if err != nil {
		return nil, err
	}
	e2, m2, err := y.normalizedParts()
	if err != nil {
		return nil, err
	}
	sign := defs.Pos
	if x.sign != y.sign {
		sign = defs.Neg
	}
	shift, m3, err := m1.Mul(m2, rm, sign.IsPositive())
	if err != nil {
		return nil, err
	}
	return assemble(m3, sign, e1+e2-int64(shift), p, rm)
}

// Div returns x / y at precision p. Division by zero is reported here
// before the divide is entered.
func (x *Number) Div(y *Number, p int, rm defs.RoundingMode) (*Number, error) {
	if err := checkPrecision(p); err != nil {
		return nil, err
	}
	if y.IsZero() {
		return nil, defs.ErrDivisionByZero
	}
	if x.IsZero() {
		return New(p)
	}
	e1, m1, err := x.normalizedParts()
	if err != nil {
		return nil, err
	}
	e2, m2, err := y.normalizedParts()
	if err != nil {
		return nil, err
	}
	sign := defs.Pos
	if x.sign != y.sign {
		sign = defs.Neg
	}
	adj, m3, err := m1.Div(m2, rm, sign.IsPositive())
	if err != nil {
		return nil, err
	}
	return assemble(m3, sign, e1-e2+int64(adj), p, rm)
}

// Common tail of the arithmetic paths: exponent range handling,
// subnormal coalescing and the final precision change.
func assemble(m3 *mantissa.Mantissa, sign defs.Sign, eTrue int64, p int, rm defs.RoundingMode) (*Number, error) {
	if m3.IsZero() || m3.IsAllZero() {
		return New(p)
	}
	if eTrue > int64(defs.ExponentMax) {
		return nil, defs.ExponentOverflow(sign)
	}
	r := &Number{m: m3, sign: sign}
	if eTrue < int64(defs.ExponentMin) {
		pw := defs.RoundPrecision(max(p, 1)) + defs.WordBits
		if pw > m3.MaxBitLen() {
			if err := r.m.Extend(pw); err != nil {
				return nil, err
			}
		}
		r.subnormalize(eTrue, defs.RoundNone)
		if r.inexact {
			r.m.OrLowBit()
		}
		if r.m.IsAllZero() && !r.inexact {
			return New(p)
		}
	} else {
		r.e = defs.Exponent(eTrue)
	}
	if err := r.SetPrecision(p, rm); err != nil {
		return nil, err
	}
	return r, nil
}
