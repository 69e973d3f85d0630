/*
 * BigFP - Aligned magnitude add and subtract.
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

package mantissa

import "github.com/rcornwell/bigfp/fp/defs"

// View of an operand top aligned to an l word window and then shifted
// right by some bit count. Nonzero bits pushed below the window are
// folded into the sticky bit of word zero, so a later rounding still
// sees them.
type shiftedView struct {
	m      []defs.Word
	off    int // zero words below the operand inside the window
	shiftW int
	shiftB int
	sticky defs.Word
}

func newShiftedView(m []defs.Word, l, shift int) shiftedView {
	sv := shiftedView{
		m:      m,
		off:    l - len(m),
		shiftW: shift / defs.WordBits,
		shiftB: shift % defs.WordBits,
	}
	// Bits of the operand that land below the window are lost here.
	lost := false
	for j := 0; j < len(m) && j+sv.off < sv.shiftW; j++ {
		if m[j] != 0 {
			lost = true
			break
		}
	}
	if !lost && sv.shiftB > 0 {
		if j := sv.shiftW - sv.off; j >= 0 && j < len(m) {
			lost = m[j]&^(defs.WordMax<<sv.shiftB) != 0
		}
	}
	if lost {
		sv.sticky = 1
	}
	return sv
}

// Window word before the shift.
func (sv *shiftedView) window(k int) uint64 {
	k -= sv.off
	if k < 0 || k >= len(sv.m) {
		return 0
	}
	return uint64(sv.m[k])
}

// Word i of the shifted view.
func (sv *shiftedView) at(i int) defs.Word {
	k := i + sv.shiftW
	d := sv.window(k) | sv.window(k+1)<<defs.WordBits
	w := defs.Word(d >> sv.shiftB)
	if i == 0 {
		w |= sv.sticky
	}
	return w
}

// AbsAdd adds m2, logically shifted right by shift bits so that its
// leading bit aligns below this significand's, and rounds the result
// back to the wider of the two operand precisions. Returns the count
// of carries out past the top bit; the caller adds it to the
// exponent.
func (m *Mantissa) AbsAdd(m2 *Mantissa, shift int, rm defs.RoundingMode, positive bool) (int, *Mantissa, error) {
	l := max(len(m.m), len(m2.m)) + 1
	m3, err := New(l * defs.WordBits)
	if err != nil {
		return 0, nil, err
	}

	sv := newShiftedView(m2.m, l, shift)
	ext := l - len(m.m)
	var c uint64
	for i := 0; i < l; i++ {
		var a defs.Word
		if i >= ext {
			a = m.m[i-ext]
		}
		s := c + uint64(a) + uint64(sv.at(i))
		m3.m[i] = defs.Word(s)
		c = s >> defs.WordBits
	}

	carry := 0
	if c > 0 {
		// Carried past the top bit. Round off the guard word together
		// with the bit about to be shifted out, then make room for the
		// carry.
		carry = 1
		if m3.RoundMantissa(1+defs.WordBits, rm, positive) {
			// The rounding itself overflowed as well; the value is
			// already down to its top bit.
			carry = 2
		} else {
			m3.ShiftRight(1)
			m3.m[l-1] |= defs.WordSignificantBit
		}
	} else if m3.RoundMantissa(defs.WordBits, rm, positive) {
		carry = 1
	}
	m3.TruncTo((l - 1) * defs.WordBits)
	m3.n = m3.MaxBitLen()
	return carry, m3, nil
}

// AbsSub subtracts m2, logically shifted right by shift bits, from
// this significand. The caller guarantees the minuend is the larger
// magnitude. Returns the renormalization shift as a positive value;
// the caller subtracts it from the exponent. A large shift marks
// catastrophic cancellation.
func (m *Mantissa) AbsSub(m2 *Mantissa, shift int, rm defs.RoundingMode, positive bool) (int, *Mantissa, error) {
	l := max(len(m.m), len(m2.m)) + 1
	m3, err := New(l * defs.WordBits)
	if err != nil {
		return 0, nil, err
	}

	sv := newShiftedView(m2.m, l, shift)
	ext := l - len(m.m)
	var c uint64
	for i := 0; i < l; i++ {
		var a defs.Word
		if i >= ext {
			a = m.m[i-ext]
		}
		v1 := uint64(a)
		v2 := uint64(sv.at(i))
		if v1 < v2+c {
			m3.m[i] = defs.Word(v1 + defs.WordBase - v2 - c)
			c = 1
		} else {
			m3.m[i] = defs.Word(v1 - v2 - c)
			c = 0
		}
	}

	shift3 := maximize(m3.m)
	if m3.RoundMantissa(defs.WordBits, rm, positive) {
		// Rounding pushed the value back up to one; the exponent
		// loses one bit of the cancellation shift.
		shift3--
	}
	m3.TruncTo((l - 1) * defs.WordBits)
	if m3.IsAllZero() {
		m3.n = 0
	} else {
		m3.n = m3.MaxBitLen()
	}
	return shift3, m3, nil
}
