/*
 * BigFP - Significand division.
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

// Div divides this significand by m2 using Knuth's long division. The
// quotient is computed with two guard words, renormalized and rounded
// back to the wider of the two operand precisions. Returns the
// exponent adjustment: the result exponent is the difference of the
// operand exponents plus the adjustment. A nonzero remainder is folded
// into the sticky bit so the rounding is exact. The divisor must not
// be zero; the caller checks that before getting here.
func (m *Mantissa) Div(m2 *Mantissa, rm defs.RoundingMode, positive bool) (int, *Mantissa, error) {
	la := len(m.m)
	lb := len(m2.m)
	n3 := max(la, lb) + 2

	var q []defs.Word
	var sticky bool
	var err error
	if lb == 1 {
		q, sticky, err = divShort(m.m, m2.m[0], n3)
	} else {
		q, sticky, err = divKnuth(m.m, m2.m, n3)
	}
	if err != nil {
		return 0, nil, err
	}

	m3 := &Mantissa{m: q, n: len(q) * defs.WordBits}
	shift := maximize(m3.m)
	if sticky {
		m3.m[0] |= 1
	}
	eAdj := defs.WordBits - shift
	if m3.RoundMantissa(3*defs.WordBits, rm, positive) {
		eAdj++
	}
	m3.TruncTo((n3 - 2) * defs.WordBits)
	m3.n = m3.MaxBitLen()
	return eAdj, m3, nil
}

// Division by a single word divisor.
func divShort(a []defs.Word, d defs.Word, n3 int) ([]defs.Word, bool, error) {
	un, err := reserveNew(n3 + 1)
	if err != nil {
		return nil, false, err
	}
	copy(un[n3+1-len(a):], a)

	q, err := reserveNew(n3 + 1)
	if err != nil {
		return nil, false, err
	}
	dd := uint64(d)
	var r uint64
	for i := n3; i >= 0; i-- {
		cur := r<<defs.WordBits | uint64(un[i])
		q[i] = defs.Word(cur / dd)
		r = cur % dd
	}
	return q, r != 0, nil
}

// Knuth algorithm D. The divisor is scaled by the single word factor
// d chosen so that d times its top word comes as close to the word
// maximum as possible, the dividend is scaled by the same factor, and
// each quotient word is estimated from a two word over one word trial
// and corrected at most twice.
func divKnuth(a, b []defs.Word, n3 int) ([]defs.Word, bool, error) {
	la := len(a)
	lb := len(b)
	lu := n3 + lb

	un, err := reserveNew(lu + 1)
	if err != nil {
		return nil, false, err
	}
	// One extra word catches the scaling carry, which is always zero
	// for the divisor by the choice of d.
	vn, err := reserveNew(lb + 1)
	if err != nil {
		return nil, false, err
	}

	d := defs.WordBase / (uint64(b[lb-1]) + 1)
	if d == 1 {
		copy(un[lu-la:lu], a)
		copy(vn, b)
	} else {
		mulByWord(a, d, un[lu-la:])
		mulByWord(b, d, vn)
	}

	q, err := reserveNew(n3 + 1)
	if err != nil {
		return nil, false, err
	}

	v1 := uint64(vn[lb-1])
	v2 := uint64(vn[lb-2])
	for j := n3; j >= 0; j-- {
		num := uint64(un[j+lb])<<defs.WordBits | uint64(un[j+lb-1])
		qh := num / v1
		rh := num % v1
		for qh >= defs.WordBase || qh*v2 > rh<<defs.WordBits|uint64(un[j+lb-2]) {
			qh--
			rh += v1
			if rh >= defs.WordBase {
				break
			}
		}

		// un[j..j+lb] -= qh * vn
		var borrow, carry uint64
		for i := 0; i < lb; i++ {
			p := qh*uint64(vn[i]) + carry
			carry = p >> defs.WordBits
			t := uint64(un[i+j]) - borrow - (p & uint64(defs.WordMax))
			un[i+j] = defs.Word(t)
			borrow = t >> 63
		}
		t := uint64(un[j+lb]) - borrow - carry
		un[j+lb] = defs.Word(t)

		if t>>63 != 0 {
			// Went negative: roll the quotient word back by one and
			// add the divisor back in.
			qh--
			var c uint64
			for i := 0; i < lb; i++ {
				s := uint64(un[i+j]) + uint64(vn[i]) + c
				un[i+j] = defs.Word(s)
				c = s >> defs.WordBits
			}
			un[j+lb] = defs.Word(uint64(un[j+lb]) + c)
		}
		q[j] = defs.Word(qh)
	}

	sticky := false
	for _, v := range un[:lb] {
		if v != 0 {
			sticky = true
			break
		}
	}
	return q, sticky, nil
}

// Multiply a word slice by a single word factor, writing the result
// and its final carry to out.
func mulByWord(a []defs.Word, d uint64, out []defs.Word) {
	var c uint64
	for i, v := range a {
		t := uint64(v)*d + c
		out[i] = defs.Word(t)
		c = t >> defs.WordBits
	}
	out[len(a)] = defs.Word(c)
}
