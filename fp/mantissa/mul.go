/*
 * BigFP - Significand multiplication.
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

import (
	"math"

	"github.com/rcornwell/bigfp/fp/defs"
)

// Mul multiplies two significands and rounds the product back to the
// wider of the two operand precisions. Returns the exponent shift: the
// result exponent is the sum of the operand exponents minus the shift.
func (m *Mantissa) Mul(m2 *Mantissa, rm defs.RoundingMode, positive bool) (int, *Mantissa, error) {
	l := max(len(m.m), len(m2.m)) * defs.WordBits

	prod, err := mulWords(m.m, m2.m)
	if err != nil {
		return 0, nil, err
	}

	shift := maximize(prod)
	m3 := &Mantissa{m: prod, n: len(prod) * defs.WordBits}
	if m3.RoundMantissa(m3.MaxBitLen()-l, rm, positive) {
		shift--
	}
	m3.TruncTo(l)
	m3.n = l
	return shift, m3, nil
}

// Word by word multiplication with a running double word carry.
func schoolbook(a, b []defs.Word) ([]defs.Word, error) {
	m3, err := reserveNew(len(a) + len(b))
	if err != nil {
		return nil, err
	}
	for i, d1 := range a {
		if d1 == 0 {
			continue
		}
		var k uint64
		for j, d2 := range b {
			t := uint64(d1)*uint64(d2) + uint64(m3[i+j]) + k
			m3[i+j] = defs.Word(t)
			k = t >> defs.WordBits
		}
		m3[i+len(b)] += defs.Word(k)
	}
	return m3, nil
}

// Decide whether a Toom-Cook 3-way multiply beats the schoolbook
// loop. l1 is the shorter operand length in words. The threshold
// table was measured; above its last row the long side grows by three
// per step and the short side by 1.6.
func toom3Beneficial(l1, l2 int) bool {
	if l1 < 70 && l2 < 70 {
		return false
	}
	for _, th := range [...][2]int{
		{120, 210},
		{200, 630},
		{340, 1890},
		{580, 5670},
		{900, 17010},
		{1500, 51030},
	} {
		if l2 < th[1] {
			return l1 >= th[0]
		}
	}
	th1 := 1500
	th2 := 51030
	for th2 < math.MaxInt/3 {
		th2 *= 3
		th1 = th1 * 16 / 10
		if l2 < th2 {
			return l1 >= th1
		}
	}
	return false
}

// Dispatch for the recursive multiplies inside Toom-Cook.
func mulWords(a, b []defs.Word) ([]defs.Word, error) {
	if len(a) == 0 || len(b) == 0 {
		return reserveNew(len(a) + len(b))
	}
	l1, l2 := len(a), len(b)
	if l1 > l2 {
		l1, l2 = l2, l1
	}
	if toom3Beneficial(l1, l2) {
		return toom3Mul(a, b)
	}
	return schoolbook(a, b)
}
