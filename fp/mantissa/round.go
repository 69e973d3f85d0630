/*
 * BigFP - Rounding kernel.
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

// RoundMantissa removes the bottom k bits of the significand, deciding
// whether to increment the retained prefix from the guard bit G (the
// top removed bit), the sticky state R (any lower removed bit set) and
// the last retained bit L, according to the rounding mode and the sign
// of the number. Returns true if the increment overflowed past the top
// bit, in which case the significand is left with only the top bit set
// and the caller must raise the exponent by one.
func (m *Mantissa) RoundMantissa(k int, rm defs.RoundingMode, positive bool) bool {
	l := len(m.m)
	if k <= 0 || k > m.MaxBitLen() {
		return false
	}

	n := k - 1
	remZero := true

	// Everything below the guard word is removed outright.
	for i := 0; i < n/defs.WordBits; i++ {
		if m.m[i] != 0 {
			remZero = false
		}
		m.m[i] = 0
	}

	i := n / defs.WordBits
	i1 := (n + 1) / defs.WordBits
	t := n % defs.WordBits
	t2 := (n + 1) % defs.WordBits

	guard := (m.m[i]>>t)&1 == 1
	if t > 0 && m.m[i]<<(defs.WordBits-t) != 0 {
		remZero = false
	}

	var last bool
	if i1 < l {
		last = (m.m[i1]>>t2)&1 == 1
	}

	sticky := !remZero
	gAndR := guard && sticky
	gOrR := guard || sticky
	half := guard && !sticky // tail is exactly one half

	inc := false
	switch rm {
	case defs.RoundUp:
		inc = (gOrR && positive) || (gAndR && !positive)
	case defs.RoundDown:
		inc = (gAndR && positive) || (gOrR && !positive)
	case defs.RoundFromZero:
		inc = gOrR
	case defs.RoundToZero:
		inc = gAndR
	case defs.RoundToEven:
		inc = gAndR || (half && last)
	case defs.RoundToOdd:
		inc = gAndR || (half && !last)
	case defs.RoundNone:
	}

	if !inc {
		// Just clear the remaining tail bits.
		t++
		if t >= defs.WordBits {
			m.m[i] = 0
		} else {
			m.m[i] = m.m[i] >> t << t
		}
		return false
	}

	// Add one at the first retained position.
	if i1 > i {
		m.m[i] = 0
	}
	i = i1
	if i < l {
		if (uint64(m.m[i])>>t2)+1 < defs.WordBase>>t2 {
			m.m[i] = (m.m[i]>>t2 + 1) << t2
			return false
		}
		m.m[i] = 0
	}

	// Propagate the carry upward.
	for i++; i < l; i++ {
		if m.m[i] < defs.WordMax {
			m.m[i]++
			return false
		}
		m.m[i] = 0
	}

	m.m[l-1] = defs.WordSignificantBit
	return true
}
