/*
 * BigFP - Rounding kernel test cases.
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
	"testing"

	"github.com/rcornwell/bigfp/fp/defs"
)

// Expected increment decision for one mode and one guard, sticky and
// last bit state.
func wantIncrement(rm defs.RoundingMode, positive, g, r, l bool) bool {
	switch rm {
	case defs.RoundUp:
		if positive {
			return g || r
		}
		return g && r
	case defs.RoundDown:
		if positive {
			return g && r
		}
		return g || r
	case defs.RoundFromZero:
		return g || r
	case defs.RoundToZero:
		return g && r
	case defs.RoundToEven:
		return (g && r) || (g && !r && l)
	case defs.RoundToOdd:
		return (g && r) || (g && !r && !l)
	}
	return false
}

func TestRoundDecisionTable(t *testing.T) {
	modes := []defs.RoundingMode{
		defs.RoundNone, defs.RoundUp, defs.RoundDown, defs.RoundToZero,
		defs.RoundFromZero, defs.RoundToEven, defs.RoundToOdd,
	}
	for _, rm := range modes {
		for _, positive := range []bool{true, false} {
			for bits := 0; bits < 8; bits++ {
				g := bits&1 != 0
				r := bits&2 != 0
				l := bits&4 != 0

				var low, high defs.Word
				high = defs.WordSignificantBit | 0x00010000
				if g {
					low |= 1 << 31
				}
				if r {
					low |= 0x00000400
				}
				if l {
					high |= 1
				}
				m := mustParts(t, []defs.Word{low, high}, 64)
				carry := m.RoundMantissa(32, rm, positive)
				if carry {
					t.Fatalf("unexpected carry rm=%v bits=%d", rm, bits)
				}
				if m.Words()[0] != 0 {
					t.Fatalf("tail not cleared rm=%v bits=%d", rm, bits)
				}
				want := high
				if wantIncrement(rm, positive, g, r, l) {
					want++
				}
				if m.Words()[1] != want {
					t.Errorf("rm=%v pos=%v G=%v R=%v L=%v got %x want %x",
						rm, positive, g, r, l, m.Words()[1], want)
				}
			}
		}
	}
}

func TestRoundCarryOverflow(t *testing.T) {
	m := mustParts(t, []defs.Word{0x80000000, 0xFFFFFFFF}, 64)
	carry := m.RoundMantissa(32, defs.RoundFromZero, true)
	if !carry {
		t.Fatal("carry expected")
	}
	if m.Words()[1] != defs.WordSignificantBit || m.Words()[0] != 0 {
		t.Errorf("overflow left %x", m.Words())
	}
}

func TestRoundNoneTruncates(t *testing.T) {
	m := mustParts(t, []defs.Word{0xFFFFFFFF, 0xFFFFFFFF}, 64)
	if m.RoundMantissa(16, defs.RoundNone, true) {
		t.Fatal("none mode carried")
	}
	if m.Words()[0] != 0xFFFF0000 || m.Words()[1] != 0xFFFFFFFF {
		t.Errorf("truncate got %x", m.Words())
	}
}

func TestRoundMidWord(t *testing.T) {
	// Guard inside a word; ties to even on an odd retained bit.
	m := mustParts(t, []defs.Word{0, 0x80001800}, 64)
	if m.RoundMantissa(44, defs.RoundToEven, true) {
		t.Fatal("unexpected carry")
	}
	// Tail was exactly half with odd last retained bit: round up.
	if m.Words()[1] != 0x80002000 || m.Words()[0] != 0 {
		t.Errorf("got %x", m.Words())
	}
}
