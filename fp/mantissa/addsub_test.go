/*
 * BigFP - Magnitude add and subtract test cases.
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

func TestAbsAddBasic(t *testing.T) {
	// 1/2 + 1/2 shifted right one bit is 3/4.
	a := mustParts(t, []defs.Word{0, defs.WordSignificantBit}, 64)
	b := mustParts(t, []defs.Word{0, defs.WordSignificantBit}, 64)
	carry, r, err := a.AbsAdd(b, 1, defs.RoundToEven, true)
	if err != nil {
		t.Fatal(err)
	}
	if carry != 0 {
		t.Errorf("carry %d", carry)
	}
	if r.Words()[1] != 0xC0000000 || r.Words()[0] != 0 {
		t.Errorf("sum %x", r.Words())
	}

	// 3/4 + 3/4 carries out; the result is 3/4 again with the
	// exponent up one.
	a = mustParts(t, []defs.Word{0, 0xC0000000}, 64)
	b = mustParts(t, []defs.Word{0, 0xC0000000}, 64)
	carry, r, err = a.AbsAdd(b, 0, defs.RoundToEven, true)
	if err != nil {
		t.Fatal(err)
	}
	if carry != 1 {
		t.Errorf("carry %d", carry)
	}
	if r.Words()[1] != 0xC0000000 || r.Words()[0] != 0 {
		t.Errorf("sum %x", r.Words())
	}
}

func TestAbsAddSticky(t *testing.T) {
	// An addend entirely below the window must still leave a sticky
	// trace so directed rounding sees it.
	a := mustParts(t, []defs.Word{0, defs.WordSignificantBit}, 64)
	b := mustParts(t, []defs.Word{0, defs.WordSignificantBit}, 64)
	carry, r, err := a.AbsAdd(b, 300, defs.RoundFromZero, true)
	if err != nil {
		t.Fatal(err)
	}
	if carry != 0 {
		t.Errorf("carry %d", carry)
	}
	// FromZero bumps the last place on any nonzero tail.
	if r.Words()[0] != 1 || r.Words()[1] != defs.WordSignificantBit {
		t.Errorf("sum %x", r.Words())
	}

	// Under truncation the tiny addend vanishes.
	carry, r, err = a.AbsAdd(b, 300, defs.RoundToZero, true)
	if err != nil {
		t.Fatal(err)
	}
	if carry != 0 || r.Words()[0] != 0 || r.Words()[1] != defs.WordSignificantBit {
		t.Errorf("sum %x carry %d", r.Words(), carry)
	}
}

func TestAbsSubBasic(t *testing.T) {
	// 3/4 - 1/4 = 1/2: the quarter is 1/2 shifted right one bit.
	a := mustParts(t, []defs.Word{0, 0xC0000000}, 64)
	b := mustParts(t, []defs.Word{0, defs.WordSignificantBit}, 64)
	shift, r, err := a.AbsSub(b, 1, defs.RoundToEven, true)
	if err != nil {
		t.Fatal(err)
	}
	if shift != 0 {
		t.Errorf("shift %d", shift)
	}
	if r.Words()[1] != defs.WordSignificantBit || r.Words()[0] != 0 {
		t.Errorf("diff %x", r.Words())
	}
}

func TestAbsSubCancellation(t *testing.T) {
	// 1/2 - (1/2 - ulp) leaves one bit far down; the reported shift
	// is the cancellation depth.
	a := mustParts(t, []defs.Word{0, defs.WordSignificantBit}, 64)
	b := mustParts(t, []defs.Word{0xFFFFFFFF, 0xFFFFFFFF}, 64)
	shift, r, err := a.AbsSub(b, 1, defs.RoundNone, true)
	if err != nil {
		t.Fatal(err)
	}
	// a = 0.100...0, b>>1 = 0.0111...1(1); the difference is one in
	// the 65th bit position.
	if shift != 64 {
		t.Errorf("shift %d", shift)
	}
	if r.Words()[1] != defs.WordSignificantBit || r.Words()[0] != 0 {
		t.Errorf("diff %x", r.Words())
	}
}

func TestAbsSubExact(t *testing.T) {
	a := mustParts(t, []defs.Word{0, defs.WordSignificantBit}, 64)
	b := mustParts(t, []defs.Word{0, defs.WordSignificantBit}, 64)
	_, r, err := a.AbsSub(b, 0, defs.RoundToEven, true)
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsZero() {
		t.Errorf("exact cancel left %x n=%d", r.Words(), r.BitLen())
	}
}
