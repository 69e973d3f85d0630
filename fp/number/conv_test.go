/*
 * BigFP - Radix conversion test cases.
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
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/rcornwell/bigfp/fp/defs"
)

func TestConvBinaryLiteral(t *testing.T) {
	n := mustFloat(t, 64, 0.031256789)

	s, m, e, err := n.ConvertToRadix(defs.Bin, defs.RoundNone)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 1, 0, 0, 1, 1, 0,
		1, 0, 0, 0, 1, 0, 0, 0, 0, 1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	if !slices.Equal(m, want) {
		t.Errorf("digits %v", m)
	}
	if s != defs.Pos || e != -4 {
		t.Errorf("sign %v exponent %d", s, e)
	}

	g, err := ConvertFromRadix(s, m, e, defs.Bin, 160, defs.RoundToEven)
	if err != nil {
		t.Fatal(err)
	}
	if f := g.Float64(); f != 0.031256789 {
		t.Errorf("round trip gave %v", f)
	}
}

func TestConvDecimalLiteral(t *testing.T) {
	n := mustFloat(t, 64, 0.00012345678)

	s, m, e, err := n.ConvertToRadix(defs.Dec, defs.RoundNone)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{1, 2, 3, 4, 5, 6, 7, 8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 5, 5, 4, 2}
	if !slices.Equal(m, want) {
		t.Errorf("digits %v", m)
	}
	if s != defs.Pos || e != -3 {
		t.Errorf("sign %v exponent %d", s, e)
	}
}

func TestConvOctalLiteral(t *testing.T) {
	g, err := ConvertFromRadix(defs.Neg, []uint8{1, 2, 3, 4, 5, 6, 7, 0}, 3, defs.Oct, 64, defs.RoundNone)
	if err != nil {
		t.Fatal(err)
	}
	n := mustFloat(t, 64, -83.591552734375)
	if n.Cmp(g) != 0 {
		t.Errorf("got %v", g.Float64())
	}
}

func TestConvNinesOctRoundTrip(t *testing.T) {
	words := []defs.Word{
		0x99999999, 0x99999999, 0x99999999, 0x99999999, 0x99999999, 0x99999999,
	}
	n, err := FromRawParts(words, 192, defs.Pos, -1)
	if err != nil {
		t.Fatal(err)
	}
	s, m, e, err := n.ConvertToRadix(defs.Oct, defs.RoundNone)
	if err != nil {
		t.Fatal(err)
	}
	g, err := ConvertFromRadix(s, m, e, defs.Oct, 192, defs.RoundToEven)
	if err != nil {
		t.Fatal(err)
	}
	if n.Cmp(g) != 0 {
		t.Error("octal nines round trip differs")
	}
}

func TestConvNinesDecimal(t *testing.T) {
	words := []defs.Word{
		0x99999999, 0x99999999, 0x99999999, 0x99999999, 0x99999999, 0x99999999,
	}
	n, err := FromRawParts(words, 192, defs.Pos, 0)
	if err != nil {
		t.Fatal(err)
	}
	s, m, e, err := n.ConvertToRadix(defs.Dec, defs.RoundToEven)
	if err != nil {
		t.Fatal(err)
	}
	want := make([]uint8, 58)
	want[0] = 5
	for i := 1; i < len(want); i++ {
		want[i] = 9
	}
	if !slices.Equal(m, want) {
		t.Errorf("digits %v", m)
	}
	if s != defs.Pos || e != 0 {
		t.Errorf("sign %v exponent %d", s, e)
	}

	g, err := ConvertFromRadix(s, m, e, defs.Dec, 192, defs.RoundToEven)
	if err != nil {
		t.Fatal(err)
	}
	if n.Cmp(g) != 0 {
		t.Error("decimal nines round trip differs")
	}
}

func TestConvMiscInput(t *testing.T) {
	radices := []defs.Radix{defs.Bin, defs.Oct, defs.Dec, defs.Hex}
	for _, rdx := range radices {
		for _, e := range []defs.Exponent{123, -123, 0} {
			// Empty digits are zero.
			g, err := ConvertFromRadix(defs.Pos, nil, e, rdx, 64, defs.RoundToEven)
			if err != nil || !g.IsZero() {
				t.Errorf("%v empty digits: %v %v", rdx, g, err)
			}

			// A digit at the radix is rejected.
			_, err = ConvertFromRadix(defs.Pos, []uint8{1, uint8(rdx), 0}, e, rdx, 64, defs.RoundToEven)
			if err != defs.ErrInvalidArgument {
				t.Errorf("%v digit == radix gave %v", rdx, err)
			}

			// Zero precision is the canonical zero.
			g, err = ConvertFromRadix(defs.Pos, []uint8{1, uint8(rdx) - 1, 0}, e, rdx, 0, defs.RoundToEven)
			if err != nil || !g.IsZero() {
				t.Errorf("%v zero precision: %v %v", rdx, g, err)
			}

			// All zero digits are zero.
			g, err = ConvertFromRadix(defs.Pos, make([]uint8, 256), e, rdx, 64, defs.RoundToEven)
			if err != nil || !g.IsZero() {
				t.Errorf("%v zero digits: %v %v", rdx, g, err)
			}

			g, err = ConvertFromRadix(defs.Pos, []uint8{0}, e, rdx, 64, defs.RoundToEven)
			if err != nil || !g.IsZero() {
				t.Errorf("%v single zero digit: %v %v", rdx, g, err)
			}
		}
	}
}

func randomRadix(rng *rand.Rand) defs.Radix {
	switch rng.IntN(4) {
	case 0:
		return defs.Bin
	case 1:
		return defs.Oct
	case 2:
		return defs.Dec
	}
	return defs.Hex
}

// Check that a decimal round trip differs from the original value by
// at most eps.
func checkDecClose(t *testing.T, n, g *Number, p int, eps *Number) {
	t.Helper()
	d, err := n.Sub(g, p, defs.RoundNone)
	if err != nil {
		t.Fatal(err)
	}
	if d, err = d.Abs(); err != nil {
		t.Fatal(err)
	}
	if d.Cmp(eps) > 0 {
		t.Fatalf("decimal round trip off: n=%v g=%v", n.Float64(), g.Float64())
	}
}

func TestConvRoundTripNormal(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 42))
	pRange := 8

	for i := 0; i < 100; i++ {
		p1 := (rng.IntN(pRange) + 1) * defs.WordBits
		p2 := (rng.IntN(pRange) + 1) * defs.WordBits
		p := min(p1, p2)

		n := randomNormal(t, rng, p1, int64(defs.ExponentMin)+int64(p1)+64, int64(defs.ExponentMax)-64)
		rdx := randomRadix(rng)

		s1, m1, e1, err := n.ConvertToRadix(rdx, defs.RoundToEven)
		if err != nil {
			t.Fatal(err)
		}
		g, err := ConvertFromRadix(s1, m1, e1, rdx, p2, defs.RoundToEven)
		if err != nil {
			t.Fatal(err)
		}

		if rdx == defs.Dec {
			eps, err := FromWord(1, p)
			if err != nil {
				t.Fatal(err)
			}
			eps.SetExponent(n.Exponent() - defs.Exponent(p) + 3)
			checkDecClose(t, n, g, p, eps)
		} else {
			if p2 < p1 {
				if err = n.SetPrecision(p, defs.RoundToEven); err != nil {
					t.Fatal(err)
				}
			} else if p2 > p1 {
				if err = g.SetPrecision(p, defs.RoundToEven); err != nil {
					t.Fatal(err)
				}
			}
			if n.Cmp(g) != 0 {
				t.Fatalf("iteration %d: %v round trip differs", i, rdx)
			}
		}
	}
}

func TestConvRoundTripSubnormal(t *testing.T) {
	rng := rand.New(rand.NewPCG(33, 44))
	pRange := 8

	for i := 0; i < 100; i++ {
		p1 := (rng.IntN(pRange) + 3) * defs.WordBits
		p2 := (rng.IntN(pRange) + 3) * defs.WordBits
		p := min(p1, p2)

		n := randomSubnormal(t, rng, p1)
		rdx := randomRadix(rng)

		s1, m1, e1, err := n.ConvertToRadix(rdx, defs.RoundToEven)
		if err != nil {
			t.Fatal(err)
		}
		g, err := ConvertFromRadix(s1, m1, e1, rdx, p2, defs.RoundToEven)
		if err != nil {
			t.Fatal(err)
		}

		if rdx == defs.Dec {
			eps, err := MinPositive(p)
			if err != nil {
				t.Fatal(err)
			}
			eps.SetExponent(eps.Exponent() + 1)
			checkDecClose(t, n, g, p, eps)
		} else {
			if p2 < p1 {
				if err = n.SetPrecision(p, defs.RoundToEven); err != nil {
					t.Fatal(err)
				}
			} else if p2 > p1 {
				if err = g.SetPrecision(p, defs.RoundToEven); err != nil {
					t.Fatal(err)
				}
			}
			if n.Cmp(g) != 0 {
				t.Fatalf("iteration %d: %v subnormal round trip differs", i, rdx)
			}
		}
	}
}

func TestConvZeroOutput(t *testing.T) {
	z, _ := New(64)
	for _, rdx := range []defs.Radix{defs.Bin, defs.Oct, defs.Dec, defs.Hex} {
		s, m, e, err := z.ConvertToRadix(rdx, defs.RoundToEven)
		if err != nil {
			t.Fatal(err)
		}
		if s != defs.Pos || e != 0 || !slices.Equal(m, []uint8{0}) {
			t.Errorf("%v zero output: %v %v %d", rdx, s, m, e)
		}
	}
}
