/*
 * BigFP - Toom-Cook 3-way multiplication.
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

// Each operand is split into three pieces, the product polynomial is
// evaluated at the points 0, 1, -1, 2 and infinity, the five smaller
// products are computed recursively, and the result coefficients are
// recovered by interpolation. Only the evaluation at -1 can go
// negative, so intermediates carry an explicit sign.

// Signed multi word integer used during interpolation.
type signedWords struct {
	w   []defs.Word
	neg bool
}

// Length in words ignoring high zero words.
func sigLen(a []defs.Word) int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != 0 {
			return i + 1
		}
	}
	return 0
}

// Compare magnitudes of two little endian word slices.
func cmpWords(a, b []defs.Word) int {
	sa := sigLen(a)
	sb := sigLen(b)
	if sa != sb {
		if sa > sb {
			return 1
		}
		return -1
	}
	for i := sa - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// a + b into a fresh slice one word longer than the larger operand.
func addWords(a, b []defs.Word) []defs.Word {
	if len(a) < len(b) {
		a, b = b, a
	}
	r := make([]defs.Word, len(a)+1)
	var c uint64
	for i := range a {
		s := uint64(a[i]) + c
		if i < len(b) {
			s += uint64(b[i])
		}
		r[i] = defs.Word(s)
		c = s >> defs.WordBits
	}
	r[len(a)] = defs.Word(c)
	return r
}

// a - b into a fresh slice; a must not be smaller than b.
func subWords(a, b []defs.Word) []defs.Word {
	r := make([]defs.Word, len(a))
	var borrow uint64
	for i := range a {
		var bv uint64
		if i < len(b) {
			bv = uint64(b[i])
		}
		t := uint64(a[i]) - bv - borrow
		r[i] = defs.Word(t)
		if t>>defs.WordBits != 0 {
			borrow = 1
		} else {
			borrow = 0
		}
	}
	return r
}

// a << k for k below the word size, into a fresh slice.
func shlWords(a []defs.Word, k uint) []defs.Word {
	r := make([]defs.Word, len(a)+1)
	var c defs.Word
	for i := range a {
		r[i] = a[i]<<k | c
		c = a[i] >> (defs.WordBits - k)
	}
	r[len(a)] = c
	return r
}

// Exact in place division by two.
func div2Words(a []defs.Word) {
	for i := range a {
		v := a[i] >> 1
		if i+1 < len(a) {
			v |= a[i+1] << (defs.WordBits - 1)
		}
		a[i] = v
	}
}

// Exact in place division by three, most significant word first.
func div3Words(a []defs.Word) {
	var r uint64
	for i := len(a) - 1; i >= 0; i-- {
		cur := r<<defs.WordBits | uint64(a[i])
		a[i] = defs.Word(cur / 3)
		r = cur % 3
	}
}

func sAdd(x, y signedWords) signedWords {
	if x.neg == y.neg {
		return signedWords{w: addWords(x.w, y.w), neg: x.neg}
	}
	switch cmpWords(x.w, y.w) {
	case 1:
		return signedWords{w: subWords(x.w, y.w), neg: x.neg}
	case -1:
		return signedWords{w: subWords(y.w, x.w), neg: y.neg}
	}
	return signedWords{}
}

func sSub(x, y signedWords) signedWords {
	return sAdd(x, signedWords{w: y.w, neg: !y.neg})
}

func sShl(x signedWords, k uint) signedWords {
	return signedWords{w: shlWords(x.w, k), neg: x.neg}
}

// Accumulate src into dst at a word offset. The sum never overflows
// dst; any src words beyond dst are zero.
func addAt(dst, src []defs.Word, off int) {
	var c uint64
	i := 0
	for ; i < len(src) && off+i < len(dst); i++ {
		s := uint64(dst[off+i]) + uint64(src[i]) + c
		dst[off+i] = defs.Word(s)
		c = s >> defs.WordBits
	}
	for ; c > 0 && off+i < len(dst); i++ {
		s := uint64(dst[off+i]) + c
		dst[off+i] = defs.Word(s)
		c = s >> defs.WordBits
	}
}

// Multiply two word slices with Toom-Cook 3.
func toom3Mul(a, b []defs.Word) ([]defs.Word, error) {
	k := (max(len(a), len(b)) + 2) / 3

	piece := func(x []defs.Word, i int) []defs.Word {
		lo := i * k
		if lo >= len(x) {
			return nil
		}
		return x[lo:min(lo+k, len(x))]
	}

	// Evaluate one operand at 1, -1 and 2.
	eval := func(x0, x1, x2 []defs.Word) ([]defs.Word, []defs.Word, signedWords) {
		s := addWords(x0, x2)
		v1 := addWords(s, x1)
		var vm1 signedWords
		switch cmpWords(s, x1) {
		case 1:
			vm1 = signedWords{w: subWords(s, x1)}
		case -1:
			vm1 = signedWords{w: subWords(x1, s), neg: true}
		}
		t := addWords(shlWords(x2, 1), x1)
		v2 := addWords(shlWords(t, 1), x0)
		return v1, v2, vm1
	}

	a0, a1, a2 := piece(a, 0), piece(a, 1), piece(a, 2)
	b0, b1, b2 := piece(b, 0), piece(b, 1), piece(b, 2)

	av1, av2, avm1 := eval(a0, a1, a2)
	bv1, bv2, bvm1 := eval(b0, b1, b2)

	v0, err := mulWords(a0, b0)
	if err != nil {
		return nil, err
	}
	p1, err := mulWords(av1, bv1)
	if err != nil {
		return nil, err
	}
	pm1w, err := mulWords(avm1.w, bvm1.w)
	if err != nil {
		return nil, err
	}
	pm1 := signedWords{w: pm1w, neg: avm1.neg != bvm1.neg && sigLen(pm1w) > 0}
	p2, err := mulWords(av2, bv2)
	if err != nil {
		return nil, err
	}
	vinf, err := mulWords(a2, b2)
	if err != nil {
		return nil, err
	}

	sv0 := signedWords{w: v0}
	sv1 := signedWords{w: p1}
	sv2 := signedWords{w: p2}
	svinf := signedWords{w: vinf}

	// c2 = (v1 + v-1)/2 - v0 - vinf
	t1 := sAdd(sv1, pm1)
	div2Words(t1.w)
	c2 := sSub(sSub(t1, sv0), svinf)

	// t2 = (v1 - v-1)/2 = c1 + c3
	t2 := sSub(sv1, pm1)
	div2Words(t2.w)

	// c3 = ((v2 - v0 - 4 c2 - 16 vinf)/2 - t2)/3
	u := sSub(sSub(sSub(sv2, sv0), sShl(c2, 2)), sShl(svinf, 4))
	div2Words(u.w)
	c3 := sSub(u, t2)
	div3Words(c3.w)

	c1 := sSub(t2, c3)

	res, err := reserveNew(len(a) + len(b))
	if err != nil {
		return nil, err
	}
	addAt(res, v0, 0)
	addAt(res, c1.w, k)
	addAt(res, c2.w, 2*k)
	addAt(res, c3.w, 3*k)
	addAt(res, vinf, 4*k)
	return res, nil
}
