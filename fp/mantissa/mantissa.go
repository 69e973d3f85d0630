/*
 * BigFP - Significand buffer and primitive operations.
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

// Package mantissa implements fixed width unsigned significand
// arithmetic over arrays of machine words. A significand represents a
// fraction in the range [1/2, 1): the most significant bit of the most
// significant word is the leading 1 of a normal value. Words are kept
// least significant first.
package mantissa

import (
	"math/bits"

	"github.com/rcornwell/bigfp/fp/defs"
)

// Largest buffer handed out, in words. Requests above this are treated
// as an allocation failure rather than letting the runtime abort.
const maxBufferWords = 1 << 28

// Mantissa holds the significand of a number. n is the number of
// active bits; n == 0 represents the value zero, n less than the buffer
// size in bits occurs only for subnormal values.
type Mantissa struct {
	m []defs.Word
	n int
}

// Bit length to length in words, rounding up.
func wordLen(p int) int {
	return (p + defs.WordBits - 1) / defs.WordBits
}

// Reserve a buffer for a significand.
func reserveNew(sz int) ([]defs.Word, error) {
	if sz < 0 || sz > maxBufferWords {
		return nil, defs.ErrMemoryAllocation
	}
	if sz == 0 {
		sz = 1
	}
	return make([]defs.Word, sz), nil
}

// New returns a significand of at least p bits holding zero.
func New(p int) (*Mantissa, error) {
	m, err := reserveNew(wordLen(p))
	if err != nil {
		return nil, err
	}
	return &Mantissa{m: m}, nil
}

// Oned returns a significand of at least p bits with every bit set.
func Oned(p int) (*Mantissa, error) {
	m, err := reserveNew(wordLen(p))
	if err != nil {
		return nil, err
	}
	for i := range m {
		m[i] = defs.WordMax
	}
	return &Mantissa{m: m, n: len(m) * defs.WordBits}, nil
}

// One returns a significand of at least p bits for the value 1/2, the
// smallest normal fraction.
func One(p int) (*Mantissa, error) {
	m, err := reserveNew(wordLen(p))
	if err != nil {
		return nil, err
	}
	m[len(m)-1] = defs.WordSignificantBit
	return &Mantissa{m: m, n: len(m) * defs.WordBits}, nil
}

// Min returns a significand of at least p bits for the smallest
// subnormal value: only the lowest bit set.
func Min(p int) (*Mantissa, error) {
	m, err := reserveNew(wordLen(p))
	if err != nil {
		return nil, err
	}
	m[0] = 1
	return &Mantissa{m: m, n: 1}, nil
}

// Ten returns a significand of at least p bits for the fraction 5/8,
// the normalized significand of the value ten.
func Ten(p int) (*Mantissa, error) {
	m, err := reserveNew(wordLen(p))
	if err != nil {
		return nil, err
	}
	m[len(m)-1] = defs.WordSignificantBit | defs.WordSignificantBit>>2
	return &Mantissa{m: m, n: len(m) * defs.WordBits}, nil
}

// FromU64 returns a significand of at least p bits holding the
// normalized value of u, and the left shift that was applied. The
// caller folds the shift into the exponent.
func FromU64(p int, u uint64) (int, *Mantissa, error) {
	m, err := New(p)
	if err != nil {
		return 0, nil, err
	}
	if u == 0 {
		return 0, m, nil
	}
	shift := bits.LeadingZeros64(u)
	u <<= shift
	l := len(m.m)
	m.m[l-1] = defs.Word(u >> defs.WordBits)
	if l > 1 {
		m.m[l-2] = defs.Word(u)
	}
	m.n = m.MaxBitLen()
	return shift, m, nil
}

// ToU64 returns the top 64 bits of the significand.
func (m *Mantissa) ToU64() uint64 {
	l := len(m.m)
	ret := uint64(m.m[l-1]) << defs.WordBits
	if l > 1 {
		ret |= uint64(m.m[l-2])
	}
	return ret
}

// IsZero reports whether the significand represents zero.
func (m *Mantissa) IsZero() bool {
	return m.n == 0
}

// IsSubnormal reports whether the leading bits of the significand are
// allowed to be zero.
func (m *Mantissa) IsSubnormal() bool {
	return m.n < m.MaxBitLen()
}

// IsAllZero reports whether every word is zero.
func (m *Mantissa) IsAllZero() bool {
	for _, v := range m.m {
		if v != 0 {
			return false
		}
	}
	return true
}

// Len returns the length of the significand in words.
func (m *Mantissa) Len() int {
	return len(m.m)
}

// MaxBitLen returns the precision of the significand in bits.
func (m *Mantissa) MaxBitLen() int {
	return len(m.m) * defs.WordBits
}

// BitLen returns the number of active bits.
func (m *Mantissa) BitLen() int {
	return m.n
}

// SetBitLen sets the number of active bits.
func (m *Mantissa) SetBitLen(n int) {
	m.n = n
}

// UpdateBitLen recomputes the active bit count from the position of
// the highest set bit.
func (m *Mantissa) UpdateBitLen() {
	for i := len(m.m) - 1; i >= 0; i-- {
		if m.m[i] != 0 {
			m.n = (i+1)*defs.WordBits - bits.LeadingZeros32(uint32(m.m[i]))
			return
		}
	}
	m.n = 0
}

// DecBitLen lowers the active bit count by l, stopping at zero.
func (m *Mantissa) DecBitLen(l int) {
	if m.n > l {
		m.n -= l
	} else {
		m.n = 0
	}
}

// Words exposes the underlying word buffer, least significant word
// first. The buffer is owned by the significand.
func (m *Mantissa) Words() []defs.Word {
	return m.m
}

// OrLowBit sets the sticky bit in the lowest position. Used when a
// lossy step already discarded nonzero bits, so a later rounding still
// observes a correct sticky state.
func (m *Mantissa) OrLowBit() {
	m.m[0] |= 1
	if m.n == 0 {
		m.n = 1
	}
}

// MostSignificantWord returns the word holding the leading bit.
func (m *Mantissa) MostSignificantWord() defs.Word {
	if m.n == 0 {
		return 0
	}
	return m.m[(m.n-1)/defs.WordBits]
}

// ShiftRight shifts the buffer right by k bits in place. Bits shifted
// past the bottom are lost.
func (m *Mantissa) ShiftRight(k int) {
	idx := k / defs.WordBits
	shift := k % defs.WordBits
	l := len(m.m)
	switch {
	case idx >= l:
		for i := range m.m {
			m.m[i] = 0
		}
	case shift > 0:
		for i := 0; i < l; i++ {
			var d uint64
			if idx+i+1 < l {
				d = uint64(m.m[idx+i+1]) << defs.WordBits
			}
			if idx+i < l {
				d |= uint64(m.m[idx+i])
			}
			m.m[i] = defs.Word(d >> shift)
		}
	case idx > 0:
		copy(m.m, m.m[idx:])
		for i := l - idx; i < l; i++ {
			m.m[i] = 0
		}
	}
}

// ShiftLeft shifts the buffer left by k bits in place. Bits shifted
// past the top are lost.
func (m *Mantissa) ShiftLeft(k int) {
	shiftLeft(m.m, k)
}

// Shift a word slice left by k bits.
func shiftLeft(m []defs.Word, k int) {
	idx := k / defs.WordBits
	shift := k % defs.WordBits
	l := len(m)
	switch {
	case idx >= l:
		for i := range m {
			m[i] = 0
		}
	case shift > 0:
		for i := l - 1; i >= 0; i-- {
			var d uint64
			if i >= idx {
				d = uint64(m[i-idx]) << defs.WordBits
			}
			if i > idx {
				d |= uint64(m[i-idx-1])
			}
			m[i] = defs.Word(d >> (defs.WordBits - shift))
		}
	case idx > 0:
		copy(m[idx:], m[:l-idx])
		for i := 0; i < idx; i++ {
			m[i] = 0
		}
	}
}

// Maximize shifts the value left until the top bit is set and returns
// the shift amount. The caller subtracts the shift from the exponent.
// A zero value is left alone.
func (m *Mantissa) Maximize() int {
	return maximize(m.m)
}

func maximize(m []defs.Word) int {
	shift := 0
	var d defs.Word
	for i := len(m) - 1; i >= 0; i-- {
		d = m[i]
		if d != 0 {
			break
		}
		shift += defs.WordBits
	}
	if d == 0 {
		return 0
	}
	for d&defs.WordSignificantBit == 0 {
		d <<= 1
		shift++
	}
	shiftLeft(m, shift)
	return shift
}

// Normalized returns a left normalized copy of a subnormal significand
// and the shift that was applied.
func (m *Mantissa) Normalized() (int, *Mantissa, error) {
	r, err := m.Clone()
	if err != nil {
		return 0, nil, err
	}
	shift := m.MaxBitLen() - m.n
	if shift > 0 && m.n > 0 {
		shiftLeft(r.m, shift)
		r.n = r.MaxBitLen()
	}
	return shift, r, nil
}

// AbsCmp compares magnitudes, scanning from the most significant word
// down. Buffers of unequal length compare over the common tail first,
// then any nonzero word in the longer prefix decides.
func (m *Mantissa) AbsCmp(m2 *Mantissa) int {
	l := min(len(m.m), len(m2.m))
	for i := 1; i <= l; i++ {
		a := m.m[len(m.m)-i]
		b := m2.m[len(m2.m)-i]
		if a != b {
			if a > b {
				return 1
			}
			return -1
		}
	}
	for _, v := range m.m[:len(m.m)-l] {
		if v != 0 {
			return 1
		}
	}
	for _, v := range m2.m[:len(m2.m)-l] {
		if v != 0 {
			return -1
		}
	}
	return 0
}

// MaskBits clears k bits from the bottom.
func (m *Mantissa) MaskBits(k int) {
	for i := range m.m {
		if k >= defs.WordBits {
			m.m[i] = 0
			k -= defs.WordBits
		} else if k > 0 {
			m.m[i] &= defs.WordMax << k
			k = 0
		} else {
			break
		}
	}
}

// LowBitsNonzero reports whether any of the bottom k bits is set.
func (m *Mantissa) LowBitsNonzero(k int) bool {
	for i := range m.m {
		if k >= defs.WordBits {
			if m.m[i] != 0 {
				return true
			}
			k -= defs.WordBits
		} else if k > 0 {
			return m.m[i]&^(defs.WordMax<<k) != 0
		} else {
			break
		}
	}
	return false
}

// TruncTo drops low words so that the precision becomes bits. The
// active bit count is not touched.
func (m *Mantissa) TruncTo(bits int) {
	w := bits / defs.WordBits
	if w < len(m.m) {
		m.m = m.m[len(m.m)-w:]
	}
}

// Extend grows the buffer to at least bits of precision, keeping the
// value. New zero words are added at the least significant end and the
// active bit count moves up with them.
func (m *Mantissa) Extend(bits int) error {
	w := wordLen(bits)
	if w <= len(m.m) {
		return nil
	}
	nm, err := reserveNew(w)
	if err != nil {
		return err
	}
	copy(nm[w-len(m.m):], m.m)
	if m.n > 0 {
		m.n += (w - len(m.m)) * defs.WordBits
	}
	m.m = nm
	return nil
}

// Clone returns a deep copy.
func (m *Mantissa) Clone() (*Mantissa, error) {
	nm, err := reserveNew(len(m.m))
	if err != nil {
		return nil, err
	}
	copy(nm, m.m)
	return &Mantissa{m: nm, n: m.n}, nil
}

// RawParts returns the word buffer and active bit count.
func (m *Mantissa) RawParts() ([]defs.Word, int) {
	return m.m, m.n
}

// FromRawParts builds a significand from a word buffer and active bit
// count.
func FromRawParts(words []defs.Word, n int) (*Mantissa, error) {
	if n < 0 || n > len(words)*defs.WordBits {
		return nil, defs.ErrInvalidArgument
	}
	nm, err := reserveNew(len(words))
	if err != nil {
		return nil, err
	}
	copy(nm, words)
	return &Mantissa{m: nm, n: n}, nil
}
