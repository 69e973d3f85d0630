/*
 * BigFP - Radix conversion.
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

// Integer ratios approximating log10(2) and log2(10), used to bound
// digit counts and scaling powers.
const (
	log10of2Num = 301029996
	log2of10Num = 3321928095
	ratioDenom  = 1000000000
)

// ConvertFromRadix builds a number of precision p from a digit
// sequence in the given radix. The digits are fraction positions with
// the most significant digit first, so the magnitude is the digit
// fraction times radix^e. Empty digits give zero; a digit outside the
// radix is an invalid argument; p of zero gives the canonical zero.
func ConvertFromRadix(sign defs.Sign, digits []uint8, e defs.Exponent, rdx defs.Radix, p int, rm defs.RoundingMode) (*Number, error) {
	if err := checkPrecision(p); err != nil {
		return nil, err
	}
	if p = defs.RoundPrecision(p); p == 0 {
		return New(0)
	}
	switch rdx {
	case defs.Bin:
		return convFromBinary(sign, digits, e, p, rm)
	case defs.Oct:
		return convFromPow2(sign, digits, e, 3, p, rm)
	case defs.Dec:
		return convFromDec(sign, digits, e, p, rm)
	case defs.Hex:
		return convFromPow2(sign, digits, e, 4, p, rm)
	}
	return nil, defs.ErrInvalidArgument
}

// ConvertToRadix emits the value as a digit sequence in the given
// radix, most significant digit first, together with the sign and the
// radix exponent.
func (x *Number) ConvertToRadix(rdx defs.Radix, rm defs.RoundingMode) (defs.Sign, []uint8, defs.Exponent, error) {
	switch rdx {
	case defs.Bin:
		return x.convToBinary()
	case defs.Oct:
		return x.convToPow2(3)
	case defs.Dec:
		return x.convToDec(rm)
	case defs.Hex:
		return x.convToPow2(4)
	}
	return defs.Pos, nil, 0, defs.ErrInvalidArgument
}

func convFromBinary(sign defs.Sign, digits []uint8, e defs.Exponent, p int, rm defs.RoundingMode) (*Number, error) {
	if len(digits) == 0 {
		return New(p)
	}

	m, err := mantissa.New(len(digits))
	if err != nil {
		return nil, err
	}

	// Pack bits from the least significant end so the most
	// significant digit lands on the top bit of the top word.
	var d defs.Word
	shift := len(digits) % defs.WordBits
	if shift != 0 {
		shift = defs.WordBits - shift
	}
	w := m.Words()
	wi := 0
	for i := len(digits) - 1; i >= 0; i-- {
		v := digits[i]
		if v > 1 {
			return nil, defs.ErrInvalidArgument
		}
		d |= defs.Word(v) << shift
		shift++
		if shift == defs.WordBits {
			w[wi] = d
			wi++
			shift = 0
			d = 0
		}
	}
	if shift > 0 {
		w[wi] = d
	}

	m.UpdateBitLen()
	if m.IsZero() {
		return New(p)
	}

	// Leading zero digits lower the exponent.
	z := m.Maximize()
	m.SetBitLen(m.MaxBitLen())
	return assemble(m, sign, int64(e)-int64(z), p, rm)
}

// Input conversion for the radices commensurable with binary; s is
// the bit width of one digit.
func convFromPow2(sign defs.Sign, digits []uint8, e defs.Exponent, s int, p int, rm defs.RoundingMode) (*Number, error) {
	significant := uint8(1) << (s - 1)
	base := uint8(1) << s

	// Leading zero digits and zero bits of the first nonzero digit
	// offset the exponent.
	eShift := 0
	zeroes := 0
	firstShift := 0
	for _, v := range digits {
		if v == 0 {
			eShift -= s
			zeroes++
			continue
		}
		if v >= base {
			return nil, defs.ErrInvalidArgument
		}
		for v&significant == 0 {
			eShift--
			v <<= 1
			firstShift++
		}
		break
	}
	if zeroes == len(digits) {
		return New(p)
	}

	m, err := mantissa.New((len(digits)-zeroes)*s + defs.WordBits)
	if err != nil {
		return nil, err
	}
	eTrue := int64(e)*int64(s) + int64(eShift)

	// Pack digit bits from the top word down.
	w := m.Words()
	di := len(w) - 1
	filled := s - firstShift
	var d defs.Word
	for _, v := range digits[zeroes:] {
		if v >= base {
			return nil, defs.ErrInvalidArgument
		}
		if filled <= defs.WordBits {
			d |= defs.Word(v) << (defs.WordBits - filled)
		} else {
			d |= defs.Word(v) >> (filled - defs.WordBits)
			if di < 0 {
				break
			}
			w[di] = d
			di--
			filled -= defs.WordBits
			if filled > 0 {
				d = defs.Word(v) << (defs.WordBits - filled)
			} else {
				d = 0
			}
		}
		filled += s
	}
	if d > 0 && di >= 0 {
		w[di] = d
	}
	m.SetBitLen(m.MaxBitLen())
	return assemble(m, sign, eTrue, p, rm)
}

func convFromDec(sign defs.Sign, digits []uint8, e defs.Exponent, p int, rm defs.RoundingMode) (*Number, error) {
	leadZeroes := 0
	for _, v := range digits {
		if v != 0 {
			break
		}
		leadZeroes++
	}

	// Working precision covering all input digits plus a word of
	// slack keeps the final rounding correct.
	pf := defs.RoundPrecision(max(int(uint64(len(digits)-leadZeroes)*log2of10Num/ratioDenom), p) + defs.WordBits)

	f, err := New(pf)
	if err != nil {
		return nil, err
	}

	// Build the mantissa nine decimal digits at a time.
	var word defs.Word
	i := 0
	for _, v := range digits[leadZeroes:] {
		if v > 9 {
			return nil, defs.ErrInvalidArgument
		}
		word = word*10 + defs.Word(v)
		i++
		if i == 9 {
			i = 0
			d2, err := FromWord(word, 1)
			if err != nil {
				return nil, err
			}
			if f, err = f.Mul(TenPow9(), pf, defs.RoundNone); err != nil {
				return nil, err
			}
			if f, err = f.Add(d2, pf, defs.RoundNone); err != nil {
				return nil, err
			}
			word = 0
		}
	}
	if i > 0 {
		tenPow := defs.Word(10)
		for ; i > 1; i-- {
			tenPow *= 10
		}
		tp, err := FromWord(tenPow, 1)
		if err != nil {
			return nil, err
		}
		d2, err := FromWord(word, 1)
		if err != nil {
			return nil, err
		}
		if f, err = f.Mul(tp, pf, defs.RoundNone); err != nil {
			return nil, err
		}
		if f, err = f.Add(d2, pf, defs.RoundNone); err != nil {
			return nil, err
		}
	}

	// Scale by the remaining power of ten, iterating the largest
	// representable power when the target is out of reach in one
	// step.
	n := int64(e) - int64(len(digits))
	nmax := int(uint64(defs.ExponentMax) * 301029995 / ratioDenom)

	ten, err := FromWord(10, 4)
	if err != nil {
		return nil, err
	}

	nabs := n
	if nabs < 0 {
		nabs = -nabs
	}
	if nabs > int64(nmax) {
		fpnmax, err := ten.Powi(nmax, pf, defs.RoundNone)
		if err != nil {
			return nil, err
		}
		for nabs > int64(nmax) {
			if n < 0 {
				f, err = f.Div(fpnmax, pf, defs.RoundNone)
			} else {
				f, err = f.Mul(fpnmax, pf, defs.RoundNone)
			}
			if err != nil {
				return nil, err
			}
			nabs -= int64(nmax)
		}
	}
	if nabs > 0 {
		fpn, err := ten.Powi(int(nabs), max(pf, p)+defs.WordBits, defs.RoundNone)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			f, err = f.Div(fpn, pf, defs.RoundNone)
		} else {
			f, err = f.Mul(fpn, pf, defs.RoundNone)
		}
		if err != nil {
			return nil, err
		}
	}

	f.SetSign(sign)
	if err = f.SetPrecision(p, rm); err != nil {
		return nil, err
	}
	return f, nil
}

func (x *Number) convToBinary() (defs.Sign, []uint8, defs.Exponent, error) {
	if x.IsZero() {
		return x.sign, []uint8{0}, 0, nil
	}
	w := x.m.Words()
	ret := make([]uint8, 0, len(w)*defs.WordBits)
	for i := len(w) - 1; i >= 0; i-- {
		for j := defs.WordBits - 1; j >= 0; j-- {
			ret = append(ret, uint8(w[i]>>j&1))
		}
	}
	return x.sign, ret, x.e, nil
}

// Output conversion for the radices commensurable with binary. The
// significand is walked high to low through a double word window that
// advances s bits per digit.
func (x *Number) convToPow2(s int) (defs.Sign, []uint8, defs.Exponent, error) {
	if x.IsZero() {
		return x.sign, []uint8{0}, 0, nil
	}

	e := int(x.e)
	eShift := e % s
	if eShift < 0 {
		eShift = -eShift
	}
	e /= s
	if eShift != 0 && x.e > 0 {
		eShift = s - eShift
		e++
	}

	mask := uint64(defs.WordMax) >> (defs.WordBits - s)
	w := x.m.Words()
	i := len(w) - 1
	d := uint64(w[i])
	done := defs.WordBits - s + eShift

	var ret []uint8
	for {
		ret = append(ret, uint8(d>>done&mask))
		if done < s {
			d <<= defs.WordBits
			i--
			if i < 0 {
				break
			}
			d |= uint64(w[i])
			done += defs.WordBits
		}
		done -= s
	}
	if done > 0 {
		if done < s {
			done += defs.WordBits - s
		}
		ret = append(ret, uint8(d>>done&mask))
	}

	return x.sign, ret, defs.Exponent(e), nil
}

func (x *Number) convToDec(rm defs.RoundingMode) (defs.Sign, []uint8, defs.Exponent, error) {
	// With x = m * 2^e and n = floor(|e| * log10(2)), scaling by 10^n
	// brings the value into a range where one decimal digit falls out
	// per multiply by ten.
	absE := int64(x.e)
	sig := defs.Exponent(1)
	if absE < 0 {
		absE = -absE
		sig = -1
	} else if absE == 0 {
		sig = 0
	}
	n := int(uint64(absE) * log10of2Num / ratioDenom)
	l := int(uint64(x.m.MaxBitLen())*log10of2Num/ratioDenom + 1)

	var digits []uint8
	var eShift defs.Exponent
	var err error
	if n == 0 {
		digits, eShift, err = x.convMantissa(l, defs.Dec, rm)
	} else {
		pw := x.m.MaxBitLen() + defs.WordBits
		rdx := numberForRadix(defs.Dec)

		var f *Number
		if n >= 646456993 {
			// One power of ten short keeps Powi clear of exponent
			// overflow; the last factor is applied separately.
			d, perr := rdx.Powi(n-1, pw, defs.RoundNone)
			if perr != nil {
				return x.sign, nil, 0, perr
			}
			if x.e < 0 {
				if f, err = x.Mul(d, x.m.MaxBitLen(), defs.RoundNone); err == nil {
					f, err = f.Mul(rdx, x.m.MaxBitLen(), defs.RoundNone)
				}
			} else {
				if f, err = x.Div(d, x.m.MaxBitLen(), defs.RoundNone); err == nil {
					f, err = f.Div(rdx, x.m.MaxBitLen(), defs.RoundNone)
				}
			}
		} else {
			d, perr := rdx.Powi(n, pw, defs.RoundNone)
			if perr != nil {
				return x.sign, nil, 0, perr
			}
			if x.e < 0 {
				f, err = x.Mul(d, x.m.MaxBitLen(), defs.RoundNone)
			} else {
				f, err = x.Div(d, x.m.MaxBitLen(), defs.RoundNone)
			}
		}
		if err != nil {
			return x.sign, nil, 0, err
		}
		digits, eShift, err = f.convMantissa(l, defs.Dec, rm)
	}
	if err != nil {
		return x.sign, nil, 0, err
	}

	return x.sign, digits, defs.Exponent(n)*sig + eShift, nil
}

// Extract l digits of the significand in the given radix by repeated
// multiply and integer part removal, then round the leftover fraction
// into the emitted digits.
func (x *Number) convMantissa(l int, rdx defs.Radix, rm defs.RoundingMode) ([]uint8, defs.Exponent, error) {
	if x.IsZero() {
		return []uint8{0}, 0, nil
	}

	var eShift defs.Exponent
	ret := make([]uint8, 0, l+3)

	r, err := x.Clone()
	if err != nil {
		return nil, 0, err
	}
	r.SetSign(defs.Pos)
	if err = r.SetPrecision(r.m.MaxBitLen()+4, defs.RoundNone); err != nil {
		return nil, 0, err
	}

	rdxNum := numberForRadix(rdx)
	rdxWord := defs.Word(rdx)

	step := func() (defs.Word, error) {
		d, serr := r.Mul(rdxNum, r.m.MaxBitLen(), defs.RoundNone)
		if serr != nil {
			return 0, serr
		}
		w := d.IntAsWord()
		r, serr = d.Fract()
		return w, serr
	}

	word, err := step()
	if err != nil {
		return nil, 0, err
	}
	if word == 0 {
		// The first multiply produced no integer digit.
		eShift = -1
		if word, err = step(); err != nil {
			return nil, 0, err
		}
	} else if word >= rdxWord {
		// The first multiply overflowed the radix.
		eShift = 1
		ret = append(ret, uint8(word/rdxWord), uint8(word%rdxWord))
		if word, err = step(); err != nil {
			return nil, 0, err
		}
	}

	for i := 0; i < l; i++ {
		ret = append(ret, uint8(word))
		if word, err = step(); err != nil {
			return nil, 0, err
		}
	}

	if roundsUpToOne(r, rm) {
		word++
		if word == rdxWord {
			ret = append(ret, 0)
			i := len(ret) - 2
			for i > 0 && ret[i]+1 == uint8(rdxWord) {
				ret[i] = 0
				i--
			}
			ret[i]++
		} else {
			ret = append(ret, uint8(word))
		}
	} else {
		ret = append(ret, uint8(word))
	}

	// Trim trailing zeroes.
	n := len(ret)
	for n > 1 && ret[n-1] == 0 {
		n--
	}
	return ret[:n], eShift, nil
}

// Decide whether a positive fraction below one rounds to one under
// the given mode. The guard bit is the half position, everything
// below is sticky, and the retained integer bit is zero.
func roundsUpToOne(r *Number, rm defs.RoundingMode) bool {
	if r.IsZero() || rm == defs.RoundNone {
		return false
	}
	guard := r.e == 0
	sticky := true
	if guard {
		sticky = r.m.LowBitsNonzero(r.m.MaxBitLen() - 1)
	}
	switch rm {
	case defs.RoundUp, defs.RoundFromZero:
		return guard || sticky
	case defs.RoundDown, defs.RoundToZero:
		return guard && sticky
	case defs.RoundToEven:
		return guard && sticky
	case defs.RoundToOdd:
		return guard
	}
	return false
}
