/*
 * BigFP - Common definitions for arbitrary precision floating point.
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

package defs

import "math"

// Word is one machine word of a significand. Significands are stored
// least significant word first.
type Word uint32

const (
	// WordBits is the size of a word in bits.
	WordBits = 32

	// WordBase is 2^WordBits as a double word.
	WordBase uint64 = 1 << WordBits

	// WordMax is the largest word value.
	WordMax Word = math.MaxUint32

	// WordSignificantBit is the most significant bit of a word.
	WordSignificantBit Word = 1 << (WordBits - 1)
)

// Exponent of a number.
type Exponent int32

const (
	// ExponentMax is the largest allowed exponent.
	ExponentMax Exponent = math.MaxInt32

	// ExponentMin is the smallest allowed exponent. Numbers with a
	// smaller true exponent are pinned here and become subnormal.
	ExponentMin Exponent = math.MinInt32
)

// Sign of a number.
type Sign int8

const (
	Pos Sign = 1  // Positive.
	Neg Sign = -1 // Negative.
)

// Invert returns the opposite sign.
func (s Sign) Invert() Sign {
	return -s
}

// IsPositive reports whether the sign is positive.
func (s Sign) IsPositive() bool {
	return s == Pos
}

// RoundingMode selects how the rounding kernel treats discarded bits.
type RoundingMode int

const (
	// RoundNone truncates without inspecting the rounding bits. Used
	// internally when the caller carries guard bits of its own.
	RoundNone RoundingMode = iota

	// RoundUp rounds towards positive infinity.
	RoundUp

	// RoundDown rounds towards negative infinity.
	RoundDown

	// RoundToZero rounds towards zero.
	RoundToZero

	// RoundFromZero rounds away from zero.
	RoundFromZero

	// RoundToEven rounds ties to even. Default mode.
	RoundToEven

	// RoundToOdd rounds ties to odd.
	RoundToOdd
)

func (rm RoundingMode) String() string {
	switch rm {
	case RoundNone:
		return "none"
	case RoundUp:
		return "up"
	case RoundDown:
		return "down"
	case RoundToZero:
		return "tozero"
	case RoundFromZero:
		return "fromzero"
	case RoundToEven:
		return "toeven"
	case RoundToOdd:
		return "toodd"
	}
	return "unknown"
}

// Radix of a digit sequence.
type Radix int

const (
	Bin Radix = 2  // Binary.
	Oct Radix = 8  // Octal.
	Dec Radix = 10 // Decimal.
	Hex Radix = 16 // Hexadecimal.
)

func (r Radix) String() string {
	switch r {
	case Bin:
		return "bin"
	case Oct:
		return "oct"
	case Dec:
		return "dec"
	case Hex:
		return "hex"
	}
	return "unknown"
}

// RoundPrecision rounds a precision in bits up to a whole number of
// words.
func RoundPrecision(p int) int {
	return (p + WordBits - 1) / WordBits * WordBits
}
