/*
 * BigFP - Digit formatting helpers.
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

package digits

import "strings"

var digitMap = "0123456789ABCDEF"

// FormatDigit appends one digit value as its character.
func FormatDigit(str *strings.Builder, d uint8) {
	str.WriteByte(digitMap[d&0xf])
}

// FormatDigits appends a digit sequence, most significant first.
func FormatDigits(str *strings.Builder, ds []uint8) {
	for _, d := range ds {
		str.WriteByte(digitMap[d&0xf])
	}
}

// ParseDigit converts a character to its digit value for the given
// radix. The second result is false for characters outside the radix.
func ParseDigit(by byte, radix int) (uint8, bool) {
	var v uint8
	switch {
	case by >= '0' && by <= '9':
		v = by - '0'
	case by >= 'a' && by <= 'f':
		v = by - 'a' + 10
	case by >= 'A' && by <= 'F':
		v = by - 'A' + 10
	default:
		return 0, false
	}
	if int(v) >= radix {
		return 0, false
	}
	return v, true
}
