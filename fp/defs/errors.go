/*
 * BigFP - Error values returned by the engine.
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

import "errors"

var (
	// ErrMemoryAllocation reports that a significand buffer could not
	// be allocated.
	ErrMemoryAllocation = errors.New("memory allocation failed")

	// ErrInvalidArgument reports a bad digit, radix, precision or
	// exponent argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDivisionByZero reports division by zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// ExponentOverflowError reports that the exponent of a result left
// the range [ExponentMin, ExponentMax]. Sign tells which side
// overflowed.
type ExponentOverflowError struct {
	Sign Sign
}

func (e *ExponentOverflowError) Error() string {
	if e.Sign == Neg {
		return "negative exponent overflow"
	}
	return "positive exponent overflow"
}

// ExponentOverflow builds an overflow error for the given sign.
func ExponentOverflow(s Sign) error {
	return &ExponentOverflowError{Sign: s}
}

// IsExponentOverflow reports whether err is an exponent overflow and
// returns its sign.
func IsExponentOverflow(err error) (Sign, bool) {
	var eo *ExponentOverflowError
	if errors.As(err, &eo) {
		return eo.Sign, true
	}
	return Pos, false
}
