/*
 * BigFP - Shared immutable constants.
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
	"sync"

	"github.com/rcornwell/bigfp/fp/defs"
)

// Small constants the conversion code leans on. They are created on
// first use and must never be mutated; operations only ever read
// them.

func mustWord(w defs.Word, p int) *Number {
	n, err := FromWord(w, p)
	if err != nil {
		panic(err)
	}
	return n
}

var (
	constOne     = sync.OnceValue(func() *Number { return mustWord(1, 1) })
	constTwo     = sync.OnceValue(func() *Number { return mustWord(2, 1) })
	constEight   = sync.OnceValue(func() *Number { return mustWord(8, 1) })
	constTen     = sync.OnceValue(func() *Number { return mustWord(10, 4) })
	constSixteen = sync.OnceValue(func() *Number { return mustWord(16, 1) })
	constTenPow9 = sync.OnceValue(func() *Number { return mustWord(1000000000, 1) })
)

// One returns the shared read-only constant 1.
func One() *Number { return constOne() }

// Two returns the shared read-only constant 2.
func Two() *Number { return constTwo() }

// Ten returns the shared read-only constant 10.
func Ten() *Number { return constTen() }

// TenPow9 returns the shared read-only constant 10^9, the scale of
// one decimal digit group.
func TenPow9() *Number { return constTenPow9() }

// The constant matching a radix.
func numberForRadix(rdx defs.Radix) *Number {
	switch rdx {
	case defs.Bin:
		return constTwo()
	case defs.Oct:
		return constEight()
	case defs.Hex:
		return constSixteen()
	default:
		return constTen()
	}
}
