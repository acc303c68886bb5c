/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package network

import (
	"fmt"
	"math"
	"strconv"
)

// Number is a plain count (packets, connections, errors...), formatted with
// decimal SI prefixes (K = 10^3, as opposed to Bytes' binary prefixes).
type Number uint64

func (n Number) String() string {
	return strconv.FormatUint(uint64(n), 10)
}

func (n Number) AsUint64() uint64 {
	return uint64(n)
}

func (n Number) AsFloat64() float64 {
	return float64(n)
}

func (n Number) AsBytes() Bytes {
	return Bytes(n)
}

// FormatUnitInt renders n with the largest decimal SI prefix that keeps the
// integer part non-zero, right-aligned on a 4-rune field.
func (n Number) FormatUnitInt() string {
	return formatUnit(uint64(n), 10, 0)
}

// FormatUnitFloat is FormatUnitInt with prec decimal places. prec <= 0
// delegates to FormatUnitInt.
func (n Number) FormatUnitFloat(prec int) string {
	return formatUnit(uint64(n), 10, prec)
}

// formatUnit divides v by the largest base^power <= v (power taken from
// powerList), appending the matching SI/binary prefix.
func formatUnit(v uint64, base float64, prec int) string {
	for _, p := range powerList() {
		threshold := math.Pow(base, float64(p))

		if p != _PowerUnit_ && float64(v) < threshold {
			continue
		}

		unit := power2Unit(p)
		if unit == "" {
			return strconv.FormatUint(v, 10)
		}

		val := float64(v) / threshold

		if prec <= 0 {
			return fmt.Sprintf("%4d %s", uint64(math.Round(val)), unit)
		}

		return fmt.Sprintf("%*.*f %s", prec+5, prec, val, unit)
	}

	return strconv.FormatUint(v, 10)
}
