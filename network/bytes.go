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

// byte binary exponents (base 1024), largest first, paired with their unit.
var _byteUnits = []struct {
	power int
	unit  string
}{
	{5, "PB"},
	{4, "TB"},
	{3, "GB"},
	{2, "MB"},
	{1, "KB"},
	{0, ""},
}

// Bytes is a byte count, formatted with binary prefixes (KB = 2^10) as
// opposed to Number's decimal prefixes.
type Bytes uint64

func (b Bytes) String() string {
	return strconv.FormatUint(uint64(b), 10)
}

func (b Bytes) AsUint64() uint64 {
	return uint64(b)
}

func (b Bytes) AsFloat64() float64 {
	return float64(b)
}

func (b Bytes) AsNumber() Number {
	return Number(b)
}

// FormatUnitInt renders b with the largest binary prefix that keeps the
// integer part non-zero, right-aligned on a 4-rune field.
func (b Bytes) FormatUnitInt() string {
	return formatBytesUnit(uint64(b), 0)
}

// FormatUnitFloat is FormatUnitInt with prec decimal places. prec <= 0
// delegates to FormatUnitInt.
func (b Bytes) FormatUnitFloat(prec int) string {
	return formatBytesUnit(uint64(b), prec)
}

func formatBytesUnit(v uint64, prec int) string {
	for _, u := range _byteUnits {
		threshold := math.Pow(1024, float64(u.power))

		if u.power != 0 && float64(v) < threshold {
			continue
		}

		if u.unit == "" {
			return strconv.FormatUint(v, 10)
		}

		val := float64(v) / threshold

		if prec <= 0 {
			return fmt.Sprintf("%4d %s", uint64(math.Round(val)), u.unit)
		}

		return fmt.Sprintf("%*.*f %s", prec+5, prec, val, u.unit)
	}

	return strconv.FormatUint(v, 10)
}
