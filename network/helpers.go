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

// decimal SI exponents, used by Number's FormatUnit* (base 1000).
const (
	_PowerUnit_  = 0
	_PowerKilo_  = 3
	_PowerMega_  = 6
	_PowerGiga_  = 9
	_PowerTera_  = 12
	_PowerPeta_  = 15
	_PowerExa_   = 18
	_PowerZetta_ = 21
	_PowerYotta_ = 24
)

// powerList returns the known decimal exponents, largest first.
func powerList() []int {
	return []int{
		_PowerYotta_,
		_PowerZetta_,
		_PowerExa_,
		_PowerPeta_,
		_PowerTera_,
		_PowerGiga_,
		_PowerMega_,
		_PowerKilo_,
		_PowerUnit_,
	}
}

// power2Unit maps a decimal exponent to its SI prefix. Negative powers and
// the unit power itself return "". Powers above Yotta saturate to "Y".
func power2Unit(power int) string {
	if power < 0 {
		return ""
	}

	switch {
	case power >= _PowerYotta_:
		return "Y"
	case power >= _PowerZetta_:
		return "Z"
	case power >= _PowerExa_:
		return "E"
	case power >= _PowerPeta_:
		return "P"
	case power >= _PowerTera_:
		return "T"
	case power >= _PowerGiga_:
		return "G"
	case power >= _PowerMega_:
		return "M"
	case power >= _PowerKilo_:
		return "K"
	default:
		return ""
	}
}
