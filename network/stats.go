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
	"sort"
)

// Stats identifies one counter of a network interface/connection snapshot.
type Stats uint8

const (
	StatBytes Stats = iota + 1
	StatPackets
	StatFifo
	StatDrop
	StatErr
)

func (s Stats) String() string {
	switch s {
	case StatBytes:
		return "Traffic"
	case StatPackets:
		return "Packets"
	case StatFifo:
		return "Fifo"
	case StatDrop:
		return "Drop"
	case StatErr:
		return "Error"
	default:
		return ""
	}
}

// FormatUnitInt formats n the way this stat is conventionally displayed:
// binary (Bytes) prefixes for traffic, decimal (Number) prefixes otherwise.
func (s Stats) FormatUnitInt(n Number) string {
	if s.String() == "" {
		return ""
	}
	if s == StatBytes {
		return n.AsBytes().FormatUnitInt()
	}
	return n.FormatUnitInt()
}

// FormatUnitFloat is FormatUnitInt with prec decimal places.
func (s Stats) FormatUnitFloat(n Number, prec int) string {
	if s.String() == "" {
		return ""
	}
	if s == StatBytes {
		return n.AsBytes().FormatUnitFloat(prec)
	}
	return n.FormatUnitFloat(prec)
}

// FormatUnit is FormatUnitInt, kept as a short alias used by dashboards.
func (s Stats) FormatUnit(n Number) string {
	return s.FormatUnitInt(n)
}

// FormatLabelUnit renders "<Label>: <value>".
func (s Stats) FormatLabelUnit(n Number) string {
	return fmt.Sprintf("%s: %s", s.String(), s.FormatUnitInt(n))
}

// FormatLabelUnitPadded is FormatLabelUnit with the label padded to the
// width of the longest known label ("Packets"), keeping values aligned.
func (s Stats) FormatLabelUnitPadded(n Number) string {
	const width = len("Packets")
	label := s.String() + ":"
	return fmt.Sprintf("%-*s %s", width+1, label, s.FormatUnitInt(n))
}

// ListStatsSort returns every known Stats value, ascending.
func ListStatsSort() []int {
	list := []int{
		int(StatBytes),
		int(StatPackets),
		int(StatFifo),
		int(StatDrop),
		int(StatErr),
	}
	sort.Ints(list)
	return list
}
