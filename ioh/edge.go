/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package ioh

import "time"

const alignmentBytes = 512

// CheckScatterLimit enforces the IOV_MAX-equivalent edge policy: requests
// with more buffers than the platform (or handle-specific) limit fail.
func CheckScatterLimit(n int, max int) error {
	if max > 0 && n > max {
		return ErrorArgumentListTooLong.Errorf("%d buffers exceeds limit %d", n, max)
	}
	return nil
}

// ResolveOffset applies the append-only edge policy: for append-only
// handles the offset is always "end of file" and the caller-supplied
// offset is ignored.
func ResolveOffset(appendOnly bool, requested int64) int64 {
	if appendOnly {
		return -1
	}
	return requested
}

// CheckAligned enforces the aligned-I/O edge policy for reads: offset,
// every buffer length, and the total length must be a multiple of 512
// bytes. Writes are checked with allowShortLast=true so end-of-file writes
// may have a shorter final buffer.
func CheckAligned(required bool, offset int64, lens []int, allowShortLast bool) error {
	if !required {
		return nil
	}

	if offset%alignmentBytes != 0 {
		return ErrorNotSupported.Errorf("offset %d is not %d-byte aligned", offset, alignmentBytes)
	}

	total := 0
	for i, l := range lens {
		total += l
		last := i == len(lens)-1
		if l%alignmentBytes != 0 && !(allowShortLast && last) {
			return ErrorNotSupported.Errorf("buffer %d length %d is not %d-byte aligned", i, l, alignmentBytes)
		}
	}

	if total%alignmentBytes != 0 && !allowShortLast {
		return ErrorNotSupported.Errorf("total length %d is not %d-byte aligned", total, alignmentBytes)
	}

	return nil
}

// DeadlineExceeded reports whether deadline (zero = block forever) has
// already passed relative to now.
func DeadlineExceeded(deadline time.Time, now time.Time) bool {
	return !deadline.IsZero() && !now.Before(deadline)
}

// IsPollDeadline reports the "try once, do not sleep" zero-deadline
// convention distinguished from "block forever" (the zero time.Time).
// Callers pass a sentinel non-zero-but-already-past time for poll-only
// semantics; this helper centralises that check.
func IsPollDeadline(deadline time.Time) bool {
	return !deadline.IsZero() && deadline.Equal(time.Unix(0, 1))
}

// PollDeadline is the sentinel Time value meaning "try once, do not
// sleep", distinguishable both from the zero Time (block forever) and
// from any real wall-clock deadline.
var PollDeadline = time.Unix(0, 1)
