/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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
 */

//go:build windows

package socket

import (
	"context"
	"time"
)

const maxPollHandles = 1024

// PollHandle names an individual wait in a socket.Poll call.
type PollHandle struct {
	Socket *ByteSocket
	Read   bool
	Write  bool
}

// PollResult reports readiness for the handle at the same index.
type PollResult struct {
	Readable bool
	Writable bool
	Error    bool
}

// Poll is a read-deadline-based approximation on Windows: without a
// WSAPoll binding in golang.org/x/sys/windows's stable surface, each
// socket's deadline is probed with a zero-byte Read instead of a true
// multiplexed wait. Real event-driven polling goes through iomux/iocp.
func Poll(ctx context.Context, handles []PollHandle, deadline time.Time) ([]PollResult, error) {
	if len(handles) > maxPollHandles {
		return nil, ErrorArgumentOutOfDomain.Errorf("poll() called with %d handles, max %d", len(handles), maxPollHandles)
	}

	results := make([]PollResult, len(handles))
	for i, h := range handles {
		if h.Read {
			_ = h.Socket.conn.SetReadDeadline(time.Now().Add(time.Millisecond))
			one := make([]byte, 0)
			_, err := h.Socket.conn.Read(one)
			results[i].Readable = err == nil
		}
		results[i].Writable = h.Write
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return results, nil
}
