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

//go:build unix

package socket

import (
	"context"
	"time"

	"golang.org/x/sys/unix"
)

// maxPollHandles bounds socket.Poll the same way the spec's poll()
// operation is bounded: more than this many handles in one call is an
// argument-out-of-domain error rather than a silently truncated poll.
const maxPollHandles = 1024

// pollFD blocks until fd is ready for events, ctx is cancelled, or
// deadline (zero means wait forever) elapses.
func pollFD(ctx context.Context, fd int, events int16, deadline time.Time) error {
	for {
		timeout := -1
		if !deadline.IsZero() {
			d := time.Until(deadline)
			if d <= 0 {
				return ErrorInvalidArgument.Errorf("deadline already elapsed")
			}
			timeout = int(d.Milliseconds())
		}

		if ctxTimeout, ok := ctx.Deadline(); ok {
			d := time.Until(ctxTimeout)
			if d <= 0 {
				return ctx.Err()
			}
			if ms := int(d.Milliseconds()); timeout < 0 || ms < timeout {
				timeout = ms
			}
		}

		fds := []unix.PollFd{{Fd: int32(fd), Events: events}}
		n, err := unix.Poll(fds, timeout)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrorInvalidArgument.Errorf("poll timed out")
		}
		if fds[0].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 && fds[0].Revents&events == 0 {
			return unix.ECONNRESET
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		return nil
	}
}

// PollHandle names an individual wait in a socket.Poll call: the
// socket to watch and which direction(s) matter to the caller.
type PollHandle struct {
	Socket *ByteSocket
	Read   bool
	Write  bool
}

// PollResult reports which of the requested directions fired for the
// handle at the same index in the Poll call's input slice.
type PollResult struct {
	Readable bool
	Writable bool
	Error    bool
}

// Poll waits across up to 1024 byte-sockets at once for read/write
// readiness, mirroring the spec's poll() free function. deadline zero
// means wait forever; ctx cancellation always takes priority.
func Poll(ctx context.Context, handles []PollHandle, deadline time.Time) ([]PollResult, error) {
	if len(handles) > maxPollHandles {
		return nil, ErrorArgumentOutOfDomain.Errorf("poll() called with %d handles, max %d", len(handles), maxPollHandles)
	}

	fds := make([]unix.PollFd, len(handles))
	for i, h := range handles {
		var ev int16
		if h.Read {
			ev |= unix.POLLIN
		}
		if h.Write {
			ev |= unix.POLLOUT
		}
		fds[i] = unix.PollFd{Fd: int32(h.Socket.FD()), Events: ev}
	}

	timeout := -1
	if !deadline.IsZero() {
		d := time.Until(deadline)
		if d < 0 {
			d = 0
		}
		timeout = int(d.Milliseconds())
	}

	for {
		n, err := unix.Poll(fds, timeout)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		results := make([]PollResult, len(handles))
		for i, pfd := range fds {
			results[i] = PollResult{
				Readable: pfd.Revents&unix.POLLIN != 0,
				Writable: pfd.Revents&unix.POLLOUT != 0,
				Error:    pfd.Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0,
			}
		}

		_ = n
		return results, nil
	}
}
