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

// Package unix pins socket.ByteSocket/socket.ListeningSocket to
// AF_UNIX SOCK_STREAM byte-stream sockets. UDP and unixgram datagram
// transports are out of scope, matching the byte-stream-only Non-goal
// the kernel socket handles are built against.
package unix

import (
	"context"
	"os"
	"time"

	"golang.org/x/sys/unix"

	libsck "github.com/sabouaram/golib/socket"
)

// Dial connects a SOCK_STREAM AF_UNIX ByteSocket to the filesystem
// path exposed by a listening unix domain socket.
func Dial(ctx context.Context, path string, mode libsck.Mode, deadline time.Time) (*libsck.ByteSocket, error) {
	s, err := libsck.NewByteSocket(0, unix.SOCK_STREAM, 0, mode, 0)
	if err != nil {
		return nil, err
	}

	addr := &unix.SockaddrUnix{Name: path}
	fd := s.FD()
	if cerr := unix.Connect(fd, addr); cerr != nil {
		_ = s.Close()
		return nil, cerr
	}
	s.MarkConnected()

	return s, nil
}

// Listen unlinks any stale socket file at path, then binds and listens
// a SOCK_STREAM AF_UNIX socket.
func Listen(path string, backlog, maxInFlight int) (*libsck.ListeningSocket, error) {
	_ = os.Remove(path)

	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}

	if err := unix.Bind(fd, &unix.SockaddrUnix{Name: path}); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	if backlog <= 0 {
		backlog = unix.SOMAXCONN
	}
	if err := unix.Listen(fd, backlog); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	return libsck.AdoptListeningFD(fd, maxInFlight), nil
}
