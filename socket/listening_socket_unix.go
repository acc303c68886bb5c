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
	"sync"
	"time"

	"golang.org/x/sys/unix"

	libadr "github.com/sabouaram/golib/network/address"
)

// ListeningSocket is a bound, listening kernel socket that hands out
// ByteSocket connections through Accept. maxInFlight reproduces, for a
// raw syscall-backed listener, the same connection-count backpressure
// that golang.org/x/net/netutil.LimitListener gives a net.Listener;
// see socket/tcp.ListenLimited for the net.Listener-based equivalent.
type ListeningSocket struct {
	mu         sync.Mutex
	fd         int
	family     libadr.Family
	closed     bool
	maxInFlight int
	inFlight   int
}

// NewListeningSocket creates, binds, and starts listening on a socket
// for addr, honouring FlagReuseAddr/FlagReusePort and the requested
// backlog. maxInFlight bounds concurrently accepted-but-unclosed
// connections the same way netutil.LimitListener bounds a net.Listener;
// 0 disables the limit.
func NewListeningSocket(addr libadr.Address, sockType, proto int, flags Flags, backlog, maxInFlight int) (*ListeningSocket, error) {
	domain := domainFor(addr.Family())

	t := sockType | unix.SOCK_NONBLOCK
	if flags.Has(FlagCloseOnExec) {
		t |= unix.SOCK_CLOEXEC
	}

	fd, err := unix.Socket(domain, t, proto)
	if err != nil {
		return nil, err
	}

	if flags.Has(FlagReuseAddr) {
		_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	}
	if flags.Has(FlagReusePort) {
		_ = setReusePort(fd)
	}

	sa, err := toSockaddr(addr)
	if err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	if err := unix.Bind(fd, sa); err != nil {
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

	return &ListeningSocket{fd: fd, family: addr.Family(), maxInFlight: maxInFlight}, nil
}

// AdoptListeningFD wraps an already bound-and-listening fd (e.g. an
// AF_UNIX socket bound by path rather than by Address) into a
// ListeningSocket.
func AdoptListeningFD(fd int, maxInFlight int) *ListeningSocket {
	return &ListeningSocket{fd: fd, maxInFlight: maxInFlight}
}

// Accept blocks (subject to ctx/deadline) until a connection arrives,
// returning it as a ByteSocket plus the peer's address. When
// maxInFlight is set and already reached, Accept waits for Release to
// be called by a prior connection's Close before accepting further —
// the same backpressure netutil.LimitListener applies to a net.Listener.
func (l *ListeningSocket) Accept(ctx context.Context, deadline time.Time) (*ByteSocket, libadr.Address, error) {
	l.mu.Lock()
	for l.maxInFlight > 0 && l.inFlight >= l.maxInFlight {
		l.mu.Unlock()
		if err := pollFD(ctx, l.fd, unix.POLLIN, deadline); err != nil {
			return nil, libadr.Address{}, err
		}
		l.mu.Lock()
	}
	l.mu.Unlock()

	for {
		fd, sa, err := unix.Accept4(l.fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			if perr := pollFD(ctx, l.fd, unix.POLLIN, deadline); perr != nil {
				return nil, libadr.Address{}, perr
			}
			continue
		}
		if err != nil {
			return nil, libadr.Address{}, ErrorFilter(err)
		}

		l.mu.Lock()
		l.inFlight++
		l.mu.Unlock()

		conn := adoptFD(fd, l.family)
		return conn, fromSockaddr(sa), nil
	}
}

// Release informs the listening socket that an accepted connection has
// been closed, freeing one slot of its maxInFlight budget.
func (l *ListeningSocket) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight > 0 {
		l.inFlight--
	}
}

func (l *ListeningSocket) LocalAddr() (libadr.Address, error) {
	sa, err := unix.Getsockname(l.fd)
	if err != nil {
		return libadr.Address{}, err
	}
	return fromSockaddr(sa), nil
}

func (l *ListeningSocket) FD() int { return l.fd }

func (l *ListeningSocket) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return unix.Close(l.fd)
}
