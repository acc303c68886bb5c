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
	"net"
	"sync"
	"time"

	"golang.org/x/net/netutil"

	libadr "github.com/sabouaram/golib/network/address"
)

// ListeningSocket on Windows wraps a net.Listener limited by
// golang.org/x/net/netutil.LimitListener, rather than a raw
// WSASocket-based accept loop (see ByteSocket's doc comment for why).
type ListeningSocket struct {
	mu     sync.Mutex
	ln     net.Listener
	closed bool
}

// NewListeningSocket binds and listens network (e.g. "tcp") at addr,
// optionally capping concurrently accepted-but-unclosed connections
// via maxInFlight (0 disables the cap).
func NewListeningSocket(network string, addr libadr.Address, maxInFlight int) (*ListeningSocket, error) {
	ln, err := net.Listen(network, addr.String())
	if err != nil {
		return nil, err
	}
	if maxInFlight > 0 {
		ln = netutil.LimitListener(ln, maxInFlight)
	}
	return &ListeningSocket{ln: ln}, nil
}

func (l *ListeningSocket) Accept(ctx context.Context, deadline time.Time) (*ByteSocket, libadr.Address, error) {
	if tl, ok := l.ln.(interface{ SetDeadline(time.Time) error }); ok && !deadline.IsZero() {
		_ = tl.SetDeadline(deadline)
	}

	c, err := l.ln.Accept()
	if err != nil {
		return nil, libadr.Address{}, ErrorFilter(err)
	}

	addr, _ := libadr.ParseAddress(c.RemoteAddr().String())
	return adoptConn(c), addr, nil
}

func (l *ListeningSocket) LocalAddr() (libadr.Address, error) {
	return libadr.ParseAddress(l.ln.Addr().String())
}

func (l *ListeningSocket) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.ln.Close()
}
