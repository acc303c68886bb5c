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

// Package tcp pins socket.ByteSocket/socket.ListeningSocket to
// AF_INET/AF_INET6 SOCK_STREAM, and offers a net.Listener-based
// ListenLimited for callers that want golang.org/x/net/netutil's
// connection-count backpressure without leaving the standard net
// package.
package tcp

import (
	"context"
	"net"
	"time"

	"golang.org/x/sys/unix"

	libadr "github.com/sabouaram/golib/network/address"
	libsck "github.com/sabouaram/golib/socket"
)

// Dial opens a TCP ByteSocket and connects it to addr.
func Dial(ctx context.Context, addr libadr.Address, mode libsck.Mode, flags libsck.Flags, deadline time.Time) (*libsck.ByteSocket, error) {
	s, err := libsck.NewByteSocket(addr.Family(), unix.SOCK_STREAM, unix.IPPROTO_TCP, mode, flags)
	if err != nil {
		return nil, err
	}

	if err := s.Connect(ctx, addr, deadline); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

// Listen binds and listens a TCP ListeningSocket on addr.
func Listen(addr libadr.Address, flags libsck.Flags, backlog, maxInFlight int) (*libsck.ListeningSocket, error) {
	return libsck.NewListeningSocket(addr, unix.SOCK_STREAM, unix.IPPROTO_TCP, flags, backlog, maxInFlight)
}

// ListenLimited wraps a standard net.Listener with
// golang.org/x/net/netutil's LimitListener, for callers who want
// net.Conn-shaped TCP service with the same accept-throttling
// semantics ListeningSocket.Accept applies via its maxInFlight budget.
func ListenLimited(network, address string, maxConns int) (net.Listener, error) {
	l, err := net.Listen(network, address)
	if err != nil {
		return nil, err
	}
	if maxConns <= 0 {
		return l, nil
	}
	return limitListener(l, maxConns), nil
}
