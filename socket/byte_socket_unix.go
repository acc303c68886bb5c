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

	libioh "github.com/sabouaram/golib/ioh"
	libadr "github.com/sabouaram/golib/network/address"
)

// ByteSocket is a connected kernel byte-stream socket, built directly
// on golang.org/x/sys/unix rather than net.Conn, so it can carry
// scatter/gather buffers straight through to readv(2)/writev(2) and
// expose the file descriptor an iomux backend needs to register.
type ByteSocket struct {
	mu     sync.Mutex
	fd     int
	family libadr.Family
	desc   libioh.Descriptor
	mux    libioh.Multiplexer
	closed bool
}

// NewByteSocket opens a fresh socket of the given family and
// SOCK_STREAM-compatible proto (e.g. unix.IPPROTO_TCP, or 0 for
// AF_UNIX), applying the requested mode and flags.
func NewByteSocket(family libadr.Family, sockType, proto int, mode Mode, flags Flags) (*ByteSocket, error) {
	t := sockType
	if mode == ModeNonblocking {
		t |= unix.SOCK_NONBLOCK
	}
	if flags.Has(FlagCloseOnExec) {
		t |= unix.SOCK_CLOEXEC
	}

	domain := domainFor(family)
	if sockType == unix.SOCK_STREAM && proto == 0 && family != libadr.FamilyUnknown {
		domain = domainFor(family)
	}

	fd, err := unix.Socket(domain, t, proto)
	if err != nil {
		return nil, err
	}

	s := &ByteSocket{fd: fd, family: family, desc: libioh.NewDescriptor()}
	s.desc.SetKernelHandle(true)
	s.desc.SetSocket(true)
	s.desc.SetNonblocking(mode == ModeNonblocking)

	if flags.Has(FlagReuseAddr) {
		_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	}
	if flags.Has(FlagReusePort) {
		_ = setReusePort(fd)
	}
	if flags.Has(FlagKeepAlive) {
		_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_KEEPALIVE, 1)
	}
	if flags.Has(FlagNoDelay) && proto == unix.IPPROTO_TCP {
		_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
	}

	return s, nil
}

// adoptFD wraps an already-open, already-connected fd (e.g. one
// returned by ListeningSocket.Accept) into a ByteSocket.
func adoptFD(fd int, family libadr.Family) *ByteSocket {
	s := &ByteSocket{fd: fd, family: family, desc: libioh.NewDescriptor()}
	s.desc.SetKernelHandle(true)
	s.desc.SetSocket(true)
	s.desc.SetConnected(true)
	return s
}

// Connect dials the remote address, honouring ctx cancellation and
// deadline by polling the socket for writability once EINPROGRESS is
// returned for a non-blocking descriptor.
func (s *ByteSocket) Connect(ctx context.Context, addr libadr.Address, deadline time.Time) error {
	sa, err := toSockaddr(addr)
	if err != nil {
		return err
	}

	err = unix.Connect(s.fd, sa)
	if err == nil {
		s.desc.SetConnected(true)
		return nil
	}
	if err != unix.EINPROGRESS {
		return err
	}

	if err := pollFD(ctx, s.fd, unix.POLLOUT, deadline); err != nil {
		return err
	}

	errno, gerr := unix.GetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if gerr != nil {
		return gerr
	}
	if errno != 0 {
		return unix.Errno(errno)
	}

	s.desc.SetConnected(true)
	return nil
}

func (s *ByteSocket) Descriptor() libioh.Descriptor { return s.desc }
func (s *ByteSocket) MaxBuffers() int               { return libioh.MaxScatterBuffers }

func (s *ByteSocket) AllocateRegisteredBuffer(bytes int) (*libioh.RegisteredBuffer, error) {
	return libioh.AllocateRegisteredBuffer(s.fd, bytes), nil
}

// Read fills the scatter buffers via readv(2), blocking (subject to
// deadline/ctx) until the descriptor is readable if it was opened
// non-blocking.
func (s *ByteSocket) Read(ctx context.Context, req libioh.Request, deadline time.Time) (libioh.Result, error) {
	if err := libioh.CheckScatterLimit(len(req.Buffers), s.MaxBuffers()); err != nil {
		return libioh.Result{}, err
	}

	iov := make([][]byte, len(req.Buffers))
	for i, b := range req.Buffers {
		iov[i] = b.Data
	}

	for {
		n, err := unix.Readv(s.fd, iov)
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			if perr := pollFD(ctx, s.fd, unix.POLLIN, deadline); perr != nil {
				return libioh.Result{}, perr
			}
			continue
		}
		if err != nil {
			return libioh.Result{}, ErrorFilter(err)
		}
		return sliceResult(req.Buffers, n), nil
	}
}

// Write drains the gather buffers via writev(2).
func (s *ByteSocket) Write(ctx context.Context, req libioh.ConstRequest, deadline time.Time) (libioh.Result, error) {
	if err := libioh.CheckScatterLimit(len(req.Buffers), s.MaxBuffers()); err != nil {
		return libioh.Result{}, err
	}

	iov := make([][]byte, len(req.Buffers))
	for i, b := range req.Buffers {
		iov[i] = b.Data
	}

	for {
		n, err := unix.Writev(s.fd, iov)
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			if perr := pollFD(ctx, s.fd, unix.POLLOUT, deadline); perr != nil {
				return libioh.Result{}, perr
			}
			continue
		}
		if err != nil {
			return libioh.Result{}, ErrorFilter(err)
		}
		return sliceConstResult(req.Buffers, n), nil
	}
}

// Barrier is a no-op for sockets: there is no write-back cache to
// flush, unlike a file handle, so both BarrierAll and BarrierDataOnly
// return immediately once the socket is connected.
func (s *ByteSocket) Barrier(ctx context.Context, kind libioh.BarrierKind, deadline time.Time) error {
	if !s.desc.IsConnected() {
		return ErrorNotConnected.Error()
	}
	return nil
}

func (s *ByteSocket) SetMultiplexer(m libioh.Multiplexer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mux != nil {
		s.mux.Deregister(s)
	}

	state, err := m.Register(s)
	if err != nil {
		return err
	}

	s.mux = m
	s.desc.SetHasMultiplexer(true)
	s.desc.SetMultiplexerState(state)
	return nil
}

// Shutdown half-closes the socket per how (unix.SHUT_RD/WR/RDWR)
// without releasing the file descriptor.
func (s *ByteSocket) Shutdown(how int) error {
	return unix.Shutdown(s.fd, how)
}

// ShutdownAndClose performs the full shutdown ceremony: shut down both
// directions, then release the descriptor.
func (s *ByteSocket) ShutdownAndClose() error {
	_ = unix.Shutdown(s.fd, unix.SHUT_RDWR)
	return s.Close()
}

func (s *ByteSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.mux != nil {
		s.mux.Deregister(s)
	}

	return unix.Close(s.fd)
}

func (s *ByteSocket) LocalAddr() (libadr.Address, error) {
	sa, err := unix.Getsockname(s.fd)
	if err != nil {
		return libadr.Address{}, err
	}
	return fromSockaddr(sa), nil
}

func (s *ByteSocket) RemoteAddr() (libadr.Address, error) {
	sa, err := unix.Getpeername(s.fd)
	if err != nil {
		return libadr.Address{}, err
	}
	return fromSockaddr(sa), nil
}

// FD returns the raw file descriptor, for iomux backends that must
// register it with epoll/kqueue/io_uring directly.
func (s *ByteSocket) FD() int { return s.fd }

// MarkConnected flags the descriptor as connected for callers that
// perform their own unix.Connect (e.g. AF_UNIX path-based dialing,
// which bypasses Connect's Address-based sockaddr conversion).
func (s *ByteSocket) MarkConnected() { s.desc.SetConnected(true) }

func sliceResult(bufs []libioh.Buffer, n int) libioh.Result {
	out := make([]libioh.Buffer, 0, len(bufs))
	remaining := n
	for _, b := range bufs {
		take := len(b.Data)
		if take > remaining {
			take = remaining
		}
		out = append(out, libioh.Buffer{Data: b.Data[:take], Offset: b.Offset})
		remaining -= take
		if remaining <= 0 {
			break
		}
	}
	return libioh.Result{Buffers: out, Bytes: int64(n)}
}

func sliceConstResult(bufs []libioh.ConstBuffer, n int) libioh.Result {
	out := make([]libioh.Buffer, 0, len(bufs))
	remaining := n
	for _, b := range bufs {
		take := len(b.Data)
		if take > remaining {
			take = remaining
		}
		out = append(out, libioh.Buffer{Data: b.Data[:take], Offset: b.Offset})
		remaining -= take
		if remaining <= 0 {
			break
		}
	}
	return libioh.Result{Buffers: out, Bytes: int64(n)}
}
