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

	libioh "github.com/sabouaram/golib/ioh"
	libadr "github.com/sabouaram/golib/network/address"
)

// Shutdown direction constants, mirroring Winsock's SD_RECEIVE/SD_SEND/
// SD_BOTH so callers don't need to import golang.org/x/sys/windows
// just to call ByteSocket.Shutdown.
const (
	ShutRD = iota
	ShutWR
	ShutRDWR
)

// ByteSocket on Windows is grounded on net.TCPConn/net.UnixConn rather
// than raw WSASocket/overlapped-I/O calls: true scatter/gather here
// would need IOCP-registered WSABUF submission wired through the
// iomux/iocp backend, which the multiplexer side also trims (see
// DESIGN.md). Buffers are read/written one at a time instead of via a
// single readv/writev-equivalent syscall.
type ByteSocket struct {
	mu     sync.Mutex
	conn   net.Conn
	desc   libioh.Descriptor
	mux    libioh.Multiplexer
	closed bool
}

func adoptConn(c net.Conn) *ByteSocket {
	s := &ByteSocket{conn: c, desc: libioh.NewDescriptor()}
	s.desc.SetSocket(true)
	s.desc.SetConnected(true)
	return s
}

func (s *ByteSocket) Descriptor() libioh.Descriptor { return s.desc }
func (s *ByteSocket) MaxBuffers() int               { return libioh.MaxScatterBuffers }

func (s *ByteSocket) AllocateRegisteredBuffer(bytes int) (*libioh.RegisteredBuffer, error) {
	return libioh.AllocateRegisteredBuffer(0, bytes), nil
}

func (s *ByteSocket) Read(ctx context.Context, req libioh.Request, deadline time.Time) (libioh.Result, error) {
	if !deadline.IsZero() {
		_ = s.conn.SetReadDeadline(deadline)
	}

	out := make([]libioh.Buffer, 0, len(req.Buffers))
	var total int64
	for _, b := range req.Buffers {
		n, err := s.conn.Read(b.Data)
		out = append(out, libioh.Buffer{Data: b.Data[:n], Offset: b.Offset})
		total += int64(n)
		if err != nil {
			return libioh.Result{Buffers: out, Bytes: total}, ErrorFilter(err)
		}
		if n < len(b.Data) {
			break
		}
	}
	return libioh.Result{Buffers: out, Bytes: total}, nil
}

func (s *ByteSocket) Write(ctx context.Context, req libioh.ConstRequest, deadline time.Time) (libioh.Result, error) {
	if !deadline.IsZero() {
		_ = s.conn.SetWriteDeadline(deadline)
	}

	out := make([]libioh.Buffer, 0, len(req.Buffers))
	var total int64
	for _, b := range req.Buffers {
		n, err := s.conn.Write(b.Data)
		out = append(out, libioh.Buffer{Data: b.Data[:n], Offset: b.Offset})
		total += int64(n)
		if err != nil {
			return libioh.Result{Buffers: out, Bytes: total}, ErrorFilter(err)
		}
	}
	return libioh.Result{Buffers: out, Bytes: total}, nil
}

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

func (s *ByteSocket) Shutdown(how int) error {
	type closeWriter interface{ CloseWrite() error }
	type closeReader interface{ CloseRead() error }

	if how == ShutWR || how == ShutRDWR {
		if cw, ok := s.conn.(closeWriter); ok {
			_ = cw.CloseWrite()
		}
	}
	if how == ShutRD || how == ShutRDWR {
		if cr, ok := s.conn.(closeReader); ok {
			_ = cr.CloseRead()
		}
	}
	return nil
}

func (s *ByteSocket) ShutdownAndClose() error {
	_ = s.Shutdown(ShutRDWR)
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
	return s.conn.Close()
}

func (s *ByteSocket) LocalAddr() (libadr.Address, error) {
	return libadr.ParseAddress(s.conn.LocalAddr().String())
}

func (s *ByteSocket) RemoteAddr() (libadr.Address, error) {
	return libadr.ParseAddress(s.conn.RemoteAddr().String())
}

func (s *ByteSocket) MarkConnected() { s.desc.SetConnected(true) }
