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

package tlssocket

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	libcrt "github.com/sabouaram/golib/certificates"
	libioh "github.com/sabouaram/golib/ioh"
)

// TLSSocket overlays a TLS client session onto an underlying
// ioh.Handle. Its Descriptor carries both the tls-socket bit and the
// pointer-indirection bit (bitIsPointerIndirection): a TLSSocket does
// not own a kernel handle directly, it drives one through another
// ioh.Handle, exactly as spec's pointer-indirection mode describes for
// handles layered over another handle.
type TLSSocket struct {
	mu sync.Mutex

	inner    libioh.Handle
	conn     *handleConn
	tlsConn  *tls.Conn
	cfg      libcrt.TLSConfig
	hostname string

	desc      libioh.Descriptor
	chunkSize int
	ring      [2]*libioh.RegisteredBuffer
	ringNext  int

	watcher *certWatcher
	mux     libioh.Multiplexer
}

// NewTLSSocket wraps inner (typically a socket.ByteSocket) so it can
// carry a TLS session once SetAlgorithms/SetConnectHostname/Connect
// have been called.
func NewTLSSocket(inner libioh.Handle) *TLSSocket {
	d := libioh.NewDescriptor()
	d.SetTLSSocket(true)
	d.SetPointerIndirection(true)
	if inner.Descriptor().IsSocket() {
		d.SetSocket(true)
	}

	return &TLSSocket{inner: inner, desc: d, chunkSize: libioh.MaxScatterBuffers}
}

// SetAlgorithms installs the certificates.TLSConfig (cipher suites,
// TLS version bounds, certificate pairs, root/client CAs) used to
// build the crypto/tls.Config at Connect time.
func (s *TLSSocket) SetAlgorithms(cfg libcrt.TLSConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// SetConnectHostname sets the SNI/verification hostname used for the
// outbound handshake.
func (s *TLSSocket) SetConnectHostname(hostname string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hostname = hostname
}

// SetAuthenticationCertificatesPath watches a certificate+key pair on
// disk (via fsnotify) and reloads it into the active TLSConfig
// whenever it changes, so a long-lived TLSSocket picks up rotated
// certificates without a restart. keyFile/crtFile name the watched
// pair; SetAlgorithms must be called first.
func (s *TLSSocket) SetAuthenticationCertificatesPath(keyFile, crtFile string) error {
	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()

	if cfg == nil {
		return ErrorNoAlgorithms.Error()
	}

	if err := cfg.AddCertificatePairFile(keyFile, crtFile); err != nil {
		return err
	}

	w, err := newCertWatcher(keyFile, crtFile, cfg)
	if err != nil {
		return ErrorWatchFailed.Errorf("%s", err.Error())
	}

	s.mu.Lock()
	if s.watcher != nil {
		s.watcher.Close()
	}
	s.watcher = w
	s.mu.Unlock()

	return nil
}

// AlgorithmsDescription summarises the negotiated algorithm surface:
// the configured TLS version range and cipher suite list. Before
// Connect this reflects SetAlgorithms' configuration; afterwards it
// reflects what was actually negotiated.
func (s *TLSSocket) AlgorithmsDescription() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tlsConn != nil {
		cs := s.tlsConn.ConnectionState()
		return fmt.Sprintf("negotiated %s, cipher 0x%04x", tls.VersionName(cs.Version), cs.CipherSuite)
	}

	if s.cfg == nil {
		return "no algorithms configured"
	}

	ciphers := s.cfg.GetCiphers()
	return fmt.Sprintf("configured %s-%s, %d cipher(s)", s.cfg.GetVersionMin(), s.cfg.GetVersionMax(), len(ciphers))
}

// SetRegisteredBufferChunkSize allocates the two-slot ring of
// registered buffers TLS read/write alternate between, avoiding a
// fresh allocation on every record.
func (s *TLSSocket) SetRegisteredBufferChunkSize(n int) error {
	if n <= 0 {
		return ErrorInvalidChunkSize.Error()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunkSize = n
	for i := range s.ring {
		buf, err := s.inner.AllocateRegisteredBuffer(n)
		if err != nil {
			return err
		}
		s.ring[i] = buf
	}
	return nil
}

func (s *TLSSocket) nextRingBuffer() *libioh.RegisteredBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ring[0] == nil {
		return nil
	}
	buf := s.ring[s.ringNext]
	s.ringNext = (s.ringNext + 1) % len(s.ring)
	return buf
}

// Connect performs the TLS client handshake over the wrapped handle.
func (s *TLSSocket) Connect(ctx context.Context, deadline time.Time) error {
	s.mu.Lock()
	cfg := s.cfg
	hostname := s.hostname
	s.mu.Unlock()

	if cfg == nil {
		return ErrorNoAlgorithms.Error()
	}
	if hostname == "" {
		return ErrorNoConnectHostname.Error()
	}

	conn := newHandleConn(s.inner)
	if !deadline.IsZero() {
		_ = conn.SetDeadline(deadline)
	}

	tlsConn := tls.Client(conn, cfg.TLS(hostname))
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return ErrorHandshakeFailed.Errorf("%s: %s", hostname, err.Error())
	}

	s.mu.Lock()
	s.conn = conn
	s.tlsConn = tlsConn
	s.desc.SetConnected(true)
	s.mu.Unlock()

	return nil
}

func (s *TLSSocket) Descriptor() libioh.Descriptor { return s.desc }
func (s *TLSSocket) MaxBuffers() int               { return 1 }

func (s *TLSSocket) AllocateRegisteredBuffer(bytes int) (*libioh.RegisteredBuffer, error) {
	return s.inner.AllocateRegisteredBuffer(bytes)
}

// Read decrypts one or more TLS records into the request's buffers.
// Scatter/gather at the wire level does not apply once TLS framing is
// in the way, so buffers are filled in order, stopping at the first
// short read.
func (s *TLSSocket) Read(ctx context.Context, req libioh.Request, deadline time.Time) (libioh.Result, error) {
	s.mu.Lock()
	tlsConn := s.tlsConn
	s.mu.Unlock()

	if tlsConn == nil {
		return libioh.Result{}, ErrorNotConnected.Error()
	}
	if !deadline.IsZero() {
		_ = tlsConn.SetReadDeadline(deadline)
	}

	out := make([]libioh.Buffer, 0, len(req.Buffers))
	var total int64
	for _, b := range req.Buffers {
		n, err := tlsConn.Read(b.Data)
		out = append(out, libioh.Buffer{Data: b.Data[:n], Offset: b.Offset})
		total += int64(n)
		if err != nil {
			return libioh.Result{Buffers: out, Bytes: total}, err
		}
		if n < len(b.Data) {
			break
		}
	}
	return libioh.Result{Buffers: out, Bytes: total}, nil
}

// Write encrypts and sends the gather buffers as TLS records, in order.
func (s *TLSSocket) Write(ctx context.Context, req libioh.ConstRequest, deadline time.Time) (libioh.Result, error) {
	s.mu.Lock()
	tlsConn := s.tlsConn
	s.mu.Unlock()

	if tlsConn == nil {
		return libioh.Result{}, ErrorNotConnected.Error()
	}
	if !deadline.IsZero() {
		_ = tlsConn.SetWriteDeadline(deadline)
	}

	out := make([]libioh.Buffer, 0, len(req.Buffers))
	var total int64
	for _, b := range req.Buffers {
		n, err := tlsConn.Write(b.Data)
		out = append(out, libioh.Buffer{Data: b.Data[:n], Offset: b.Offset})
		total += int64(n)
		if err != nil {
			return libioh.Result{Buffers: out, Bytes: total}, err
		}
	}
	return libioh.Result{Buffers: out, Bytes: total}, nil
}

// Barrier has nothing to flush for a TLS record stream beyond what
// CloseWrite's close_notify already does.
func (s *TLSSocket) Barrier(ctx context.Context, kind libioh.BarrierKind, deadline time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tlsConn == nil {
		return ErrorNotConnected.Error()
	}
	return nil
}

func (s *TLSSocket) SetMultiplexer(m libioh.Multiplexer) error {
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

// Close sends close_notify and tears down the underlying handle.
func (s *TLSSocket) Close() error {
	s.mu.Lock()
	tlsConn := s.tlsConn
	watcher := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if watcher != nil {
		watcher.Close()
	}

	if tlsConn != nil {
		_ = tlsConn.Close()
	}

	return s.inner.Close()
}
