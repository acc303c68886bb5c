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
	"net"
	"time"

	libioh "github.com/sabouaram/golib/ioh"
)

// handleConn adapts an ioh.Handle to net.Conn, the shape crypto/tls's
// Client/Server constructors require. It carries its own read/write
// deadlines since ioh.Handle.Read/Write take the deadline per call
// rather than storing it.
type handleConn struct {
	h        libioh.Handle
	rd, wd   time.Time
	addrPair [2]net.Addr
}

func newHandleConn(h libioh.Handle) *handleConn {
	return &handleConn{h: h, addrPair: [2]net.Addr{stubAddr{}, stubAddr{}}}
}

func (c *handleConn) Read(p []byte) (int, error) {
	req := libioh.Request{Buffers: []libioh.Buffer{{Data: p}}}
	res, err := c.h.Read(context.Background(), req, c.rd)
	n := 0
	if len(res.Buffers) > 0 {
		n = len(res.Buffers[0].Data)
	}
	return n, err
}

func (c *handleConn) Write(p []byte) (int, error) {
	req := libioh.ConstRequest{Buffers: []libioh.ConstBuffer{{Data: p}}}
	res, err := c.h.Write(context.Background(), req, c.wd)
	return int(res.Bytes), err
}

func (c *handleConn) Close() error                       { return c.h.Close() }
func (c *handleConn) LocalAddr() net.Addr                 { return c.addrPair[0] }
func (c *handleConn) RemoteAddr() net.Addr                { return c.addrPair[1] }
func (c *handleConn) SetDeadline(t time.Time) error       { c.rd, c.wd = t, t; return nil }
func (c *handleConn) SetReadDeadline(t time.Time) error   { c.rd = t; return nil }
func (c *handleConn) SetWriteDeadline(t time.Time) error  { c.wd = t; return nil }

type stubAddr struct{}

func (stubAddr) Network() string { return "ioh" }
func (stubAddr) String() string  { return "ioh-handle" }
