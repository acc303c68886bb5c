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

// Package tlssocket overlays a TLS session onto an ioh.Handle (usually
// a socket.ByteSocket), using the teacher's certificates package for
// algorithm/cipher/certificate configuration and crypto/tls for the
// handshake itself.
package tlssocket

import "github.com/sabouaram/golib/errors"

const (
	ErrorNoAlgorithms errors.CodeError = iota + errors.MinPkgTlsSocket
	ErrorNoConnectHostname
	ErrorHandshakeFailed
	ErrorNotConnected
	ErrorWatchFailed
	ErrorInvalidChunkSize
)

func init() {
	errors.RegisterIdFctMessage(ErrorNoAlgorithms, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorNoAlgorithms:
		return "SetAlgorithms must be called before Connect"
	case ErrorNoConnectHostname:
		return "SetConnectHostname must be called before Connect"
	case ErrorHandshakeFailed:
		return "TLS handshake failed"
	case ErrorNotConnected:
		return "TLS socket is not connected"
	case ErrorWatchFailed:
		return "failed to watch the certificate path for rotation"
	case ErrorInvalidChunkSize:
		return "registered buffer chunk size must be positive"
	}

	return ""
}
