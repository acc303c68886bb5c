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

// Package socket implements the kernel byte-socket and listening-socket
// handles (component C4): ByteSocket/ListeningSocket built directly on
// golang.org/x/sys/unix, plus the ErrorFilter/ConnState helpers shared by
// the tcp and unix sub-packages.
package socket

import "github.com/sabouaram/golib/errors"

const (
	ErrorArgumentOutOfDomain errors.CodeError = iota + errors.MinPkgSocket
	ErrorOperationInProgress
	ErrorNotConnected
	ErrorInvalidArgument
)

func init() {
	errors.RegisterIdFctMessage(ErrorArgumentOutOfDomain, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorArgumentOutOfDomain:
		return "poll() called with more than 1024 handles"
	case ErrorOperationInProgress:
		return "non-blocking connect still in progress"
	case ErrorNotConnected:
		return "socket is not connected"
	case ErrorInvalidArgument:
		return "invalid socket argument"
	}

	return ""
}
