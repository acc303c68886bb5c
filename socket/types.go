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

package socket

// Mode selects whether a socket's file descriptor is placed in
// non-blocking mode at creation time. A blocking ByteSocket still
// honours context cancellation and deadlines by polling internally.
type Mode uint8

const (
	ModeBlocking Mode = iota
	ModeNonblocking
)

// Flags are creation-time socket options, ORed together.
type Flags uint32

const (
	FlagReuseAddr Flags = 1 << iota
	FlagReusePort
	FlagNoDelay
	FlagKeepAlive
	FlagCloseOnExec
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Caching selects how a listening socket's accept backlog is managed;
// CachingDefault leaves the kernel's default backlog untouched.
type Caching uint8

const (
	CachingDefault Caching = iota
	CachingLowLatency
)
