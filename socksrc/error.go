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

// Package socksrc is the process-wide registry of named TLS socket
// sources (component C5's source registry): each source carries a
// feature-bit set and a semantic version, and callers pick one by
// name or fall back to the registry's default.
package socksrc

import "github.com/sabouaram/golib/errors"

const (
	ErrorSourceAlreadyRegistered errors.CodeError = iota + errors.MinPkgSockSrc
	ErrorSourceNotFound
	ErrorNoDefaultSource
	ErrorInvalidVersion
)

func init() {
	errors.RegisterIdFctMessage(ErrorSourceAlreadyRegistered, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorSourceAlreadyRegistered:
		return "a source is already registered under this name"
	case ErrorSourceNotFound:
		return "no source registered under this name"
	case ErrorNoDefaultSource:
		return "no default source has been registered"
	case ErrorInvalidVersion:
		return "source version string does not parse as a semantic version"
	}

	return ""
}
